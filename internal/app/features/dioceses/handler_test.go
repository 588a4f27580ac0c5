package dioceses

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/features/shared/sharedtest"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/diocesehub/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	fb.SeedDirectory()
	return NewHandler(sharedtest.Deps(t, fb)), fb
}

func TestBuildList_FilterByState(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?state_id=1", 2}, // Sydney, Wagga Wagga
		{"?state_id=2", 2}, // Wagga Wagga, Melbourne
		{"?state_id=99", 3},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dioceses"+tt.query, testutil.StandardUser())
			data, ok := h.buildList(context.Background(), httptest.NewRecorder(), req)
			if !ok {
				t.Fatal("buildList wrote a response")
			}
			if len(data.Table.Rows) != tt.want {
				t.Errorf("rows = %d, want %d", len(data.Table.Rows), tt.want)
			}
		})
	}
}

func TestBuildList_UnknownStateCleared(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dioceses?state_id=99", testutil.AdminUser())
	data, _ := h.buildList(context.Background(), httptest.NewRecorder(), req)
	if data.Filter.StateID != 0 {
		t.Errorf("StateID = %d, want 0", data.Filter.StateID)
	}
	if !data.Filter.DioceseDisabled {
		t.Error("diocese level should be disabled with no state")
	}
}

func TestBuildList_RestoresSavedFilter(t *testing.T) {
	h, _ := newTestHandler(t)

	// First visit saves the filter cookie.
	rec := httptest.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dioceses?state_id=2", testutil.AdminUser())
	h.buildList(context.Background(), rec, req)

	req = testutil.NewAuthenticatedRequest(http.MethodGet, "/dioceses?"+shared.RestoreParam+"=1", testutil.AdminUser())
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	data, _ := h.buildList(context.Background(), httptest.NewRecorder(), req)
	if data.Filter.StateID != 2 {
		t.Errorf("restored StateID = %d, want 2", data.Filter.StateID)
	}
	if len(data.Table.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(data.Table.Rows))
	}
}

func TestBuildList_LoadFailureDisablesFilter(t *testing.T) {
	h, fb := newTestHandler(t)
	fb.Fail(http.MethodGet, "parishes", http.StatusBadGateway, "")

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dioceses?state_id=1", testutil.AdminUser())
	data, ok := h.buildList(context.Background(), httptest.NewRecorder(), req)
	if !ok {
		t.Fatal("buildList wrote a response")
	}
	if !data.LoadFail || !data.Filter.Disabled || len(data.Table.Rows) != 0 {
		t.Errorf("LoadFail=%v Disabled=%v rows=%d", data.LoadFail, data.Filter.Disabled, len(data.Table.Rows))
	}
}

func TestHandleCreate_Success(t *testing.T) {
	h, fb := newTestHandler(t)

	body := "name=Broken+Bay&states=nsw&states=NSW&website=dbb.org.au&email=office%40dbb.org.au"
	req := testutil.NewFormRequest("/dioceses", body, testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)

	rec.AssertRedirect(t, "/dioceses?restore=1")
	call, _ := fb.LastCall(http.MethodPost)
	states, _ := call.Body["associated_state_abbreviations"].([]any)
	if len(states) != 1 || states[0] != "NSW" {
		t.Errorf("associated states = %v", call.Body["associated_state_abbreviations"])
	}
}

func TestHandleCreate_RequiresAState(t *testing.T) {
	h, fb := newTestHandler(t)

	req := testutil.NewFormRequest("/dioceses", "name=Broken+Bay", testutil.AdminUser())
	rec := testutil.NewRecorder()
	sharedtest.Serve(h.HandleCreate, rec, req)

	if fb.Count("dioceses") != 3 {
		t.Errorf("dioceses = %d, want 3", fb.Count("dioceses"))
	}
}

func TestReadInput(t *testing.T) {
	in := readInput(func(string) string { return "" }, []string{" vic", "VIC", "", "nsw"})
	if len(in.States) != 2 || in.States[0] != "VIC" || in.States[1] != "NSW" {
		t.Errorf("States = %v", in.States)
	}
	if r := formOf(models.Diocese{AssociatedStateAbbreviations: in.States}); !r.HasState("nsw") || r.HasState("QLD") {
		t.Error("HasState")
	}
}

func TestHandleEdit_Success(t *testing.T) {
	h, fb := newTestHandler(t)

	req := testutil.NewFormRequest("/dioceses/30/edit", "name=Melbourne&states=VIC&city=Melbourne", testutil.SupervisorUser())
	req = testutil.WithChiURLParam(req, "id", "30")
	rec := testutil.NewRecorder()
	h.HandleEdit(rec, req)

	rec.AssertRedirect(t, "/dioceses?restore=1")
	var got models.Diocese
	if !fb.Find("dioceses", 30, &got) || got.City != "Melbourne" || len(got.AssociatedStateAbbreviations) != 1 {
		t.Errorf("diocese 30 = %+v", got)
	}
}

func TestHandleDelete_Rejected(t *testing.T) {
	h, fb := newTestHandler(t)
	fb.Fail(http.MethodDelete, "dioceses", http.StatusConflict, "Diocese still has parishes")

	req := testutil.NewFormRequest("/dioceses/10/delete", "name=Sydney", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "10")
	rec := testutil.NewRecorder()
	h.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/dioceses?restore=1")
	if fb.Count("dioceses") != 3 {
		t.Errorf("dioceses = %d, want 3", fb.Count("dioceses"))
	}
}
