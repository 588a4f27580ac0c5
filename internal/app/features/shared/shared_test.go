package shared_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/features/shared/sharedtest"
	"github.com/dalemusser/diocesehub/internal/app/system/backend"
	"github.com/dalemusser/diocesehub/internal/app/system/cascade"
	"github.com/dalemusser/diocesehub/internal/app/system/inputval"
	"github.com/dalemusser/diocesehub/internal/app/system/navigation"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/testutil"
)

func TestRestoreURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/parishes", "/parishes?restore=1"},
		{"/parishes?page=2", "/parishes?page=2&restore=1"},
		{"/parishes?state_id=1", "/parishes?state_id=1"},
		{"/crusades?parish_id=7&page=1", "/crusades?parish_id=7&page=1"},
	}
	for _, tt := range tests {
		if got := shared.RestoreURL(tt.in); got != tt.want {
			t.Errorf("RestoreURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedirect(t *testing.T) {
	rec := httptest.NewRecorder()
	shared.Redirect(rec, httptest.NewRequest(http.MethodPost, "/x", nil), "/states")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/states" {
		t.Errorf("plain: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	shared.Redirect(rec, req, "/states")
	if rec.Code != http.StatusOK || rec.Header().Get("HX-Redirect") != "/states" {
		t.Errorf("htmx: %d %q", rec.Code, rec.Header().Get("HX-Redirect"))
	}
}

func TestTruncateAndFilterQuery(t *testing.T) {
	sel := cascade.Selection{StateID: 1, DioceseID: 10, ParishID: 100}

	if got := shared.Truncate(sel, shared.DepthState); got != (cascade.Selection{StateID: 1}) {
		t.Errorf("Truncate(state) = %+v", got)
	}
	if got := shared.Truncate(sel, shared.DepthDiocese); got != (cascade.Selection{StateID: 1, DioceseID: 10}) {
		t.Errorf("Truncate(diocese) = %+v", got)
	}
	if got := shared.FilterQuery(cascade.Selection{StateID: 2, ParishID: 5}).Encode(); got != "parish_id=5&state_id=2" {
		t.Errorf("FilterQuery = %q", got)
	}
	if got := shared.FilterQuery(cascade.Selection{}).Encode(); got != "" {
		t.Errorf("empty FilterQuery = %q", got)
	}
}

func TestSelectionFromQuery_IgnoresGarbage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/parishes?state_id=2&diocese_id=-4&parish_id=abc", nil)
	if got := shared.SelectionFromQuery(r); got != (cascade.Selection{StateID: 2}) {
		t.Errorf("SelectionFromQuery = %+v", got)
	}
}

func TestCheckSelection(t *testing.T) {
	// The cascade kept the state but cleared a diocese from another state.
	vm := shared.CascadeVM{StateID: 1}
	res := &inputval.Result{}
	shared.CheckSelection(res, vm, cascade.Selection{StateID: 1, DioceseID: 30}, shared.DepthDiocese)

	want := map[string]string{"diocese_id": "Choose a diocese in the selected state."}
	if got := res.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields = %v, want %v", got, want)
	}

	res = &inputval.Result{}
	shared.CheckSelection(res, shared.CascadeVM{Disabled: true}, cascade.Selection{StateID: 9}, shared.DepthParish)
	if res.HasErrors() {
		t.Errorf("disabled cascade produced errors: %v", res.Errors)
	}
}

func TestLoadList_RefetchesWithCorrectedSelection(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.SeedDirectory()
	d := sharedtest.Deps(t, fb)

	var asked []cascade.Selection
	fetch := func(ctx context.Context, sel cascade.Selection) ([]int, error) {
		asked = append(asked, sel)
		return []int{len(asked)}, nil
	}

	// Melbourne (30) is not in NSW (1).
	requested := cascade.Selection{StateID: 1, DioceseID: 30}
	got, err := shared.LoadList(context.Background(), httptest.NewRecorder(), d, "parishes", requested, false, shared.DepthDiocese, fetch)
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if got.Cascade.Selection != (cascade.Selection{StateID: 1}) {
		t.Errorf("selection = %+v", got.Cascade.Selection)
	}
	if len(asked) != 2 || asked[1] != got.Cascade.Selection {
		t.Errorf("fetches = %+v", asked)
	}
	if !reflect.DeepEqual(got.Records, []int{2}) {
		t.Errorf("records = %v, want the second fetch's", got.Records)
	}
}

func TestLoadList_FailureYieldsNothing(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.SeedDirectory()
	fb.Fail(http.MethodGet, "parishes", http.StatusInternalServerError, "boom")
	d := sharedtest.Deps(t, fb)

	got, err := shared.LoadList(context.Background(), httptest.NewRecorder(), d, "adorations", cascade.Selection{}, false, shared.DepthParish,
		func(ctx context.Context, sel cascade.Selection) ([]int, error) { return []int{1, 2}, nil })
	if err == nil {
		t.Fatal("expected error")
	}
	if got.Snap != nil || got.Records != nil {
		t.Errorf("partial result returned: %+v", got)
	}
}

func TestRequestedFilter_RestoreUsesSavedCookie(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	d := sharedtest.Deps(t, fb)

	rec := httptest.NewRecorder()
	if err := d.Filters.Save(rec, "crusades", cascade.Selection{StateID: 2, DioceseID: 20, ParishID: 200}); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/crusades?restore=1&state_id=1", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	sel, restore := d.RequestedFilter(req, "crusades", shared.DepthDiocese)
	if !restore || sel != (cascade.Selection{StateID: 2, DioceseID: 20}) {
		t.Errorf("RequestedFilter = %+v restore=%v", sel, restore)
	}

	sel, restore = d.RequestedFilter(httptest.NewRequest(http.MethodGet, "/crusades?state_id=1", nil), "crusades", shared.DepthParish)
	if restore || sel != (cascade.Selection{StateID: 1}) {
		t.Errorf("plain RequestedFilter = %+v restore=%v", sel, restore)
	}
}

func TestWriteFailed(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	d := sharedtest.Deps(t, fb)

	tests := []struct {
		name      string
		err       error
		wantDone  bool
		wantLevel notify.Level
	}{
		{"forbidden", &backend.APIError{Status: http.StatusForbidden}, false, notify.Warning},
		{"rejected", &backend.APIError{Status: http.StatusConflict, Message: "Duplicate"}, false, notify.Warning},
		{"server", &backend.APIError{Status: http.StatusBadGateway}, false, notify.Error},
		{"session", &backend.APIError{Status: http.StatusUnauthorized}, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewFormRequest("/states/1/edit", "", testutil.AdminUser())
			rec := httptest.NewRecorder()
			f, done := d.WriteFailed(rec, req, tt.err, "state", 1, shared.Updated)
			if done != tt.wantDone {
				t.Fatalf("done = %v, want %v", done, tt.wantDone)
			}
			if !done && f.Level != tt.wantLevel {
				t.Errorf("level = %q, want %q", f.Level, tt.wantLevel)
			}
			if done && rec.Code == http.StatusOK {
				t.Error("expired session not sent to login")
			}
		})
	}
}

func TestSaved_RedirectsInRestoreMode(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	d := sharedtest.Deps(t, fb)

	req := testutil.NewFormRequest("/states", "", testutil.AdminUser())
	rec := httptest.NewRecorder()
	d.Saved(rec, req, shared.Created, "state", 3, "Queensland", navigation.BackURLOptions{Fallback: "/states"}, "State created.")

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/states?restore=1" {
		t.Errorf("got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}
