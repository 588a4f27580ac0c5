package adorations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dalemusser/diocesehub/internal/app/features/shared/sharedtest"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/diocesehub/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	fb.SeedDirectory()
	fb.Seed("adorations",
		models.Adoration{ID: 1, StateID: 1, DioceseID: 10, ParishID: 100, Type: "Perpetual", LocationType: "Chapel", Location: "Blessed Sacrament Chapel"},
		models.Adoration{ID: 2, StateID: 1, DioceseID: 10, ParishID: 101, Type: "Regular", LocationType: "Church", Location: "Main church", Day: "Friday", Start: "19:00", End: "20:00"},
		models.Adoration{ID: 3, StateID: 2, DioceseID: 30, ParishID: 300, Type: "Regular", LocationType: "Church", Location: "Nave", Day: "Monday", Start: "09:00", End: "10:00"},
	)
	return NewHandler(sharedtest.Deps(t, fb)), fb
}

func form(kv ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}

func TestValidate(t *testing.T) {
	base := func(extra ...string) url.Values {
		v := form("state_id", "1", "diocese_id", "10", "parish_id", "100",
			"location_type", "Church", "adoration_location", "Nave")
		for i := 0; i+1 < len(extra); i += 2 {
			v.Set(extra[i], extra[i+1])
		}
		return v
	}

	tests := []struct {
		name      string
		values    url.Values
		wantField string
	}{
		{"regular complete", base("adoration_type", "Regular", "adoration_day", "Friday", "adoration_start", "19:00", "adoration_end", "20:00"), ""},
		{"regular lowercase type", base("adoration_type", "regular", "adoration_day", "Friday", "adoration_start", "19:00", "adoration_end", "20:00"), ""},
		{"regular missing day", base("adoration_type", "Regular", "adoration_start", "19:00", "adoration_end", "20:00"), "adoration_day"},
		{"regular bad time", base("adoration_type", "Regular", "adoration_day", "Friday", "adoration_start", "7pm", "adoration_end", "20:00"), "adoration_start"},
		{"regular end before start", base("adoration_type", "Regular", "adoration_day", "Friday", "adoration_start", "19:00", "adoration_end", "18:00"), "adoration_end"},
		{"perpetual needs no schedule", base("adoration_type", "Perpetual"), ""},
		{"perpetual ignores stale schedule", base("adoration_type", "Perpetual", "adoration_day", "Someday", "adoration_start", "xx"), ""},
		{"missing type", base(), "adoration_type"},
		{"unknown type", base("adoration_type", "Weekly"), "adoration_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := readInput(tt.values.Get).validate()
			if tt.wantField == "" {
				if res.HasErrors() {
					t.Errorf("unexpected errors: %v", res.Errors)
				}
				return
			}
			if _, ok := res.Fields()[tt.wantField]; !ok {
				t.Errorf("want error on %s, got %v", tt.wantField, res.Errors)
			}
		})
	}
}

func TestReadInput_PerpetualClearsSchedule(t *testing.T) {
	in := readInput(form("adoration_type", "perpetual", "adoration_day", "Friday", "adoration_start", "19:00", "adoration_end", "20:00").Get)
	if in.Type != models.AdorationPerpetual || in.Day != "" || in.Start != "" || in.End != "" {
		t.Errorf("input = %+v", in)
	}
}

func TestBuildList_ParishFilter(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?state_id=1", 2},
		{"?state_id=1&diocese_id=10&parish_id=101", 1},
		{"?state_id=1&diocese_id=10&parish_id=300", 2},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest(http.MethodGet, "/adorations"+tt.query, testutil.StandardUser())
			data, ok := h.buildList(context.Background(), httptest.NewRecorder(), req)
			if !ok {
				t.Fatal("buildList wrote a response")
			}
			if len(data.Table.Rows) != tt.want {
				t.Errorf("rows = %d, want %d", len(data.Table.Rows), tt.want)
			}
			if len(data.Table.Rows) > 0 && data.Table.RowURL(data.Table.Rows[0]) == "" {
				t.Error("schedule rows should be editable by every role")
			}
		})
	}
}

func TestHandleCreate_Perpetual(t *testing.T) {
	h, fb := newTestHandler(t)

	v := form("state_id", "2", "diocese_id", "20", "parish_id", "200",
		"adoration_type", "Perpetual", "location_type", "Chapel", "adoration_location", "Side chapel",
		"adoration_day", "Monday")
	req := testutil.NewFormRequest("/adorations", v.Encode(), testutil.StandardUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)

	rec.AssertRedirect(t, "/adorations?restore=1")
	call, _ := fb.LastCall(http.MethodPost)
	if _, sent := call.Body["adoration_day"]; sent {
		t.Errorf("perpetual adoration sent a day: %v", call.Body)
	}
}

func TestHandleCreate_ParishOutsideDiocese(t *testing.T) {
	h, fb := newTestHandler(t)

	v := form("state_id", "1", "diocese_id", "10", "parish_id", "300",
		"adoration_type", "Perpetual", "location_type", "Chapel", "adoration_location", "Side chapel")
	req := testutil.NewFormRequest("/adorations", v.Encode(), testutil.AdminUser())
	rec := testutil.NewRecorder()
	sharedtest.Serve(h.HandleCreate, rec, req)

	if fb.Count("adorations") != 3 {
		t.Errorf("adorations = %d, want 3", fb.Count("adorations"))
	}
}

func TestHandleEdit_SwitchToPerpetual(t *testing.T) {
	h, fb := newTestHandler(t)

	v := form("state_id", "1", "diocese_id", "10", "parish_id", "101",
		"adoration_type", "Perpetual", "location_type", "Church", "adoration_location", "Main church",
		"adoration_day", "Friday", "adoration_start", "19:00", "adoration_end", "20:00")
	req := testutil.NewFormRequest("/adorations/2/edit", v.Encode(), testutil.SupervisorUser())
	req = testutil.WithChiURLParam(req, "id", "2")
	rec := testutil.NewRecorder()
	h.HandleEdit(rec, req)

	rec.AssertRedirect(t, "/adorations?restore=1")
	var got models.Adoration
	if !fb.Find("adorations", 2, &got) || got.Type != models.AdorationPerpetual {
		t.Fatalf("adoration 2 = %+v", got)
	}
	call, _ := fb.LastCall(http.MethodPut)
	if _, sent := call.Body["adoration_start"]; sent {
		t.Errorf("update kept the schedule: %v", call.Body)
	}
}

func TestHandleDelete(t *testing.T) {
	h, fb := newTestHandler(t)

	req := testutil.NewFormRequest("/adorations/3/delete", "", testutil.StandardUser())
	req = testutil.WithChiURLParam(req, "id", "3")
	rec := testutil.NewRecorder()
	h.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/adorations?restore=1")
	if fb.Count("adorations") != 2 {
		t.Errorf("adorations = %d, want 2", fb.Count("adorations"))
	}
}
