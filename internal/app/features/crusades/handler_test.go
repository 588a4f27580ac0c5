package crusades

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/diocesehub/internal/app/features/shared/sharedtest"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/diocesehub/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	fb.SeedDirectory()
	fb.Seed("crusades",
		models.Crusade{ID: 1, StateID: 1, DioceseID: 10, ParishID: 100, CrusadeStart: "15:00", CrusadeEnd: "16:00", ContactName: "Anne", Comments: "First Saturday"},
		models.Crusade{ID: 2, StateID: 2, DioceseID: 20, ParishID: 200, CrusadeStart: "10:00", ContactName: "Ben"},
	)
	return NewHandler(sharedtest.Deps(t, fb)), fb
}

func valid() url.Values {
	return url.Values{
		"state_id":         {"2"},
		"diocese_id":       {"30"},
		"parish_id":        {"300"},
		"confession_start": {"14:00"},
		"confession_end":   {"14:45"},
		"crusade_start":    {"15:00"},
		"crusade_end":      {"16:00"},
		"contact_name":     {"Clare"},
		"contact_email":    {"clare@example.org"},
		"comments":         {"Bring <b>rosaries</b>"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		set       map[string]string
		wantField string
	}{
		{"valid", nil, ""},
		{"missing crusade start", map[string]string{"crusade_start": ""}, "crusade_start"},
		{"bad mass time", map[string]string{"mass_start": "25:00"}, "mass_start"},
		{"confession ends first", map[string]string{"confession_end": "13:00"}, "confession_end"},
		{"bad email", map[string]string{"contact_email": "clare"}, "contact_email"},
		{"long comments", map[string]string{"comments": strings.Repeat("x", 2001)}, "comments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := valid()
			for k, s := range tt.set {
				v.Set(k, s)
			}
			res := readInput(v.Get).validate()
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

func TestBuildList_SanitisesComments(t *testing.T) {
	h, fb := newTestHandler(t)
	fb.Seed("crusades", models.Crusade{ID: 3, StateID: 1, DioceseID: 10, ParishID: 101, CrusadeStart: "09:00", Comments: "<script>alert(1)</script>ok"})

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/crusades?state_id=1&diocese_id=10&parish_id=101", testutil.StandardUser())
	data, ok := h.buildList(context.Background(), httptest.NewRecorder(), req)
	if !ok {
		t.Fatal("buildList wrote a response")
	}
	if len(data.Table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(data.Table.Rows))
	}
	if got := data.Table.Cell(data.Table.Rows[0], "comments"); strings.Contains(string(got), "<script>") {
		t.Errorf("comments not sanitised: %s", got)
	}
}

func TestHandleCreate_Success(t *testing.T) {
	h, fb := newTestHandler(t)

	req := testutil.NewFormRequest("/crusades", valid().Encode(), testutil.StandardUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)

	rec.AssertRedirect(t, "/crusades?restore=1")
	if fb.Count("crusades") != 3 {
		t.Errorf("crusades = %d, want 3", fb.Count("crusades"))
	}
}

func TestHandleCreate_BackendUnavailable(t *testing.T) {
	h, fb := newTestHandler(t)
	fb.Fail(http.MethodPost, "crusades", http.StatusServiceUnavailable, "down")

	req := testutil.NewFormRequest("/crusades", valid().Encode(), testutil.StandardUser())
	rec := testutil.NewRecorder()
	sharedtest.Serve(h.HandleCreate, rec, req)

	if loc := rec.Header().Get("Location"); loc != "" {
		t.Errorf("failed create redirected to %q", loc)
	}
}

func TestHandleEdit_Success(t *testing.T) {
	h, fb := newTestHandler(t)

	v := valid()
	v.Set("state_id", "1")
	v.Set("diocese_id", "10")
	v.Set("parish_id", "100")
	v.Set("contact_name", "Anne Marie")
	req := testutil.NewFormRequest("/crusades/1/edit", v.Encode(), testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "1")
	rec := testutil.NewRecorder()
	h.HandleEdit(rec, req)

	rec.AssertRedirect(t, "/crusades?restore=1")
	var got models.Crusade
	if !fb.Find("crusades", 1, &got) || got.ContactName != "Anne Marie" {
		t.Errorf("crusade 1 = %+v", got)
	}
}

func TestTimeFields_CarryErrors(t *testing.T) {
	var f formData
	f.MassStart = "25:00"
	f.SetFieldErrors(map[string]string{"mass_start": "Mass start must be a time like 09:30."})
	for _, tf := range f.TimeFields() {
		if tf.Name == "mass_start" && (tf.Value != "25:00" || tf.Error == "") {
			t.Errorf("mass_start field = %+v", tf)
		}
	}
}
