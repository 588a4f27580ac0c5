package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/diocesehub/internal/app/system/backend"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := backend.New(srv.URL+"/api", 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("backend.New failed: %v", err)
	}
	return c
}

func TestList_BareArrayAndEnvelopeNormalized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/states":
			_, _ = io.WriteString(w, `[{"id":1,"name":"New South Wales","abbreviation":"NSW"}]`)
		case "/api/dioceses":
			_, _ = io.WriteString(w, `{"success":true,"status":200,"message":"ok","data":[{"id":7,"name":"Sydney","associated_state_abbreviations":["NSW"]}]}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	states, err := c.States.List(ctx)
	if err != nil {
		t.Fatalf("States.List failed: %v", err)
	}
	if len(states) != 1 || states[0].Abbreviation != "NSW" {
		t.Errorf("states: got %+v", states)
	}

	dioceses, err := c.Dioceses.List(ctx)
	if err != nil {
		t.Fatalf("Dioceses.List failed: %v", err)
	}
	if len(dioceses) != 1 || dioceses[0].Name != "Sydney" {
		t.Errorf("dioceses: got %+v", dioceses)
	}
	if !dioceses[0].InState("NSW") {
		t.Error("expected diocese to be associated with NSW")
	}
}

func TestList_NullDataYieldsEmptySlice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":null}`)
	})

	parishes, err := c.Parishes.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if parishes == nil || len(parishes) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", parishes)
	}
}

func TestList_EnvelopeFailureIsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":false,"status":422,"message":"bad filter","data":null}`)
	})

	_, err := c.Parishes.List(context.Background())
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != 422 || apiErr.Message != "bad filter" {
		t.Errorf("APIError: got %+v", apiErr)
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, backend.ErrUnauthorized},
		{http.StatusForbidden, backend.ErrForbidden},
		{http.StatusNotFound, backend.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"message":"nope"}`)
			})
			_, err := c.States.List(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if got := backend.Message(err, "default"); got != "nope" {
				t.Errorf("Message: got %q, want %q", got, "nope")
			}
		})
	}
}

func TestServerErrorIsAPIErrorWithoutSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.States.List(context.Background())
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 500 {
		t.Fatalf("expected 500 APIError, got %v", err)
	}
	if errors.Is(err, backend.ErrForbidden) || errors.Is(err, backend.ErrUnauthorized) {
		t.Error("500 must not match auth sentinels")
	}
	if got := backend.Message(err, "fallback"); got != "fallback" {
		t.Errorf("Message: got %q, want fallback", got)
	}
}

func TestBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get(backend.RequestIDHeader)
		_, _ = io.WriteString(w, `[]`)
	})

	ctx := backend.WithToken(context.Background(), "tok-123")
	if _, err := c.States.List(ctx); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization: got %q", gotAuth)
	}
	if gotReqID == "" {
		t.Error("expected a request id header")
	}
}

func TestSearch_QueryParameters(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[]`)
	})

	_, err := c.Adorations.Search(context.Background(), backend.Filter{StateID: 1, ParishID: 9})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery != "parish_id=9&state_id=1" {
		t.Errorf("query: got %q", gotQuery)
	}
}

func TestCreateThenList_RoundTrip(t *testing.T) {
	var stored []models.Crusade
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var in models.Crusade
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			in.ID = int64(len(stored) + 100)
			stored = append(stored, in)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": in})
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(stored)
		}
	})
	ctx := context.Background()

	in := models.Crusade{StateID: 1, DioceseID: 2, ParishID: 3, MassStart: "10:00", ContactName: "Fr. Tom", Comments: "bring rosary"}
	created, err := c.Crusades.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected server-assigned id")
	}

	list, err := c.Crusades.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 crusade, got %d", len(list))
	}
	got := list[0]
	got.ID = 0
	if got != in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, in)
	}
}

func TestUpdateAndDelete_Paths(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = io.WriteString(w, `{"id":5,"name":"Tasmania","abbreviation":"TAS"}`)
	})
	ctx := context.Background()

	st, err := c.States.Update(ctx, 5, models.State{ID: 5, Name: "Tasmania", Abbreviation: "TAS"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if st.Abbreviation != "TAS" {
		t.Errorf("Update result: got %+v", st)
	}
	if err := c.States.Delete(ctx, 5); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	want := []string{"PUT /api/states/5", "DELETE /api/states/5"}
	if len(calls) != len(want) {
		t.Fatalf("calls: got %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: got %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestBareRecordWithStatusFieldIsNotEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":3,"full_name":"Ann","status":"x","enabled":true}`)
	})
	u, err := c.Users.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if u.ID != 3 || u.FullName != "Ann" {
		t.Errorf("user: got %+v", u)
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		err  error
	}{
		{"bare token", `{"token":"abc"}`, "abc", nil},
		{"enveloped access token", `{"success":true,"data":{"access_token":"xyz","user":{"id":1,"full_name":"Ann","roles":["ADMIN"]}}}`, "xyz", nil},
		{"no token", `{"success":true,"data":{}}`, "", backend.ErrNoToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
					http.NotFound(w, r)
					return
				}
				_, _ = io.WriteString(w, tt.body)
			})
			res, err := c.Auth.Login(context.Background(), "ann@example.com", "pw")
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if res.Token != tt.want {
				t.Errorf("token: got %q, want %q", res.Token, tt.want)
			}
		})
	}
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "ftp://example.com", "http://"} {
		if _, err := backend.New(raw, 0, nil); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead || r.URL.Path != "/api/states" {
			t.Errorf("ping request = %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping with 401 = %v, want nil", err)
	}

	dead, err := backend.New("http://127.0.0.1:1", time.Second, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := dead.Ping(context.Background()); err == nil {
		t.Error("Ping to a closed port succeeded")
	}
}
