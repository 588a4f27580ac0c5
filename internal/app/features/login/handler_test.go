package login

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/diocesehub/internal/app/features/shared/sharedtest"
	"github.com/dalemusser/diocesehub/internal/app/system/ratelimit"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/diocesehub/internal/testutil"
)

func newTestHandler(t *testing.T, limiter *ratelimit.Login) (*Handler, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	fb.AddLogin("admin@example.com", "correct-horse", testutil.Token(time.Hour), models.User{
		ID: 5, FullName: "Ann Admin", Email: "admin@example.com", Roles: []models.Role{models.RoleAdmin}, Enabled: true,
	})
	return NewHandler(sharedtest.Deps(t, fb), limiter), fb
}

func postLogin(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func loginCalls(fb *testutil.FakeBackend) int {
	n := 0
	for _, c := range fb.Calls() {
		if c.Path == "/auth/login" {
			n++
		}
	}
	return n
}

func TestHandleLoginPost_Success(t *testing.T) {
	h, fb := newTestHandler(t, nil)

	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec, postLogin(url.Values{"email": {"admin@example.com"}, "password": {"correct-horse"}}))

	rec.AssertRedirect(t, "/")
	if rec.Header().Get("Set-Cookie") == "" {
		t.Error("no session cookie set")
	}
	call, ok := fb.LastCall(http.MethodPost)
	if !ok || call.Path != "/auth/login" || call.Body["email"] != "admin@example.com" {
		t.Errorf("login call = %+v", call)
	}
	if call.Token != "" {
		t.Error("login call carried a bearer token")
	}
}

func TestHandleLoginPost_ReturnURL(t *testing.T) {
	tests := []struct {
		name string
		ret  string
		want string
	}{
		{"local path", "/parishes?state_id=1", "/parishes?state_id=1"},
		{"empty", "", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t, nil)
			rec := testutil.NewRecorder()
			h.HandleLoginPost(rec, postLogin(url.Values{
				"email": {"admin@example.com"}, "password": {"correct-horse"}, "return": {tt.ret},
			}))
			rec.AssertRedirect(t, tt.want)
		})
	}
}

func TestHandleLoginPost_OffsiteReturnIgnored(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec, postLogin(url.Values{
		"email": {"admin@example.com"}, "password": {"correct-horse"}, "return": {"https://evil.example/phish"},
	}))
	if loc := rec.Header().Get("Location"); strings.Contains(loc, "evil.example") {
		t.Errorf("redirected offsite to %q", loc)
	}
}

func TestHandleLoginPost_WrongPassword(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rec := testutil.NewRecorder()
	sharedtest.Serve(h.HandleLoginPost, rec, postLogin(url.Values{"email": {"admin@example.com"}, "password": {"nope"}}))

	if rec.Header().Get("Location") != "" {
		t.Errorf("failed login redirected to %q", rec.Header().Get("Location"))
	}
	if rec.Header().Get("Set-Cookie") != "" {
		t.Error("failed login set a cookie")
	}
}

func TestHandleLoginPost_InvalidInputNotSent(t *testing.T) {
	h, fb := newTestHandler(t, nil)

	for _, form := range []url.Values{
		{"email": {""}, "password": {"x"}},
		{"email": {"not-an-email"}, "password": {"x"}},
		{"email": {"admin@example.com"}, "password": {""}},
	} {
		sharedtest.Serve(h.HandleLoginPost, testutil.NewRecorder(), postLogin(form))
	}
	if n := loginCalls(fb); n != 0 {
		t.Errorf("backend login calls = %d, want 0", n)
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	h, fb := newTestHandler(t, ratelimit.NewLogin(0, 2))

	for i := 0; i < 3; i++ {
		sharedtest.Serve(h.HandleLoginPost, testutil.NewRecorder(),
			postLogin(url.Values{"email": {"admin@example.com"}, "password": {"nope"}}))
	}
	if n := loginCalls(fb); n != 2 {
		t.Errorf("backend login calls = %d, want 2", n)
	}

	// Still limited with the right password.
	rec := testutil.NewRecorder()
	sharedtest.Serve(h.HandleLoginPost, rec, postLogin(url.Values{"email": {"admin@example.com"}, "password": {"correct-horse"}}))
	if rec.Header().Get("Location") != "" {
		t.Error("rate-limited login succeeded")
	}
}

func TestHandleLoginPost_ExpiredToken(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.AddLogin("old@example.com", "pw", testutil.Token(-time.Minute), models.User{ID: 9, Roles: []models.Role{models.RoleStandard}})
	h := NewHandler(sharedtest.Deps(t, fb), nil)

	rec := testutil.NewRecorder()
	sharedtest.Serve(h.HandleLoginPost, rec, postLogin(url.Values{"email": {"old@example.com"}, "password": {"pw"}}))
	if rec.Header().Get("Location") != "" {
		t.Error("login with an expired token succeeded")
	}
}

func TestHandleLoginPost_BackendDown(t *testing.T) {
	h, fb := newTestHandler(t, nil)
	fb.Fail(http.MethodPost, "auth", http.StatusBadGateway, "upstream down")

	rec := testutil.NewRecorder()
	sharedtest.Serve(h.HandleLoginPost, rec, postLogin(url.Values{"email": {"admin@example.com"}, "password": {"correct-horse"}}))
	if rec.Header().Get("Location") != "" {
		t.Error("login succeeded with the backend down")
	}
}

func TestServeLogin_SignedInRedirects(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/login?return=/crusades", testutil.StandardUser())
	rec := testutil.NewRecorder()
	h.ServeLogin(rec, req)
	rec.AssertRedirect(t, "/crusades")
}

func TestSessionUser(t *testing.T) {
	u := sessionUser(&models.User{ID: 3, Roles: []models.Role{models.RoleStandard}, Password: "secret"}, "", "s@x.org")
	if u.Email != "s@x.org" || u.FullName != "s@x.org" || u.Password != "" {
		t.Errorf("sessionUser = %+v", u)
	}

	// No usable user in the response: fall back to the token.
	u = sessionUser(&models.User{}, testutil.Token(time.Hour), "t@x.org")
	if u.Email != "t@x.org" {
		t.Errorf("token fallback = %+v", u)
	}
}
