package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/diocesehub/internal/app/system/backend"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// FilterParams are the search query parameters the fake honours.
var FilterParams = []string{"state_id", "diocese_id", "parish_id"}

// Call is one request the fake backend received.
type Call struct {
	Method string
	Path   string
	Query  string
	Token  string
	Body   map[string]any
}

type failure struct {
	status  int
	message string
}

type login struct {
	password string
	token    string
	user     models.User
}

// FakeBackend is an in-memory stand-in for the directory REST API. Records
// are kept as decoded JSON objects so any resource shape round-trips.
type FakeBackend struct {
	Server *httptest.Server

	// Envelope wraps every 2xx payload in {"success":true,"data":...}.
	Envelope bool

	mu       sync.Mutex
	data     map[string][]map[string]any
	nextID   int64
	failures map[string]failure
	logins   map[string]login
	calls    []Call
}

// NewFakeBackend starts a fake backend that is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	f := &FakeBackend{
		data:     map[string][]map[string]any{},
		nextID:   1000,
		failures: map[string]failure{},
		logins:   map[string]login{},
	}
	r := chi.NewRouter()
	r.Post("/auth/login", f.handleLogin)
	r.Get("/{resource}", f.handleList)
	r.Post("/{resource}", f.handleCreate)
	r.Get("/{resource}/{id}", f.handleGet)
	r.Put("/{resource}/{id}", f.handleUpdate)
	r.Delete("/{resource}/{id}", f.handleDelete)
	f.Server = httptest.NewServer(f.record(r))
	t.Cleanup(f.Server.Close)
	return f
}

// Client returns a backend client pointed at the fake.
func (f *FakeBackend) Client(t *testing.T) *backend.Client {
	t.Helper()
	c, err := backend.New(f.Server.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	return c
}

// Seed stores recs under resource. Records without an id get one.
func (f *FakeBackend) Seed(resource string, recs ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range recs {
		m := toMap(rec)
		if id, _ := idOf(m); id == 0 {
			f.nextID++
			m["id"] = json.Number(strconv.FormatInt(f.nextID, 10))
		}
		f.data[resource] = append(f.data[resource], m)
	}
}

// Fail makes every request with method to resource answer status with an
// error envelope carrying message. A status of 0 clears the failure.
func (f *FakeBackend) Fail(method, resource string, status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := method + " " + resource
	if status == 0 {
		delete(f.failures, key)
		return
	}
	f.failures[key] = failure{status: status, message: message}
}

// AddLogin registers credentials for POST /auth/login.
func (f *FakeBackend) AddLogin(email, password, token string, user models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins[email] = login{password: password, token: token, user: user}
}

// Count returns how many records resource holds.
func (f *FakeBackend) Count(resource string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data[resource])
}

// Find decodes the record with id into out and reports whether it exists.
func (f *FakeBackend) Find(resource string, id int64, out any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.data[resource] {
		if got, _ := idOf(m); got == id {
			b, _ := json.Marshal(m)
			return json.Unmarshal(b, out) == nil
		}
	}
	return false
}

// Calls returns the requests received so far.
func (f *FakeBackend) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// LastCall returns the most recent request with method, if any.
func (f *FakeBackend) LastCall(method string) (Call, bool) {
	calls := f.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method {
			return calls[i], true
		}
	}
	return Call{}, false
}

// Directory is the reference data SeedDirectory loads.
type Directory struct {
	States   []models.State
	Dioceses []models.Diocese
	Parishes []models.Parish
}

// SeedDirectory loads two states, three dioceses and four parishes.
// Diocese 20 spans both states.
func (f *FakeBackend) SeedDirectory() Directory {
	d := Directory{
		States: []models.State{
			{ID: 1, Name: "New South Wales", Abbreviation: "NSW"},
			{ID: 2, Name: "Victoria", Abbreviation: "VIC"},
		},
		Dioceses: []models.Diocese{
			{ID: 10, Name: "Sydney", City: "Sydney", AssociatedStateAbbreviations: []string{"NSW"}, Website: "sydneycatholic.org"},
			{ID: 20, Name: "Wagga Wagga", City: "Wagga Wagga", AssociatedStateAbbreviations: []string{"NSW", "VIC"}},
			{ID: 30, Name: "Melbourne", City: "Melbourne", AssociatedStateAbbreviations: []string{"VIC"}},
		},
		Parishes: []models.Parish{
			{ID: 100, DioceseID: 10, StateID: 1, Name: "St Mary's Cathedral", City: "Sydney"},
			{ID: 101, DioceseID: 10, StateID: 1, Name: "St Patrick's", City: "Sydney"},
			{ID: 200, DioceseID: 20, StateID: 2, Name: "Sacred Heart", City: "Albury"},
			{ID: 300, DioceseID: 30, StateID: 2, Name: "St Francis", City: "Melbourne"},
		},
	}
	for _, s := range d.States {
		f.Seed("states", s)
	}
	for _, x := range d.Dioceses {
		f.Seed("dioceses", x)
	}
	for _, p := range d.Parishes {
		f.Seed("parishes", p)
	}
	return d
}

/*──────────────────────────── handlers ────────────────────────────*/

func (f *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if h := r.Header.Get("Authorization"); len(h) > 7 {
			c.Token = h[7:]
		}
		if r.Body != nil && r.ContentLength != 0 {
			var buf bytes.Buffer
			_, _ = buf.ReadFrom(r.Body)
			_ = r.Body.Close()
			c.Body = decodeMap(buf.Bytes())
			r.Body = http.NoBody
			if c.Body != nil {
				r = r.WithContext(context.WithValue(r.Context(), bodyKey{}, c.Body))
			}
		}
		f.mu.Lock()
		f.calls = append(f.calls, c)
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

type bodyKey struct{}

func requestBody(r *http.Request) map[string]any {
	m, _ := r.Context().Value(bodyKey{}).(map[string]any)
	return m
}

func (f *FakeBackend) failed(w http.ResponseWriter, method, resource string) bool {
	f.mu.Lock()
	fl, ok := f.failures[method+" "+resource]
	f.mu.Unlock()
	if !ok {
		return false
	}
	writeJSON(w, fl.status, map[string]any{"success": false, "status": fl.status, "message": fl.message})
	return true
}

func (f *FakeBackend) reply(w http.ResponseWriter, status int, payload any) {
	if f.Envelope {
		payload = map[string]any{"success": true, "status": status, "data": payload}
	}
	writeJSON(w, status, payload)
}

func (f *FakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	if f.failed(w, r.Method, "auth") {
		return
	}
	body := requestBody(r)
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)

	f.mu.Lock()
	l, ok := f.logins[email]
	f.mu.Unlock()
	if !ok || l.password != password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid email or password"})
		return
	}
	f.reply(w, http.StatusOK, map[string]any{"token": l.token, "user": l.user})
}

func (f *FakeBackend) handleList(w http.ResponseWriter, r *http.Request) {
	res := chi.URLParam(r, "resource")
	if f.failed(w, r.Method, res) {
		return
	}
	q := r.URL.Query()
	f.mu.Lock()
	out := make([]map[string]any, 0, len(f.data[res]))
	for _, m := range f.data[res] {
		if matches(m, q.Get) {
			out = append(out, m)
		}
	}
	f.mu.Unlock()
	f.reply(w, http.StatusOK, out)
}

func matches(m map[string]any, get func(string) string) bool {
	for _, p := range FilterParams {
		want := get(p)
		if want == "" {
			continue
		}
		if v, ok := m[p]; !ok || jsonString(v) != want {
			return false
		}
	}
	return true
}

func (f *FakeBackend) handleGet(w http.ResponseWriter, r *http.Request) {
	res := chi.URLParam(r, "resource")
	if f.failed(w, r.Method, res) {
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	f.mu.Lock()
	i := f.index(res, id)
	var m map[string]any
	if i >= 0 {
		m = f.data[res][i]
	}
	f.mu.Unlock()
	if m == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
		return
	}
	f.reply(w, http.StatusOK, m)
}

func (f *FakeBackend) handleCreate(w http.ResponseWriter, r *http.Request) {
	res := chi.URLParam(r, "resource")
	if f.failed(w, r.Method, res) {
		return
	}
	m := requestBody(r)
	if m == nil {
		m = map[string]any{}
	}
	delete(m, "password")
	f.mu.Lock()
	f.nextID++
	m["id"] = json.Number(strconv.FormatInt(f.nextID, 10))
	f.data[res] = append(f.data[res], m)
	f.mu.Unlock()
	f.reply(w, http.StatusCreated, m)
}

func (f *FakeBackend) handleUpdate(w http.ResponseWriter, r *http.Request) {
	res := chi.URLParam(r, "resource")
	if f.failed(w, r.Method, res) {
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	m := requestBody(r)
	if m == nil {
		m = map[string]any{}
	}
	delete(m, "password")
	m["id"] = json.Number(strconv.FormatInt(id, 10))

	f.mu.Lock()
	i := f.index(res, id)
	if i >= 0 {
		f.data[res][i] = m
	}
	f.mu.Unlock()
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
		return
	}
	f.reply(w, http.StatusOK, m)
}

func (f *FakeBackend) handleDelete(w http.ResponseWriter, r *http.Request) {
	res := chi.URLParam(r, "resource")
	if f.failed(w, r.Method, res) {
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	f.mu.Lock()
	i := f.index(res, id)
	if i >= 0 {
		f.data[res] = append(f.data[res][:i], f.data[res][i+1:]...)
	}
	f.mu.Unlock()
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// index must be called with f.mu held.
func (f *FakeBackend) index(res string, id int64) int {
	for i, m := range f.data[res] {
		if got, _ := idOf(m); got == id {
			return i
		}
	}
	return -1
}

/*──────────────────────────── helpers ─────────────────────────────*/

func toMap(rec any) map[string]any {
	b, err := json.Marshal(rec)
	if err != nil {
		panic(err)
	}
	return decodeMap(b)
}

func decodeMap(b []byte) map[string]any {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil
	}
	return m
}

func idOf(m map[string]any) (int64, bool) {
	n, ok := m["id"].(json.Number)
	if !ok {
		return 0, false
	}
	id, err := n.Int64()
	return id, err == nil
}

func jsonString(v any) string {
	switch x := v.(type) {
	case json.Number:
		return x.String()
	case string:
		return x
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
