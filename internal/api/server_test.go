package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/talgya/starhold/internal/galaxy"
	"github.com/talgya/starhold/internal/sim"
)

func testServer() *Server {
	return &Server{
		Session: sim.NewSession(galaxy.GenConfig{Seed: 7, Width: 1200, Height: 800}),
		Hub:     NewHub(),
	}
}

func TestHandleStatus(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["name"] != "Starhold" || body["outcome"] != "ongoing" {
		t.Errorf("body = %v", body)
	}
	if body["seed"].(float64) != 7 {
		t.Errorf("seed = %v, want 7", body["seed"])
	}
}

func TestHandleSnapshot(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleSnapshot(rec, httptest.NewRequest(http.MethodGet, "/api/v1/snapshot", nil))

	var snap sim.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(snap.Systems) == 0 || len(snap.Lanes) == 0 {
		t.Errorf("snapshot missing topology: %d systems %d lanes",
			len(snap.Systems), len(snap.Lanes))
	}
}

func TestHandleEventsLimit(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleEvents(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events?limit=1", nil))

	var body struct {
		Events []sim.Event `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Events) != 1 {
		t.Errorf("events = %d, want 1", len(body.Events))
	}
}

func TestHandleSpeedCommand(t *testing.T) {
	s := testServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/speed", strings.NewReader(`{"speed": 2}`))
	s.handleSpeed(rec, req)

	var body struct {
		Accepted bool   `json:"accepted"`
		Message  string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.Accepted {
		t.Errorf("speed 2 rejected: %s", body.Message)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/speed", strings.NewReader(`{"speed": 3}`))
	s.handleSpeed(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Accepted {
		t.Errorf("speed 3 accepted")
	}
}

func TestHandleMoveMalformedBody(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/move", strings.NewReader("{nope"))
	s.handleMove(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSurrenderEndsMatch(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleSurrender(rec, httptest.NewRequest(http.MethodPost, "/api/v1/surrender", nil))

	var body struct {
		Accepted bool `json:"accepted"`
	}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if !body.Accepted {
		t.Fatalf("surrender rejected")
	}
	if st := s.Session.SampleStats(); st.Outcome != "defeat" {
		t.Errorf("outcome = %s, want defeat", st.Outcome)
	}
}

func TestHandleNewGameReseedsMatch(t *testing.T) {
	s := testServer()
	before := s.Session.TakeSnapshot().MatchID

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/new", strings.NewReader(`{"seed": 99}`))
	s.handleNewGame(rec, req)

	snap := s.Session.TakeSnapshot()
	if snap.MatchID == before {
		t.Errorf("match id unchanged after new game")
	}
	if snap.Seed != 99 {
		t.Errorf("seed = %d, want 99", snap.Seed)
	}
}

func TestHandleHistoryDisabled(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleHistory(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 with history disabled", rec.Code)
	}
}

func TestPostOnly(t *testing.T) {
	called := false
	h := postOnly(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pause", nil))
	if rec.Code != http.StatusMethodNotAllowed || called {
		t.Errorf("GET passed the post gate: code %d", rec.Code)
	}

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/pause", nil))
	if !called {
		t.Errorf("POST did not reach the handler")
	}
}

func TestCORSMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := corsMiddleware([]string{"https://starhold.example.com"}, inner)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Origin", "https://starhold.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://starhold.example.com" {
		t.Errorf("configured origin not allowed")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("unknown origin allowed")
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/status", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight = %d, want 204", rec.Code)
	}
}

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatalf("burst allowance rejected")
	}
	if rl.Allow("10.0.0.1") {
		t.Errorf("third immediate request allowed past burst 2")
	}
	if !rl.Allow("10.0.0.2") {
		t.Errorf("separate IP shares a bucket")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:44121"
	if ip := clientIP(req); ip != "203.0.113.9" {
		t.Errorf("clientIP = %q", ip)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	if ip := clientIP(req); ip != "198.51.100.7" {
		t.Errorf("clientIP with XFF = %q", ip)
	}
}
