// Package api serves the match over HTTP: read-only state endpoints, the
// websocket snapshot stream, and the player command surface. Commands are
// rate limited per IP; everything else is open.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/starhold/internal/history"
	"github.com/talgya/starhold/internal/sim"
)

// Server serves the match state and accepts player commands.
type Server struct {
	Session *sim.Session
	Hub     *Hub
	History *history.DB // nil when telemetry is disabled

	Port         int
	CORSOrigins  []string
	CommandRate  float64
	CommandBurst int
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	limiter := NewRateLimiter(s.CommandRate, s.CommandBurst)
	command := func(h http.HandlerFunc) http.HandlerFunc {
		return RateLimitMiddleware(limiter, postOnly(h))
	}

	mux := http.NewServeMux()

	// Read-only observation endpoints.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/history", s.handleHistory)
	mux.HandleFunc("/api/v1/history/", s.handleHistoryDetail)

	// Live snapshot stream.
	mux.HandleFunc("/ws", s.Hub.ServeWs)

	// Player commands.
	mux.HandleFunc("/api/v1/select", command(s.handleSelect))
	mux.HandleFunc("/api/v1/move", command(s.handleMove))
	mux.HandleFunc("/api/v1/build", command(s.handleBuild))
	mux.HandleFunc("/api/v1/speed", command(s.handleSpeed))
	mux.HandleFunc("/api/v1/pause", command(s.handlePause))
	mux.HandleFunc("/api/v1/surrender", command(s.handleSurrender))
	mux.HandleFunc("/api/v1/new", command(s.handleNewGame))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "history", s.History != nil)

	go func() {
		handler := corsMiddleware(s.CORSOrigins, mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Localhost
// dev servers are always allowed; production origins come from config.
func corsMiddleware(extra []string, next http.Handler) http.Handler {
	allowed := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	for _, origin := range extra {
		allowed[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Session.SampleStats()
	snap := s.Session.TakeSnapshot()

	writeJSON(w, map[string]any{
		"name":            "Starhold",
		"match_id":        snap.MatchID,
		"seed":            snap.Seed,
		"sim_time":        st.SimTime,
		"paused":          snap.Paused,
		"speed":           snap.Speed,
		"outcome":         st.Outcome,
		"credits":         st.Credits,
		"fleets":          st.Fleets,
		"player_systems":  st.PlayerSystems,
		"ai_systems":      st.AISystems,
		"neutral_systems": st.NeutralSystems,
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Session.TakeSnapshot())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	writeJSON(w, map[string]any{"events": s.Session.RecentEvents(limit)})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}
	matches, err := s.History.RecentMatches(20)
	if err != nil {
		slog.Error("history query failed", "error", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"matches": matches})
}

// handleHistoryDetail serves GET /api/v1/history/:match_id.
func (s *Server) handleHistoryDetail(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}
	matchID := strings.TrimPrefix(r.URL.Path, "/api/v1/history/")
	if matchID == "" {
		http.Error(w, "match id required", http.StatusBadRequest)
		return
	}
	stats, err := s.History.LoadStats(matchID, 0)
	if err != nil {
		slog.Error("history query failed", "match_id", matchID, "error", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"match_id": matchID, "stats": stats})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		System int `json:"system"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	ok, msg := s.Session.SelectSystem(req.System)
	writeCommandResult(w, ok, msg)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fleet int `json:"fleet"`
		Dest  int `json:"dest"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	ok, msg := s.Session.IssueMove(req.Fleet, req.Dest)
	writeCommandResult(w, ok, msg)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req struct {
		System int    `json:"system"`
		Class  string `json:"class"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	ok, msg := s.Session.BuildFleet(req.System, req.Class)
	writeCommandResult(w, ok, msg)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	ok, msg := s.Session.SetSpeed(req.Speed)
	writeCommandResult(w, ok, msg)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	ok, msg := s.Session.TogglePause()
	writeCommandResult(w, ok, msg)
}

func (s *Server) handleSurrender(w http.ResponseWriter, r *http.Request) {
	ok, msg := s.Session.Surrender()
	writeCommandResult(w, ok, msg)
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed uint32 `json:"seed"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}
	s.Session.NewGame(seed)
	if s.History != nil {
		snap := s.Session.TakeSnapshot()
		if err := s.History.RecordMatch(snap.MatchID, snap.Seed); err != nil {
			slog.Error("record match failed", "error", err)
		}
	}
	writeCommandResult(w, true, fmt.Sprintf("new match started (seed %d)", seed))
}

// decodeBody parses a JSON request body, writing a 400 on failure. An
// empty body decodes to zero values.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeCommandResult(w http.ResponseWriter, ok bool, msg string) {
	if !ok && msg == "" {
		msg = "rejected"
	}
	writeJSON(w, map[string]any{"accepted": ok, "message": msg})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
