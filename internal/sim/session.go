// Package sim owns the mutable match state and the tick pipeline:
// economy accrual, fleet movement with combat on arrival, the AI policy,
// and the win-condition check. One Session per match; the tick driver and
// the API share it through its lock.
package sim

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/talgya/starhold/internal/galaxy"
)

// Outcome is the terminal state of a match.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

// String returns the outcome for snapshots and logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "ongoing"
	}
}

// Event is one entry in the append-only match log, stamped with simulated
// seconds. Command rejections, combat results, and match milestones all
// land here; nothing in the simulation raises errors in steady state.
type Event struct {
	SimTime  float64 `json:"sim_time"`
	Category string  `json:"category"`
	Message  string  `json:"message"`
}

const maxEvents = 1000

// Session is the aggregate match state: galaxy topology, fleets, the
// player's credit pool, elapsed simulated time, and pause/speed controls.
// All mutation funnels through Tick and the command methods, each of which
// holds the lock for its full duration — one call completes before the
// next begins.
type Session struct {
	mu sync.Mutex

	MatchID uuid.UUID
	Galaxy  *galaxy.Galaxy
	Nebula  *galaxy.Nebula

	Fleets     []*Fleet
	FleetIndex map[int]*Fleet

	Credits   float64
	Elapsed   float64
	Paused    bool
	SpeedMult float64
	Outcome   Outcome
	Selected  int // selected system index, -1 when none

	Events []Event

	// OnEvent, when set, observes every appended event. Called with the
	// session lock held: it must return quickly and must not call back
	// into the session.
	OnEvent func(Event)

	genCfg      galaxy.GenConfig
	nextFleetID int
	aiAccum     float64
}

// NewSession generates a galaxy from the config and builds a ready match.
func NewSession(cfg galaxy.GenConfig) *Session {
	s := &Session{genCfg: cfg}
	s.reset(cfg.Seed)
	return s
}

// NewGame tears down the match and regenerates in place from a new seed.
func (s *Session) NewGame(seed uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(seed)
}

func (s *Session) reset(seed uint32) {
	cfg := s.genCfg
	cfg.Seed = seed

	s.MatchID = uuid.New()
	s.Galaxy = galaxy.Generate(cfg)
	s.Nebula = galaxy.NewNebula(int64(seed), cfg.Width, cfg.Height, 40)

	s.Fleets = nil
	s.FleetIndex = make(map[int]*Fleet)
	s.nextFleetID = 1
	s.Credits = 0
	s.Elapsed = 0
	s.aiAccum = 0
	s.Paused = false
	s.SpeedMult = 1
	s.Outcome = OutcomeNone
	s.Selected = -1
	s.Events = nil

	s.spawnHomeFleets()

	slog.Info("match started", "match_id", s.MatchID, "seed", seed,
		"systems", len(s.Galaxy.Systems), "fleets", len(s.Fleets))
	s.logEvent("match", fmt.Sprintf("new match: %d systems across %d sectors",
		len(s.Galaxy.Systems), len(s.Galaxy.Sectors)))
}

// spawnHomeFleets stations 1–2 starting fleets at each faction's home.
// Draws continue the generation stream, so starting forces are part of the
// seed's identity.
func (s *Session) spawnHomeFleets() {
	g := s.Galaxy
	owners := [2]galaxy.Faction{galaxy.FactionPlayer, galaxy.FactionAI}
	for i, home := range g.Homes {
		count := g.Rand.IntRange(1, 2)
		for j := 0; j < count; j++ {
			s.spawnFleet(owners[i], home, g.Rand.IntRange(1, 2))
		}
	}
}

// Tick advances the simulation by dt wall seconds, scaled by the speed
// multiplier. A paused or finished match is a no-op. Pipeline order:
// economy → movement (combat on arrival) → AI → win check.
func (s *Session) Tick(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Paused || s.Outcome != OutcomeNone || dt <= 0 {
		return
	}
	dt *= s.SpeedMult
	s.Elapsed += dt

	s.accrueEconomy(dt)
	s.advanceFleets(dt)
	s.runAI(dt)
	s.purgeDead()
	s.checkOutcome()
}

// logEvent appends to the match log, trimming the oldest entries past the
// cap. Caller holds the lock.
func (s *Session) logEvent(category, message string) {
	e := Event{SimTime: s.Elapsed, Category: category, Message: message}
	s.Events = append(s.Events, e)
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
	if s.OnEvent != nil {
		s.OnEvent(e)
	}
}

// Stats is a compact state sample for telemetry.
type Stats struct {
	SimTime        float64
	PlayerSystems  int
	AISystems      int
	NeutralSystems int
	Fleets         int
	Credits        float64
	Outcome        string
}

// SampleStats returns the current ownership and fleet counts.
func (s *Session) SampleStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		SimTime: s.Elapsed,
		Fleets:  len(s.Fleets),
		Credits: s.Credits,
		Outcome: s.Outcome.String(),
	}
	for _, sys := range s.Galaxy.Systems {
		switch sys.Owner {
		case galaxy.FactionPlayer:
			st.PlayerSystems++
		case galaxy.FactionAI:
			st.AISystems++
		default:
			st.NeutralSystems++
		}
	}
	return st
}
