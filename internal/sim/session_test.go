package sim

import (
	"testing"

	"github.com/talgya/starhold/internal/galaxy"
)

func newTestMatch(seed uint32) *Session {
	return NewSession(galaxy.GenConfig{Seed: seed, Width: 1200, Height: 800})
}

func TestSessionDeterministicReplay(t *testing.T) {
	// Two sessions from the same seed fed identical tick deltas stay in
	// lockstep: stats, RNG state, and every fleet field agree.
	a := newTestMatch(777)
	b := newTestMatch(777)

	for i := 0; i < 600; i++ {
		a.Tick(0.1)
		b.Tick(0.1)
	}

	sa, sb := a.SampleStats(), b.SampleStats()
	if sa != sb {
		t.Fatalf("stats diverged:\n a=%+v\n b=%+v", sa, sb)
	}
	if a.Galaxy.Rand.State != b.Galaxy.Rand.State {
		t.Errorf("rng state diverged: %d vs %d", a.Galaxy.Rand.State, b.Galaxy.Rand.State)
	}
	if len(a.Fleets) != len(b.Fleets) {
		t.Fatalf("fleet counts diverged: %d vs %d", len(a.Fleets), len(b.Fleets))
	}
	for i := range a.Fleets {
		fa, fb := a.Fleets[i], b.Fleets[i]
		if fa.ID != fb.ID || fa.Owner != fb.Owner || fa.Size != fb.Size ||
			fa.AtSystem != fb.AtSystem || fa.Leg != fb.Leg || fa.Progress != fb.Progress {
			t.Errorf("fleet %d diverged:\n a=%+v\n b=%+v", i, fa, fb)
		}
	}
}

func TestSessionSeedsDiffer(t *testing.T) {
	a := newTestMatch(1)
	b := newTestMatch(2)
	if len(a.Galaxy.Systems) == len(b.Galaxy.Systems) {
		// Equal counts can legitimately collide; positions should not.
		if a.Galaxy.Systems[0].Pos == b.Galaxy.Systems[0].Pos {
			t.Errorf("different seeds produced the same first system position")
		}
	}
}

func TestSessionStartingForces(t *testing.T) {
	s := newTestMatch(42)
	var player, ai int
	for _, f := range s.Fleets {
		if f.AtSystem < 0 {
			t.Errorf("starting fleet %d not stationed", f.ID)
		}
		switch f.Owner {
		case galaxy.FactionPlayer:
			player++
			if f.AtSystem != s.Galaxy.Homes[0] {
				t.Errorf("player fleet %d stationed at %d, want home %d",
					f.ID, f.AtSystem, s.Galaxy.Homes[0])
			}
		case galaxy.FactionAI:
			ai++
			if f.AtSystem != s.Galaxy.Homes[1] {
				t.Errorf("enemy fleet %d stationed at %d, want home %d",
					f.ID, f.AtSystem, s.Galaxy.Homes[1])
			}
		}
	}
	if player < 1 || player > 2 || ai < 1 || ai > 2 {
		t.Errorf("starting forces = %d player / %d enemy, want 1-2 each", player, ai)
	}
	if s.Credits != 0 {
		t.Errorf("starting credits = %v, want 0", s.Credits)
	}
}

func TestNewGameResetsInPlace(t *testing.T) {
	s := newTestMatch(42)
	oldMatch := s.MatchID
	s.Credits = 500
	s.Tick(5)

	s.NewGame(99)

	if s.MatchID == oldMatch {
		t.Errorf("match id not regenerated")
	}
	if s.Galaxy.Seed != 99 {
		t.Errorf("galaxy seed = %d, want 99", s.Galaxy.Seed)
	}
	if s.Credits != 0 || s.Elapsed != 0 || s.Outcome != OutcomeNone {
		t.Errorf("state not reset: credits=%v elapsed=%v outcome=%v",
			s.Credits, s.Elapsed, s.Outcome)
	}

	// A fresh session from the same seed is identical.
	fresh := newTestMatch(99)
	if len(fresh.Fleets) != len(s.Fleets) || fresh.Galaxy.Rand.State != s.Galaxy.Rand.State {
		t.Errorf("reset diverges from a fresh session on the same seed")
	}
}

func TestEventLogTrimsAtCap(t *testing.T) {
	s := testSession(lineGalaxy(galaxy.FactionPlayer))
	for i := 0; i < maxEvents+50; i++ {
		s.logEvent("test", "entry")
	}
	if len(s.Events) != maxEvents {
		t.Errorf("event log length = %d, want %d", len(s.Events), maxEvents)
	}
}

func TestOnEventObserver(t *testing.T) {
	s := testSession(lineGalaxy(galaxy.FactionPlayer))
	var seen []Event
	s.OnEvent = func(e Event) { seen = append(seen, e) }

	s.logEvent("test", "one")
	s.logEvent("test", "two")

	if len(seen) != 2 || seen[1].Message != "two" {
		t.Errorf("observer saw %v", seen)
	}
}

func TestTickIgnoresNonPositiveDelta(t *testing.T) {
	s := newTestMatch(42)
	before := s.SampleStats()
	s.Tick(0)
	s.Tick(-1)
	if after := s.SampleStats(); after != before {
		t.Errorf("non-positive delta mutated state: %+v vs %+v", after, before)
	}
}
