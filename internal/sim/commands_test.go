package sim

import (
	"testing"

	"github.com/talgya/starhold/internal/galaxy"
)

func TestIssueMoveHappyPath(t *testing.T) {
	g := lineGalaxy(galaxy.FactionPlayer, galaxy.FactionPlayer)
	s := testSession(g)
	f := s.spawnFleet(galaxy.FactionPlayer, 0, 2)

	ok, msg := s.IssueMove(f.ID, 1)
	if !ok {
		t.Fatalf("move rejected: %s", msg)
	}
	want := []int{0, 1}
	if len(f.Route) != 2 || f.Route[0] != want[0] || f.Route[1] != want[1] {
		t.Errorf("route = %v, want %v", f.Route, want)
	}
}

func TestIssueMoveRejections(t *testing.T) {
	g := lineGalaxy(galaxy.FactionPlayer, galaxy.FactionAI, galaxy.FactionPlayer)
	s := testSession(g)
	player := s.spawnFleet(galaxy.FactionPlayer, 0, 2)
	enemy := s.spawnFleet(galaxy.FactionAI, 1, 2)

	cases := []struct {
		name        string
		fleet, dest int
	}{
		{"unknown fleet", 999, 1},
		{"enemy fleet", enemy.ID, 0},
		{"unknown destination", player.ID, 99},
		{"same system", player.ID, 0},
		// System 2 needs a controlled prefix through the enemy-held
		// system 1, so no route exists.
		{"no controlled route", player.ID, 2},
	}
	for _, c := range cases {
		if ok, _ := s.IssueMove(c.fleet, c.dest); ok {
			t.Errorf("%s: move accepted", c.name)
		}
		if len(player.Route) != 0 {
			t.Errorf("%s: rejected move mutated the fleet: %v", c.name, player.Route)
		}
	}
}

func TestIssueMoveInTransitFleetRejected(t *testing.T) {
	g := lineGalaxy(galaxy.FactionPlayer, galaxy.FactionPlayer, galaxy.FactionPlayer)
	s := testSession(g)
	f := s.spawnFleet(galaxy.FactionPlayer, 0, 2)
	f.Route = []int{0, 1}
	s.advanceFleets(0.5) // underway but not arrived

	if ok, _ := s.IssueMove(f.ID, 2); ok {
		t.Errorf("reroute of an in-transit fleet accepted")
	}
}

func TestBuildFleetSpendsCredits(t *testing.T) {
	g := lineGalaxy(galaxy.FactionPlayer)
	s := testSession(g)
	s.Credits = 300

	ok, msg := s.BuildFleet(0, SizeClassSmall)
	if !ok {
		t.Fatalf("small build rejected: %s", msg)
	}
	if s.Credits != 200 {
		t.Errorf("credits = %v, want 200", s.Credits)
	}
	if len(s.Fleets) != 1 || s.Fleets[0].Size != 1 {
		t.Fatalf("fleets = %v, want one of strength 1", s.Fleets)
	}

	if ok, _ := s.BuildFleet(0, SizeClassLarge); ok {
		t.Errorf("large build accepted with 200 credits")
	}
	if s.Credits != 200 {
		t.Errorf("rejected build spent credits: %v", s.Credits)
	}
}

func TestBuildFleetLargeClass(t *testing.T) {
	g := lineGalaxy(galaxy.FactionPlayer)
	s := testSession(g)
	s.Credits = 250

	if ok, msg := s.BuildFleet(0, SizeClassLarge); !ok {
		t.Fatalf("large build rejected: %s", msg)
	}
	if s.Credits != 0 {
		t.Errorf("credits = %v, want 0", s.Credits)
	}
	if s.Fleets[0].Size != largeFleetStrength {
		t.Errorf("fleet strength = %d, want %d", s.Fleets[0].Size, largeFleetStrength)
	}
}

func TestBuildFleetRejections(t *testing.T) {
	g := lineGalaxy(galaxy.FactionPlayer, galaxy.FactionAI)
	s := testSession(g)
	s.Credits = 1000

	if ok, _ := s.BuildFleet(1, SizeClassSmall); ok {
		t.Errorf("build accepted at an enemy system")
	}
	if ok, _ := s.BuildFleet(5, SizeClassSmall); ok {
		t.Errorf("build accepted at a nonexistent system")
	}
	if ok, _ := s.BuildFleet(0, "medium"); ok {
		t.Errorf("build accepted for an unknown class")
	}
	if s.Credits != 1000 || len(s.Fleets) != 0 {
		t.Errorf("rejected builds mutated state: credits=%v fleets=%d", s.Credits, len(s.Fleets))
	}
}

func TestSetSpeedAllowedValues(t *testing.T) {
	s := testSession(lineGalaxy(galaxy.FactionPlayer))
	for _, m := range []float64{1, 2, 4} {
		if ok, msg := s.SetSpeed(m); !ok {
			t.Errorf("SetSpeed(%v) rejected: %s", m, msg)
		}
		if s.SpeedMult != m {
			t.Errorf("SpeedMult = %v, want %v", s.SpeedMult, m)
		}
	}
	for _, m := range []float64{0, 3, 8, -1} {
		if ok, _ := s.SetSpeed(m); ok {
			t.Errorf("SetSpeed(%v) accepted", m)
		}
	}
	if s.SpeedMult != 4 {
		t.Errorf("rejected speed changed the multiplier: %v", s.SpeedMult)
	}
}

func TestSpeedMultiplierScalesTick(t *testing.T) {
	g := lineGalaxy(galaxy.FactionPlayer)
	g.Systems[0].Production = 1.0
	s := testSession(g)
	s.SetSpeed(4)

	s.Tick(1.0)

	if s.Elapsed != 4.0 {
		t.Errorf("elapsed = %v, want 4.0 at 4x", s.Elapsed)
	}
	if s.Credits != 4.0 {
		t.Errorf("credits = %v, want 4.0 at 4x", s.Credits)
	}
}

func TestTogglePause(t *testing.T) {
	s := testSession(lineGalaxy(galaxy.FactionPlayer, galaxy.FactionAI))
	if ok, _ := s.TogglePause(); !ok || !s.Paused {
		t.Fatalf("pause not set")
	}

	before := s.Elapsed
	s.Tick(1.0)
	if s.Elapsed != before {
		t.Errorf("paused tick advanced time")
	}

	if ok, _ := s.TogglePause(); !ok || s.Paused {
		t.Fatalf("unpause not set")
	}
}

func TestSurrender(t *testing.T) {
	s := testSession(lineGalaxy(galaxy.FactionPlayer, galaxy.FactionAI))
	if ok, _ := s.Surrender(); !ok {
		t.Fatalf("surrender rejected")
	}
	if s.Outcome != OutcomeDefeat || !s.Paused {
		t.Errorf("outcome = %v paused = %v, want defeat and paused", s.Outcome, s.Paused)
	}
	if ok, _ := s.Surrender(); ok {
		t.Errorf("second surrender accepted")
	}
	if ok, _ := s.TogglePause(); ok {
		t.Errorf("unpause accepted after the match ended")
	}
}

func TestSelectSystem(t *testing.T) {
	s := testSession(lineGalaxy(galaxy.FactionPlayer, galaxy.FactionAI))
	if ok, _ := s.SelectSystem(1); !ok || s.Selected != 1 {
		t.Errorf("selected = %d, want 1", s.Selected)
	}
	if ok, _ := s.SelectSystem(7); ok {
		t.Errorf("selection of a nonexistent system accepted")
	}
	if s.Selected != 1 {
		t.Errorf("rejected selection changed state: %d", s.Selected)
	}
}

func TestCommandsRejectedAfterMatchEnds(t *testing.T) {
	g := lineGalaxy(galaxy.FactionPlayer, galaxy.FactionPlayer)
	s := testSession(g)
	s.Credits = 1000
	f := s.spawnFleet(galaxy.FactionPlayer, 0, 2)
	s.finish(OutcomeVictory, "test")

	if ok, _ := s.IssueMove(f.ID, 1); ok {
		t.Errorf("move accepted after victory")
	}
	if ok, _ := s.BuildFleet(0, SizeClassSmall); ok {
		t.Errorf("build accepted after victory")
	}
}
