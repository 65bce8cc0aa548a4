package sim

import (
	"math"
	"testing"

	"github.com/talgya/starhold/internal/galaxy"
)

func TestAccrueEconomyPlayerProductionOnly(t *testing.T) {
	g := lineGalaxy(galaxy.FactionPlayer, galaxy.FactionAI, galaxy.FactionNeutral)
	g.Systems[0].Production = 2.0
	g.Systems[1].Production = 5.0
	g.Systems[2].Production = 1.0
	s := testSession(g)

	s.accrueEconomy(1.5)

	if math.Abs(s.Credits-3.0) > 1e-9 {
		t.Errorf("credits = %v, want 3.0 (only the player system accrues)", s.Credits)
	}
}

func TestAccrueEconomyScalesWithOwnership(t *testing.T) {
	g := lineGalaxy(galaxy.FactionPlayer, galaxy.FactionNeutral)
	g.Systems[0].Production = 1.0
	g.Systems[1].Production = 2.5
	s := testSession(g)

	s.accrueEconomy(1.0)
	g.Systems[1].Owner = galaxy.FactionPlayer
	s.accrueEconomy(1.0)

	if math.Abs(s.Credits-4.5) > 1e-9 {
		t.Errorf("credits = %v, want 4.5", s.Credits)
	}
}
