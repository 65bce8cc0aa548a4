// AI policy: a single greedy heuristic on a fixed cadence. No planning,
// no learning — pick an owned system, maybe reinforce it, then push at the
// nearest reachable system it doesn't own.
package sim

import (
	"fmt"
	"sort"

	"github.com/talgya/starhold/internal/galaxy"
)

// aiCadence is the policy interval in simulated (unpaused) seconds.
const aiCadence = 3.0

// aiBuildChance gates fleet production per cycle in place of an economy.
const aiBuildChance = 0.5

func (s *Session) runAI(dt float64) {
	s.aiAccum += dt
	for s.aiAccum >= aiCadence {
		s.aiAccum -= aiCadence
		s.aiStep()
	}
}

// aiStep runs one policy cycle. Every random choice draws from the match
// stream, so AI behavior replays exactly for a fixed seed and tick inputs.
func (s *Session) aiStep() {
	g := s.Galaxy

	var owned []*galaxy.System
	for _, sys := range g.Systems {
		if sys.Owner == galaxy.FactionAI {
			owned = append(owned, sys)
		}
	}
	if len(owned) == 0 {
		return
	}

	src := owned[g.Rand.IntRange(0, len(owned)-1)]

	if g.Rand.Next() < aiBuildChance {
		f := s.spawnFleet(galaxy.FactionAI, src.ID, g.Rand.IntRange(1, 2))
		s.logEvent("ai", fmt.Sprintf("%s mustered at %s", fleetLabel(f), src.Name))
	}

	// Candidate targets in ascending distance from the source; first one
	// with a controlled-prefix route wins.
	type cand struct {
		sys  *galaxy.System
		dist float64
	}
	var cands []cand
	for _, sys := range g.Systems {
		if sys.Owner == galaxy.FactionAI {
			continue
		}
		cands = append(cands, cand{sys, galaxy.Dist(src.Pos, sys.Pos)})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].sys.ID < cands[j].sys.ID
	})

	for _, c := range cands {
		route := g.FindRoute(src.ID, c.sys.ID, galaxy.FactionAI)
		if len(route) < 2 {
			continue
		}
		f := s.stationedFleet(src.ID, galaxy.FactionAI)
		if f == nil {
			f = s.spawnFleet(galaxy.FactionAI, src.ID, g.Rand.IntRange(1, 2))
		}
		f.Route = route
		f.Leg = 0
		f.Progress = 0
		s.logEvent("ai", fmt.Sprintf("%s departs %s for %s", fleetLabel(f), src.Name, c.sys.Name))
		return
	}
}
