// Fleet state and per-tick movement along starlane routes.
package sim

import (
	"fmt"

	"github.com/talgya/starhold/internal/galaxy"
)

// DefaultFleetSpeed is the travel rate along starlanes in galaxy units
// per simulated second.
const DefaultFleetSpeed = 30.0

// Fleet is a mobile strength unit. A fleet is either stationed at a system
// (AtSystem >= 0) or in transit along Route; never both. A fleet whose
// strength reaches zero is purged before the next tick begins.
type Fleet struct {
	ID    int
	Owner galaxy.Faction
	Size  int
	Speed float64

	AtSystem int // system index while stationed, -1 in transit

	// Transit state: Route lists system indices, Leg the current segment
	// (Route[Leg] → Route[Leg+1]), Progress the fraction covered in [0,1).
	Route    []int
	Leg      int
	Progress float64
}

// InTransit reports whether the fleet is moving along a route.
func (f *Fleet) InTransit() bool {
	return len(f.Route) > 0 && f.AtSystem < 0
}

// advanceFleets moves every routed fleet, resolving arrivals, then purges
// anything destroyed. Iterates a snapshot copy: combat can shrink the fleet
// collection mid-walk.
func (s *Session) advanceFleets(dt float64) {
	active := make([]*Fleet, len(s.Fleets))
	copy(active, s.Fleets)

	for _, f := range active {
		if f.Size <= 0 || len(f.Route) == 0 {
			continue
		}
		s.advanceFleet(f, dt)
	}
	s.purgeDead()
}

// advanceFleet integrates one fleet's position over dt seconds. Progress
// crossing 1.0 advances the fleet one node and resolves the arrival there.
func (s *Session) advanceFleet(f *Fleet, dt float64) {
	g := s.Galaxy

	// Transit begins: leave the stationed list.
	if f.AtSystem >= 0 {
		g.Systems[f.AtSystem].RemoveFleet(f.ID)
		f.AtSystem = -1
	}

	if f.Leg+1 >= len(f.Route) {
		// Degenerate single-node route; nothing to fly.
		f.Route = nil
		f.Leg = 0
		return
	}

	a := g.Systems[f.Route[f.Leg]].Pos
	b := g.Systems[f.Route[f.Leg+1]].Pos
	seg := galaxy.Dist(a, b)
	if seg <= 0 {
		f.Progress = 1
	} else {
		f.Progress += f.Speed * dt / seg
	}
	if f.Progress < 1 {
		return
	}

	f.Leg++
	f.Progress = 0
	node := f.Route[f.Leg]
	sys := g.Systems[node]

	if f.Leg >= len(f.Route)-1 {
		// Final node: arrival decides stationed or destroyed.
		s.resolveArrival(f, sys)
		f.Route = nil
		f.Leg = 0
		return
	}

	// Intermediate waypoint. Friendly systems are passed through; anything
	// else means the territory flipped mid-flight and must be fought for.
	if sys.Owner != f.Owner {
		s.resolveArrival(f, sys)
		if f.AtSystem == node {
			// Won the waypoint and stationed there; the rest of the
			// route is abandoned.
			f.Route = nil
			f.Leg = 0
		}
	}
}

// purgeDead removes zero-strength fleets from the collection, the index,
// and any stationed list. Compacts in place over a stable walk so removals
// cannot skip entries.
func (s *Session) purgeDead() {
	kept := s.Fleets[:0]
	for _, f := range s.Fleets {
		if f.Size > 0 {
			kept = append(kept, f)
			continue
		}
		delete(s.FleetIndex, f.ID)
		if f.AtSystem >= 0 {
			s.Galaxy.Systems[f.AtSystem].RemoveFleet(f.ID)
		}
	}
	s.Fleets = kept
}

// spawnFleet creates a stationed fleet and registers it everywhere.
func (s *Session) spawnFleet(owner galaxy.Faction, systemID, size int) *Fleet {
	f := &Fleet{
		ID:       s.nextFleetID,
		Owner:    owner,
		Size:     size,
		Speed:    DefaultFleetSpeed,
		AtSystem: systemID,
	}
	s.nextFleetID++
	s.Fleets = append(s.Fleets, f)
	s.FleetIndex[f.ID] = f
	s.Galaxy.Systems[systemID].StationFleet(f.ID)
	return f
}

// stationedFleet returns the first fleet of the given faction at rest at a
// system, or nil. First-in-list keeps the choice deterministic.
func (s *Session) stationedFleet(systemID int, owner galaxy.Faction) *Fleet {
	for _, id := range s.Galaxy.Systems[systemID].Stationed {
		f := s.FleetIndex[id]
		if f != nil && f.Owner == owner {
			return f
		}
	}
	return nil
}

func fleetLabel(f *Fleet) string {
	return fmt.Sprintf("%s fleet #%d", f.Owner, f.ID)
}
