// Combat resolution on fleet arrival. Deterministic: identical attacker,
// defender, and defense values always produce the identical outcome.
package sim

import (
	"fmt"
	"math"

	"github.com/talgya/starhold/internal/galaxy"
)

// resolveArrival handles a fleet reaching a system. Friendly systems just
// station the fleet; anything else is combat against the system's defense
// plus every fleet stationed there.
func (s *Session) resolveArrival(f *Fleet, sys *galaxy.System) {
	if sys.Owner == f.Owner {
		f.AtSystem = sys.ID
		sys.StationFleet(f.ID)
		return
	}

	defenders := append([]int(nil), sys.Stationed...)
	defPower := sys.Defense
	for _, id := range defenders {
		defPower += s.FleetIndex[id].Size
	}
	att := f.Size

	if att > defPower {
		// Attacker takes the system. Defenders are wiped; survivor
		// strength reflects the margin, never below 1.
		for _, id := range defenders {
			s.FleetIndex[id].Size = 0
		}
		sys.Stationed = nil
		prev := sys.Owner
		sys.Owner = f.Owner
		f.Size = survivorStrength(att, defPower)
		f.AtSystem = sys.ID
		sys.StationFleet(f.ID)

		s.logEvent("combat", fmt.Sprintf("%s captured %s (was %s): %d vs %d, %d survive",
			fleetLabel(f), sys.Name, prev, att, defPower, f.Size))
		return
	}

	// Defenders hold. The assault still chips the fortifications and
	// bleeds the garrison.
	if att >= sys.Defense {
		sys.Defense = 0
	} else {
		sys.Defense -= floorScale(att, 0.2)
	}
	f.Size = 0
	for _, id := range defenders {
		d := s.FleetIndex[id]
		d.Size -= floorScale(att, 0.3)
		if d.Size <= 0 {
			d.Size = 0
			sys.RemoveFleet(id)
		}
	}

	s.logEvent("combat", fmt.Sprintf("%s repelled at %s: %d vs %d",
		fleetLabel(f), sys.Name, att, defPower))
}

// survivorStrength is max(1, floor(att - def*0.6)).
func survivorStrength(att, def int) int {
	v := int(math.Floor(float64(att) - float64(def)*0.6))
	if v < 1 {
		v = 1
	}
	return v
}

func floorScale(n int, k float64) int {
	return int(math.Floor(float64(n) * k))
}
