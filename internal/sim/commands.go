// Player command surface. Every failure mode here is a recoverable policy
// rejection surfaced as a log event, never an error: the command reports
// whether it was accepted and why not.
package sim

import (
	"fmt"

	"github.com/talgya/starhold/internal/galaxy"
)

// Fleet build classes purchasable by the player.
const (
	SizeClassSmall = "small"
	SizeClassLarge = "large"

	smallFleetCost     = 100.0
	smallFleetStrength = 1
	largeFleetCost     = 250.0
	largeFleetStrength = 3
)

// SelectSystem records the player's current selection for the renderer.
func (s *Session) SelectSystem(id int) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 || id >= len(s.Galaxy.Systems) {
		return false, "no such system"
	}
	s.Selected = id
	return true, ""
}

// IssueMove routes a stationed player fleet toward a destination system.
// On failure the fleet is left unchanged.
func (s *Session) IssueMove(fleetID, destID int) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Outcome != OutcomeNone {
		return s.reject("the match is over")
	}
	f := s.FleetIndex[fleetID]
	if f == nil {
		return s.reject(fmt.Sprintf("fleet #%d does not exist", fleetID))
	}
	if f.Owner != galaxy.FactionPlayer {
		return s.reject(fmt.Sprintf("fleet #%d is not yours", fleetID))
	}
	if f.AtSystem < 0 {
		return s.reject(fmt.Sprintf("fleet #%d is already underway", fleetID))
	}
	if destID < 0 || destID >= len(s.Galaxy.Systems) {
		return s.reject("no such destination")
	}
	if destID == f.AtSystem {
		return s.reject("fleet is already there")
	}

	route := s.Galaxy.FindRoute(f.AtSystem, destID, f.Owner)
	if len(route) < 2 {
		return s.reject(fmt.Sprintf("no controlled route to %s", s.Galaxy.Systems[destID].Name))
	}

	f.Route = route
	f.Leg = 0
	f.Progress = 0
	s.logEvent("order", fmt.Sprintf("%s departs for %s",
		fleetLabel(f), s.Galaxy.Systems[destID].Name))
	return true, ""
}

// BuildFleet spends credits to station a new player fleet at an owned
// system. sizeClass is "small" (100 credits, strength 1) or "large"
// (250 credits, strength 3).
func (s *Session) BuildFleet(systemID int, sizeClass string) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Outcome != OutcomeNone {
		return s.reject("the match is over")
	}
	if systemID < 0 || systemID >= len(s.Galaxy.Systems) {
		return s.reject("no such system")
	}

	var cost float64
	var strength int
	switch sizeClass {
	case SizeClassSmall:
		cost, strength = smallFleetCost, smallFleetStrength
	case SizeClassLarge:
		cost, strength = largeFleetCost, largeFleetStrength
	default:
		return s.reject(fmt.Sprintf("unknown fleet class %q", sizeClass))
	}

	sys := s.Galaxy.Systems[systemID]
	if sys.Owner != galaxy.FactionPlayer {
		return s.reject(fmt.Sprintf("%s is not under your control", sys.Name))
	}
	if s.Credits < cost {
		return s.reject(fmt.Sprintf("insufficient credits for a %s fleet (%.0f needed)", sizeClass, cost))
	}

	s.Credits -= cost
	f := s.spawnFleet(galaxy.FactionPlayer, systemID, strength)
	s.logEvent("order", fmt.Sprintf("%s commissioned at %s", fleetLabel(f), sys.Name))
	return true, ""
}

// SetSpeed changes the simulation speed multiplier; only 1, 2, and 4 are
// accepted.
func (s *Session) SetSpeed(mult float64) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch mult {
	case 1, 2, 4:
		s.SpeedMult = mult
		return true, ""
	default:
		return s.reject(fmt.Sprintf("unsupported speed %v", mult))
	}
}

// TogglePause flips the pause flag. A finished match stays paused.
func (s *Session) TogglePause() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Outcome != OutcomeNone {
		return s.reject("the match is over")
	}
	s.Paused = !s.Paused
	return true, ""
}

// Surrender forces a defeat outcome.
func (s *Session) Surrender() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Outcome != OutcomeNone {
		return s.reject("the match is already over")
	}
	s.finish(OutcomeDefeat, "defeat: you surrendered the galaxy")
	return true, ""
}

// reject logs an informational event and reports the command as refused.
func (s *Session) reject(msg string) (bool, string) {
	s.logEvent("command", msg)
	return false, msg
}
