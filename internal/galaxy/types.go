// Package galaxy generates and holds the static universe topology: sectors,
// systems, starlanes, and the deterministic random stream that built them.
package galaxy

import "math"

// Faction identifies who controls a system or fleet.
type Faction uint8

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionAI
)

// String returns a human-readable faction name.
func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionAI:
		return "ai"
	default:
		return "neutral"
	}
}

// Point is a position on the galaxy plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// System is a node in the galaxy graph. Ownership, defense, and the
// stationed fleet list mutate during a match; everything else is fixed
// at generation.
type System struct {
	ID         int
	Name       string
	Pos        Point
	Sector     int
	Owner      Faction
	Production float64 // credits per second while owned
	Defense    int
	Stationed  []int // fleet IDs at rest here, in arrival order
}

// StationFleet appends a fleet ID to the stationed list if not present.
func (s *System) StationFleet(id int) {
	for _, f := range s.Stationed {
		if f == id {
			return
		}
	}
	s.Stationed = append(s.Stationed, id)
}

// RemoveFleet deletes a fleet ID from the stationed list.
func (s *System) RemoveFleet(id int) {
	kept := s.Stationed[:0]
	for _, f := range s.Stationed {
		if f != id {
			kept = append(kept, f)
		}
	}
	s.Stationed = kept
}

// Starlane is an undirected connection between two systems. Canonical form
// has A < B so duplicate pairs can be detected.
type Starlane struct {
	A, B int
}

// NewStarlane returns the canonical lane for a pair of system indices.
func NewStarlane(a, b int) Starlane {
	if a > b {
		a, b = b, a
	}
	return Starlane{A: a, B: b}
}

// Sector groups systems around a shared center. The hull is decorative:
// a boundary polygon for rendering, never consulted by gameplay logic.
type Sector struct {
	ID      int
	Name    string
	Center  Point
	Systems []int
	Hull    []Point // empty when the sector has fewer than 3 systems
}

// Galaxy is the generated topology plus the random stream that produced it.
// The stream keeps advancing during a match (AI decisions, fleet spawns),
// so it travels with the state rather than living in a global.
type Galaxy struct {
	Seed    uint32
	Width   float64
	Height  float64
	Systems []*System
	Lanes   []Starlane
	Sectors []*Sector

	// Home system indices: [0] player, [1] AI.
	Homes [2]int

	Rand *Rand
}

// LaneOwner derives a starlane's controlling faction: the shared owner of
// both endpoints when they match and are non-neutral, otherwise neutral.
// Always computed, never cached — ownership changes every tick.
func (g *Galaxy) LaneOwner(l Starlane) Faction {
	a := g.Systems[l.A].Owner
	if a != FactionNeutral && a == g.Systems[l.B].Owner {
		return a
	}
	return FactionNeutral
}

// Adjacency builds the neighbor lists induced by the lane set.
func (g *Galaxy) Adjacency() [][]int {
	adj := make([][]int, len(g.Systems))
	for _, l := range g.Lanes {
		adj[l.A] = append(adj[l.A], l.B)
		adj[l.B] = append(adj[l.B], l.A)
	}
	return adj
}
