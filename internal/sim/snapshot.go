// Read-only state snapshot for the renderer. Everything is copied out
// under the lock; callers can hold the result without racing the tick.
package sim

import "github.com/talgya/starhold/internal/galaxy"

// Snapshot is the full observable match state.
type Snapshot struct {
	MatchID string  `json:"match_id"`
	Seed    uint32  `json:"seed"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`

	Elapsed  float64 `json:"elapsed"`
	Credits  float64 `json:"credits"`
	Paused   bool    `json:"paused"`
	Speed    float64 `json:"speed"`
	Outcome  string  `json:"outcome"`
	Selected int     `json:"selected"`

	Systems []SystemView   `json:"systems"`
	Lanes   []LaneView     `json:"lanes"`
	Sectors []SectorView   `json:"sectors"`
	Fleets  []FleetView    `json:"fleets"`
	Nebula  *galaxy.Nebula `json:"nebula,omitempty"`
	Events  []Event        `json:"events"`
}

// SystemView is the render-facing slice of a system.
type SystemView struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Sector     int     `json:"sector"`
	Owner      string  `json:"owner"`
	Production float64 `json:"production"`
	Defense    int     `json:"defense"`
	Stationed  int     `json:"stationed"`
}

// LaneView carries a starlane with its derived owner.
type LaneView struct {
	A     int    `json:"a"`
	B     int    `json:"b"`
	Owner string `json:"owner"`
}

// SectorView carries the decorative boundary hull.
type SectorView struct {
	ID   int            `json:"id"`
	Name string         `json:"name"`
	Hull []galaxy.Point `json:"hull,omitempty"`
}

// FleetView reports a fleet either stationed (AtSystem set) or in transit
// (interpolated position plus route state).
type FleetView struct {
	ID       int     `json:"id"`
	Owner    string  `json:"owner"`
	Size     int     `json:"size"`
	AtSystem *int    `json:"at_system,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Route    []int   `json:"route,omitempty"`
	Leg      int     `json:"leg,omitempty"`
	Progress float64 `json:"progress,omitempty"`
}

// TakeSnapshot copies the observable state out of the session.
func (s *Session) TakeSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.Galaxy
	snap := Snapshot{
		MatchID:  s.MatchID.String(),
		Seed:     g.Seed,
		Width:    g.Width,
		Height:   g.Height,
		Elapsed:  s.Elapsed,
		Credits:  s.Credits,
		Paused:   s.Paused,
		Speed:    s.SpeedMult,
		Outcome:  s.Outcome.String(),
		Selected: s.Selected,
		Nebula:   s.Nebula,
	}

	snap.Systems = make([]SystemView, 0, len(g.Systems))
	for _, sys := range g.Systems {
		snap.Systems = append(snap.Systems, SystemView{
			ID:         sys.ID,
			Name:       sys.Name,
			X:          sys.Pos.X,
			Y:          sys.Pos.Y,
			Sector:     sys.Sector,
			Owner:      sys.Owner.String(),
			Production: sys.Production,
			Defense:    sys.Defense,
			Stationed:  len(sys.Stationed),
		})
	}

	snap.Lanes = make([]LaneView, 0, len(g.Lanes))
	for _, l := range g.Lanes {
		snap.Lanes = append(snap.Lanes, LaneView{A: l.A, B: l.B, Owner: g.LaneOwner(l).String()})
	}

	snap.Sectors = make([]SectorView, 0, len(g.Sectors))
	for _, sec := range g.Sectors {
		hull := make([]galaxy.Point, len(sec.Hull))
		copy(hull, sec.Hull)
		snap.Sectors = append(snap.Sectors, SectorView{ID: sec.ID, Name: sec.Name, Hull: hull})
	}

	snap.Fleets = make([]FleetView, 0, len(s.Fleets))
	for _, f := range s.Fleets {
		fv := FleetView{ID: f.ID, Owner: f.Owner.String(), Size: f.Size}
		if f.AtSystem >= 0 {
			at := f.AtSystem
			fv.AtSystem = &at
			fv.X = g.Systems[at].Pos.X
			fv.Y = g.Systems[at].Pos.Y
		} else if f.Leg+1 < len(f.Route) {
			a := g.Systems[f.Route[f.Leg]].Pos
			b := g.Systems[f.Route[f.Leg+1]].Pos
			fv.X = a.X + (b.X-a.X)*f.Progress
			fv.Y = a.Y + (b.Y-a.Y)*f.Progress
			fv.Route = append([]int(nil), f.Route...)
			fv.Leg = f.Leg
			fv.Progress = f.Progress
		}
		snap.Fleets = append(snap.Fleets, fv)
	}

	snap.Events = append([]Event(nil), s.Events...)
	return snap
}

// RecentEvents returns up to limit entries from the end of the match log.
func (s *Session) RecentEvents(limit int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.Events
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return append([]Event(nil), events...)
}
