// Galaxy generation: sector layout, system placement, starlanes,
// connectivity repair, and initial faction holdings.
package galaxy

import (
	"log/slog"
	"math"
	"sort"
)

// GenConfig holds galaxy generation parameters.
type GenConfig struct {
	Seed   uint32  // Random seed (0 = remapped by the stream)
	Width  float64 // Bounding rectangle width
	Height float64 // Bounding rectangle height
}

// DefaultGenConfig returns the standard prototype canvas bounds.
func DefaultGenConfig() GenConfig {
	return GenConfig{Seed: 1, Width: 1200, Height: 800}
}

const (
	sectorMargin = 80 // sector centers stay this far from the rect edge
	systemMargin = 20 // systems are clamped this far inside the rect

	homeClaimRadius      = 80   // systems closer than this may join a faction
	homeClaimChance      = 0.35 // per-faction claim probability
	neutralFortifyChance = 0.07

	nearestLaneCount = 3
)

// Generate builds a complete galaxy from a seed and bounding rectangle.
// The same config always yields an identical galaxy: every decision draws
// from the single xorshift stream, which stays attached to the result.
func Generate(cfg GenConfig) *Galaxy {
	r := NewRand(cfg.Seed)
	g := &Galaxy{
		Seed:   cfg.Seed,
		Width:  cfg.Width,
		Height: cfg.Height,
		Rand:   r,
	}

	g.placeSectors()
	g.buildHulls()
	g.buildStarlanes()
	g.repairConnectivity()
	g.seedFactions()

	slog.Info("galaxy generated",
		"seed", cfg.Seed,
		"sectors", len(g.Sectors),
		"systems", len(g.Systems),
		"lanes", len(g.Lanes),
	)
	return g
}

// placeSectors draws 4–7 sector centers and scatters 4–10 systems around
// each at a jittered polar offset.
func (g *Galaxy) placeSectors() {
	r := g.Rand
	sectorCount := r.IntRange(4, 7)

	for si := 0; si < sectorCount; si++ {
		center := Point{
			X: r.Range(sectorMargin, g.Width-sectorMargin),
			Y: r.Range(sectorMargin, g.Height-sectorMargin),
		}
		sector := &Sector{
			ID:     si,
			Name:   makeName(r),
			Center: center,
		}

		sysCount := r.IntRange(4, 10)
		for i := 0; i < sysCount; i++ {
			angle := r.Range(0, 2*math.Pi)
			radius := r.Range(10, 110)
			pos := Point{
				X: center.X + math.Cos(angle)*radius + r.Range(-8, 8),
				Y: center.Y + math.Sin(angle)*radius + r.Range(-8, 8),
			}
			pos.X = clamp(pos.X, systemMargin, g.Width-systemMargin)
			pos.Y = clamp(pos.Y, systemMargin, g.Height-systemMargin)

			sys := &System{
				ID:         len(g.Systems),
				Name:       makeName(r),
				Pos:        pos,
				Sector:     si,
				Owner:      FactionNeutral,
				Production: r.Range(0.5, 3.5),
				Defense:    r.IntRange(0, 2),
			}
			sector.Systems = append(sector.Systems, sys.ID)
			g.Systems = append(g.Systems, sys)
		}

		g.Sectors = append(g.Sectors, sector)
	}
}

// buildHulls computes each sector's decorative boundary polygon.
func (g *Galaxy) buildHulls() {
	for _, sec := range g.Sectors {
		pts := make([]Point, 0, len(sec.Systems))
		for _, id := range sec.Systems {
			pts = append(pts, g.Systems[id].Pos)
		}
		sec.Hull = ConvexHull(pts)
	}
}

// buildStarlanes connects every system to its 3 nearest neighbors,
// de-duplicating undirected pairs.
func (g *Galaxy) buildStarlanes() {
	seen := make(map[Starlane]bool)

	for _, sys := range g.Systems {
		type cand struct {
			id   int
			dist float64
		}
		cands := make([]cand, 0, len(g.Systems)-1)
		for _, other := range g.Systems {
			if other.ID == sys.ID {
				continue
			}
			cands = append(cands, cand{other.ID, Dist(sys.Pos, other.Pos)})
		}
		sort.Slice(cands, func(i, j int) bool {
			if cands[i].dist != cands[j].dist {
				return cands[i].dist < cands[j].dist
			}
			return cands[i].id < cands[j].id
		})

		n := nearestLaneCount
		if n > len(cands) {
			n = len(cands)
		}
		for _, c := range cands[:n] {
			lane := NewStarlane(sys.ID, c.id)
			if !seen[lane] {
				seen[lane] = true
				g.Lanes = append(g.Lanes, lane)
			}
		}
	}
}

// seedFactions picks two distinct home systems, grants them production
// bonuses, and spreads initial claims around them. The player and AI claim
// checks run independently, so a contested system near both homes can flip:
// the AI check runs second and silently wins.
func (g *Galaxy) seedFactions() {
	r := g.Rand
	n := len(g.Systems)

	playerHome := r.IntRange(0, n-1)
	aiHome := r.IntRange(0, n-1)
	for aiHome == playerHome {
		aiHome = r.IntRange(0, n-1)
	}
	g.Homes = [2]int{playerHome, aiHome}

	g.Systems[playerHome].Owner = FactionPlayer
	g.Systems[playerHome].Production += 1.5
	g.Systems[aiHome].Owner = FactionAI
	g.Systems[aiHome].Production += 1.0

	for _, sys := range g.Systems {
		if sys.ID == playerHome || sys.ID == aiHome {
			continue
		}
		if Dist(sys.Pos, g.Systems[playerHome].Pos) < homeClaimRadius && r.Next() < homeClaimChance {
			sys.Owner = FactionPlayer
		}
		if Dist(sys.Pos, g.Systems[aiHome].Pos) < homeClaimRadius && r.Next() < homeClaimChance {
			sys.Owner = FactionAI
		}
	}

	for _, sys := range g.Systems {
		if sys.Owner == FactionNeutral && r.Next() < neutralFortifyChance {
			sys.Defense += r.IntRange(0, 2)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
