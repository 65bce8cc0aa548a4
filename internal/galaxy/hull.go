// Convex hull construction for sector boundaries (monotone chain).
package galaxy

import "sort"

// ConvexHull returns the hull of a point set in counter-clockwise order.
// Fewer than 3 input points yields nil: a degenerate sector draws no
// boundary polygon and gameplay is unaffected.
func ConvexHull(points []Point) []Point {
	if len(points) < 3 {
		return nil
	}

	pts := make([]Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	var lower []Point
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []Point
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Each chain's last point is the other chain's first; drop both.
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		// All points collinear.
		return nil
	}
	return hull
}

// cross is the z-component of (b-a) × (c-a). Positive means a left turn.
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
