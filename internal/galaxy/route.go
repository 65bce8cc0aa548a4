// Controlled-prefix route search: fleets travel freely inside their own
// territory, then may make one final jump into anything.
package galaxy

// FindRoute runs a breadth-first search from origin toward dest for the
// given faction. An edge (u,v) is traversable only when both u and v are
// owned by the faction — except the single edge that lands exactly on dest,
// which is always permitted (the attacking jump). Returns the shortest such
// route including both endpoints, or nil when none exists. All lanes have
// unit weight, so BFS is optimal.
func (g *Galaxy) FindRoute(origin, dest int, f Faction) []int {
	if origin == dest {
		return []int{origin}
	}

	adj := g.Adjacency()
	prev := make([]int, len(g.Systems))
	for i := range prev {
		prev[i] = -1
	}
	prev[origin] = origin

	queue := []int{origin}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for _, v := range adj[u] {
			if prev[v] != -1 {
				continue
			}
			if v == dest {
				prev[v] = u
				return walkBack(prev, origin, dest)
			}
			// Intermediate hops require full control of the lane.
			if g.Systems[u].Owner != f || g.Systems[v].Owner != f {
				continue
			}
			prev[v] = u
			queue = append(queue, v)
		}
	}
	return nil
}

func walkBack(prev []int, origin, dest int) []int {
	var rev []int
	for n := dest; n != origin; n = prev[n] {
		rev = append(rev, n)
	}
	rev = append(rev, origin)

	route := make([]int, len(rev))
	for i, n := range rev {
		route[len(rev)-1-i] = n
	}
	return route
}
