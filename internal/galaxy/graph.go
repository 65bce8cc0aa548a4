// Connectivity analysis and repair for the starlane graph.
package galaxy

// Components returns the connected components of the lane graph as slices
// of system indices, using an iterative flood fill.
func (g *Galaxy) Components() [][]int {
	adj := g.Adjacency()
	seen := make([]bool, len(g.Systems))
	var comps [][]int

	for start := range g.Systems {
		if seen[start] {
			continue
		}
		var comp []int
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, n)
			for _, nb := range adj[n] {
				if !seen[nb] {
					seen[nb] = true
					stack = append(stack, nb)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// repairConnectivity bridges disconnected components until the graph is a
// single component. One lane per gap, between arbitrary representatives of
// consecutive components. Generation can therefore never produce an
// unreachable system.
func (g *Galaxy) repairConnectivity() {
	comps := g.Components()
	for i := 0; i+1 < len(comps); i++ {
		g.Lanes = append(g.Lanes, NewStarlane(comps[i][0], comps[i+1][0]))
	}
}
