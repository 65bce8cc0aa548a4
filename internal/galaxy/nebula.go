// Decorative nebula density field sampled from simplex noise.
// Render hint only: the field never reads the deterministic game stream,
// so cosmetic output cannot perturb game-state invariants.
package galaxy

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Nebula is a coarse grid of background density values in [0,1],
// row-major, for the renderer to tint the void with.
type Nebula struct {
	CellSize float64   `json:"cell_size"`
	Cols     int       `json:"cols"`
	Rows     int       `json:"rows"`
	Values   []float64 `json:"values"`
}

// NewNebula samples a multi-octave noise field over the galaxy bounds.
func NewNebula(seed int64, width, height, cellSize float64) *Nebula {
	noise := opensimplex.NewNormalized(seed)

	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	n := &Nebula{
		CellSize: cellSize,
		Cols:     cols,
		Rows:     rows,
		Values:   make([]float64, cols*rows),
	}

	const freq = 0.004
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := float64(col) * cellSize
			y := float64(row) * cellSize
			v := noise.Eval2(x*freq, y*freq)*0.7 + noise.Eval2(x*freq*3, y*freq*3)*0.3
			n.Values[row*cols+col] = v
		}
	}
	return n
}
