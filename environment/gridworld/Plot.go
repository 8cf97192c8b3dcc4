package gridworld

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/HANA-PON/ShinRL/utils/floatutils"
)

// RenderValues draws the per-state values v as an r×c heatmap and
// saves it as a PNG at path. Each grid cell is cellSize pixels square
// and is coloured from blue (lowest value) to red (highest value).
// Cell (0, 0) is drawn at the bottom-left corner. The vector v must
// have one entry per grid cell, ordered by flat cell index.
func (g *GridWorld) RenderValues(v mat.Vector, cellSize int,
	path string) error {
	if v.Len() != g.NumStates() {
		return fmt.Errorf("renderValues: have %d values, want %d", v.Len(),
			g.NumStates())
	}
	if cellSize <= 0 {
		return fmt.Errorf("renderValues: cellSize = %d must be positive",
			cellSize)
	}

	values := make([]float64, v.Len())
	for i := range values {
		values[i] = v.AtVec(i)
	}
	min := floatutils.Min(values...)
	max := floatutils.Max(values...)

	dc := gg.NewContext(g.c*cellSize, g.r*cellSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for ind, value := range values {
		x, y := indToC(ind, g.c)

		// Normalize to [0, 1]; a constant table renders mid-scale
		t := 0.5
		if max > min {
			t = (value - min) / (max - min)
		}

		px := float64(x * cellSize)
		py := float64((g.r - 1 - y) * cellSize)

		dc.SetRGB(t, 0.1, 1.0-t)
		dc.DrawRectangle(px, py, float64(cellSize), float64(cellSize))
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(1)
		dc.DrawRectangle(px, py, float64(cellSize), float64(cellSize))
		dc.Stroke()
	}

	return errors.Wrap(dc.SavePNG(path), "renderValues")
}
