package recommender

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// expandedDim is the number of degree-2 monomials of n inputs, bias included.
func expandedDim(n int) int {
	return 1 + n + n*(n+1)/2
}

// polyExpand returns [1, x0..xn-1, x0*x0, x0*x1, .., xn-1*xn-1].
func polyExpand(x []float64) []float64 {
	out := make([]float64, 0, expandedDim(len(x)))
	out = append(out, 1)
	out = append(out, x...)
	for i := range x {
		for j := i; j < len(x); j++ {
			out = append(out, x[i]*x[j])
		}
	}
	return out
}

// transformer applies polynomial expansion followed by standardization with
// statistics frozen at fit time.
type transformer struct {
	inputDim int
	mean     []float64
	scale    []float64
}

// fitTransformer records the per-column mean and population standard
// deviation of the expanded rows. Constant columns get scale 1.
func fitTransformer(rows [][]float64) (*transformer, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("fit transformer: no rows")
	}

	inputDim := len(rows[0])
	dim := expandedDim(inputDim)
	columns := make([][]float64, dim)
	for c := range columns {
		columns[c] = make([]float64, len(rows))
	}
	for r, row := range rows {
		if len(row) != inputDim {
			return nil, fmt.Errorf("fit transformer: row %d has %d features, want %d", r, len(row), inputDim)
		}
		for c, v := range polyExpand(row) {
			columns[c][r] = v
		}
	}

	t := &transformer{
		inputDim: inputDim,
		mean:     make([]float64, dim),
		scale:    make([]float64, dim),
	}
	for c, col := range columns {
		t.mean[c] = stat.Mean(col, nil)
		sd := stat.PopStdDev(col, nil)
		if sd == 0 {
			sd = 1
		}
		t.scale[c] = sd
	}

	return t, nil
}

func (t *transformer) Transform(x []float64) ([]float64, error) {
	if len(x) != t.inputDim {
		return nil, fmt.Errorf("transform: got %d features, want %d", len(x), t.inputDim)
	}

	out := polyExpand(x)
	for c := range out {
		out[c] = (out[c] - t.mean[c]) / t.scale[c]
	}
	return out, nil
}
