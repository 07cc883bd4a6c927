package regrid

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// matVecRowNaNAsZero multiplies a by x, treating any NaN entry of x as
// zero during the product. This is the NaN-masking shape shared by every
// profile operation that reads a matrix row against a possibly-padded
// input column; factored out here so a future column-integration
// addition can reuse it without duplicating the masking logic.
func matVecRowNaNAsZero(a *mat.Dense, x *mat.VecDense) *mat.VecDense {
	n := x.Len()
	clean := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v := x.AtVec(i)
		if math.IsNaN(v) {
			v = 0
		}
		clean.SetVec(i, v)
	}
	rows, _ := a.Dims()
	out := mat.NewVecDense(rows, nil)
	out.MulVec(a, clean)
	return out
}

// applyAVK computes out = A·(in-a)+a for one sample's block of length n.
// avkRow is the row-major n×n averaging-kernel submatrix for this
// sample; aprioriRow is the length-n a priori profile (zero-filled if
// the match product carries none).
func applyAVK(avkRow, aprioriRow, in []float64, n int) []float64 {
	diff := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		diff.SetVec(i, in[i]-aprioriRow[i])
	}
	a := mat.NewDense(n, n, append([]float64(nil), avkRow...))
	smoothed := matVecRowNaNAsZero(a, diff)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = smoothed.AtVec(i) + aprioriRow[i]
	}
	return out
}
