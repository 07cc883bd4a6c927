package regrid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ColumnFromPartialColumn sums partial ignoring NaN entries, the way a
// partial-column profile with missing layers is rolled up into a total
// column: NaN if every entry is NaN, otherwise the sum of the non-NaN
// entries.
func ColumnFromPartialColumn(partial []float64) float64 {
	present := make([]float64, 0, len(partial))
	for _, x := range partial {
		if !math.IsNaN(x) {
			present = append(present, x)
		}
	}
	if len(present) == 0 {
		return math.NaN()
	}
	return floats.Sum(present)
}
