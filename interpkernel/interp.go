// Package interpkernel is the reference implementation of harp's
// interpolation-kernel collaborator: pointwise linear interpolation for
// the Linear resample category, and layer-overlap averaging for the
// Interval category.
package interpkernel

import (
	"math"

	"gonum.org/v1/gonum/interp"
)

// Kernel is the narrow interface the regridder depends on.
type Kernel interface {
	Linear1D(srcX, srcY, tgtX, tgtYOut []float64, extrapolate bool)
	Interval(srcBounds [][2]float64, srcY []float64, tgtBounds [][2]float64, tgtYOut []float64)
}

// Gonum implements Kernel over gonum.org/v1/gonum/interp's PiecewiseLinear
// fit, which is the pack's only pointwise-interpolation library.
type Gonum struct{}

// Linear1D interpolates srcY(srcX) onto tgtX, writing results into
// tgtYOut (which must be pre-sized to len(tgtX)). Points of tgtX outside
// [min(srcX), max(srcX)] get NaN unless extrapolate is set, in which case
// the nearest segment's slope is extended.
func (Gonum) Linear1D(srcX, srcY, tgtX, tgtYOut []float64, extrapolate bool) {
	n := len(srcX)
	if n == 0 {
		for i := range tgtYOut {
			tgtYOut[i] = math.NaN()
		}
		return
	}
	if n == 1 {
		for i, x := range tgtX {
			if x == srcX[0] || extrapolate {
				tgtYOut[i] = srcY[0]
			} else {
				tgtYOut[i] = math.NaN()
			}
		}
		return
	}

	if srcX[0] > srcX[n-1] {
		rx, ry := make([]float64, n), make([]float64, n)
		for i := range srcX {
			rx[n-1-i], ry[n-1-i] = srcX[i], srcY[i]
		}
		srcX, srcY = rx, ry
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(srcX, srcY); err != nil {
		for i := range tgtYOut {
			tgtYOut[i] = math.NaN()
		}
		return
	}
	lo, hi := srcX[0], srcX[n-1]
	for i, x := range tgtX {
		switch {
		case x >= lo && x <= hi:
			tgtYOut[i] = pl.Predict(x)
		case !extrapolate:
			tgtYOut[i] = math.NaN()
		case x < lo:
			slope := (srcY[1] - srcY[0]) / (srcX[1] - srcX[0])
			tgtYOut[i] = srcY[0] + slope*(x-lo)
		default: // x > hi
			slope := (srcY[n-1] - srcY[n-2]) / (srcX[n-1] - srcX[n-2])
			tgtYOut[i] = srcY[n-1] + slope*(x-hi)
		}
	}
}

// Interval resamples srcY, defined on source layers with boundaries
// srcBounds, onto target layers with boundaries tgtBounds, by weighting
// each source layer's contribution to a target layer by the fraction of
// the target layer's width it overlaps (the six-way classifier in
// overlap.go). A target layer with no overlapping source layers gets NaN.
func (Gonum) Interval(srcBounds [][2]float64, srcY []float64, tgtBounds [][2]float64, tgtYOut []float64) {
	for i, tgt := range tgtBounds {
		tgtLo, tgtHi := orderedBounds(tgt)
		var sum, weightSum float64
		any := false
		for j, src := range srcBounds {
			srcLo, srcHi := orderedBounds(src)
			w, kind := Classify(srcLo, srcHi, tgtLo, tgtHi)
			if kind == NoOverlapAB || kind == NoOverlapBA || w == 0 {
				continue
			}
			sum += w * srcY[j]
			weightSum += w
			any = true
		}
		if !any || weightSum == 0 {
			tgtYOut[i] = math.NaN()
			continue
		}
		tgtYOut[i] = sum / weightSum
	}
}

func orderedBounds(b [2]float64) (lo, hi float64) {
	if b[0] <= b[1] {
		return b[0], b[1]
	}
	return b[1], b[0]
}
