package interpkernel

import (
	"math"
	"testing"
)

func TestLinear1DBasic(t *testing.T) {
	var k Gonum
	srcX := []float64{0, 1000, 2000}
	srcY := []float64{10, 20, 30}
	tgtX := []float64{500, 1500}
	out := make([]float64, 2)
	k.Linear1D(srcX, srcY, tgtX, out, false)
	want := []float64{15, 25}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-9 {
			t.Errorf("index %d: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestLinear1DOutOfRangeNaN(t *testing.T) {
	var k Gonum
	out := make([]float64, 2)
	k.Linear1D([]float64{0, 1000}, []float64{10, 20}, []float64{-500, 2000}, out, false)
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Errorf("index %d: got %v, want NaN", i, v)
		}
	}
}

func TestClassifySixWay(t *testing.T) {
	cases := []struct {
		srcLo, srcHi, tgtLo, tgtHi float64
		wantKind                   OverlapKind
	}{
		{0, 1, 2, 3, NoOverlapAB},
		{2, 3, 0, 1, NoOverlapBA},
		{0, 1, 0, 1, Equal},
		{0, 1, 0.5, 1.5, PartialAB},
		{0.5, 1.5, 0, 1, PartialBA},
		{0, 2, 0.5, 1.5, AContainsB},
		{0.5, 1.5, 0, 2, BContainsA},
	}
	for _, c := range cases {
		_, kind := Classify(c.srcLo, c.srcHi, c.tgtLo, c.tgtHi)
		if kind != c.wantKind {
			t.Errorf("Classify(%v,%v,%v,%v) = %v, want %v", c.srcLo, c.srcHi, c.tgtLo, c.tgtHi, kind, c.wantKind)
		}
	}
}

func TestIntervalAveraging(t *testing.T) {
	var k Gonum
	srcBounds := [][2]float64{{0, 1}, {1, 2}, {2, 3}}
	srcY := []float64{10, 20, 30}
	tgtBounds := [][2]float64{{0, 3}}
	out := make([]float64, 1)
	k.Interval(srcBounds, srcY, tgtBounds, out)
	want := 20.0 // equal-width layers fully contained -> simple average
	if math.Abs(out[0]-want) > 1e-9 {
		t.Errorf("got %v, want %v", out[0], want)
	}
}
