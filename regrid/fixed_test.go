package regrid

import (
	"math"
	"testing"

	harp "github.com/bruno-rino/harp"
	"github.com/bruno-rino/harp/interpkernel"
)

type noopUnits struct{}

func (noopUnits) CanConvert(src, dst string) bool { return src == dst }
func (noopUnits) ConvertVariable(v *harp.Variable, dstUnit string) error {
	v.Unit = dstUnit
	return nil
}
func (noopUnits) HasUnit(v *harp.Variable, u string) bool { return v.Unit == u }

func mustAdd(t *testing.T, p *harp.Product, v *harp.Variable) {
	t.Helper()
	if err := p.Add(v); err != nil {
		t.Fatalf("Add(%s): %v", v.Name, err)
	}
}

// TestRegridFixedLinear reproduces scenario 6 literally: source
// axis altitude [0,1000,2000] m, x = [10,20,30], target axis [500,1500] m
// should give x = [15,25].
func TestRegridFixedLinear(t *testing.T) {
	p := harp.NewProduct("test")

	altitude := harp.NewVariable("altitude", harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: 3}}, "m")
	copy(altitude.Float64Data(), []float64{0, 1000, 2000})
	mustAdd(t, p, altitude)

	x := harp.NewVariable("x", harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: 3}}, "K")
	copy(x.Float64Data(), []float64{10, 20, 30})
	mustAdd(t, p, x)

	target := harp.NewVariable("altitude", harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: 2}}, "m")
	copy(target.Float64Data(), []float64{500, 1500})

	resolver := harp.NewResolver(harp.NewRegistry(), noopUnits{}, nil)
	if err := RegridFixed(p, target, resolver, interpkernel.Gonum{}, nil); err != nil {
		t.Fatalf("RegridFixed: %v", err)
	}

	got := p.Get("x").Float64Data()
	want := []float64{15, 25}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("x[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if p.DimensionLength(harp.DimVertical) != 2 {
		t.Errorf("DimensionLength(vertical) = %d, want 2", p.DimensionLength(harp.DimVertical))
	}
	if p.Get("altitude").NumElements() != 2 {
		t.Errorf("altitude not replaced: has %d elements", p.Get("altitude").NumElements())
	}
}

func TestRegridFixedRemovesUnresamplable(t *testing.T) {
	p := harp.NewProduct("test")
	altitude := harp.NewVariable("altitude", harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: 2}}, "m")
	copy(altitude.Float64Data(), []float64{0, 1000})
	mustAdd(t, p, altitude)

	avk := harp.NewVariable("o3_avk", harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: 2}, {Kind: harp.DimVertical, Length: 2}}, "1")
	mustAdd(t, p, avk)

	target := harp.NewVariable("altitude", harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: 1}}, "m")
	copy(target.Float64Data(), []float64{500})

	resolver := harp.NewResolver(harp.NewRegistry(), noopUnits{}, nil)
	if err := RegridFixed(p, target, resolver, interpkernel.Gonum{}, nil); err != nil {
		t.Fatalf("RegridFixed: %v", err)
	}
	if p.Has("o3_avk") {
		t.Error("o3_avk should have been removed")
	}
}

func TestRegridFixedMissingSourceAxis(t *testing.T) {
	p := harp.NewProduct("test")
	target := harp.NewVariable("altitude", harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: 1}}, "m")
	resolver := harp.NewResolver(harp.NewRegistry(), noopUnits{}, nil)
	err := RegridFixed(p, target, resolver, interpkernel.Gonum{}, nil)
	if harp.KindOf(err) != harp.ErrVariableNotFound {
		t.Errorf("got kind %v, want ErrVariableNotFound", harp.KindOf(err))
	}
}

// TestRegridFixedBroadcastsTimeIndependentVariable covers the case where
// the source axis is time-dependent but a data variable is not: the
// variable must be broadcast along time before resampling, not silently
// resampled against only the first time step.
func TestRegridFixedBroadcastsTimeIndependentVariable(t *testing.T) {
	p := harp.NewProduct("test")

	altitude := harp.NewVariable("altitude", harp.TypeFloat64,
		[]harp.Dimension{{Kind: harp.DimTime, Length: 2}, {Kind: harp.DimVertical, Length: 3}}, "m")
	copy(altitude.Float64Data(), []float64{0, 1000, 2000, 0, 1000, 2000})
	mustAdd(t, p, altitude)

	x := harp.NewVariable("x", harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: 3}}, "K")
	copy(x.Float64Data(), []float64{10, 20, 30})
	mustAdd(t, p, x)

	target := harp.NewVariable("altitude", harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: 2}}, "m")
	copy(target.Float64Data(), []float64{500, 1500})

	resolver := harp.NewResolver(harp.NewRegistry(), noopUnits{}, nil)
	if err := RegridFixed(p, target, resolver, interpkernel.Gonum{}, nil); err != nil {
		t.Fatalf("RegridFixed: %v", err)
	}

	out := p.Get("x")
	if len(out.Dimensions) != 2 || out.Dimensions[0].Kind != harp.DimTime || out.Dimensions[0].Length != 2 {
		t.Fatalf("x dimensions = %v, want a broadcast leading time axis of length 2", out.Dimensions)
	}
	want := []float64{15, 25, 15, 25}
	got := out.Float64Data()
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("x[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
