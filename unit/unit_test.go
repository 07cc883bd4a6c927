package unit

import (
	"math"
	"testing"

	harp "github.com/bruno-rino/harp"
)

func TestConvertVariableHPaToPa(t *testing.T) {
	r := NewRegistry()
	v := harp.NewVariable("pressure", harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: 3}}, "hPa")
	copy(v.Float64Data(), []float64{1000, 900, 800})

	if err := r.ConvertVariable(v, "Pa"); err != nil {
		t.Fatalf("ConvertVariable: %v", err)
	}
	want := []float64{100000, 90000, 80000}
	got := v.Float64Data()
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if v.Unit != "Pa" {
		t.Errorf("Unit = %q, want Pa", v.Unit)
	}
}

func TestConvertVariableNoop(t *testing.T) {
	r := NewRegistry()
	v := harp.NewVariable("pressure", harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: 1}}, "hPa")
	v.Float64Data()[0] = 500
	if err := r.ConvertVariable(v, "hPa"); err != nil {
		t.Fatalf("no-op conversion should succeed: %v", err)
	}
	if v.Float64Data()[0] != 500 {
		t.Errorf("no-op conversion changed data")
	}
}

func TestCanConvertMismatchedDimensions(t *testing.T) {
	r := NewRegistry()
	if r.CanConvert("hPa", "K") {
		t.Error("hPa and K have different physical dimensions, should not be convertible")
	}
}

func TestDegCToK(t *testing.T) {
	r := NewRegistry()
	v := harp.NewVariable("temperature", harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: 1}}, "degC")
	v.Float64Data()[0] = 0
	if err := r.ConvertVariable(v, "K"); err != nil {
		t.Fatalf("ConvertVariable: %v", err)
	}
	if math.Abs(v.Float64Data()[0]-273.15) > 1e-9 {
		t.Errorf("0 degC = %v K, want 273.15", v.Float64Data()[0])
	}
}
