package regrid

import (
	"testing"

	harp "github.com/bruno-rino/harp"
)

func dims(kinds ...harp.DimensionKind) []harp.Dimension {
	out := make([]harp.Dimension, len(kinds))
	for i, k := range kinds {
		out[i] = harp.Dimension{Kind: k, Length: 3}
	}
	return out
}

func TestCategorizeSkip(t *testing.T) {
	v := harp.NewVariable("latitude", harp.TypeFloat64, dims(harp.DimLatitude), "degree_north")
	if got := Categorize(v); got != Skip {
		t.Errorf("got %v, want Skip", got)
	}
}

func TestCategorizeRemoveMultipleVertical(t *testing.T) {
	v := harp.NewVariable("o3_avk", harp.TypeFloat64, dims(harp.DimTime, harp.DimVertical, harp.DimVertical), "1")
	if got := Categorize(v); got != Remove {
		t.Errorf("got %v, want Remove", got)
	}
}

func TestCategorizeRemoveString(t *testing.T) {
	v := harp.NewVariable("flag", harp.TypeString, dims(harp.DimVertical), "")
	if got := Categorize(v); got != Remove {
		t.Errorf("got %v, want Remove", got)
	}
}

func TestCategorizeRemoveUncertaintySuffix(t *testing.T) {
	v := harp.NewVariable("o3_number_density_uncertainty", harp.TypeFloat64, dims(harp.DimVertical), "molec/m3")
	if got := Categorize(v); got != Remove {
		t.Errorf("got %v, want Remove", got)
	}
}

func TestCategorizeInterval(t *testing.T) {
	v := harp.NewVariable("o3_column_number_density", harp.TypeFloat64, dims(harp.DimVertical), "molec/m2")
	if got := Categorize(v); got != Interval {
		t.Errorf("got %v, want Interval", got)
	}
}

func TestCategorizeLinear(t *testing.T) {
	v := harp.NewVariable("temperature", harp.TypeFloat64, dims(harp.DimTime, harp.DimVertical), "K")
	if got := Categorize(v); got != Linear {
		t.Errorf("got %v, want Linear", got)
	}
}
