package csvgrid

import (
	"strings"
	"testing"

	harp "github.com/bruno-rino/harp"
)

func TestLoadAltitude(t *testing.T) {
	input := "altitude [m]\n1000\n2000\n3000\n"
	v, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v.Name != "altitude" || v.Unit != "m" {
		t.Errorf("got name=%q unit=%q", v.Name, v.Unit)
	}
	want := []float64{1000, 2000, 3000}
	got := v.Float64Data()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if !v.HasDimensionKinds([]harp.DimensionKind{harp.DimVertical}) {
		t.Errorf("expected a single vertical axis")
	}
}

func TestLoadRejectsBadName(t *testing.T) {
	_, err := Load(strings.NewReader("wavelength [nm]\n1\n"))
	if err == nil {
		t.Fatal("expected an error for an unsupported header name")
	}
	if harp.KindOf(err) != harp.ErrInvalidName {
		t.Errorf("got kind %v, want ErrInvalidName", harp.KindOf(err))
	}
}

func TestLoadRequiresAtLeastOneValue(t *testing.T) {
	_, err := Load(strings.NewReader("pressure [hPa]\n"))
	if err == nil {
		t.Fatal("expected an error for a header-only file")
	}
}
