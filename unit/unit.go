// Package unit provides the reference implementation of harp's unit
// conversion collaborator. It is deliberately narrow: the core package
// only ever calls CanConvert/ConvertVariable/HasUnit through the
// harp.UnitConverter interface, never this package's concrete types.
//
// Named units are registered the way github.com/ctessum/unit/badunit
// registers one constructor per named unit, except keyed by the unit
// string harp variables actually carry (e.g. "hPa", "ppmv") rather than by
// Go function name, since the ingestion side of the real system hands us
// strings, not call sites.
package unit

import (
	"fmt"
	"strings"

	harp "github.com/bruno-rino/harp"
	ctunit "github.com/ctessum/unit"
)

// entry is one registered named unit: its SI-equivalent scale factor and
// additive offset (value_si = value*Scale + Offset), plus the
// ctessum/unit.Dimensions it corresponds to for convertibility checks.
type entry struct {
	dims   ctunit.Dimensions
	scale  float64
	offset float64
}

// Registry is a table of named units grounded on ctessum/unit dimensional
// analysis, usable as a harp.UnitConverter.
type Registry struct {
	units map[string]entry
}

// NewRegistry returns a Registry pre-populated with the atmospheric units
// this package's tests and the rest of harp exercise: pressure, mixing
// ratio, number density, column density, and temperature.
func NewRegistry() *Registry {
	r := &Registry{units: map[string]entry{}}
	pressure := ctunit.Dimensions{ctunit.MassDim: 1, ctunit.LengthDim: -1, ctunit.TimeDim: -2}
	r.register("Pa", pressure, 1, 0)
	r.register("hPa", pressure, 100, 0)
	r.register("atm", pressure, 101325, 0)

	dimensionless := ctunit.Dimensions{}
	r.register("1", dimensionless, 1, 0)
	r.register("ppv", dimensionless, 1, 0)
	r.register("ppmv", dimensionless, 1e-6, 0)
	r.register("ppbv", dimensionless, 1e-9, 0)

	areaDensity := ctunit.Dimensions{ctunit.LengthDim: -2}
	r.register("molec/cm2", areaDensity, 1e4, 0)
	r.register("molec/m2", areaDensity, 1, 0)
	r.register("DU", areaDensity, 2.6868e20, 0) // 1 Dobson unit = 2.6868e20 molec/m^2

	volumeDensity := ctunit.Dimensions{ctunit.LengthDim: -3}
	r.register("molec/cm3", volumeDensity, 1e6, 0)
	r.register("molec/m3", volumeDensity, 1, 0)

	temperature := ctunit.Dimensions{ctunit.TemperatureDim: 1}
	r.register("K", temperature, 1, 0)
	r.register("degC", temperature, 1, 273.15)

	length := ctunit.Dimensions{ctunit.LengthDim: 1}
	r.register("m", length, 1, 0)
	r.register("km", length, 1000, 0)
	return r
}

func (r *Registry) register(name string, dims ctunit.Dimensions, scale, offset float64) {
	r.units[name] = entry{dims: dims, scale: scale, offset: offset}
}

func normalize(u string) string {
	return strings.TrimSpace(u)
}

// CanConvert reports whether src and dst are both registered and share
// the same physical dimensions. Equal units (after normalization) are
// always convertible, even if neither is registered.
func (r *Registry) CanConvert(src, dst string) bool {
	src, dst = normalize(src), normalize(dst)
	if src == dst {
		return true
	}
	s, ok1 := r.units[src]
	d, ok2 := r.units[dst]
	if !ok1 || !ok2 {
		return false
	}
	return s.dims.Matches(d.dims)
}

// HasUnit reports syntactic equality after normalization.
func (r *Registry) HasUnit(v *harp.Variable, u string) bool {
	return normalize(v.Unit) == normalize(u)
}

func (r *Registry) convert(x float64, src, dst entry) float64 {
	si := x*src.scale + src.offset
	return (si - dst.offset) / dst.scale
}

// ConvertVariable converts v's float64 data buffer from v.Unit to dstUnit
// in place. v must already be float64 (the resolver and regridder both
// coerce type before requesting a unit conversion); callers that hand in
// another element type get ErrInvalidType.
func (r *Registry) ConvertVariable(v *harp.Variable, dstUnit string) error {
	src := normalize(v.Unit)
	dst := normalize(dstUnit)
	if src == dst {
		return nil
	}
	if !r.CanConvert(src, dst) {
		return harp.NewError(harp.ErrUnitConversion, fmt.Sprintf("unit: cannot convert %q to %q", src, dst))
	}
	if v.ElementType != harp.TypeFloat64 {
		return harp.NewError(harp.ErrInvalidType, fmt.Sprintf(
			"unit: %q must be float64 to convert units, got %v", v.Name, v.ElementType))
	}
	s, d := r.units[src], r.units[dst]
	data := v.Float64Data()
	for i, x := range data {
		data[i] = r.convert(x, s, d)
	}
	v.Unit = dst
	return nil
}
