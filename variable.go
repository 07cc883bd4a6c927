package harp

import (
	"fmt"
	"math"
)

// UnitConverter is the narrow interface to the unit-conversion collaborator.
// The core never parses or interprets unit strings itself; it
// only asks whether two units are convertible and to perform the
// conversion in place.
type UnitConverter interface {
	CanConvert(srcUnit, dstUnit string) bool
	ConvertVariable(v *Variable, dstUnit string) error
	HasUnit(v *Variable, unit string) bool
}

// Variable is an immutable-shape, mutable-data tensor: a name, an element
// type, an ordered list of (kind, length) dimensions, a unit string, and a
// dense row-major data buffer holding exactly the product of the axis
// lengths. Shape changes only through AddDimension and ResizeDimension;
// data is replaced in place by named operations (ConvertType, ConvertUnit,
// AddDimension, ResizeDimension, ReplaceData) so that existing pointers to
// the Variable observe the mutation, matching the ownership model the
// package documents for Product.
type Variable struct {
	Name        string
	ElementType ElementType
	Dimensions  []Dimension
	Unit        string
	Description string

	data interface{}
}

// NumElements is the product of the Variable's axis lengths (1 for a
// scalar, i.e. zero-rank, Variable).
func (v *Variable) NumElements() int {
	n := 1
	for _, d := range v.Dimensions {
		n *= d.Length
	}
	return n
}

// DimensionKinds returns just the axis kinds, ignoring lengths.
func (v *Variable) DimensionKinds() []DimensionKind {
	return kinds(dimSignaturesOf(v.Dimensions))
}

func dimSignaturesOf(dims []Dimension) []DimSignature {
	out := make([]DimSignature, len(dims))
	for i, d := range dims {
		out[i] = DimSignature{Kind: d.Kind, IndependentLength: d.Length}
	}
	return out
}

// HasDimensionKinds reports whether v's axis kinds equal kinds exactly, in
// order.
func (v *Variable) HasDimensionKinds(wantKinds []DimensionKind) bool {
	return sameKinds(v.DimensionKinds(), wantKinds)
}

// IsVertical reports whether v carries a vertical axis as its last
// dimension, the structural rule the regridder uses to decide whether a
// variable is resamplable at all.
func (v *Variable) IsVertical() bool {
	n := len(v.Dimensions)
	return n > 0 && v.Dimensions[n-1].Kind == DimVertical
}

// CountKind returns how many axes of v have the given kind.
func (v *Variable) CountKind(k DimensionKind) int {
	n := 0
	for _, d := range v.Dimensions {
		if d.Kind == k {
			n++
		}
	}
	return n
}

func allocData(t ElementType, n int) interface{} {
	switch t {
	case TypeInt8:
		return make([]int8, n)
	case TypeInt16:
		return make([]int16, n)
	case TypeInt32:
		return make([]int32, n)
	case TypeFloat32:
		return make([]float32, n)
	case TypeFloat64:
		return make([]float64, n)
	case TypeString:
		return make([]string, n)
	default:
		panic(fmt.Sprintf("harp: unsupported element type %v", t))
	}
}

// NewVariable allocates a Variable of the given shape with a freshly
// zero-valued data buffer.
func NewVariable(name string, t ElementType, dims []Dimension, unit string) *Variable {
	v := &Variable{
		Name:        name,
		ElementType: t,
		Dimensions:  append([]Dimension(nil), dims...),
		Unit:        unit,
	}
	v.data = allocData(t, v.NumElements())
	return v
}

// Float64Data returns the backing buffer as []float64. It panics if
// ElementType is not TypeFloat64; callers that don't already know the type
// should go through ConvertType first, the way every named mutator in this
// package expects.
func (v *Variable) Float64Data() []float64 {
	d, ok := v.data.([]float64)
	if !ok {
		panic(fmt.Sprintf("harp: Variable %q is not float64 (got %v)", v.Name, v.ElementType))
	}
	return d
}

func (v *Variable) Float32Data() []float32 {
	return v.data.([]float32)
}

func (v *Variable) Int32Data() []int32 {
	return v.data.([]int32)
}

func (v *Variable) Int16Data() []int16 {
	return v.data.([]int16)
}

func (v *Variable) Int8Data() []int8 {
	return v.data.([]int8)
}

func (v *Variable) StringData() []string {
	return v.data.([]string)
}

// ReplaceData swaps in a newly allocated buffer whose length must equal
// NumElements for the current Dimensions. It does not change ElementType
// or Dimensions; a caller that changes shape sets Dimensions first.
func (v *Variable) ReplaceData(data interface{}) error {
	n, err := dataLen(data)
	if err != nil {
		return err
	}
	if n != v.NumElements() {
		return NewError(ErrArrayOutOfBounds, fmt.Sprintf(
			"harp: ReplaceData: %q has %d elements, new buffer has %d", v.Name, v.NumElements(), n))
	}
	v.data = data
	return nil
}

func dataLen(data interface{}) (int, error) {
	switch d := data.(type) {
	case []int8:
		return len(d), nil
	case []int16:
		return len(d), nil
	case []int32:
		return len(d), nil
	case []float32:
		return len(d), nil
	case []float64:
		return len(d), nil
	case []string:
		return len(d), nil
	default:
		return 0, NewError(ErrInvalidType, fmt.Sprintf("harp: unsupported data buffer type %T", data))
	}
}

// Clone makes a deep copy: a new backing array, independent of v.
func (v *Variable) Clone() *Variable {
	c := &Variable{
		Name:        v.Name,
		ElementType: v.ElementType,
		Dimensions:  append([]Dimension(nil), v.Dimensions...),
		Unit:        v.Unit,
		Description: v.Description,
	}
	switch d := v.data.(type) {
	case []int8:
		c.data = append([]int8(nil), d...)
	case []int16:
		c.data = append([]int16(nil), d...)
	case []int32:
		c.data = append([]int32(nil), d...)
	case []float32:
		c.data = append([]float32(nil), d...)
	case []float64:
		c.data = append([]float64(nil), d...)
	case []string:
		c.data = append([]string(nil), d...)
	}
	return c
}

// ConvertType coerces the data buffer to dst in place. Converting a
// Variable to its own type is a no-op. String conversions are only
// supported when t is already TypeString (there is no numeric<->string
// coercion in this package, matching the ingestion libraries' own
// restriction to typed readers per field).
func (v *Variable) ConvertType(dst ElementType) error {
	if v.ElementType == dst {
		return nil
	}
	n := v.NumElements()
	f := make([]float64, n)
	switch d := v.data.(type) {
	case []int8:
		for i, x := range d {
			f[i] = float64(x)
		}
	case []int16:
		for i, x := range d {
			f[i] = float64(x)
		}
	case []int32:
		for i, x := range d {
			f[i] = float64(x)
		}
	case []float32:
		for i, x := range d {
			f[i] = float64(x)
		}
	case []float64:
		copy(f, d)
	case []string:
		return NewError(ErrInvalidType, fmt.Sprintf("harp: %q: cannot convert string data to %v", v.Name, dst))
	}
	if dst == TypeString {
		return NewError(ErrInvalidType, fmt.Sprintf("harp: %q: cannot convert %v data to string", v.Name, v.ElementType))
	}
	out := allocData(dst, n)
	switch o := out.(type) {
	case []int8:
		for i, x := range f {
			o[i] = int8(x)
		}
	case []int16:
		for i, x := range f {
			o[i] = int16(x)
		}
	case []int32:
		for i, x := range f {
			o[i] = int32(x)
		}
	case []float32:
		for i, x := range f {
			o[i] = float32(x)
		}
	case []float64:
		copy(o, f)
	}
	v.ElementType = dst
	v.data = out
	return nil
}

// ConvertUnit delegates to conv. A conversion to the Variable's current
// unit is always a successful no-op, regardless of what conv would say
// for that pair of unit strings.
func (v *Variable) ConvertUnit(conv UnitConverter, dstUnit string) error {
	if dstUnit == "" || conv.HasUnit(v, dstUnit) {
		return nil
	}
	if !conv.CanConvert(v.Unit, dstUnit) {
		return NewError(ErrUnitConversion, fmt.Sprintf(
			"harp: cannot convert %q from %q to %q", v.Name, v.Unit, dstUnit))
	}
	return conv.ConvertVariable(v, dstUnit)
}

// AddDimension inserts a new axis at position idx with the given kind and
// length, broadcasting existing data across the new axis. A length-1
// insertion at the front is the common case: broadcasting a
// time-independent variable along time before a regrid.
func (v *Variable) AddDimension(idx int, kind DimensionKind, length int) error {
	if idx < 0 || idx > len(v.Dimensions) {
		return NewError(ErrInvalidIndex, fmt.Sprintf("harp: AddDimension: index %d out of range for %q", idx, v.Name))
	}
	if len(v.Dimensions)+1 > MaxRank {
		return NewError(ErrArrayRankMismatch, fmt.Sprintf("harp: AddDimension: %q would exceed max rank %d", v.Name, MaxRank))
	}
	oldN := v.NumElements()
	newDims := make([]Dimension, 0, len(v.Dimensions)+1)
	newDims = append(newDims, v.Dimensions[:idx]...)
	newDims = append(newDims, Dimension{Kind: kind, Length: length})
	newDims = append(newDims, v.Dimensions[idx:]...)

	switch d := v.data.(type) {
	case []float64:
		out := make([]float64, oldN*length)
		for rep := 0; rep < length; rep++ {
			copy(out[rep*oldN:(rep+1)*oldN], d)
		}
		v.data = out
	case []float32:
		out := make([]float32, oldN*length)
		for rep := 0; rep < length; rep++ {
			copy(out[rep*oldN:(rep+1)*oldN], d)
		}
		v.data = out
	case []int32:
		out := make([]int32, oldN*length)
		for rep := 0; rep < length; rep++ {
			copy(out[rep*oldN:(rep+1)*oldN], d)
		}
		v.data = out
	case []int16:
		out := make([]int16, oldN*length)
		for rep := 0; rep < length; rep++ {
			copy(out[rep*oldN:(rep+1)*oldN], d)
		}
		v.data = out
	case []int8:
		out := make([]int8, oldN*length)
		for rep := 0; rep < length; rep++ {
			copy(out[rep*oldN:(rep+1)*oldN], d)
		}
		v.data = out
	case []string:
		out := make([]string, oldN*length)
		for rep := 0; rep < length; rep++ {
			copy(out[rep*oldN:(rep+1)*oldN], d)
		}
		v.data = out
	}
	v.Dimensions = newDims
	return nil
}

// ResizeDimension grows or shrinks axis idx to newLength, padding growth
// with the zero value of ElementType (NaN for float64, matching the
// regridder's "pad with NaN" rule in step 5) and truncating on
// shrink.
func (v *Variable) ResizeDimension(idx int, newLength int) error {
	if idx < 0 || idx >= len(v.Dimensions) {
		return NewError(ErrInvalidIndex, fmt.Sprintf("harp: ResizeDimension: index %d out of range for %q", idx, v.Name))
	}
	oldLength := v.Dimensions[idx].Length
	if oldLength == newLength {
		return nil
	}
	outer, inner := 1, 1
	for i, d := range v.Dimensions {
		if i < idx {
			outer *= d.Length
		} else if i > idx {
			inner *= d.Length
		}
	}
	resize := func(copyRow func(dst, src int)) {
		for o := 0; o < outer; o++ {
			n := oldLength
			if newLength < n {
				n = newLength
			}
			for k := 0; k < n; k++ {
				srcBase := (o*oldLength + k) * inner
				dstBase := (o*newLength + k) * inner
				for j := 0; j < inner; j++ {
					copyRow(dstBase+j, srcBase+j)
				}
			}
		}
	}
	switch d := v.data.(type) {
	case []float64:
		out := make([]float64, outer*newLength*inner)
		for i := range out {
			out[i] = math.NaN()
		}
		resize(func(dst, src int) { out[dst] = d[src] })
		v.data = out
	case []float32:
		out := make([]float32, outer*newLength*inner)
		resize(func(dst, src int) { out[dst] = d[src] })
		v.data = out
	case []int32:
		out := make([]int32, outer*newLength*inner)
		resize(func(dst, src int) { out[dst] = d[src] })
		v.data = out
	case []int16:
		out := make([]int16, outer*newLength*inner)
		resize(func(dst, src int) { out[dst] = d[src] })
		v.data = out
	case []int8:
		out := make([]int8, outer*newLength*inner)
		resize(func(dst, src int) { out[dst] = d[src] })
		v.data = out
	case []string:
		out := make([]string, outer*newLength*inner)
		resize(func(dst, src int) { out[dst] = d[src] })
		v.data = out
	}
	v.Dimensions[idx].Length = newLength
	return nil
}
