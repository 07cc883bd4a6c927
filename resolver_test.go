package harp

import "testing"

type percentUnits struct{}

func (percentUnits) CanConvert(src, dst string) bool {
	return (src == "hPa" && dst == "Pa") || src == dst
}
func (percentUnits) HasUnit(v *Variable, u string) bool { return v.Unit == u }
func (percentUnits) ConvertVariable(v *Variable, dstUnit string) error {
	if v.Unit == "hPa" && dstUnit == "Pa" {
		for i, x := range v.Float64Data() {
			v.Float64Data()[i] = x * 100
		}
	}
	v.Unit = dstUnit
	return nil
}

func TestGetDerivedCheapPath(t *testing.T) {
	p := NewProduct("test")
	pressure := NewVariable("pressure", TypeFloat64, []Dimension{{Kind: DimTime, Length: 1}, {Kind: DimVertical, Length: 2}}, "hPa")
	copy(pressure.Float64Data(), []float64{10, 20})
	if err := p.Add(pressure); err != nil {
		t.Fatalf("Add: %v", err)
	}

	r := NewResolver(NewRegistry(), percentUnits{}, nil)
	out, err := r.GetDerived(p, "pressure", "Pa", []DimSignature{{Kind: DimTime}, {Kind: DimVertical}})
	if err != nil {
		t.Fatalf("GetDerived: %v", err)
	}
	if out.Unit != "Pa" {
		t.Errorf("unit = %q, want Pa", out.Unit)
	}
	want := []float64{1000, 2000}
	if !equalFloat64(out.Float64Data(), want) {
		t.Errorf("data = %v, want %v", out.Float64Data(), want)
	}
	// the cheap path must hand back a copy, not an alias.
	out.Float64Data()[0] = 0
	if p.Get("pressure").Float64Data()[0] != 10 {
		t.Error("GetDerived's cheap path returned a live alias into the product")
	}
}

func TestGetDerivedCycleRefused(t *testing.T) {
	reg := NewRegistry()
	compute := func(out *Variable, sources []*Variable) error { return nil }
	if _, err := reg.Register(
		OutputSpec{Name: "A", Type: TypeFloat64, Dims: []DimSignature{{Kind: DimVertical}}},
		[]SourceRequirement{{Name: "B", Type: TypeFloat64, Dims: []DimSignature{{Kind: DimVertical}}}},
		compute, nil, "A from B"); err != nil {
		t.Fatalf("Register(A): %v", err)
	}
	if _, err := reg.Register(
		OutputSpec{Name: "B", Type: TypeFloat64, Dims: []DimSignature{{Kind: DimVertical}}},
		[]SourceRequirement{{Name: "A", Type: TypeFloat64, Dims: []DimSignature{{Kind: DimVertical}}}},
		compute, nil, "B from A"); err != nil {
		t.Fatalf("Register(B): %v", err)
	}

	r := NewResolver(reg, nil, nil)
	p := NewProduct("test")
	_, err := r.GetDerived(p, "A", "", []DimSignature{{Kind: DimVertical}})
	if KindOf(err) != ErrVariableNotFound {
		t.Errorf("got kind %v, want ErrVariableNotFound (cycle should be refused, not hang)", KindOf(err))
	}
}

func TestGetDerivedIdempotentOnAlreadyPresentVariable(t *testing.T) {
	p := NewProduct("test")
	x := NewVariable("x", TypeFloat64, []Dimension{{Kind: DimVertical, Length: 2}}, "1")
	copy(x.Float64Data(), []float64{1, 2})
	if err := p.Add(x); err != nil {
		t.Fatalf("Add: %v", err)
	}
	r := NewResolver(NewRegistry(), percentUnits{}, nil)

	first, err := r.GetDerived(p, "x", "", []DimSignature{{Kind: DimVertical}})
	if err != nil {
		t.Fatalf("GetDerived (1st): %v", err)
	}
	second, err := r.GetDerived(p, "x", "", []DimSignature{{Kind: DimVertical}})
	if err != nil {
		t.Fatalf("GetDerived (2nd): %v", err)
	}
	if !equalFloat64(first.Float64Data(), second.Float64Data()) {
		t.Errorf("repeated GetDerived calls disagree: %v vs %v", first.Float64Data(), second.Float64Data())
	}
}

func TestAddDerivedDrivesDerivationChain(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(
		OutputSpec{Name: "doubled", Type: TypeFloat64, Dims: []DimSignature{{Kind: DimVertical}}},
		[]SourceRequirement{{Name: "x", Type: TypeFloat64, Dims: []DimSignature{{Kind: DimVertical}}}},
		func(out *Variable, sources []*Variable) error {
			for i, v := range sources[0].Float64Data() {
				out.Float64Data()[i] = v * 2
			}
			return nil
		}, nil, "doubled = 2*x")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	p := NewProduct("test")
	x := NewVariable("x", TypeFloat64, []Dimension{{Kind: DimVertical, Length: 3}}, "1")
	copy(x.Float64Data(), []float64{1, 2, 3})
	if err := p.Add(x); err != nil {
		t.Fatalf("Add: %v", err)
	}

	r := NewResolver(reg, nil, nil)
	if err := r.AddDerived(p, "doubled", "", []DimSignature{{Kind: DimVertical}}); err != nil {
		t.Fatalf("AddDerived: %v", err)
	}
	want := []float64{2, 4, 6}
	if got := p.Get("doubled").Float64Data(); !equalFloat64(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAddDerivedFailsWhenNoConversionApplies(t *testing.T) {
	r := NewResolver(NewRegistry(), nil, nil)
	p := NewProduct("test")
	err := r.AddDerived(p, "nonexistent", "", []DimSignature{{Kind: DimVertical}})
	if KindOf(err) != ErrVariableNotFound {
		t.Errorf("got kind %v, want ErrVariableNotFound", KindOf(err))
	}
}

func TestCheapMatchRespectsIndependentLength(t *testing.T) {
	v := NewVariable("x", TypeFloat64, []Dimension{{Kind: DimIndependent, Length: 4}}, "1")
	if !cheapMatch(v, []DimSignature{{Kind: DimIndependent, IndependentLength: 4}}) {
		t.Error("expected a matching independent length to cheap-match")
	}
	if cheapMatch(v, []DimSignature{{Kind: DimIndependent, IndependentLength: 5}}) {
		t.Error("expected a mismatched independent length to reject cheap-match")
	}
}

func TestListConversionsWithNilProductDumpsEntireRegistry(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(
		OutputSpec{Name: "y", Type: TypeFloat64, Dims: []DimSignature{{Kind: DimVertical}}},
		nil, func(*Variable, []*Variable) error { return nil }, nil, "constant y")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	r := NewResolver(reg, nil, nil)
	out := r.ListConversions(nil)
	if out == "" {
		t.Error("expected a non-empty listing")
	}
}
