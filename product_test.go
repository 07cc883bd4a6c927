package harp

import "testing"

func TestProductAddRejectsDuplicateName(t *testing.T) {
	p := NewProduct("test")
	v := NewVariable("x", TypeFloat64, []Dimension{{Kind: DimVertical, Length: 2}}, "K")
	if err := p.Add(v); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := p.Add(v.Clone()); KindOf(err) != ErrInvalidName {
		t.Errorf("got kind %v, want ErrInvalidName", KindOf(err))
	}
}

func TestProductAddRejectsDimensionMismatch(t *testing.T) {
	p := NewProduct("test")
	a := NewVariable("a", TypeFloat64, []Dimension{{Kind: DimVertical, Length: 2}}, "K")
	b := NewVariable("b", TypeFloat64, []Dimension{{Kind: DimVertical, Length: 3}}, "K")
	if err := p.Add(a); err != nil {
		t.Fatalf("Add(a): %v", err)
	}
	if err := p.Add(b); KindOf(err) != ErrArrayRankMismatch {
		t.Errorf("got kind %v, want ErrArrayRankMismatch", KindOf(err))
	}
}

func TestProductRemovePreservesOrder(t *testing.T) {
	p := NewProduct("test")
	names := []string{"a", "b", "c"}
	for _, n := range names {
		if err := p.Add(NewVariable(n, TypeFloat64, nil, "")); err != nil {
			t.Fatalf("Add(%s): %v", n, err)
		}
	}
	p.Remove("b")
	var got []string
	for _, v := range p.Variables() {
		got = append(got, v.Name)
	}
	want := []string{"a", "c"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestProductCloneIsDeep(t *testing.T) {
	p := NewProduct("test")
	v := NewVariable("x", TypeFloat64, []Dimension{{Kind: DimVertical, Length: 1}}, "K")
	v.Float64Data()[0] = 1
	if err := p.Add(v); err != nil {
		t.Fatalf("Add: %v", err)
	}
	c := p.Clone()
	c.Get("x").Float64Data()[0] = 99
	if p.Get("x").Float64Data()[0] != 1 {
		t.Error("mutating a clone's variable mutated the original product")
	}
}

func TestProductReplaceAddsIfAbsent(t *testing.T) {
	p := NewProduct("test")
	v := NewVariable("x", TypeFloat64, []Dimension{{Kind: DimVertical, Length: 1}}, "K")
	if err := p.Replace(v); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !p.Has("x") {
		t.Error("Replace on an absent name should behave like Add")
	}
}
