package harp

import "fmt"

// Product is an ordered collection of uniquely-named variables sharing a
// table of per-dimension-kind lengths. Products own their variables
// exclusively; Get returns the live pointer so operations can
// mutate a variable in place, while Clone (see Variable.Clone) is used
// wherever an independent copy is required.
type Product struct {
	SourceProduct string
	Metadata      map[string]string

	variables         []*Variable
	index             map[string]int
	dimensionLengths  map[DimensionKind]int
}

// NewProduct returns an empty product.
func NewProduct(sourceProduct string) *Product {
	return &Product{
		SourceProduct:    sourceProduct,
		Metadata:         map[string]string{},
		index:            map[string]int{},
		dimensionLengths: map[DimensionKind]int{},
	}
}

// Get returns the variable named name, or nil if absent. The returned
// pointer aliases the product's own storage.
func (p *Product) Get(name string) *Variable {
	if i, ok := p.index[name]; ok {
		return p.variables[i]
	}
	return nil
}

// Has reports whether name is present.
func (p *Product) Has(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Variables returns the product's variables in insertion order. The slice
// is owned by the product; callers must not mutate it, though they may
// mutate the Variables it points to.
func (p *Product) Variables() []*Variable {
	return p.variables
}

// DimensionLength returns the product-wide length recorded for kind, or 0
// if no variable has declared that kind yet.
func (p *Product) DimensionLength(kind DimensionKind) int {
	return p.dimensionLengths[kind]
}

// SetDimensionLength overrides the recorded length for kind. Used by the
// regridder when it replaces the vertical axis.
func (p *Product) SetDimensionLength(kind DimensionKind, length int) {
	p.dimensionLengths[kind] = length
}

// checkDimensions enforces the invariant that for every axis
// whose kind is not Independent, its length must equal the product's
// recorded length for that kind (if one is already recorded).
func (p *Product) checkDimensions(v *Variable) error {
	for _, d := range v.Dimensions {
		if d.Kind == DimIndependent {
			continue
		}
		if want, ok := p.dimensionLengths[d.Kind]; ok && want != d.Length {
			return NewError(ErrArrayRankMismatch, fmt.Sprintf(
				"harp: %q: axis %v has length %d, product expects %d", v.Name, d.Kind, d.Length, want))
		}
	}
	return nil
}

func (p *Product) recordDimensions(v *Variable) {
	for _, d := range v.Dimensions {
		if d.Kind == DimIndependent {
			continue
		}
		p.dimensionLengths[d.Kind] = d.Length
	}
}

// Add appends v to the product. It is an error to add a variable whose
// name is already present or whose non-independent axis
// lengths disagree with the product's existing table.
func (p *Product) Add(v *Variable) error {
	if v.Name == "" {
		return NewError(ErrInvalidName, "harp: cannot add a variable with an empty name")
	}
	if p.Has(v.Name) {
		return NewError(ErrInvalidName, fmt.Sprintf("harp: product already has a variable named %q", v.Name))
	}
	if err := p.checkDimensions(v); err != nil {
		return err
	}
	p.recordDimensions(v)
	p.index[v.Name] = len(p.variables)
	p.variables = append(p.variables, v)
	return nil
}

// Remove deletes the variable named name, preserving the relative order of
// the remaining variables . Removing an absent name is a no-op.
func (p *Product) Remove(name string) {
	i, ok := p.index[name]
	if !ok {
		return
	}
	p.variables = append(p.variables[:i], p.variables[i+1:]...)
	delete(p.index, name)
	for n, idx := range p.index {
		if idx > i {
			p.index[n] = idx - 1
		}
	}
}

// Replace substitutes the variable named v.Name with v, preserving its
// position. If no variable with that name exists, Replace behaves like
// Add.
func (p *Product) Replace(v *Variable) error {
	if err := p.checkDimensions(v); err != nil {
		return err
	}
	if i, ok := p.index[v.Name]; ok {
		p.variables[i] = v
		p.recordDimensions(v)
		return nil
	}
	return p.Add(v)
}

// Clone makes a deep copy of the product and every variable it holds, so
// mutating the copy's variables never touches the original product.
func (p *Product) Clone() *Product {
	c := NewProduct(p.SourceProduct)
	for k, v := range p.Metadata {
		c.Metadata[k] = v
	}
	for k, v := range p.dimensionLengths {
		c.dimensionLengths[k] = v
	}
	for _, v := range p.variables {
		cv := v.Clone()
		c.index[cv.Name] = len(c.variables)
		c.variables = append(c.variables, cv)
	}
	return c
}
