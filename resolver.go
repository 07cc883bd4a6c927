package harp

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Resolver plans and executes chains of registered Conversions to
// materialize a requested variable from what a Product already holds.
// It is the only core component that talks to a UnitConverter, since
// both the cheap path (copy-and-coerce) and every conversion's sources
// need unit coercion.
type Resolver struct {
	Registry *Registry
	Units    UnitConverter
	Log      *logrus.Entry

	stack []planFrame
}

// planFrame is the explicit visitor-stack entry used to detect cycles:
// pushed when a candidate at (name, rank) is entered, popped on every
// exit path. Two
// goals for the same name at different ranks (different dimension
// signatures) are independent and may both be in progress at once.
type planFrame struct {
	name string
	rank int
}

// NewResolver builds a Resolver over registry using conv for unit
// coercion. log may be nil, in which case resolver diagnostics go to
// logrus's standard logger.
func NewResolver(registry *Registry, conv UnitConverter, log *logrus.Entry) *Resolver {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Resolver{Registry: registry, Units: conv, Log: log}
}

func (r *Resolver) onStack(name string, rank int) bool {
	for _, f := range r.stack {
		if f.name == name && f.rank == rank {
			return true
		}
	}
	return false
}

func (r *Resolver) push(name string, rank int) { r.stack = append(r.stack, planFrame{name, rank}) }
func (r *Resolver) pop()                       { r.stack = r.stack[:len(r.stack)-1] }

// cheapMatch reports whether v's shape already satisfies dims: equal axis
// kinds in order, and for any Independent axis where the goal pins a
// length, an equal length.
func cheapMatch(v *Variable, dims []DimSignature) bool {
	if len(v.Dimensions) != len(dims) {
		return false
	}
	for i, want := range dims {
		if v.Dimensions[i].Kind != want.Kind {
			return false
		}
		if want.Kind == DimIndependent && want.IndependentLength > 0 && v.Dimensions[i].Length != want.IndependentLength {
			return false
		}
	}
	return true
}

// GetDerived materializes a variable named name with the requested dims,
// converting to unit if non-empty. If product already holds a matching
// variable it is deep-copied and unit-coerced; otherwise the planner is
// invoked. Element type is whatever the source variable or the winning
// Conversion naturally produces — callers that need a specific type
// should follow up with Variable.ConvertType.
func (r *Resolver) GetDerived(product *Product, name string, unit string, dims []DimSignature) (*Variable, error) {
	if v := product.Get(name); v != nil && cheapMatch(v, dims) {
		cp := v.Clone()
		if unit != "" {
			if err := cp.ConvertUnit(r.Units, unit); err != nil {
				return nil, err
			}
		}
		return cp, nil
	}
	out, err := r.derive(product, name, dims)
	if err != nil {
		return nil, Wrapf(KindOf(err), err, "could not derive variable %s", name)
	}
	if unit != "" {
		if err := out.ConvertUnit(r.Units, unit); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// getDerivedTyped is the internal "sibling call that takes a type" used to
// resolve a Conversion's SourceRequirement: get the variable by name/dims
// (recursing through the same cheap-path-then-planner logic) and coerce it
// to the declared type.
func (r *Resolver) getDerivedTyped(product *Product, req SourceRequirement) (*Variable, error) {
	v, err := r.GetDerived(product, req.Name, req.Unit, req.Dims)
	if err != nil {
		return nil, err
	}
	if err := v.ConvertType(req.Type); err != nil {
		return nil, err
	}
	return v, nil
}

// derive runs the planner for (name, dims): try each registered candidate
// in insertion order, skipping disabled or already-in-progress ones,
// recursively resolving its sources, and returning the first candidate
// whose sources and Compute both succeed.
func (r *Resolver) derive(product *Product, name string, dims []DimSignature) (*Variable, error) {
	rank := len(dims)
	candidates := r.Registry.Lookup(name)
	if len(candidates) == 0 {
		return nil, NewError(ErrVariableNotFound, fmt.Sprintf("harp: no conversion registered for %q", name))
	}
	if r.onStack(name, rank) {
		return nil, NewError(ErrVariableNotFound, fmt.Sprintf("harp: %q at rank %d is already being derived (cycle)", name, rank))
	}

	var lastErr error = NewError(ErrVariableNotFound, fmt.Sprintf("harp: no applicable conversion for %q", name))
	for _, c := range candidates {
		if !c.isEnabled() {
			continue
		}
		if c.numDimensions() != rank || !dimsMatch(c.Output.Dims, dims) {
			continue
		}

		r.push(name, rank)
		sources, err := r.resolveSources(product, c)
		if err != nil {
			r.pop()
			if KindOf(err) == ErrVariableNotFound {
				r.Log.WithField("name", name).Debug("conversion candidate rejected: source unsatisfiable")
				lastErr = err
				continue
			}
			return nil, err
		}

		out, err := r.allocateOutput(product, c.Output)
		if err != nil {
			r.pop()
			return nil, err
		}
		if err := c.Compute(out, sources); err != nil {
			r.pop()
			return nil, NewError(ErrProduct, fmt.Sprintf("harp: conversion for %q failed", name)).withCause(err)
		}
		r.pop()
		r.Log.WithField("name", name).WithField("note", c.Note).Debug("conversion applied")
		return out, nil
	}
	return nil, lastErr
}

func (e *Error) withCause(cause error) *Error {
	e.Cause = cause
	return e
}

func (r *Resolver) resolveSources(product *Product, c *Conversion) ([]*Variable, error) {
	sources := make([]*Variable, len(c.Sources))
	for i, req := range c.Sources {
		v, err := r.getDerivedTyped(product, req)
		if err != nil {
			return nil, err
		}
		sources[i] = v
	}
	return sources, nil
}

func (r *Resolver) allocateOutput(product *Product, spec OutputSpec) (*Variable, error) {
	dims := make([]Dimension, len(spec.Dims))
	for i, ds := range spec.Dims {
		if ds.Kind == DimIndependent {
			if ds.IndependentLength <= 0 {
				return nil, NewError(ErrInvalidArgument, fmt.Sprintf(
					"harp: %q: independent axis %d has no declared length", spec.Name, i))
			}
			dims[i] = Dimension{Kind: DimIndependent, Length: ds.IndependentLength}
			continue
		}
		length := product.DimensionLength(ds.Kind)
		if length == 0 {
			return nil, NewError(ErrInvalidArgument, fmt.Sprintf(
				"harp: %q: product has no known length for dimension %v", spec.Name, ds.Kind))
		}
		dims[i] = Dimension{Kind: ds.Kind, Length: length}
	}
	v := NewVariable(spec.Name, spec.Type, dims, spec.Unit)
	return v, nil
}

func dimsMatch(outputDims, goalDims []DimSignature) bool {
	if len(outputDims) != len(goalDims) {
		return false
	}
	for i := range outputDims {
		if outputDims[i].Kind != goalDims[i].Kind {
			return false
		}
		if goalDims[i].Kind == DimIndependent && goalDims[i].IndependentLength > 0 &&
			outputDims[i].IndependentLength != goalDims[i].IndependentLength {
			return false
		}
	}
	return true
}

// AddDerived ensures product contains a variable named name with the
// requested dims, deriving and inserting it if necessary. If
// a variable with that name already exists with matching dims, it is only
// unit-coerced in place (never replaced); if it exists with different
// dims, it is dropped and replaced by a freshly derived one.
func (r *Resolver) AddDerived(product *Product, name string, unit string, dims []DimSignature) error {
	if existing := product.Get(name); existing != nil {
		if cheapMatch(existing, dims) {
			if unit != "" {
				return existing.ConvertUnit(r.Units, unit)
			}
			return nil
		}
		product.Remove(name)
	}
	v, err := r.derive(product, name, dims)
	if err != nil {
		return Wrapf(KindOf(err), err, "could not derive variable %s", name)
	}
	if unit != "" {
		if err := v.ConvertUnit(r.Units, unit); err != nil {
			return err
		}
	}
	return product.Add(v)
}

// ListConversions mirrors the planner but prints a tree instead of
// executing anything. If product is nil the
// entire registry is dumped; otherwise every enabled conversion is
// printed with its source tree. Conversions are not filtered by whether
// product holds or can derive their sources: a source that is neither
// present nor derivable is printed with a one-line error beneath it.
func (r *Resolver) ListConversions(product *Product) string {
	var b strings.Builder
	if product == nil {
		for _, name := range r.Registry.order {
			for _, c := range r.Registry.byName[name] {
				r.printConversion(&b, 0, c, nil)
			}
		}
		return b.String()
	}
	for _, name := range r.Registry.order {
		for _, c := range r.Registry.byName[name] {
			if !c.isEnabled() {
				continue
			}
			r.printTree(&b, 0, product, c, nil)
		}
	}
	return b.String()
}

func (r *Resolver) printConversion(b *strings.Builder, indent int, c *Conversion, stack []planFrame) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(b, "%s%s\n", pad, signatureString(c.Output))
	for _, s := range c.Sources {
		fmt.Fprintf(b, "%s  requires %s\n", pad, signatureString(OutputSpec{Name: s.Name, Type: s.Type, Unit: s.Unit, Dims: s.Dims}))
	}
}

// printTree recurses the same way the planner does, suppressing cycles via
// the stack parameter and emitting a one-line error (rather than aborting
// the whole printout) whenever a sub-plan fails.
func (r *Resolver) printTree(b *strings.Builder, indent int, product *Product, c *Conversion, stack []planFrame) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(b, "%s%s\n", pad, signatureString(c.Output))
	frame := planFrame{c.Output.Name, c.numDimensions()}
	for _, f := range stack {
		if f == frame {
			fmt.Fprintf(b, "%s  <cycle>\n", pad)
			return
		}
	}
	stack = append(stack, frame)
	for _, s := range c.Sources {
		fmt.Fprintf(b, "%s  requires %s\n", pad, signatureString(OutputSpec{Name: s.Name, Type: s.Type, Unit: s.Unit, Dims: s.Dims}))
		if v := product.Get(s.Name); v != nil && cheapMatch(v, s.Dims) {
			fmt.Fprintf(b, "%s    (present in product)\n", pad)
			continue
		}
		candidates := r.Registry.Lookup(s.Name)
		found := false
		for _, sc := range candidates {
			if !sc.isEnabled() || sc.numDimensions() != len(s.Dims) || !dimsMatch(sc.Output.Dims, s.Dims) {
				continue
			}
			r.printTree(b, indent+2, product, sc, stack)
			found = true
			break
		}
		if !found {
			fmt.Fprintf(b, "%s    error: no applicable conversion for %s\n", pad, s.Name)
		}
	}
}

func signatureString(spec OutputSpec) string {
	var dims []string
	for _, d := range spec.Dims {
		if d.Kind == DimIndependent && d.IndependentLength > 0 {
			dims = append(dims, fmt.Sprintf("%s=%d", d.Kind, d.IndependentLength))
		} else {
			dims = append(dims, d.Kind.String())
		}
	}
	unit := spec.Unit
	if unit == "" {
		unit = "-"
	}
	return fmt.Sprintf("%s {%s} [%s] (%s)", spec.Name, strings.Join(dims, ","), unit, spec.Type)
}
