package harp

import (
	"fmt"

	"github.com/Knetic/govaluate"
)

// SourceRequirement names one input a Conversion needs: the variable name,
// element type, optional unit, and dimension signature the resolver must
// produce before the Conversion's Compute function can run. Sources are
// resolved and coerced to exactly this signature before Compute sees them.
type SourceRequirement struct {
	Name string
	Type ElementType
	Unit string
	Dims []DimSignature
}

// OutputSpec is the signature of the variable a Conversion produces.
type OutputSpec struct {
	Name string
	Type ElementType
	Unit string
	Dims []DimSignature
}

// ComputeFunc is a pure function over the resolved, already-coerced source
// variables (in SourceRequirement declaration order) that fills in out's
// data buffer. out is pre-allocated by the resolver to the declared shape;
// Compute must not change its shape, only its data (and may set
// out.Description).
type ComputeFunc func(out *Variable, sources []*Variable) error

// Predicate is the dynamic capability gate a Conversion can be registered
// with. Both a plain Go closure and a govaluate expression evaluated
// against a context satisfy it, unified behind one interface so
// registrations read naturally either way.
type Predicate interface {
	Enabled() bool
}

// PredicateFunc adapts a plain nullary bool function to Predicate.
type PredicateFunc func() bool

func (f PredicateFunc) Enabled() bool { return f() }

// ExprPredicate gates a Conversion on a boolean govaluate expression
// evaluated against ctx, mirroring io.go's use of
// govaluate.NewEvaluableExpressionWithFunctions to evaluate output
// expressions over product-derived variables.
type ExprPredicate struct {
	expr *govaluate.EvaluableExpression
	ctx  func() map[string]interface{}
}

// NewExprPredicate compiles expr once at registration time; ctx is called
// fresh on every Enabled() check so the predicate can react to product
// state discovered between calls.
func NewExprPredicate(expr string, ctx func() map[string]interface{}) (*ExprPredicate, error) {
	e, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, NewError(ErrInvalidArgument, fmt.Sprintf("harp: invalid predicate expression %q: %v", expr, err))
	}
	return &ExprPredicate{expr: e, ctx: ctx}, nil
}

func (p *ExprPredicate) Enabled() bool {
	var params map[string]interface{}
	if p.ctx != nil {
		params = p.ctx()
	}
	if params == nil {
		params = map[string]interface{}{}
	}
	result, err := p.expr.Evaluate(params)
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}

// Conversion is one registered rule for producing Output from Sources.
// Conversions are immutable once registered; identity is the pointer
// returned by Register, used by the resolver only for logging, never for
// plan selection (plan selection is strictly by registration order).
type Conversion struct {
	Output  OutputSpec
	Sources []SourceRequirement
	Enabled Predicate
	Note    string
	Compute ComputeFunc
}

func (c *Conversion) isEnabled() bool {
	return c.Enabled == nil || c.Enabled.Enabled()
}

// numDimensions is the rank of the output signature; the planner's
// visitor stack is indexed by (name, rank).
func (c *Conversion) numDimensions() int {
	return len(c.Output.Dims)
}

// Registry is the process-wide, append-only mapping from output variable
// name to its ordered list of candidate Conversions. A zero Registry is
// usable; NewRegistry exists for symmetry with collaborator constructors
// elsewhere in this package.
type Registry struct {
	byName map[string][]*Conversion
	order  []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string][]*Conversion{}}
}

// DefaultRegistry is the process-wide registry conversions register into
// from module init functions: built once at startup, read-only during
// resolver execution.
var DefaultRegistry = NewRegistry()

// Register appends a new Conversion to the registry under
// output.Name, returning the stored descriptor. The output name must be
// non-empty; sources may be nil or empty (a conversion with no sources is
// a constant/derived-from-nothing rule).
func (r *Registry) Register(output OutputSpec, sources []SourceRequirement, compute ComputeFunc, enabled Predicate, note string) (*Conversion, error) {
	if output.Name == "" {
		return nil, NewError(ErrInvalidName, "harp: Register: output name must not be empty")
	}
	if len(sources) > maxConversionSources {
		return nil, NewError(ErrArrayRankMismatch, fmt.Sprintf(
			"harp: Register: %q has %d sources, max is %d", output.Name, len(sources), maxConversionSources))
	}
	if compute == nil {
		return nil, NewError(ErrInvalidArgument, fmt.Sprintf("harp: Register: %q has no Compute function", output.Name))
	}
	c := &Conversion{
		Output:  output,
		Sources: append([]SourceRequirement(nil), sources...),
		Enabled: enabled,
		Note:    note,
		Compute: compute,
	}
	if r.byName == nil {
		r.byName = map[string][]*Conversion{}
	}
	if _, ok := r.byName[output.Name]; !ok {
		r.order = append(r.order, output.Name)
	}
	r.byName[output.Name] = append(r.byName[output.Name], c)
	return c, nil
}

// maxConversionSources bounds SourceRequirement lists to a small
// compile-time constant.
const maxConversionSources = 16

// Lookup returns the ordered candidate list registered for name, or nil if
// none is registered.
func (r *Registry) Lookup(name string) []*Conversion {
	return r.byName[name]
}

// Iter returns every registered Conversion across all names, grouped by
// name in registration order.
func (r *Registry) Iter() []*Conversion {
	var all []*Conversion
	for _, name := range r.order {
		all = append(all, r.byName[name]...)
	}
	return all
}
