// Package regrid implements harp's vertical regridding/smoothing engine:
// resampling every resamplable variable of a product onto a new vertical
// grid, either a fixed axis or a collocated match product's per-sample
// grid, with per-variable-category interpolation and optional
// averaging-kernel smoothing.
package regrid

import (
	"strings"

	harp "github.com/bruno-rino/harp"
)

// Category is the resample classification Categorize assigns to every
// variable in a product before regridding it.
type Category int

const (
	// Skip variables have no vertical dimension at all.
	Skip Category = iota
	// Remove variables have more than one vertical axis, are
	// string-typed, or are named like an uncertainty/averaging-kernel
	// companion variable (suffix _uncertainty or _avk).
	Remove
	// Interval variables have exactly one vertical axis (the last) and
	// a name containing _column_; they resample via layer-overlap
	// averaging.
	Interval
	// Linear variables have exactly one vertical axis (the last) and
	// none of the Remove/Interval exceptions; they resample via
	// pointwise linear interpolation.
	Linear
)

func (c Category) String() string {
	switch c {
	case Skip:
		return "skip"
	case Remove:
		return "remove"
	case Interval:
		return "interval"
	case Linear:
		return "linear"
	default:
		return "unknown"
	}
}

// Categorize classifies v by a fixed set of structural rules, checked in
// this order: Skip first (no vertical axis at all), then the Remove
// exceptions (the three above, plus a single vertical axis that is not the
// last one), then Interval's _column_ name rule, with Linear as
// the default for anything left with exactly one trailing vertical axis.
func Categorize(v *harp.Variable) Category {
	nVertical := v.CountKind(harp.DimVertical)
	if nVertical == 0 {
		return Skip
	}
	if nVertical > 1 {
		return Remove
	}
	if v.ElementType == harp.TypeString {
		return Remove
	}
	if strings.HasSuffix(v.Name, "_uncertainty") || strings.HasSuffix(v.Name, "_avk") {
		return Remove
	}
	if !v.IsVertical() {
		// a single vertical axis that isn't the trailing one doesn't
		// match any resamplable shape this engine understands.
		return Remove
	}
	if strings.Contains(v.Name, "_column_") {
		return Interval
	}
	return Linear
}
