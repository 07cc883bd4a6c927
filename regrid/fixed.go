package regrid

import (
	"math"
	"strings"

	harp "github.com/bruno-rino/harp"
	"github.com/bruno-rino/harp/interpkernel"
	"github.com/sirupsen/logrus"
)

// isPressureUnit reports whether u is one of the registered pressure units.
// A pressure-unit axis is interpolated in log space for both the Linear
// and Interval categories, so the axis's unit alone decides the
// transform — no separate per-category policy.
func isPressureUnit(u string) bool {
	switch strings.TrimSpace(u) {
	case "Pa", "hPa", "atm":
		return true
	default:
		return false
	}
}

func isAxisShape(v *harp.Variable) bool {
	switch len(v.Dimensions) {
	case 1:
		return v.Dimensions[0].Kind == harp.DimVertical
	case 2:
		return v.Dimensions[0].Kind == harp.DimTime && v.Dimensions[1].Kind == harp.DimVertical
	default:
		return false
	}
}

// RegridFixed resamples every Linear- or Interval-category variable of
// product onto the vertical grid target describes. target must have
// dimensions {vertical} or {time,vertical}; the source axis is derived
// from product by name and unit via resolver, preferring a 1-D
// {vertical} result and falling back to 2-D {time,vertical} — the axis
// need not already be a materialized variable, only derivable.
// Remove-category variables are dropped; Skip-category variables (no
// vertical axis) are left untouched.
func RegridFixed(product *harp.Product, target *harp.Variable, resolver *harp.Resolver, kernel interpkernel.Kernel, log *logrus.Entry) error {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if !isAxisShape(target) {
		return harp.NewError(harp.ErrArrayRankMismatch, "regrid: target axis must have dimensions {vertical} or {time,vertical}")
	}
	tgt := target.Clone()
	if err := tgt.ConvertType(harp.TypeFloat64); err != nil {
		return err
	}

	src, err := resolver.GetDerived(product, target.Name, tgt.Unit, []harp.DimSignature{{Kind: harp.DimVertical}})
	if err != nil {
		src, err = resolver.GetDerived(product, target.Name, tgt.Unit,
			[]harp.DimSignature{{Kind: harp.DimTime}, {Kind: harp.DimVertical}})
		if err != nil {
			return err
		}
	}
	if !isAxisShape(src) {
		return harp.NewError(harp.ErrArrayRankMismatch, "regrid: source axis "+target.Name+" must have dimensions {vertical} or {time,vertical}")
	}
	if err := src.ConvertType(harp.TypeFloat64); err != nil {
		return err
	}

	logSpace := isPressureUnit(tgt.Unit)
	nSrcVert := src.Dimensions[len(src.Dimensions)-1].Length
	nTgtVert := tgt.Dimensions[len(tgt.Dimensions)-1].Length
	srcHasTime := len(src.Dimensions) == 2
	tgtHasTime := len(tgt.Dimensions) == 2

	srcRow := axisRowFunc(src, nSrcVert, srcHasTime, logSpace)
	tgtRow := axisRowFunc(tgt, nTgtVert, tgtHasTime, logSpace)

	nTime := 0
	if srcHasTime {
		nTime = src.Dimensions[0].Length
	}

	vars := append([]*harp.Variable(nil), product.Variables()...)
	for _, v := range vars {
		if v.Name == target.Name {
			continue
		}
		switch cat := Categorize(v); cat {
		case Skip:
			continue
		case Remove:
			log.WithField("variable", v.Name).Warn("regrid: dropping unresamplable variable")
			product.Remove(v.Name)
		case Linear, Interval:
			if srcHasTime && v.CountKind(harp.DimTime) == 0 {
				if err := v.AddDimension(0, harp.DimTime, nTime); err != nil {
					return err
				}
			}
			if err := resampleFixed(v, kernel, cat, nSrcVert, nTgtVert, srcRow, tgtRow); err != nil {
				return harp.Wrapf(harp.KindOf(err), err, "regrid: resampling %q", v.Name)
			}
		}
	}

	product.SetDimensionLength(harp.DimVertical, nTgtVert)
	return product.Replace(target.Clone())
}

func axisRowFunc(axis *harp.Variable, n int, hasTime, logSpace bool) func(t int) []float64 {
	data := axis.Float64Data()
	return func(t int) []float64 {
		off := 0
		if hasTime {
			off = t * n
		}
		row := append([]float64(nil), data[off:off+n]...)
		if logSpace {
			for i, x := range row {
				row[i] = math.Log(x)
			}
		}
		return row
	}
}

// resampleFixed replaces v's vertical axis data in place, broadcasting the
// per-time axis rows srcRow/tgtRow across every non-vertical outer index of
// v.
func resampleFixed(v *harp.Variable, kernel interpkernel.Kernel, cat Category, nSrcVert, nTgtVert int, srcRow, tgtRow func(int) []float64) error {
	if err := v.ConvertType(harp.TypeFloat64); err != nil {
		return err
	}
	outer := v.Dimensions[:len(v.Dimensions)-1]
	outerLen := 1
	for _, d := range outer {
		outerLen *= d.Length
	}
	timePos := -1
	for i, d := range outer {
		if d.Kind == harp.DimTime {
			timePos = i
			break
		}
	}
	strides := make([]int, len(outer))
	acc := 1
	for i := len(outer) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= outer[i].Length
	}

	data := v.Float64Data()
	out := make([]float64, outerLen*nTgtVert)

	srcRowCache := map[int][]float64{}
	tgtRowCache := map[int][]float64{}
	srcBoundsCache := map[int][][2]float64{}
	tgtBoundsCache := map[int][][2]float64{}

	for o := 0; o < outerLen; o++ {
		t := 0
		if timePos >= 0 {
			t = (o / strides[timePos]) % outer[timePos].Length
		}
		sRow, ok := srcRowCache[t]
		if !ok {
			sRow = srcRow(t)
			srcRowCache[t] = sRow
		}
		tRow, ok := tgtRowCache[t]
		if !ok {
			tRow = tgtRow(t)
			tgtRowCache[t] = tRow
		}
		srcY := data[o*nSrcVert : (o+1)*nSrcVert]
		dstY := out[o*nTgtVert : (o+1)*nTgtVert]
		switch cat {
		case Linear:
			kernel.Linear1D(sRow, srcY, tRow, dstY, false)
		case Interval:
			sBounds, ok := srcBoundsCache[t]
			if !ok {
				sBounds = boundsFromProfile(sRow)
				srcBoundsCache[t] = sBounds
			}
			tBounds, ok := tgtBoundsCache[t]
			if !ok {
				tBounds = boundsFromProfile(tRow)
				tgtBoundsCache[t] = tBounds
			}
			kernel.Interval(sBounds, srcY, tBounds, dstY)
		}
	}

	newDims := append([]harp.Dimension(nil), outer...)
	newDims = append(newDims, harp.Dimension{Kind: harp.DimVertical, Length: nTgtVert})
	v.Dimensions = newDims
	return v.ReplaceData(out)
}
