package regrid

import (
	"fmt"
	"math"

	harp "github.com/bruno-rino/harp"
	"github.com/bruno-rino/harp/collocation"
	"github.com/bruno-rino/harp/importer"
	"github.com/bruno-rino/harp/interpkernel"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func logInPlace(data []float64) {
	for i, x := range data {
		data[i] = math.Log(x)
	}
}

// unpaddedLen returns the index one past the last non-NaN entry of row.
// Every loop over a possibly-padded vertical column goes through this one
// helper rather than recomputing the scan.
func unpaddedLen(row []float64) int {
	for i := len(row) - 1; i >= 0; i-- {
		if !math.IsNaN(row[i]) {
			return i + 1
		}
	}
	return 0
}

// RegridCollocated resamples product onto the per-sample vertical grid of
// a collocated matching product, optionally applying averaging-kernel smoothing to the
// species named in smoothSet. collocationIndex[i] gives the collocation
// pair id for product's sample i; it must have product's time length.
func RegridCollocated(
	product *harp.Product,
	axisName, axisUnit string,
	table *collocation.Table,
	collocationIndex []uuid.UUID,
	smoothSet map[string]bool,
	imp importer.Importer,
	resolver *harp.Resolver,
	kernel interpkernel.Kernel,
	log *logrus.Entry,
) error {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	nTime := product.DimensionLength(harp.DimTime)
	if nTime == 0 {
		return harp.NewError(harp.ErrInvalidArgument, "regrid: product has no time dimension")
	}
	if len(collocationIndex) != nTime {
		return harp.NewError(harp.ErrInvalidArgument, "regrid: collocationIndex length must equal the product's time length")
	}

	// step 1: shallow-copy, filter to pairs matching this product, sort
	// by (SourceB, id) rather than plain id, to avoid thrashing the
	// lazy-import scan back and forth across match files.
	pairs := table.Clone().FilterBySourceA(product.SourceProduct).SortBySourceBThenID()

	// step 2.
	nMax := 0
	for _, p := range pairs.Pairs() {
		if n := p.B.DimensionLengths["vertical"]; n > nMax {
			nMax = n
		}
	}

	logSpace := isPressureUnit(axisUnit)

	// step 3.
	for _, v := range append([]*harp.Variable(nil), product.Variables()...) {
		switch Categorize(v) {
		case Remove:
			log.WithField("variable", v.Name).Warn("regrid: dropping unresamplable variable")
			product.Remove(v.Name)
		case Linear, Interval:
			if v.CountKind(harp.DimTime) == 0 {
				if err := v.AddDimension(0, harp.DimTime, nTime); err != nil {
					return err
				}
			}
		}
	}

	// step 4.
	srcAxis, err := resolver.GetDerived(product, axisName, axisUnit,
		[]harp.DimSignature{{Kind: harp.DimTime}, {Kind: harp.DimVertical}})
	if err != nil {
		return err
	}
	if err := srcAxis.ConvertType(harp.TypeFloat64); err != nil {
		return err
	}
	if logSpace {
		logInPlace(srcAxis.Float64Data())
	}
	nSrcVertTotal := srcAxis.Dimensions[1].Length

	// step 5.
	grew := nMax > product.DimensionLength(harp.DimVertical)
	if grew {
		for _, v := range product.Variables() {
			if v.IsVertical() {
				if err := v.ResizeDimension(len(v.Dimensions)-1, nMax); err != nil {
					return err
				}
			}
		}
		if err := srcAxis.ResizeDimension(1, nMax); err != nil {
			return err
		}
		product.SetDimensionLength(harp.DimVertical, nMax)
		nSrcVertTotal = nMax
	}

	// step 6.
	currentB := ""
	var matchProduct *harp.Product
	var tgtAxis *harp.Variable

	for i := 0; i < nTime; i++ {
		pairID := collocationIndex[i]
		pair, ok := pairs.FindByID(pairID)
		if !ok {
			return harp.NewError(harp.ErrNoData, fmt.Sprintf("regrid: no collocation pair for sample %d", i))
		}

		if pair.B.Filename != currentB {
			mp, err := imp.Import(pair.B.Filename)
			if err != nil {
				return err
			}
			matchProduct = mp
			currentB = pair.B.Filename

			ta, err := resolver.GetDerived(matchProduct, axisName, axisUnit,
				[]harp.DimSignature{{Kind: harp.DimTime}, {Kind: harp.DimVertical}})
			if err != nil {
				return err
			}
			if err := ta.ConvertType(harp.TypeFloat64); err != nil {
				return err
			}
			if logSpace {
				logInPlace(ta.Float64Data())
			}
			tgtAxis = ta
		}

		j, err := findMatchRow(matchProduct, pair.ID)
		if err != nil {
			return err
		}

		nTgtVertTotal := tgtAxis.Dimensions[1].Length
		srcRowFull := srcAxis.Float64Data()[i*nSrcVertTotal : (i+1)*nSrcVertTotal]
		tgtRowFull := tgtAxis.Float64Data()[j*nTgtVertTotal : (j+1)*nTgtVertTotal]
		nSrc := unpaddedLen(srcRowFull)
		nTgt := unpaddedLen(tgtRowFull)
		srcRow := srcRowFull[:nSrc]
		tgtRow := tgtRowFull[:nTgt]

		for _, v := range product.Variables() {
			if v.Name == axisName {
				continue
			}
			cat := Categorize(v)
			if cat == Skip {
				continue
			}
			if err := resampleCollocatedRow(v, i, cat, kernel, srcRow, tgtRow); err != nil {
				return harp.Wrapf(harp.KindOf(err), err, "regrid: resampling %q at sample %d", v.Name, i)
			}
			if smoothSet[v.Name] {
				if err := smoothRow(v, i, j, nTgt, matchProduct, resolver.Units); err != nil {
					return harp.Wrapf(harp.KindOf(err), err, "regrid: smoothing %q at sample %d", v.Name, i)
				}
			}
		}
	}

	// step 7: the vertical axis already sits at N_max from step 5; this
	// re-asserts it in case any in-loop growth logic is added later.
	if grew {
		product.SetDimensionLength(harp.DimVertical, nMax)
	}
	return product.Replace(srcAxis)
}

func findMatchRow(matchProduct *harp.Product, pairID uuid.UUID) (int, error) {
	idx := matchProduct.Get("collocation_index")
	if idx == nil || idx.ElementType != harp.TypeString {
		return 0, harp.NewError(harp.ErrVariableNotFound, "regrid: match product has no collocation_index variable")
	}
	want := pairID.String()
	for j, s := range idx.StringData() {
		if s == want {
			return j, nil
		}
	}
	return 0, harp.NewError(harp.ErrNoData, "regrid: collocation pair "+want+" not found in match product")
}

// resampleCollocatedRow overwrites, in place, the single time-row timeIdx
// of every non-vertical "column" in v with values resampled from srcRow
// onto tgtRow. Positions at or beyond len(tgtRow) are left/set to NaN:
// leading n_tgt outputs are valid, the remainder is NaN.
func resampleCollocatedRow(v *harp.Variable, timeIdx int, cat Category, kernel interpkernel.Kernel, srcRow, tgtRow []float64) error {
	if err := v.ConvertType(harp.TypeFloat64); err != nil {
		return err
	}
	dims := v.Dimensions
	if len(dims) == 0 || dims[0].Kind != harp.DimTime {
		return harp.NewError(harp.ErrArrayRankMismatch, fmt.Sprintf("harp: %q must carry a leading time axis for collocated regridding", v.Name))
	}
	vertLen := dims[len(dims)-1].Length
	middle := dims[1 : len(dims)-1]
	blockCount := 1
	for _, d := range middle {
		blockCount *= d.Length
	}
	timeBlockStride := blockCount * vertLen
	data := v.Float64Data()

	var srcBounds, tgtBounds [][2]float64
	if cat == Interval {
		srcBounds = boundsFromProfile(srcRow)
		tgtBounds = boundsFromProfile(tgtRow)
	}

	dst := make([]float64, vertLen)
	for b := 0; b < blockCount; b++ {
		offset := timeIdx*timeBlockStride + b*vertLen
		srcY := data[offset : offset+len(srcRow)]
		for i := range dst {
			dst[i] = math.NaN()
		}
		switch cat {
		case Linear:
			kernel.Linear1D(srcRow, srcY, tgtRow, dst[:len(tgtRow)], false)
		case Interval:
			kernel.Interval(srcBounds, srcY, tgtBounds, dst[:len(tgtRow)])
		}
		copy(data[offset:offset+vertLen], dst)
	}
	return nil
}

// smoothRow applies averaging-kernel smoothing to the
// single time-row timeIdx of v, using row matchRow of the match product's
// {v.Name}_avk (required) and {v.Name}_apriori (optional) variables.
func smoothRow(v *harp.Variable, timeIdx, matchRow, nTgt int, matchProduct *harp.Product, units harp.UnitConverter) error {
	avkVar := matchProduct.Get(v.Name + "_avk")
	if avkVar == nil {
		return harp.NewError(harp.ErrVariableNotFound, "regrid: match product has no "+v.Name+"_avk for smoothing")
	}
	if len(avkVar.Dimensions) != 3 ||
		avkVar.Dimensions[0].Kind != harp.DimTime ||
		avkVar.Dimensions[1].Kind != harp.DimVertical ||
		avkVar.Dimensions[2].Kind != harp.DimVertical ||
		avkVar.Dimensions[1].Length != avkVar.Dimensions[2].Length {
		return harp.NewError(harp.ErrArrayRankMismatch, "regrid: "+v.Name+"_avk must have dimensions {time,vertical,vertical}, square")
	}
	if err := avkVar.ConvertType(harp.TypeFloat64); err != nil {
		return err
	}
	nVert := avkVar.Dimensions[1].Length
	n := nTgt
	if n > nVert {
		n = nVert
	}

	apriori := make([]float64, n)
	if aprioriVar := matchProduct.Get(v.Name + "_apriori"); aprioriVar != nil {
		cp := aprioriVar.Clone()
		if err := cp.ConvertUnit(units, v.Unit); err != nil {
			return err
		}
		if err := cp.ConvertType(harp.TypeFloat64); err != nil {
			return err
		}
		aVertLen := cp.Dimensions[len(cp.Dimensions)-1].Length
		row := cp.Float64Data()[matchRow*aVertLen : (matchRow+1)*aVertLen]
		copy(apriori, row[:min(n, len(row))])
	}

	avkData := avkVar.Float64Data()
	rowOffset := matchRow * nVert * nVert
	avkRow := make([]float64, n*n)
	for r := 0; r < n; r++ {
		copy(avkRow[r*n:(r+1)*n], avkData[rowOffset+r*nVert:rowOffset+r*nVert+n])
	}

	dims := v.Dimensions
	vertLen := dims[len(dims)-1].Length
	middle := dims[1 : len(dims)-1]
	blockCount := 1
	for _, d := range middle {
		blockCount *= d.Length
	}
	timeBlockStride := blockCount * vertLen
	data := v.Float64Data()

	for b := 0; b < blockCount; b++ {
		offset := timeIdx*timeBlockStride + b*vertLen
		in := data[offset : offset+n]
		smoothed := applyAVK(avkRow, apriori, in, n)
		copy(data[offset:offset+n], smoothed)
	}
	return nil
}
