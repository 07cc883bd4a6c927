package interpkernel

// OverlapKind is the six-way classification of how a source interval
// [srcLo, srcHi] relates to a target interval [tgtLo, tgtHi]. The
// regridder's Interval resample category is built on this classifier.
type OverlapKind int

const (
	NoOverlapAB OverlapKind = iota // src entirely below tgt
	NoOverlapBA                    // src entirely above tgt
	Equal                          // src == tgt
	PartialAB                      // src starts before tgt, ends inside it
	PartialBA                      // src starts inside tgt, ends after it
	AContainsB                     // src covers all of tgt (shared endpoints allowed)
	BContainsA                     // tgt covers all of src (shared endpoints allowed)
)

// Classify determines the overlap scenario between source interval
// [srcLo,srcHi] and target interval [tgtLo,tgtHi], and returns the
// fraction of the target interval's width covered by the source interval
// (the weight contributed by this source layer to the target layer's
// average). Both intervals are assumed already ordered (lo <= hi); callers
// must order pressure-as-log-axis bounds before calling.
func Classify(srcLo, srcHi, tgtLo, tgtHi float64) (weight float64, kind OverlapKind) {
	width := tgtHi - tgtLo
	switch {
	case srcHi <= tgtLo:
		return 0, NoOverlapAB
	case srcLo >= tgtHi:
		return 0, NoOverlapBA
	case srcLo == tgtLo && srcHi == tgtHi:
		return 1, Equal
	case srcLo <= tgtLo && srcHi >= tgtHi:
		// source at least as wide as target: fully covers it.
		return 1, AContainsB
	case srcLo >= tgtLo && srcHi <= tgtHi:
		// target at least as wide as source: fully contains it.
		return (srcHi - srcLo) / width, BContainsA
	case srcLo <= tgtLo:
		// source starts at or before target, ends inside it.
		return (srcHi - tgtLo) / width, PartialAB
	default:
		// source starts inside target, ends at or after it.
		return (tgtHi - srcLo) / width, PartialBA
	}
}
