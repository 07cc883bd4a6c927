// Package collocation implements harp's collocation-table collaborator.
// A Table is a flat, sortable list of pairs asserting that sample a of
// product A and sample b of product B correspond; the regridder (package
// regrid) consumes it through the Table type defined here.
package collocation

import (
	"sort"

	"github.com/google/uuid"
)

// Metadata describes the B-side product of a Pair: the file to import,
// its source identifier (used for sort-before-scan grouping, to keep a
// lazy match-product importer from thrashing back and forth across
// files), and its per-kind dimension lengths at ingestion time.
type Metadata struct {
	Filename         string
	SourceID         string
	DimensionLengths map[string]int
}

// Pair is one collocation record: (id, index into A, index into B) plus
// the B-side metadata needed to import and locate the matching sample.
type Pair struct {
	ID        uuid.UUID
	IndexA    int
	IndexB    int
	SourceA   string
	B         Metadata
}

// Table is a collection of Pairs supporting the operations the regridder
// needs: shallow-copy, filter-by-source-A, sort-by-collocation-id (or, for
// import locality, by (B.SourceID, id)), and iteration.
type Table struct {
	pairs []Pair
}

// NewTable wraps pairs (copied) into a Table.
func NewTable(pairs []Pair) *Table {
	return &Table{pairs: append([]Pair(nil), pairs...)}
}

// Clone returns a shallow copy: a new backing slice holding copies of the
// Pair values (their Metadata maps are shared), so filtering or sorting
// the clone leaves the receiver unchanged.
func (t *Table) Clone() *Table {
	return &Table{pairs: append([]Pair(nil), t.pairs...)}
}

// FilterBySourceA keeps only pairs whose SourceA matches id, in place,
// returning the receiver for chaining.
func (t *Table) FilterBySourceA(id string) *Table {
	out := t.pairs[:0]
	for _, p := range t.pairs {
		if p.SourceA == id {
			out = append(out, p)
		}
	}
	t.pairs = out
	return t
}

// SortByID orders pairs by collocation id for a linear scan.
func (t *Table) SortByID() *Table {
	sort.Slice(t.pairs, func(i, j int) bool {
		return t.pairs[i].ID.String() < t.pairs[j].ID.String()
	})
	return t
}

// SortBySourceBThenID orders pairs by (B.SourceID, id), an anti-thrashing
// ordering that groups pairs sharing a match file before a lazy importer
// scans them, without changing which pairs exist or what values get
// resampled.
func (t *Table) SortBySourceBThenID() *Table {
	sort.Slice(t.pairs, func(i, j int) bool {
		a, b := t.pairs[i], t.pairs[j]
		if a.B.SourceID != b.B.SourceID {
			return a.B.SourceID < b.B.SourceID
		}
		return a.ID.String() < b.ID.String()
	})
	return t
}

// Pairs returns the table's pairs in current order. The slice aliases the
// table's storage; callers must not mutate it.
func (t *Table) Pairs() []Pair {
	return t.pairs
}

// FindByID returns the pair with the given id and true, or the zero Pair
// and false.
func (t *Table) FindByID(id uuid.UUID) (Pair, bool) {
	for _, p := range t.pairs {
		if p.ID == id {
			return p, true
		}
	}
	return Pair{}, false
}

// Len and Swap expose the parts of sort.Interface that don't depend on a
// comparator, for callers that want to drive sort.Sort with their own
// Less (e.g. a by-sample-index scan) without going through
// SortByID/SortBySourceBThenID.
func (t *Table) Len() int      { return len(t.pairs) }
func (t *Table) Swap(i, j int) { t.pairs[i], t.pairs[j] = t.pairs[j], t.pairs[i] }
