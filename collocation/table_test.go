package collocation

import (
	"testing"

	"github.com/google/uuid"
)

func TestFilterAndSort(t *testing.T) {
	idA, idB, idC := uuid.New(), uuid.New(), uuid.New()
	tbl := NewTable([]Pair{
		{ID: idB, SourceA: "p1", B: Metadata{SourceID: "b2"}},
		{ID: idA, SourceA: "p2", B: Metadata{SourceID: "b1"}},
		{ID: idC, SourceA: "p1", B: Metadata{SourceID: "b1"}},
	})
	filtered := tbl.Clone().FilterBySourceA("p1")
	if filtered.Len() != 2 {
		t.Fatalf("FilterBySourceA: got %d pairs, want 2", filtered.Len())
	}
	filtered.SortBySourceBThenID()
	pairs := filtered.Pairs()
	if pairs[0].B.SourceID != "b1" {
		t.Errorf("expected b1 first, got %v", pairs[0].B.SourceID)
	}
	if _, ok := filtered.FindByID(idB); !ok {
		t.Error("FindByID should find idB after filter")
	}
	if _, ok := filtered.FindByID(idA); ok {
		t.Error("FindByID should not find idA (filtered out by source)")
	}
}
