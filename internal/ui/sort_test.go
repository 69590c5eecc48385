package ui

import (
	"testing"
	"time"

	"qnote/internal/storage"
)

func sampleNotes() []storage.Note {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []storage.Note{
		{ID: 1, Title: "cherry", CreatedAt: base, UpdatedAt: base.Add(2 * time.Hour)},
		{ID: 2, Title: "Apple", CreatedAt: base.Add(time.Hour), UpdatedAt: base},
		{ID: 3, Title: "banana", CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(time.Hour)},
	}
}

func ids(notes []storage.Note) []int64 {
	out := make([]int64, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestSortCycleReturnsToStart(t *testing.T) {
	mode := SortUpdatedDesc
	for i := 0; i < 6; i++ {
		mode = mode.Next()
	}
	if mode != SortUpdatedDesc {
		t.Errorf("after six steps mode = %v, want SortUpdatedDesc", mode)
	}
}

func TestSortIdempotent(t *testing.T) {
	for mode := SortUpdatedDesc; ; mode = mode.Next() {
		notes := sampleNotes()
		mode.Sort(notes)
		first := ids(notes)
		mode.Sort(notes)
		second := ids(notes)
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("%s: re-sort changed order: %v vs %v", mode.Name(), first, second)
				break
			}
		}
		if mode.Next() == SortUpdatedDesc {
			break
		}
	}
}

func TestSortOrders(t *testing.T) {
	tests := []struct {
		mode SortMode
		want []int64
	}{
		{SortUpdatedDesc, []int64{1, 3, 2}},
		{SortUpdatedAsc, []int64{2, 3, 1}},
		{SortTitleAsc, []int64{2, 3, 1}},
		{SortTitleDesc, []int64{1, 3, 2}},
		{SortCreatedDesc, []int64{3, 2, 1}},
		{SortCreatedAsc, []int64{1, 2, 3}},
	}
	for _, tt := range tests {
		notes := sampleNotes()
		tt.mode.Sort(notes)
		got := ids(notes)
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("%s: order = %v, want %v", tt.mode.Name(), got, tt.want)
				break
			}
		}
	}
}
