package ui

import (
	"os"
	"path/filepath"
	"testing"

	"qnote/internal/storage"
)

func TestToggle(t *testing.T) {
	var s SelectionState
	s.Toggle(1)
	if !s.Contains(1) || s.Len() != 1 {
		t.Fatal("toggle should add an absent id")
	}
	s.Toggle(1)
	if s.Contains(1) || !s.Empty() {
		t.Fatal("toggle should remove a present id")
	}
}

func TestSelectAllThenClear(t *testing.T) {
	notes := []storage.Note{{ID: 1}, {ID: 2}, {ID: 3}}

	var s SelectionState
	if got := s.SelectAll(notes); got != 3 {
		t.Errorf("SelectAll = %d, want 3", got)
	}
	if got := s.Clear(); got != 3 {
		t.Errorf("Clear = %d, want 3", got)
	}
	if !s.Empty() {
		t.Error("selection should be empty after clear")
	}
}

func TestSelectAllKeepsOffViewSelections(t *testing.T) {
	var s SelectionState
	s.Toggle(99)
	if got := s.SelectAll([]storage.Note{{ID: 1}}); got != 2 {
		t.Errorf("SelectAll = %d, want 2 (existing off-view id kept)", got)
	}
	if !s.Contains(99) {
		t.Error("off-view selection should survive select-all")
	}
}

func TestDeleteAll(t *testing.T) {
	store := newTestStore(t)
	a := mustCreate(t, store, "keep", "")
	b := mustCreate(t, store, "drop one", "")
	c := mustCreate(t, store, "drop two", "")

	var s SelectionState
	s.Toggle(b)
	s.Toggle(c)

	count, err := s.DeleteAll(store)
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if count != 2 {
		t.Errorf("deleted %d, want 2", count)
	}
	if !s.Empty() {
		t.Error("selection should drain after batch delete")
	}

	remaining, err := store.ListNotes()
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != a {
		t.Errorf("remaining = %v, want just id %d", ids(remaining), a)
	}
}

func TestExportAllPartialFailure(t *testing.T) {
	notes := []storage.Note{
		{ID: 1, Title: "First", Content: "one"},
		{ID: 2, Title: "Blocked", Content: "two"},
		{ID: 3, Title: "Third", Content: "three"},
	}

	dir := t.TempDir()
	// A directory squatting on the target filename makes that write fail.
	if err := os.Mkdir(filepath.Join(dir, "Blocked.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	var s SelectionState
	s.SelectAll(notes)

	success, failed := s.ExportAll(notes, dir)
	if success != 2 || failed != 1 {
		t.Errorf("export = (%d, %d), want (2, 1)", success, failed)
	}
	if !s.Empty() {
		t.Error("selection should clear even after partial failure")
	}

	data, err := os.ReadFile(filepath.Join(dir, "First.md"))
	if err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	if string(data) != "First\n\none" {
		t.Errorf("exported content = %q", data)
	}
}

func TestExportAllSkipsFilteredOutNotes(t *testing.T) {
	var s SelectionState
	s.Toggle(1)
	s.Toggle(2)

	// Only id 1 is in the current view; id 2 stays un-exported.
	success, failed := s.ExportAll([]storage.Note{{ID: 1, Title: "Visible"}}, t.TempDir())
	if success != 1 || failed != 0 {
		t.Errorf("export = (%d, %d), want (1, 0)", success, failed)
	}
}
