package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "notes.db"), DefaultOptions())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	n := NewNote("Groceries", "- milk\n- eggs", []string{"home", "shopping"})
	id, err := s.CreateNote(&n)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	got, err := s.GetNote(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected note, got nil")
	}
	if got.Title != "Groceries" || got.Content != "- milk\n- eggs" {
		t.Errorf("unexpected note: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "home" || got.Tags[1] != "shopping" {
		t.Errorf("unexpected tags: %v", got.Tags)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Errorf("updated_at %v before created_at %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	s := openTestStore(t)
	got, err := s.GetNote(42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestListOrderedByUpdatedDesc(t *testing.T) {
	s := openTestStore(t)

	old := NewNote("old", "", nil)
	old.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	old.UpdatedAt = old.CreatedAt
	recent := NewNote("recent", "", nil)
	recent.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	recent.UpdatedAt = recent.CreatedAt

	if _, err := s.CreateNote(&old); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateNote(&recent); err != nil {
		t.Fatal(err)
	}

	notes, err := s.ListNotes()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].Title != "recent" || notes[1].Title != "old" {
		t.Errorf("wrong order: %q, %q", notes[0].Title, notes[1].Title)
	}
}

func TestUpdateBumpsTimestamp(t *testing.T) {
	s := openTestStore(t)

	n := NewNote("before", "body", nil)
	n.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n.UpdatedAt = n.CreatedAt
	id, err := s.CreateNote(&n)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateNote(id, "after", "new body", []string{"x"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.GetNote(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "after" || got.Content != "new body" {
		t.Errorf("update not applied: %+v", got)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("updated_at not bumped: %v <= %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	n := NewNote("doomed", "", nil)
	id, err := s.CreateNote(&n)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteNote(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := s.GetNote(id)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("note still present after delete")
	}
	// Deleting a missing id is not an error.
	if err := s.DeleteNote(id); err != nil {
		t.Fatalf("re-delete: %v", err)
	}
}

func TestSearchNotes(t *testing.T) {
	s := openTestStore(t)

	for _, n := range []Note{
		NewNote("Groceries", "buy milk", nil),
		NewNote("Budget", "plan groceries spending", nil),
		NewNote("Workout", "leg day", []string{"health"}),
	} {
		note := n
		if _, err := s.CreateNote(&note); err != nil {
			t.Fatal(err)
		}
	}

	hits, err := s.SearchNotes("groceries")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}

	hits, err = s.SearchNotes("health")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Title != "Workout" {
		t.Errorf("tag search failed: %+v", hits)
	}
}

func TestNewNoteDropsEmptyTags(t *testing.T) {
	n := NewNote("t", "c", []string{"a", "", "  ", "b"})
	if len(n.Tags) != 2 || n.Tags[0] != "a" || n.Tags[1] != "b" {
		t.Errorf("unexpected tags: %v", n.Tags)
	}
}
