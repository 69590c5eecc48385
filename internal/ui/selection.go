package ui

import (
	"os"
	"path/filepath"

	"qnote/internal/notefile"
	"qnote/internal/storage"
)

// SelectionState is the set of note ids marked for batch operations. It is
// independent of the cursor and the search filter; ids stay marked across
// refreshes until cleared or acted on.
type SelectionState struct {
	ids map[int64]struct{}
}

func (s *SelectionState) Contains(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *SelectionState) Len() int { return len(s.ids) }

func (s *SelectionState) Empty() bool { return len(s.ids) == 0 }

// Toggle adds the id if absent, removes it if present.
func (s *SelectionState) Toggle(id int64) {
	if s.ids == nil {
		s.ids = make(map[int64]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAll marks every note in the current view and returns the resulting
// selection size. Already-selected notes outside the view stay selected.
func (s *SelectionState) SelectAll(notes []storage.Note) int {
	if s.ids == nil {
		s.ids = make(map[int64]struct{})
	}
	for _, n := range notes {
		if n.ID != 0 {
			s.ids[n.ID] = struct{}{}
		}
	}
	return len(s.ids)
}

// Clear empties the set and reports how many ids were removed.
func (s *SelectionState) Clear() int {
	count := len(s.ids)
	s.ids = nil
	return count
}

// DeleteAll removes every selected note from storage and drains the set.
// Deletions run independently; the count reflects how many succeeded before
// an error, and the error (if any) is returned for the caller to escalate.
func (s *SelectionState) DeleteAll(store *storage.Store) (int, error) {
	count := 0
	for id := range s.ids {
		if err := store.DeleteNote(id); err != nil {
			s.ids = nil
			return count, err
		}
		count++
	}
	s.ids = nil
	return count, nil
}

// ExportAll writes each selected, currently-visible note to dir as an
// individual markdown file. Returns (successes, failures) and always clears
// the selection, even after partial failure.
func (s *SelectionState) ExportAll(notes []storage.Note, dir string) (int, int) {
	success, failed := 0, 0
	for i := range notes {
		n := &notes[i]
		if n.ID == 0 || !s.Contains(n.ID) {
			continue
		}
		filename := filepath.Join(dir, notefile.SanitizeFilename(n.Title)+".md")
		if err := os.WriteFile(filename, []byte(notefile.Encode(n)), 0o644); err != nil {
			failed++
			continue
		}
		success++
	}
	s.ids = nil
	return success, failed
}
