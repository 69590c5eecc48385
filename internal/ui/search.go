package ui

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"qnote/internal/storage"
)

// SearchState owns the committed query, the live input buffer and the match
// offsets for highlight rendering. MatchIndexes is aligned positionally with
// the filtered note list produced by Refresh and is rebuilt on every refresh
// so highlights never refer to a stale note.
type SearchState struct {
	Query        string
	Buffer       string
	MatchIndexes [][]int

	// Target strings are rebuilt on every refresh but the backing slice is
	// reused across keystrokes.
	targets []string
}

// Active reports whether a committed query is filtering the list.
func (s *SearchState) Active() bool { return s.Query != "" }

// Clear drops the committed query, the live buffer and all match metadata.
func (s *SearchState) Clear() {
	s.Query = ""
	s.Buffer = ""
	s.MatchIndexes = nil
}

// SetQuery commits a query, keeping the live buffer in sync.
func (s *SearchState) SetQuery(query string) {
	s.Query = query
	s.Buffer = query
}

// Refresh reloads the full corpus from storage and returns the filtered,
// ordered view. With no query the corpus passes through the sort mode; with
// a query, notes are fuzzy-scored over title and body, non-matches are
// dropped and the rest ordered by descending score. Equal scores keep
// storage order so the result is deterministic.
func (s *SearchState) Refresh(store *storage.Store, mode SortMode) ([]storage.Note, error) {
	notes, err := store.ListNotes()
	if err != nil {
		return nil, err
	}

	if s.Query == "" {
		s.MatchIndexes = nil
		mode.Sort(notes)
		return notes, nil
	}

	s.targets = s.targets[:0]
	for _, n := range notes {
		s.targets = append(s.targets, n.Title+" "+n.Content)
	}

	matches := fuzzy.Find(s.Query, s.targets)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})

	filtered := make([]storage.Note, 0, len(matches))
	indexes := make([][]int, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, notes[m.Index])
		indexes = append(indexes, m.MatchedIndexes)
	}
	s.MatchIndexes = indexes
	return filtered, nil
}

// TitleMatchIndexes filters the match offsets for the note at list position
// idx down to those that fall inside its title.
func (s *SearchState) TitleMatchIndexes(idx int, title string) []int {
	if idx < 0 || idx >= len(s.MatchIndexes) {
		return nil
	}
	limit := len(title)
	var out []int
	for _, i := range s.MatchIndexes[idx] {
		if i < limit {
			out = append(out, i)
		}
	}
	return out
}
