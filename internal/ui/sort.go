package ui

import (
	"sort"
	"strings"

	"qnote/internal/storage"
)

// SortMode selects the comparator for the note list (cycled with the sort key).
type SortMode int

const (
	SortUpdatedDesc SortMode = iota
	SortUpdatedAsc
	SortTitleAsc
	SortTitleDesc
	SortCreatedDesc
	SortCreatedAsc
)

// Next returns the following mode in the fixed cycle.
func (m SortMode) Next() SortMode {
	switch m {
	case SortUpdatedDesc:
		return SortUpdatedAsc
	case SortUpdatedAsc:
		return SortTitleAsc
	case SortTitleAsc:
		return SortTitleDesc
	case SortTitleDesc:
		return SortCreatedDesc
	case SortCreatedDesc:
		return SortCreatedAsc
	default:
		return SortUpdatedDesc
	}
}

// Name is the display name shown in the list pane footer.
func (m SortMode) Name() string {
	switch m {
	case SortUpdatedDesc:
		return "Updated ↓"
	case SortUpdatedAsc:
		return "Updated ↑"
	case SortTitleAsc:
		return "Title A→Z"
	case SortTitleDesc:
		return "Title Z→A"
	case SortCreatedDesc:
		return "Created ↓"
	default:
		return "Created ↑"
	}
}

// Sort reorders notes in place according to the mode. Title comparison is
// case-insensitive.
func (m SortMode) Sort(notes []storage.Note) {
	sort.Slice(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		switch m {
		case SortUpdatedDesc:
			return a.UpdatedAt.After(b.UpdatedAt)
		case SortUpdatedAsc:
			return a.UpdatedAt.Before(b.UpdatedAt)
		case SortTitleAsc:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortTitleDesc:
			return strings.ToLower(a.Title) > strings.ToLower(b.Title)
		case SortCreatedDesc:
			return a.CreatedAt.After(b.CreatedAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}
