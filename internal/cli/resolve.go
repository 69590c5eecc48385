package cli

import (
	"fmt"
	"strconv"
	"strings"

	"qnote/internal/storage"
)

// resolveNote accepts a numeric id or a case-insensitive title substring.
// A pattern matching more than one note is an error naming the candidates.
func resolveNote(store *storage.Store, arg string) (*storage.Note, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		n, err := store.GetNote(id)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, fmt.Errorf("no note with id %d", id)
		}
		return n, nil
	}

	notes, err := store.ListNotes()
	if err != nil {
		return nil, err
	}

	pattern := strings.ToLower(arg)
	var matches []storage.Note
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), pattern) {
			matches = append(matches, n)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no note matches %q", arg)
	case 1:
		return &matches[0], nil
	default:
		var titles []string
		for _, n := range matches {
			titles = append(titles, fmt.Sprintf("%d: %s", n.ID, n.Title))
		}
		return nil, fmt.Errorf("%q is ambiguous, candidates:\n  %s", arg, strings.Join(titles, "\n  "))
	}
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
