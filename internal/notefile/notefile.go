// Package notefile holds the plain-text encodings a note travels through:
// the scratch file handed to the external editor and the markdown form used
// by export and import.
package notefile

import (
	"strings"
	"time"

	"qnote/internal/storage"
)

// Draft is an unsaved (title, content, tags) tuple parsed back from a file.
type Draft struct {
	Title   string
	Content string
	Tags    []string
}

// Date formats shared by the list pane, preview and CLI output.
const (
	DateShort = "Jan 02"
	DateFull  = "2006-01-02 15:04"
	DateOnly  = "2006-01-02"
)

func FormatDateShort(t time.Time) string { return t.Format(DateShort) }

func FormatDateFull(t time.Time) string { return t.Format(DateFull) }

func FormatDateOnly(t time.Time) string { return t.Format(DateOnly) }

// SanitizeFilename makes a note title safe to use as a file name.
func SanitizeFilename(title string) string {
	return strings.ReplaceAll(strings.ReplaceAll(title, "/", "-"), " ", "_")
}

// EncodeEditor writes the scratch-file form: title on line 1, a "#tag"
// line when tags exist, a blank separator, then the body verbatim.
func EncodeEditor(n *storage.Note) string {
	var b strings.Builder
	b.WriteString(n.Title)
	if len(n.Tags) > 0 {
		b.WriteString("\n")
		for i, tag := range n.Tags {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString("#")
			b.WriteString(tag)
		}
	}
	if n.Content != "" {
		b.WriteString("\n\n")
		b.WriteString(n.Content)
	}
	return b.String()
}

// ParseEditor reads the scratch file back. It returns nil when the file is
// empty or carries neither a title nor body content, which the caller
// treats as a cancelled edit.
func ParseEditor(content string) *Draft {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	title := strings.TrimSpace(lines[0])
	rest := lines[1:]

	// Skip blank lines between the title and whatever comes next.
	for len(rest) > 0 && strings.TrimSpace(rest[0]) == "" {
		rest = rest[1:]
	}

	var tags []string
	if len(rest) > 0 {
		if parsed, ok := parseTagLine(rest[0]); ok {
			tags = parsed
			rest = rest[1:]
		}
	}

	body := strings.TrimSpace(strings.Join(rest, "\n"))

	if title == "" {
		if body == "" {
			return nil
		}
		title = fallbackTitle(body)
	}

	return &Draft{Title: title, Content: body, Tags: tags}
}

// parseTagLine accepts a line only when every word is a "#tag" marker, so
// markdown headings like "## Notes" stay part of the body.
func parseTagLine(line string) ([]string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false
	}
	var tags []string
	for _, f := range fields {
		if !strings.HasPrefix(f, "#") {
			return nil, false
		}
		if tag := strings.TrimLeft(f, "#"); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil, false
	}
	return tags, true
}

// fallbackTitle takes the first word of the first body line, stripping
// leading markdown heading markers.
func fallbackTitle(body string) string {
	first, _, _ := strings.Cut(body, "\n")
	cleaned := strings.TrimLeft(first, "# ")
	if word := strings.Fields(cleaned); len(word) > 0 {
		return word[0]
	}
	return "Untitled"
}

// Encode renders the export form: title, an "@tag" line when tags exist,
// a blank separator, then the body.
func Encode(n *storage.Note) string {
	var b strings.Builder
	b.WriteString(n.Title)
	if len(n.Tags) > 0 {
		b.WriteString("\n")
		parts := make([]string, len(n.Tags))
		for i, tag := range n.Tags {
			parts[i] = "@" + tag
		}
		b.WriteString(strings.Join(parts, " "))
	}
	if n.Content != "" {
		b.WriteString("\n\n")
		b.WriteString(n.Content)
	}
	return b.String()
}

// Parse reads an imported markdown file: line 1 is the title, inline @tags
// anywhere in the remainder become the tag set and are removed from the
// body. Returns nil for an empty file.
func Parse(content string) *Draft {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	title, remainder, _ := strings.Cut(content, "\n")
	title = strings.TrimSpace(title)

	body, tags := extractTags(remainder)
	body = strings.TrimSpace(body)

	if title == "" {
		if body == "" {
			return nil
		}
		title = fallbackTitle(body)
	}
	return &Draft{Title: title, Content: body, Tags: tags}
}

// extractTags pulls @word tags out of text, returning the cleaned text and
// the tag list. An "@" not followed by a word character is left alone.
func extractTags(text string) (string, []string) {
	var out strings.Builder
	var tags []string
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '@' && i+1 < len(runes) && isTagRune(runes[i+1]) {
			j := i + 1
			for j < len(runes) && isTagRune(runes[j]) {
				j++
			}
			tags = append(tags, string(runes[i+1:j]))
			i = j - 1
			continue
		}
		out.WriteRune(runes[i])
	}
	return out.String(), tags
}

func isTagRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
