package ui

import (
	"strings"

	"qnote/internal/config"
	"qnote/internal/storage"
)

// clampCursor keeps cur inside [0, n). Returns -1 for an empty list.
func clampCursor(cur, n int) int {
	if n <= 0 {
		return -1
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

// moveCursor steps one position, clamped at both ends. No wraparound.
func moveCursor(cur, n int, down bool) int {
	if n == 0 {
		return -1
	}
	if down {
		return clampCursor(cur+1, n)
	}
	return clampCursor(cur-1, n)
}

// estimateContentHeight guesses how many lines the preview body renders to:
// the header lines, the raw line count, and an allowance for markdown
// headings that render taller than their source.
func estimateContentHeight(n *storage.Note, ui config.UI) int {
	lines := 0
	if n.Content != "" {
		lines = strings.Count(n.Content, "\n") + 1
	}
	headings := strings.Count(n.Content, "#")
	if headings > ui.MarkdownBuffer {
		headings = ui.MarkdownBuffer
	}
	return ui.PreviewHeaderLines + lines + headings
}

// scrollPreview moves the bounded preview offset by the configured step.
// Both directions saturate: the lower bound is zero, the upper bound keeps
// the tail of the content on screen.
func scrollPreview(offset int, down bool, contentHeight int, ui config.UI) int {
	if down {
		maxScroll := contentHeight - ui.PreviewScrollBuffer
		if maxScroll < 0 {
			maxScroll = 0
		}
		offset += ui.PreviewScrollStep
		if offset > maxScroll {
			offset = maxScroll
		}
		return offset
	}
	offset -= ui.PreviewScrollStep
	if offset < 0 {
		offset = 0
	}
	return offset
}
