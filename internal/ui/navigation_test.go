package ui

import (
	"testing"

	"qnote/internal/config"
	"qnote/internal/storage"
)

func TestClampCursor(t *testing.T) {
	tests := []struct {
		cur, n, want int
	}{
		{0, 0, -1},
		{5, 0, -1},
		{-1, 3, 0},
		{0, 3, 0},
		{2, 3, 2},
		{3, 3, 2},
		{10, 3, 2},
	}
	for _, tt := range tests {
		if got := clampCursor(tt.cur, tt.n); got != tt.want {
			t.Errorf("clampCursor(%d, %d) = %d, want %d", tt.cur, tt.n, got, tt.want)
		}
	}
}

func TestMoveCursorClampsWithoutWrapping(t *testing.T) {
	if got := moveCursor(0, 3, false); got != 0 {
		t.Errorf("up at top = %d, want 0", got)
	}
	if got := moveCursor(2, 3, true); got != 2 {
		t.Errorf("down at bottom = %d, want 2", got)
	}
	if got := moveCursor(1, 3, true); got != 2 {
		t.Errorf("down = %d, want 2", got)
	}
	if got := moveCursor(0, 0, true); got != -1 {
		t.Errorf("empty list = %d, want -1", got)
	}
}

func TestScrollPreviewSaturates(t *testing.T) {
	ui := config.Default().UI

	if got := scrollPreview(0, false, 100, ui); got != 0 {
		t.Errorf("scroll up at top = %d, want 0", got)
	}

	offset := 0
	for i := 0; i < 100; i++ {
		offset = scrollPreview(offset, true, 40, ui)
	}
	max := 40 - ui.PreviewScrollBuffer
	if offset != max {
		t.Errorf("saturated offset = %d, want %d", offset, max)
	}

	// Short content never scrolls below zero or above zero bound.
	if got := scrollPreview(0, true, 5, ui); got != 0 {
		t.Errorf("short content scrolled to %d, want 0", got)
	}
}

func TestEstimateContentHeight(t *testing.T) {
	ui := config.Default().UI

	empty := storage.Note{}
	if got := estimateContentHeight(&empty, ui); got != ui.PreviewHeaderLines {
		t.Errorf("empty body height = %d, want %d", got, ui.PreviewHeaderLines)
	}

	n := storage.Note{Content: "# Heading\nline two\nline three"}
	want := ui.PreviewHeaderLines + 3 + 1
	if got := estimateContentHeight(&n, ui); got != want {
		t.Errorf("height = %d, want %d", got, want)
	}
}
