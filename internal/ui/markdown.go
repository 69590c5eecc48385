package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownCache keeps a glamour renderer keyed by wrap width, so the style
// machinery is rebuilt on resize rather than on every frame.
type markdownCache struct {
	renderer *glamour.TermRenderer
	width    int
}

// Render turns a markdown body into styled preview lines. Any renderer
// problem degrades to the raw text split into lines.
func (c *markdownCache) Render(content string, width int) []string {
	if content == "" {
		return nil
	}
	if width < 10 {
		width = 10
	}
	if c.renderer == nil || c.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return strings.Split(content, "\n")
		}
		c.renderer = r
		c.width = width
	}
	out, err := c.renderer.Render(content)
	if err != nil {
		return strings.Split(content, "\n")
	}
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}
