package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"qnote/internal/config"
	"qnote/internal/notefile"
	"qnote/internal/storage"
)

const (
	indicatorGlyph = "▎"
	dateColumn     = 6 // width of the short "Jan 02" date
	maxHelpLines   = 3
)

type styles struct {
	text      lipgloss.Style
	dimmed    lipgloss.Style
	metadata  lipgloss.Style
	hover     lipgloss.Style
	selected  lipgloss.Style
	active    lipgloss.Style
	highlight lipgloss.Style
	border    lipgloss.Style
}

func newStyles(t config.Theme) styles {
	return styles{
		text:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		dimmed:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.DimmedText)),
		metadata:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Metadata)),
		hover:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.HoverIndicator)),
		selected:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.SelectionIndicator)),
		active:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.ActiveIndicator)),
		highlight: lipgloss.NewStyle().Foreground(lipgloss.Color(t.SearchHighlight)).Bold(true),
		border:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Metadata)),
	}
}

func (m Model) View() string {
	if m.width < 24 || m.height < 8 {
		return "Terminal too small"
	}

	footer := m.renderFooter()
	footerHeight := lipgloss.Height(footer)

	statusHeight := 0
	if m.status != "" {
		statusHeight = 1
	}

	paneHeight := m.height - footerHeight - statusHeight
	if paneHeight < 4 {
		paneHeight = 4
	}

	listWidth := int(float64(m.width) * m.cfg.UI.SplitRatio)
	if listWidth < 20 {
		listWidth = 20
	}
	previewWidth := m.width - listWidth

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderListPane(listWidth, paneHeight),
		m.renderPreviewPane(previewWidth, paneHeight),
	)

	var b strings.Builder
	b.WriteString(panes)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(truncate.String(" "+m.status, uint(m.width)))
		b.WriteString("\n")
	}
	b.WriteString(footer)
	return b.String()
}

func (m Model) renderListPane(width, height int) string {
	inner := width - 2
	rows := height - 2

	title := fmt.Sprintf("Notes (%d) · %s", len(m.notes), m.sortMode.Name())
	if m.search.Active() {
		title = fmt.Sprintf("Results (%d) · %q", len(m.notes), m.search.Query)
	}

	var lines []string
	if len(m.notes) == 0 {
		empty := "No notes yet"
		if m.search.Active() {
			empty = "No matches"
		}
		lines = append(lines, m.styles.dimmed.Render(empty))
	} else {
		start := 0
		if m.cursor >= rows {
			start = m.cursor - rows + 1
		}
		for i := start; i < len(m.notes) && len(lines) < rows; i++ {
			lines = append(lines, m.renderListLine(i, inner))
		}
	}

	bottom := ""
	if !m.selection.Empty() {
		bottom = fmt.Sprintf("%d selected", m.selection.Len())
	}
	return m.borderBox(title, bottom, lines, width, height)
}

// renderListLine builds one note row: state indicator, highlighted title
// truncated to fit, and a right-aligned short date.
func (m Model) renderListLine(i, width int) string {
	n := &m.notes[i]
	hovered := i == m.cursor
	selected := m.selection.Contains(n.ID)

	indicator := " "
	switch {
	case hovered && selected:
		indicator = m.styles.active.Render(indicatorGlyph)
	case hovered:
		indicator = m.styles.hover.Render(indicatorGlyph)
	case selected:
		indicator = m.styles.selected.Render(indicatorGlyph)
	}

	titleWidth := width - dateColumn - 3
	if titleWidth < 4 {
		titleWidth = 4
	}
	title := m.renderTitle(i, n.Title, titleWidth, hovered)

	pad := titleWidth - ansi.PrintableRuneWidth(title)
	if pad < 0 {
		pad = 0
	}
	date := m.styles.metadata.Render(notefile.FormatDateShort(n.UpdatedAt))
	return indicator + " " + title + strings.Repeat(" ", pad) + " " + date
}

// renderTitle styles the title runes, marking fuzzy-matched positions when
// a query is active. Match offsets are byte positions into the title.
func (m Model) renderTitle(i int, title string, width int, hovered bool) string {
	matched := make(map[int]bool)
	if m.search.Active() {
		for _, idx := range m.search.TitleMatchIndexes(i, title) {
			matched[idx] = true
		}
	}

	base := m.styles.dimmed
	if hovered {
		base = m.styles.text
	}

	total := utf8.RuneCountInString(title)
	truncated := total > width

	var b strings.Builder
	used := 0
	for bi, r := range title {
		if truncated && used == width-1 {
			break
		}
		if matched[bi] {
			b.WriteString(m.styles.highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
		used++
	}
	if truncated {
		b.WriteString(base.Render("…"))
	}
	return b.String()
}

func (m Model) renderPreviewPane(width, height int) string {
	inner := width - 2
	rows := height - 2

	n := m.hovered()
	if n == nil {
		return m.borderBox("Preview", "", []string{m.styles.dimmed.Render("Nothing to preview")}, width, height)
	}

	lines := []string{
		m.styles.text.Bold(true).Render(n.Title),
		m.styles.metadata.Render(previewMetadata(n)),
		"",
	}

	body := m.markdown.Render(n.Content, inner-2)
	offset := m.previewScroll
	if offset > len(body) {
		offset = len(body)
	}
	for _, line := range body[offset:] {
		if len(lines) >= rows {
			break
		}
		lines = append(lines, truncate.String(line, uint(inner)))
	}

	bottom := fmt.Sprintf("%d/%d", m.cursor+1, len(m.notes))
	if offset > 0 && len(body) > 0 {
		bottom += fmt.Sprintf(" · %d%%", offset*100/len(body))
	}
	return m.borderBox("Preview", bottom, lines, width, height)
}

func previewMetadata(n *storage.Note) string {
	var parts []string
	for _, tag := range n.Tags {
		parts = append(parts, "#"+tag)
	}
	parts = append(parts, notefile.FormatDateFull(n.UpdatedAt))
	return strings.Join(parts, " · ")
}

// borderBox frames content lines with a rounded border, embedding a title
// in the top edge and an optional right-aligned label in the bottom edge.
func (m Model) borderBox(topTitle, bottomTitle string, lines []string, width, height int) string {
	inner := width - 2
	rows := height - 2

	var b strings.Builder
	b.WriteString(m.styles.border.Render("╭" + embedLeft(topTitle, inner) + "╮"))
	b.WriteString("\n")

	side := m.styles.border.Render("│")
	for i := 0; i < rows; i++ {
		line := ""
		if i < len(lines) {
			line = truncate.String(lines[i], uint(inner))
		}
		pad := inner - ansi.PrintableRuneWidth(line)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(side + line + strings.Repeat(" ", pad) + side)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.border.Render("╰" + embedRight(bottomTitle, inner) + "╯"))
	return b.String()
}

func embedLeft(title string, width int) string {
	if title == "" || ansi.PrintableRuneWidth(title)+4 > width {
		return strings.Repeat("─", width)
	}
	label := "─ " + title + " "
	return label + strings.Repeat("─", width-ansi.PrintableRuneWidth(label))
}

func embedRight(title string, width int) string {
	if title == "" || ansi.PrintableRuneWidth(title)+4 > width {
		return strings.Repeat("─", width)
	}
	label := " " + title + " ─"
	return strings.Repeat("─", width-ansi.PrintableRuneWidth(label)) + label
}

func (m Model) renderFooter() string {
	if m.screen == screenSearch {
		return m.input.View() + "\n" +
			m.styles.dimmed.Render("^n/^p navigate  ⏎ accept  esc cancel")
	}

	k := m.cfg.Keys
	help := fmt.Sprintf(
		"%s/%s move  %s new  %s/⏎ edit  %s delete  %s search  %s sort  %s export  "+
			"space select  A select-all  C clear  D delete-selected  X export-selected  "+
			"%s/%s top/bottom  ^j/^k scroll  esc clear  %s quit",
		k.MoveDown, k.MoveUp, k.New, k.Edit, k.Delete, k.Search, k.Sort, k.Export,
		k.GotoTop, k.GotoBottom, k.Quit)

	if !m.helpExpanded {
		avail := m.width - 8
		if avail < 10 {
			avail = 10
		}
		return m.styles.dimmed.Render(truncate.StringWithTail(help, uint(avail), "…") + " . more")
	}

	wrapped := strings.Split(wordwrap.String(help, m.width-2), "\n")
	if len(wrapped) > maxHelpLines {
		wrapped = wrapped[:maxHelpLines]
	}
	return m.styles.dimmed.Render(strings.Join(wrapped, "\n"))
}
