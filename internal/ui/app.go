package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"qnote/internal/config"
	"qnote/internal/notefile"
	"qnote/internal/storage"
)

type screen int

const (
	screenList screen = iota
	screenSearch
)

// editorFinishedMsg arrives when the external editor child exits and
// bubbletea has reclaimed the terminal.
type editorFinishedMsg struct {
	err error
}

// Model is the authoritative snapshot of what the user sees. The displayed
// note list is rebuilt wholesale by refresh after every storage mutation;
// it is never assumed consistent with storage between refreshes.
type Model struct {
	store *storage.Store
	cfg   config.Config

	notes  []storage.Note
	cursor int
	screen screen

	sortMode  SortMode
	search    SearchState
	selection SelectionState

	// Committed query at the moment search mode was entered, restored on Esc
	// so cancelling never keeps partially typed text as the active filter.
	prevQuery string

	previewScroll int

	input textinput.Model

	status    string
	statusTTL int

	helpExpanded bool

	width  int
	height int

	// Note id the scratch file was seeded from; 0 while creating a new note.
	editing int64

	markdown *markdownCache
	styles   styles

	// Set before tea.Quit when a storage operation fails; Run surfaces it.
	fatal error
}

// NewModel loads the initial view from storage.
func NewModel(store *storage.Store, cfg config.Config) (Model, error) {
	m := Model{
		store:    store,
		cfg:      cfg,
		sortMode: SortUpdatedDesc,
		width:    80,
		height:   24,
		markdown: &markdownCache{},
		styles:   newStyles(cfg.Theme),
	}

	ti := textinput.New()
	ti.Placeholder = "fuzzy search"
	ti.Prompt = "/ "
	ti.CharLimit = 128
	m.input = ti

	if err := m.refresh(); err != nil {
		return m, err
	}
	return m, nil
}

// Run owns the terminal until the user quits, then reports the first fatal
// storage error if one ended the session.
func Run(store *storage.Store, cfg config.Config) error {
	m, err := NewModel(store, cfg)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.fatal != nil {
		return fm.fatal
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.tickStatus()
		if m.screen == screenSearch {
			return m.handleSearchKey(msg)
		}
		return m.handleListKey(msg)
	case editorFinishedMsg:
		return m.handleEditorFinished(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 8
	}
	return m, nil
}

// setStatus replaces the status line and arms its keypress TTL.
func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusTTL = m.cfg.UI.MessageKeypresses
}

// tickStatus burns one keypress off the message TTL. Runs before dispatch
// so a message set by the current keystroke starts with its full lifetime.
func (m *Model) tickStatus() {
	if m.statusTTL <= 0 {
		return
	}
	m.statusTTL--
	if m.statusTTL == 0 {
		m.status = ""
	}
}

// refresh rebuilds the displayed list from storage through the active
// query and sort mode, then re-clamps the cursor and rewinds the preview.
func (m *Model) refresh() error {
	notes, err := m.search.Refresh(m.store, m.sortMode)
	if err != nil {
		return fmt.Errorf("reload notes: %w", err)
	}
	m.notes = notes
	m.cursor = clampCursor(m.cursor, len(m.notes))
	m.previewScroll = 0
	return nil
}

func (m Model) fatalQuit(err error) (tea.Model, tea.Cmd) {
	m.fatal = err
	return m, tea.Quit
}

func (m *Model) hovered() *storage.Note {
	if m.cursor < 0 || m.cursor >= len(m.notes) {
		return nil
	}
	return &m.notes[m.cursor]
}

func (m *Model) navigate(down bool) {
	m.cursor = moveCursor(m.cursor, len(m.notes), down)
	m.previewScroll = 0
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.cfg.Keys
	switch key := msg.String(); key {
	case "ctrl+c", keys.Quit:
		return m, tea.Quit

	case keys.MoveDown, "down":
		m.navigate(true)
	case keys.MoveUp, "up":
		m.navigate(false)
	case keys.GotoTop:
		m.cursor = clampCursor(0, len(m.notes))
		m.previewScroll = 0
	case keys.GotoBottom:
		m.cursor = clampCursor(len(m.notes)-1, len(m.notes))
		m.previewScroll = 0

	case "ctrl+j":
		if n := m.hovered(); n != nil {
			m.previewScroll = scrollPreview(m.previewScroll, true, estimateContentHeight(n, m.cfg.UI), m.cfg.UI)
		}
	case "ctrl+k":
		if n := m.hovered(); n != nil {
			m.previewScroll = scrollPreview(m.previewScroll, false, estimateContentHeight(n, m.cfg.UI), m.cfg.UI)
		}

	case keys.New:
		return m.startEditor(nil)
	case keys.Edit, "enter":
		n := m.hovered()
		if n == nil {
			m.setStatus("No note selected")
			return m, nil
		}
		return m.startEditor(n)

	case keys.Delete:
		n := m.hovered()
		if n == nil {
			m.setStatus("No note selected")
			return m, nil
		}
		title := n.Title
		if err := m.store.DeleteNote(n.ID); err != nil {
			return m.fatalQuit(fmt.Errorf("delete note: %w", err))
		}
		if err := m.refresh(); err != nil {
			return m.fatalQuit(err)
		}
		m.setStatus("Deleted %q", title)

	case keys.Search:
		m.prevQuery = m.search.Query
		m.input.SetValue(m.search.Query)
		m.input.CursorEnd()
		m.input.Focus()
		m.screen = screenSearch

	case keys.Sort:
		m.sortMode = m.sortMode.Next()
		if err := m.refresh(); err != nil {
			return m.fatalQuit(err)
		}
		m.setStatus("Sort: %s", m.sortMode.Name())

	case keys.Export:
		n := m.hovered()
		if n == nil {
			m.setStatus("No note selected")
			return m, nil
		}
		filename := notefile.SanitizeFilename(n.Title) + ".md"
		if err := os.WriteFile(filename, []byte(notefile.Encode(n)), 0o644); err != nil {
			m.setStatus("Export failed: %v", err)
			return m, nil
		}
		m.setStatus("Exported %s", filename)

	case " ":
		if n := m.hovered(); n != nil {
			m.selection.Toggle(n.ID)
			m.navigate(true)
		}

	case "A":
		if len(m.notes) == 0 {
			m.setStatus("No notes to select")
			return m, nil
		}
		m.setStatus("Selected %d notes", m.selection.SelectAll(m.notes))

	case "C":
		if n := m.selection.Clear(); n > 0 {
			m.setStatus("Cleared %d selections", n)
		} else {
			m.setStatus("No notes selected")
		}

	case "D":
		if m.selection.Empty() {
			m.setStatus("No notes selected")
			return m, nil
		}
		count, err := m.selection.DeleteAll(m.store)
		if err != nil {
			return m.fatalQuit(fmt.Errorf("batch delete: %w", err))
		}
		if err := m.refresh(); err != nil {
			return m.fatalQuit(err)
		}
		m.setStatus("Deleted %d notes", count)

	case "X":
		if m.selection.Empty() {
			m.setStatus("No notes selected")
			return m, nil
		}
		success, failed := m.selection.ExportAll(m.notes, ".")
		if failed > 0 {
			m.setStatus("Exported %d notes (%d failed)", success, failed)
		} else {
			m.setStatus("Exported %d notes", success)
		}

	case ".":
		m.helpExpanded = !m.helpExpanded

	case "esc":
		hadSearch := m.search.Active()
		cleared := m.selection.Clear()
		if hadSearch {
			m.search.Clear()
			if err := m.refresh(); err != nil {
				return m.fatalQuit(err)
			}
		}
		switch {
		case hadSearch && cleared > 0:
			m.setStatus("Cleared search and %d selections", cleared)
		case hadSearch:
			m.setStatus("Search cleared")
		case cleared > 0:
			m.setStatus("Cleared %d selections", cleared)
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.search.SetQuery(m.prevQuery)
		if err := m.refresh(); err != nil {
			return m.fatalQuit(err)
		}
		m.input.Blur()
		m.screen = screenList
		return m, nil

	case "enter":
		m.search.SetQuery(m.input.Value())
		if err := m.refresh(); err != nil {
			return m.fatalQuit(err)
		}
		m.input.Blur()
		m.screen = screenList
		m.setStatus("Found %d notes", len(m.notes))
		return m, nil

	case "ctrl+n", "ctrl+j", "down":
		m.navigate(true)
		return m, nil
	case "ctrl+p", "ctrl+k", "up":
		m.navigate(false)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Search is live: every buffer change re-filters immediately.
	if value := m.input.Value(); value != m.search.Query {
		m.search.SetQuery(value)
		if err := m.refresh(); err != nil {
			return m.fatalQuit(err)
		}
	}
	return m, cmd
}

// startEditor seeds the scratch file and hands the terminal to the editor
// child. bubbletea restores the alternate screen on every exit path.
func (m Model) startEditor(n *storage.Note) (tea.Model, tea.Cmd) {
	if n != nil {
		m.editing = n.ID
	} else {
		m.editing = 0
	}
	if err := writeScratch(n, m.cfg.Editor); err != nil {
		m.setStatus("Cancelled")
		return m, nil
	}
	cmd := editorCommand(m.cfg.Editor, scratchPath())
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (m Model) handleEditorFinished(msg editorFinishedMsg) (tea.Model, tea.Cmd) {
	defer os.Remove(scratchPath())

	editing := m.editing
	m.editing = 0

	if msg.err != nil {
		m.setStatus("Cancelled")
		return m, nil
	}
	draft, err := readScratch()
	if err != nil || draft == nil {
		m.setStatus("Cancelled")
		return m, nil
	}

	if editing == 0 {
		note := storage.NewNote(draft.Title, draft.Content, draft.Tags)
		id, err := m.store.CreateNote(&note)
		if err != nil {
			return m.fatalQuit(fmt.Errorf("create note: %w", err))
		}
		if err := m.refresh(); err != nil {
			return m.fatalQuit(err)
		}
		for i := range m.notes {
			if m.notes[i].ID == id {
				m.cursor = i
				break
			}
		}
		m.setStatus("Created %q", draft.Title)
		return m, nil
	}

	if err := m.store.UpdateNote(editing, draft.Title, draft.Content, draft.Tags); err != nil {
		return m.fatalQuit(fmt.Errorf("update note: %w", err))
	}
	if err := m.refresh(); err != nil {
		return m.fatalQuit(err)
	}
	m.setStatus("Saved %q", draft.Title)
	return m, nil
}
