package ui

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"qnote/internal/config"
	"qnote/internal/notefile"
	"qnote/internal/storage"
)

// The editor bridge hands the terminal to an external editor via
// tea.ExecProcess (see app.go), which releases raw mode and the alternate
// screen before the child runs and restores them on every exit path,
// including a failed launch. The bridge itself only deals with the scratch
// file on either side of that suspension.

const scratchFileName = "qnote-edit.md"

// scratchPath reuses one well-known temp file for every edit session.
func scratchPath() string {
	return filepath.Join(os.TempDir(), scratchFileName)
}

// writeScratch seeds the scratch file. A nil note produces an empty file
// for the new-note flow; otherwise the note is serialized in the editor
// format (title, optional #tag line, blank line, body).
func writeScratch(n *storage.Note, editorCfg config.Editor) error {
	var content string
	if n != nil {
		content = notefile.EncodeEditor(n)
	}
	perm := os.FileMode(0o644)
	if editorCfg.SecureTempFiles {
		perm = 0o600
	}
	return os.WriteFile(scratchPath(), []byte(content), perm)
}

// readScratch parses the edited scratch file back into a draft. A nil
// draft means the user left nothing usable behind and the edit is treated
// as cancelled.
func readScratch() (*notefile.Draft, error) {
	data, err := os.ReadFile(scratchPath())
	if err != nil {
		return nil, err
	}
	return notefile.ParseEditor(string(data)), nil
}

// editorCommand builds the child process for the configured editor. The
// config override wins over $EDITOR; the fallback is vi. The editor value
// may carry arguments ("code --wait").
func editorCommand(editorCfg config.Editor, path string) *exec.Cmd {
	editor := editorCfg.DefaultEditor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		parts = []string{"vi"}
	}
	args := append(parts[1:], path)
	return exec.Command(parts[0], args...)
}
