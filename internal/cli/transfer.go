package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"qnote/internal/config"
	"qnote/internal/notefile"
	"qnote/internal/storage"
)

func newExportCmd(store *storage.Store) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [id|title]...",
		Short: "Write notes as markdown files",
		Long: `Export writes each note to <output>/<sanitized title>.md in the same
format import reads back. With no arguments every note is exported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var notes []storage.Note
			if len(args) == 0 {
				all, err := store.ListNotes()
				if err != nil {
					return err
				}
				notes = all
			} else {
				for _, arg := range args {
					n, err := resolveNote(store, arg)
					if err != nil {
						return err
					}
					notes = append(notes, *n)
				}
			}

			if err := os.MkdirAll(output, 0o755); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			exported, failed := 0, 0
			for i := range notes {
				n := &notes[i]
				path := filepath.Join(output, notefile.SanitizeFilename(n.Title)+".md")
				if err := os.WriteFile(path, []byte(notefile.Encode(n)), 0o644); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "skip %q: %v\n", n.Title, err)
					failed++
					continue
				}
				exported++
			}
			if failed > 0 {
				fmt.Fprintf(out, "Exported %d notes (%d failed)\n", exported, failed)
			} else {
				fmt.Fprintf(out, "Exported %d notes\n", exported)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", ".", "target directory")
	return cmd
}

func newImportCmd(store *storage.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Create notes from markdown files",
		Long: `Import reads each file as: title on line 1, then the body. Inline @tags
anywhere in the body become the note's tags and are stripped from the text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			imported := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				draft := notefile.Parse(string(data))
				if draft == nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "skip %s: empty file\n", path)
					continue
				}
				n := storage.NewNote(draft.Title, draft.Content, draft.Tags)
				if _, err := store.CreateNote(&n); err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				imported++
			}
			fmt.Fprintf(out, "Imported %d notes\n", imported)
			return nil
		},
	}
}

func newConfigCmd(cfg config.Config) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the config location, or the settings with --show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, config.ResolveConfigPath())
			if !show {
				return nil
			}
			fmt.Fprintf(out, "\n[ui] split_ratio=%.2f message_keypresses=%d\n",
				cfg.UI.SplitRatio, cfg.UI.MessageKeypresses)
			fmt.Fprintf(out, "[editor] default_editor=%q secure_temp_files=%t\n",
				cfg.Editor.DefaultEditor, cfg.Editor.SecureTempFiles)
			fmt.Fprintf(out, "[database] path=%s wal_mode=%t synchronous=%s\n",
				cfg.Database.Path, cfg.Database.WALMode, cfg.Database.Synchronous)
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print the effective settings")
	return cmd
}
