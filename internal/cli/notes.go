package cli

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"qnote/internal/config"
	"qnote/internal/notefile"
	"qnote/internal/storage"
)

func newAddCmd(store *storage.Store) *cobra.Command {
	var content string
	var tags string

	cmd := &cobra.Command{
		Use:     "add <title>",
		Aliases: []string{"new", "a"},
		Short:   "Create a note",
		Example: `  qnote add "Standup notes" --tags work,daily --content "- review PRs"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[0])
			if title == "" {
				return fmt.Errorf("title is empty")
			}
			n := storage.NewNote(title, content, splitTags(tags))
			id, err := store.CreateNote(&n)
			if err != nil {
				return fmt.Errorf("create note: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created note %d: %s\n", id, title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "note body")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "comma-separated tags")
	return cmd
}

func newShowCmd(store *storage.Store) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id|title>",
		Aliases: []string{"cat"},
		Short:   "Print a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := resolveNote(store, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, n.Title)
			if len(n.Tags) > 0 {
				fmt.Fprintln(out, "tags: "+strings.Join(n.Tags, ", "))
			}
			fmt.Fprintf(out, "created %s, updated %s\n",
				notefile.FormatDateFull(n.CreatedAt),
				notefile.FormatDateFull(n.UpdatedAt))
			if n.Content != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, n.Content)
			}
			return nil
		},
	}
}

func newEditCmd(store *storage.Store, cfg config.Config) *cobra.Command {
	var title, content, tags string

	cmd := &cobra.Command{
		Use:   "edit <id|title>",
		Short: "Edit a note with flags or in your editor",
		Long: `Edit replaces the fields given by flags. With no flags, the note is
opened in $EDITOR (or editor.default_editor) the same way the interactive
interface does it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := resolveNote(store, args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("title") &&
				!cmd.Flags().Changed("content") &&
				!cmd.Flags().Changed("tags") {
				return editInEditor(cmd, store, cfg.Editor, n)
			}

			newTitle, newContent, newTags := n.Title, n.Content, n.Tags
			if cmd.Flags().Changed("title") {
				newTitle = title
			}
			if cmd.Flags().Changed("content") {
				newContent = content
			}
			if cmd.Flags().Changed("tags") {
				newTags = splitTags(tags)
			}
			if strings.TrimSpace(newTitle) == "" {
				return fmt.Errorf("title is empty")
			}
			if err := store.UpdateNote(n.ID, newTitle, newContent, newTags); err != nil {
				return fmt.Errorf("update note: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated note %d\n", n.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "replace the title")
	cmd.Flags().StringVar(&content, "content", "", "replace the body")
	cmd.Flags().StringVar(&tags, "tags", "", "replace the tags (comma-separated)")
	return cmd
}

func editInEditor(cmd *cobra.Command, store *storage.Store, editorCfg config.Editor, n *storage.Note) error {
	scratch := filepath.Join(os.TempDir(), "qnote-cli-edit.md")
	perm := os.FileMode(0o644)
	if editorCfg.SecureTempFiles {
		perm = 0o600
	}
	if err := os.WriteFile(scratch, []byte(notefile.EncodeEditor(n)), perm); err != nil {
		return err
	}
	defer os.Remove(scratch)

	editor := editorCfg.DefaultEditor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		parts = []string{"vi"}
	}
	child := exec.Command(parts[0], append(parts[1:], scratch)...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	if err := child.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	data, err := os.ReadFile(scratch)
	if err != nil {
		return err
	}
	draft := notefile.ParseEditor(string(data))
	if draft == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
		return nil
	}
	if err := store.UpdateNote(n.ID, draft.Title, draft.Content, draft.Tags); err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated note %d\n", n.ID)
	return nil
}

func newDeleteCmd(store *storage.Store) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id|title>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := resolveNote(store, args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd, fmt.Sprintf("Delete %q? (y/n): ", n.Title)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
			if err := store.DeleteNote(n.ID); err != nil {
				return fmt.Errorf("delete note: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %d: %s\n", n.ID, n.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
