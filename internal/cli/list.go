package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"qnote/internal/notefile"
	"qnote/internal/storage"
	"qnote/internal/ui"
)

func sortModeFromName(name string) (ui.SortMode, error) {
	switch name {
	case "updated", "":
		return ui.SortUpdatedDesc, nil
	case "created":
		return ui.SortCreatedDesc, nil
	case "title":
		return ui.SortTitleAsc, nil
	default:
		return 0, fmt.Errorf("unknown sort %q (updated, created, title)", name)
	}
}

func newListCmd(store *storage.Store) *cobra.Command {
	var tag, sortName string
	var oneline bool
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := sortModeFromName(sortName)
			if err != nil {
				return err
			}
			notes, err := store.ListNotes()
			if err != nil {
				return err
			}
			if tag != "" {
				notes = filterByTag(notes, tag)
			}
			mode.Sort(notes)
			if limit > 0 && len(notes) > limit {
				notes = notes[:limit]
			}

			out := cmd.OutOrStdout()
			for _, n := range notes {
				if oneline {
					fmt.Fprintf(out, "%d\t%s\n", n.ID, n.Title)
					continue
				}
				line := fmt.Sprintf("%4d  %s  %s", n.ID, notefile.FormatDateOnly(n.UpdatedAt), n.Title)
				if len(n.Tags) > 0 {
					line += "  [" + strings.Join(n.Tags, ", ") + "]"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "only notes carrying this tag")
	cmd.Flags().StringVar(&sortName, "sort", "updated", "sort order: updated, created, title")
	cmd.Flags().BoolVar(&oneline, "oneline", false, "id and title only")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "cap the number of rows (0 = all)")
	return cmd
}

func filterByTag(notes []storage.Note, tag string) []storage.Note {
	var out []storage.Note
	for _, n := range notes {
		for _, t := range n.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

func newSearchCmd(store *storage.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Substring search over titles, bodies and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := store.SearchNotes(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No matches")
				return nil
			}
			for _, n := range notes {
				fmt.Fprintf(out, "%4d  %s  %s\n", n.ID, notefile.FormatDateOnly(n.UpdatedAt), n.Title)
			}
			return nil
		},
	}
}

func newTagsCmd(store *storage.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag with its note count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := store.ListNotes()
			if err != nil {
				return err
			}
			counts := make(map[string]int)
			for _, n := range notes {
				for _, t := range n.Tags {
					counts[t]++
				}
			}
			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintf(out, "%4d  %s\n", counts[name], name)
			}
			return nil
		},
	}
}

func newStatsCmd(store *storage.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Corpus summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := store.ListNotes()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes")
				return nil
			}

			words := 0
			tagged := 0
			tags := make(map[string]struct{})
			for _, n := range notes {
				words += len(strings.Fields(n.Content))
				if len(n.Tags) > 0 {
					tagged++
				}
				for _, t := range n.Tags {
					tags[t] = struct{}{}
				}
			}

			fmt.Fprintf(out, "notes:       %d\n", len(notes))
			fmt.Fprintf(out, "tagged:      %d\n", tagged)
			fmt.Fprintf(out, "unique tags: %d\n", len(tags))
			fmt.Fprintf(out, "body words:  %d\n", words)
			fmt.Fprintf(out, "last update: %s\n", notefile.FormatDateFull(notes[0].UpdatedAt))
			return nil
		},
	}
}
