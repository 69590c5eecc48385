// Package cli is the scripted command surface. Every command is a thin
// formatter over the same store the interactive interface uses; the bare
// invocation launches the interactive interface itself.
package cli

import (
	"github.com/spf13/cobra"

	"qnote/internal/config"
	"qnote/internal/storage"
	"qnote/internal/ui"
)

// NewRootCmd wires every subcommand against an already-open store.
func NewRootCmd(store *storage.Store, cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "qnote",
		Short: "Quick terminal notes",
		Long: `qnote keeps markdown notes in a local sqlite database.

Run it bare for the interactive interface, or use the subcommands for
scripting: qnote add "Standup" --tags work`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(store, cfg)
		},
	}

	root.AddCommand(
		newAddCmd(store),
		newListCmd(store),
		newShowCmd(store),
		newEditCmd(store, cfg),
		newDeleteCmd(store),
		newSearchCmd(store),
		newExportCmd(store),
		newImportCmd(store),
		newTagsCmd(store),
		newStatsCmd(store),
		newConfigCmd(cfg),
	)
	return root
}

// Execute runs the command tree and reports the exit error, if any.
func Execute(store *storage.Store, cfg config.Config) error {
	return NewRootCmd(store, cfg).Execute()
}
