package commands

import (
	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bankfeed",
		Short:   "Import bank statement exports into an account ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newDetectCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newProfilesCommand())

	return rootCmd
}
