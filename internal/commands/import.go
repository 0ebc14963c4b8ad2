package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/auditlog"
	"github.com/bankfeed-dev/bankfeed/internal/model"
)

func newImportCommand() *cobra.Command {
	var configPath string
	var hint string
	var accountID string
	var userID string
	var skipDuplicates bool
	var logDir string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Preview a statement file and commit every approved row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), configPath, accountID)
			if err != nil {
				return err
			}
			defer rt.close()

			doc, err := readDocument(args[0], hint)
			if err != nil {
				return err
			}

			preview, err := rt.service.Preview(cmd.Context(), doc, accountID, userID)
			if err != nil {
				return err
			}

			decisions := make([]model.ImportDecision, 0, len(preview.Entries))
			for _, e := range preview.Entries {
				decisions = append(decisions, model.ImportDecision{
					Fingerprint: e.Fingerprint,
					Skip:        skipDuplicates && e.IsDuplicate,
				})
			}

			result, err := rt.service.Commit(cmd.Context(), accountID, decisions, preview)
			if err != nil {
				return err
			}

			if logDir != "" {
				entry := auditlog.FromResult(accountID, args[0], preview.Format, result)
				if err := auditlog.Append(logDir, entry); err != nil {
					rt.log.Warn().Err(err).Msg("writing import log")
				}
			}

			fmt.Printf("imported: %d  skipped: %d  duplicates: %d  errored: %d\n",
				result.Imported, result.Skipped, result.Duplicates, result.Errored)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", configFile, "config file path")
	cmd.Flags().StringVar(&hint, "format", "", "explicit profile name")
	cmd.Flags().StringVar(&accountID, "account", "", "target account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&userID, "user", "", "user id for category rules")
	cmd.Flags().BoolVar(&skipDuplicates, "skip-duplicates", true, "skip rows already in the ledger")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for import-log.csv")

	return cmd
}
