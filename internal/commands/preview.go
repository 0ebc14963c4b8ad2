package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

func newPreviewCommand() *cobra.Command {
	var configPath string
	var hint string
	var accountID string
	var userID string

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Parse a statement file and show what an import would do",
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

			printPreview(preview)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", configFile, "config file path")
	cmd.Flags().StringVar(&hint, "format", "", "explicit profile name")
	cmd.Flags().StringVar(&accountID, "account", "", "target account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&userID, "user", "", "user id for category rules")

	return cmd
}

func printPreview(p model.Preview) {
	fmt.Printf("format: %s  currency: %s  range: %s..%s\n",
		p.Format, p.Currency, p.From.Format("2006-01-02"), p.To.Format("2006-01-02"))
	fmt.Printf("income: %s  expense: %s  net: %s  skipped rows: %d\n",
		p.TotalIncome.StringFixed(2), p.TotalExpense.StringFixed(2), p.Net().StringFixed(2), p.SkippedRows)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDESCRIPTION\tAMOUNT\tDIRECTION\tDUPLICATE\tCATEGORY")
	for _, e := range p.Entries {
		dup := ""
		if e.IsDuplicate {
			dup = "dup of " + e.DuplicateOf
		}
		cat := ""
		if e.Suggested != nil {
			cat = e.Suggested.CategoryID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.OccurredOn.Format("2006-01-02"), e.Description,
			e.Amount.StringFixed(2), e.Direction, dup, cat)
	}
	w.Flush()
}
