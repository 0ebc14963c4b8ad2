package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDetectCommand() *cobra.Command {
	var configPath string
	var hint string

	cmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Show which format profile a statement file resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), configPath, "")
			if err != nil {
				return err
			}
			defer rt.close()

			doc, err := readDocument(args[0], hint)
			if err != nil {
				return err
			}

			prof, err := rt.service.Detect(doc)
			if err != nil {
				return fmt.Errorf("could not recognize this file layout: %w", err)
			}

			fmt.Printf("%s\t%s\t%s\n", prof.Name, prof.Shape, prof.Bank)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", configFile, "config file path")
	cmd.Flags().StringVar(&hint, "format", "", "explicit profile name")

	return cmd
}
