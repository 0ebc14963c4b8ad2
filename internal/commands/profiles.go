package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

func newProfilesCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the known format profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if cfg, err := config.Load(configPath); err == nil {
				path = cfg.Import.ProfilesPath
			}

			reg, err := profile.Load(path)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSHAPE\tBANK\tCURRENCY")
			for _, p := range reg.All() {
				name := p.Name
				if p.Generic {
					name += " (generic)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p.Shape, p.Bank, p.Currency)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", configFile, "config file path")

	return cmd
}
