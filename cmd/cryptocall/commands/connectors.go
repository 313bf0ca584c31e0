package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func connectorsCmd() *cobra.Command {
	var (
		name string
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "connectors",
		Short: "List wallet connectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := name
			if filter == "" {
				filter = wire.Config.Wallet.ConnectorName
			}
			if all {
				filter = ""
			}
			for _, c := range wire.Session.Connectors(filter) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.ID(), c.Name())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "connector display name (default from config)")
	cmd.Flags().BoolVar(&all, "all", false, "list every connector")
	return cmd
}
