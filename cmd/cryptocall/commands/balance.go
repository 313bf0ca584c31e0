package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cryptocall/internal/wallet"
)

func balanceCmd() *cobra.Command {
	var connectorID string

	cmd := &cobra.Command{
		Use:   "balance [address]",
		Short: "Print the native balance of an address or connected wallet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if wire.Balances == nil {
				return fmt.Errorf("CRYPTOCALL_CHAIN_RPC_URL is required")
			}
			ctx := cmd.Context()

			var address string
			switch {
			case len(args) == 1:
				address = args[0]
			case connectorID != "":
				addrs, err := wire.Session.Connect(ctx, connectorID)
				if err != nil {
					return err
				}
				address = wallet.FirstAddress(addrs)
			default:
				return fmt.Errorf("pass an address or --connector")
			}

			bal, err := wire.Balances.Balance(ctx, address)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Address: %s\nBalance: %s %s\n", bal.Address, bal.Formatted, bal.Symbol)
			return nil
		},
	}
	cmd.Flags().StringVar(&connectorID, "connector", "", "connect this wallet connector and use its first address")
	return cmd
}
