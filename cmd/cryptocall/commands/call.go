package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cryptocall/internal/callrequest"
	"cryptocall/internal/notify"
	"cryptocall/internal/wallet"
)

var errNotSent = errors.New("call request not sent")

// call [--phone P] [--wallet A | --connector ID] (--learn N | --trade | <topic>)
func callCmd() *cobra.Command {
	var (
		phone       string
		address     string
		connectorID string
		learn       int
		trade       bool
	)

	cmd := &cobra.Command{
		Use:   "call [topic]",
		Short: "Ask the backend to call a phone number about a topic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if wire.Submitter == nil {
				return wire.Config.RequireEndpoint()
			}
			ctx := cmd.Context()

			topic, err := resolveTopic(cmd, args, learn, trade)
			if err != nil {
				return err
			}

			if address != "" && connectorID != "" {
				return fmt.Errorf("use either --wallet or --connector, not both")
			}
			var addresses []string
			switch {
			case address != "":
				addresses = []string{address}
			case connectorID != "":
				addresses, err = wire.Session.Connect(ctx, connectorID)
				if err != nil {
					return err
				}
			}

			n := notify.NewWriter(cmd.OutOrStdout())
			outcome := wire.Submitter.Submit(ctx, wire.Phone.Set(phone), wallet.FirstAddress(addresses), topic, n)
			if outcome != callrequest.OutcomeSent {
				return errNotSent
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "phone number to call")
	cmd.Flags().StringVar(&address, "wallet", "", "wallet address to tag the request with")
	cmd.Flags().StringVar(&connectorID, "connector", "", "connect this wallet connector and use its first address")
	cmd.Flags().IntVar(&learn, "learn", -1, "index of a learn topic as listed by the topics command")
	cmd.Flags().BoolVar(&trade, "trade", false, "use the trade topic")
	return cmd
}

func resolveTopic(cmd *cobra.Command, args []string, learn int, trade bool) (string, error) {
	chosen := 0
	if len(args) == 1 {
		chosen++
	}
	if learn >= 0 {
		chosen++
	}
	if trade {
		chosen++
	}
	if chosen != 1 {
		return "", fmt.Errorf("pick exactly one of --learn, --trade or a topic argument")
	}
	if len(args) == 1 {
		return args[0], nil
	}

	c, err := wire.Topics.Load(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("load topics: %w", err)
	}
	if trade {
		return c.Trade.Label, nil
	}
	t, err := c.LearnTopic(learn)
	if err != nil {
		return "", err
	}
	return t.Label, nil
}
