package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cryptocall/internal/catalog"
)

func topicsCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Print the topic catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if seed {
				pg, ok := wire.Topics.(*catalog.PostgresSource)
				if !ok {
					return fmt.Errorf("--seed needs CRYPTOCALL_TOPICS_DSN")
				}
				defaults, err := catalog.Embedded().Load(ctx)
				if err != nil {
					return err
				}
				if err := pg.Seed(ctx, defaults); err != nil {
					return fmt.Errorf("seed topics: %w", err)
				}
				wire.Logger.Infow("seeded call_topics", "learn", len(defaults.Learn))
			}

			c, err := wire.Topics.Load(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Learn Crypto")
			for i, t := range c.Learn {
				if t.Reward != "" {
					fmt.Fprintf(out, "  %2d  %s  (%s)\n", i, t.Label, t.Reward)
				} else {
					fmt.Fprintf(out, "  %2d  %s\n", i, t.Label)
				}
			}
			fmt.Fprintln(out, "Trade Crypto")
			fmt.Fprintf(out, "      %s\n", c.Trade.Label)
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "write the built-in topics to the Postgres catalog first")
	return cmd
}
