package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cryptocall/internal/app"
	"cryptocall/internal/config"
	"cryptocall/internal/log"
)

var (
	configFile string
	wire       *app.Wire
)

func Execute() error {
	if err := execute(newRootCmd()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

// execute runs root and releases the wire whether or not the command failed.
// cobra skips post-run hooks after a RunE error.
func execute(root *cobra.Command) error {
	defer releaseWire()
	return root.Execute()
}

func releaseWire() {
	if wire == nil {
		return
	}
	_ = wire.Logger.Sync()
	wire.Close()
	wire = nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cryptocall",
		Short:         "Request an automated phone call about a crypto topic",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			logger, err := log.NewSugar(cfg.Env)
			if err != nil {
				return fmt.Errorf("logger error: %w", err)
			}
			wire, err = app.NewWire(cmd.Context(), cfg, logger)
			return err
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (keys as CRYPTOCALL_* variables)")

	root.AddCommand(serveCmd(), callCmd(), topicsCmd(), balanceCmd(), connectorsCmd())
	root.SetContext(context.Background())
	return root
}
