package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cryptocall/internal/server"
	"cryptocall/internal/wallet"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local JSON API the widget front-end talks to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config
			if err := cfg.RequireEndpoint(); err != nil {
				return err
			}
			state, err := wire.State()
			if err != nil {
				return err
			}

			var rpc wallet.HealthChecker
			if wire.Chain != nil {
				rpc = wire.Chain
			}
			apiServer := server.NewServer(cfg, state, wire.Topics, rpc, wire.Logger.Named("server"))

			errCh := make(chan error, 1)
			go func() {
				if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			ch := make(chan os.Signal, 1)
			signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-ch:
			case err := <-errCh:
				if err != nil {
					return err
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Service.ShutdownTimeout)
			defer cancel()
			wire.Logger.Infow("shutting down")
			return apiServer.Shutdown(ctx)
		},
	}
}
