// Package serve handles the read-only HTTP API command
package serve

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/api"
	"fjacquet/fintrack/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ledger as a read-only JSON API",
	Long: `Serve the ledger over HTTP:
  GET /api/health
  GET /api/transactions?account_id=&limit=
  GET /api/accounts
  GET /api/stats
  GET /api/categories`,
	Args: cobra.NoArgs,
	RunE: serveFunc,
}

const shutdownTimeout = 5 * time.Second

var address string

func init() {
	Cmd.Flags().StringVarP(&address, "addr", "a", "", "Listen address (default server.address)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	logger := c.GetLogger()
	addr := address
	if addr == "" {
		addr = c.GetConfig().Server.Address
	}

	app := api.NewApp(api.NewHandler(c.GetLedger(), c.GetCategorizer(), logger))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening", logging.F("address", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutting down API")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	}
}
