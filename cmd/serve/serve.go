// Package serve implements the serve command
package serve

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/credit-report/cmd/root"
	"fjacquet/credit-report/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the credit report HTTP API",
	Long: `Run the HTTP API for uploading, listing, fetching and deleting credit
reports. The server stops gracefully on SIGINT or SIGTERM.

Routes are mounted under /api/v1/reports and /api/reports; /health reports
liveness.`,
	RunE: serveFunc,
}

// lifecycle is the part of server.Server the command drives.
type lifecycle interface {
	Start() error
	Shutdown(ctx context.Context) error
}

func serveFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, c.NewServer(root.Version), c.GetConfig().Server.ShutdownTimeout, c.GetLogger())
}

// run starts srv and shuts it down once ctx is done, waiting at most
// timeout for open requests.
func run(ctx context.Context, srv lifecycle, timeout time.Duration, logger logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Forced shutdown after timeout")
		return err
	}
	return <-errCh
}
