package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/samplan/internal/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.HTTPAddr
			}
			handler := api.NewRouter(api.Services{
				Projects:   app.Projects,
				Status:     app.Status,
				Activities: app.Activities,
				Blockers:   app.Blockers,
				Holidays:   app.Holidays,
			}, app.Logger, app.CORSOrigins)

			server := &http.Server{
				Addr:         addr,
				Handler:      handler,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, server, cmd)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from SAMPLAN_HTTP_ADDR)")

	return cmd
}

// serve runs server until ctx is cancelled, then drains open requests.
func serve(ctx context.Context, server *http.Server, cmd *cobra.Command) error {
	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Server stopped")
	return nil
}
