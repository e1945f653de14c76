package root

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"habitquest/internal/api"
	"habitquest/internal/config"
)

func newServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if host == "" {
				host = cfg.Server.Host
			}
			if port == 0 {
				port = cfg.Server.Port
			}

			log := newLogger(cfg.Logging)

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			srv := &http.Server{
				Addr:    fmt.Sprintf("%s:%d", host, port),
				Handler: api.NewServer(svc, log, time.Duration(cfg.Server.TimeoutSeconds)*time.Second).Handler(),
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", "addr", srv.Addr)
				errCh <- srv.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-stop:
				log.Info("shutting down")
				shutCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutCtx)
			}
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Bind host (default from config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Bind port (default from config)")

	return cmd
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
