package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raymyers/golite/pkg/logging"
	"github.com/raymyers/golite/pkg/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	serveHost string
	servePort int
)

func newServeCmd(out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				fmt.Fprintf(errOut, "golite: %v\n", err)
				return err
			}
			if serveHost != "" {
				cfg.Server.Host = serveHost
			}
			if servePort > 0 {
				cfg.Server.Port = servePort
			}

			logger, closeLog, err := logging.New(logging.Options{
				Level:  cfg.Log.Level,
				Writer: errOut,
				File:   cfg.Log.File,
			})
			if err != nil {
				fmt.Fprintf(errOut, "golite: %v\n", err)
				return err
			}
			defer closeLog()

			scfg := server.FromConfig(cfg)
			scfg.Version = version
			srv := server.New(scfg, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()
			fmt.Fprintf(out, "golite: listening on %s\n", cfg.Server.Addr())

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&serveHost, "host", "", "Listen host (overrides config)")
	cmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
	return cmd
}
