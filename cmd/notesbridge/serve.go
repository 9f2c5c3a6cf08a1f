package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/entrhq/notesbridge/pkg/mcpserver"
	"github.com/entrhq/notesbridge/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the note tools over MCP stdio",
		Long: `Serve the note tools to an MCP client over stdin/stdout.
When metrics.addr is set, /metrics and /healthz are served over HTTP as well.
Diagnostics go to stderr; stdout carries only protocol messages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger
	dispatcher, err := a.dispatcher()
	if err != nil {
		return err
	}
	server := mcpserver.New(dispatcher, version, logger.With("mcp"))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// The client closing stdio ends the session and everything else.
		defer cancel()
		return server.Run(gctx)
	})

	if cfg.Metrics.Addr != "" {
		httpServer := observability.NewHTTPServer(cfg.Metrics.Addr, logger.With("http"), version)

		g.Go(func() error {
			logger.Info().Str("addr", cfg.Metrics.Addr).Msg("Metrics server listening")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Server stopped with error")
		return err
	}
	return nil
}
