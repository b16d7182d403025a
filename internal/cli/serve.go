package cli

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockgrid/internal/server"
	"github.com/matzehuels/blockgrid/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render pipeline over HTTP",
		Long: `Serve the layout and render pipeline over HTTP.

Routes:
  POST /v1/layout             statements -> layout JSON
  POST /v1/render?format=svg  statements -> rendered artifact
  GET  /healthz               liveness probe

Render defaults (font, metrics, format) come from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServerAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// runServe listens on addr until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	logger := loggerFromContext(ctx)

	defaults, err := c.serverDefaults()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := server.NewHTTPServer(addr, server.New(runner, logger, defaults).Handler())
	prog := newProgress(logger)
	printInfo("Serving blockgrid API")
	printKeyValue("Address", "http://"+l.Addr().String())
	printKeyValue("Cache", c.Config.Cache.Backend)

	if err := server.Serve(ctx, shutdownTimeout, srv, l); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	prog.done("server stopped")
	return nil
}

// serverDefaults derives per-request render defaults from the config.
func (c *CLI) serverDefaults() (pipeline.Options, error) {
	cfg := c.Config.Render
	font, err := resolveFont("", cfg)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Font:       font,
		Antialias:  cfg.Antialias,
		CellWidth:  cfg.CellWidth,
		CellHeight: cfg.CellHeight,
		SpanWidth:  cfg.SpanWidth,
		SpanHeight: cfg.SpanHeight,
	}
	if cfg.Format != "" {
		opts.Formats = []string{cfg.Format}
	}
	return opts, nil
}
