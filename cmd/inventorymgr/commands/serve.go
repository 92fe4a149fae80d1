package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/catherinevee/inventorymgr/internal/app"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/observability/tracing"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the inventory over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if host != "" {
				opts.cfg.Server.Host = host
			}
			if port != 0 {
				opts.cfg.Server.Port = port
			}
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Override the listen host")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Override the listen port")

	return cmd
}

func runServe(ctx context.Context, opts *globalOptions) error {
	log := logger.New("serve")
	cfg := opts.cfg

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    "inventorymgr",
		ServiceVersion: app.Version,
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       cfg.Tracing.Insecure,
		SampleRate:     cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("Failed to flush traces", logger.Error(err))
		}
	}()

	a, err := opts.newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info("Inventory ready",
		logger.Bool("live", a.Engine.IsLive()),
		logger.String("cache", cfg.Cache.Type),
		logger.String("address", cfg.Server.Address()),
	)

	return a.Server().Start(ctx)
}
