package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/boklen/rentals/internal/config"
	"github.com/boklen/rentals/internal/di"
)

// Flags are parsed by config.Load so env and command line share one set of names.
var serveCmd = &cobra.Command{
	Use:                "serve [flags]",
	Short:              "Start the HTTP state service",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app := fx.New(
			fx.NopLogger,
			di.Module(fx.Replace(cfg)),
		)
		return run(ctx, app)
	},
}

func run(ctx context.Context, app *fx.App) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		return fmt.Errorf("failed to stop application: %w", err)
	}
	return nil
}
