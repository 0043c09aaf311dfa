package main

import (
	"context"
	"fmt"
	"os"

	"github.com/algopilot/algopilot/internal/config"
	"github.com/algopilot/algopilot/internal/handlers/cli"
	"github.com/algopilot/algopilot/internal/pkg/logger"
	"github.com/algopilot/algopilot/internal/pkg/telemetry"
	"github.com/algopilot/algopilot/internal/signerregistry"
	"github.com/algopilot/algopilot/internal/txdispatch"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "algopilot: %v\n", err)
		os.Exit(1)
	}
}

// run wires the configuration, observability stack, and client facade, then
// hands control to the CLI. Cleanup is deferred so it also runs on failure.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Telemetry comes up before the logger so the OTEL bridge core is
	// available when the logger initializes.
	if cfg.Telemetry {
		shutdown, err := telemetry.Init(ctx, cfg.ServiceName)
		if err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := txdispatch.FromConfig(cfg.Network(), signerregistry.WithDispenserMnemonic(cfg.DispenserMnemonic))
	if err != nil {
		return fmt.Errorf("building client: %w", err)
	}

	return cli.Run(ctx, client)
}
