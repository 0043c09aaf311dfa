package cli

import (
	"context"
	"os"

	"github.com/algopilot/algopilot/internal/txdispatch"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the algopilot CLI application.
//
// It registers all available commands, including:
//
//   - `account`: Creates, resolves, and inspects accounts.
//   - `send`: Builds, signs, and submits transactions.
//   - `params`: Inspects the network's suggested transaction parameters.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - client: The facade the commands operate on, already connected to a network.
//
// This function sets up shell completion and invokes the CLI framework to parse and run commands.
func Run(ctx context.Context, client *txdispatch.Client) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "algopilot",
		Description:           "Command-line interface for working with an Algorand network through the algopilot facade.",
		Usage:                 "algopilot [command] [flags]",
		Commands: []*cli.Command{
			accountCommand(client),
			sendCommand(client),
			paramsCommand(client),
		},
	}

	return app.Run(ctx, os.Args)
}
