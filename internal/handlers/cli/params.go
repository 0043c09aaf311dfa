package cli

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/algopilot/algopilot/internal/txdispatch"

	"github.com/urfave/cli/v3"
)

// paramsCommand groups the network parameter subcommands.
func paramsCommand(client *txdispatch.Client) *cli.Command {
	return &cli.Command{
		Name:        "params",
		Description: "Inspect the network's suggested transaction parameters.",
		Usage:       "algopilot params [subcommand]",
		Commands: []*cli.Command{
			showParamsCommand(client),
		},
	}
}

// showParamsCommand returns a CLI command that prints the current suggested
// transaction parameters, served from the facade's cache.
//
// Usage example:
//
//	algopilot params show
func showParamsCommand(client *txdispatch.Client) *cli.Command {
	return &cli.Command{
		Name:        "show",
		Description: "Show the current suggested transaction parameters.",
		Usage:       "Prints the genesis information, fee floor, and validity rounds.",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			params, err := client.SuggestedParams(ctx)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			fmt.Fprintf(out, "genesis id:   %s\n", params.GenesisID)
			fmt.Fprintf(out, "genesis hash: %s\n", base64.StdEncoding.EncodeToString(params.GenesisHash))
			fmt.Fprintf(out, "fee:          %d\n", params.Fee)
			fmt.Fprintf(out, "min fee:      %d\n", params.MinFee)
			fmt.Fprintf(out, "first valid:  %d\n", params.FirstRoundValid)
			fmt.Fprintf(out, "last valid:   %d\n", params.LastRoundValid)
			fmt.Fprintf(out, "consensus:    %s\n", params.ConsensusVersion)
			return nil
		},
	}
}
