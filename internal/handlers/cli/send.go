package cli

import (
	"context"
	"fmt"

	"github.com/algopilot/algopilot/internal/txcompose"
	"github.com/algopilot/algopilot/internal/txdispatch"

	"github.com/urfave/cli/v3"
)

// sendCommand groups the transaction submission subcommands.
func sendCommand(client *txdispatch.Client) *cli.Command {
	return &cli.Command{
		Name:        "send",
		Description: "Build, sign, and submit transactions on the connected network.",
		Usage:       "algopilot send [subcommand] [flags]",
		Commands: []*cli.Command{
			sendPaymentCommand(client),
		},
	}
}

// sendPaymentCommand returns a CLI command that submits a payment and waits
// for its confirmation. The sender must have a registered signer.
//
// Usage example:
//
//	algopilot send payment --from SENDER --to RECEIVER --amount 1000000
func sendPaymentCommand(client *txdispatch.Client) *cli.Command {
	return &cli.Command{
		Name:        "payment",
		Description: "Send microalgos from one account to another.",
		Usage:       "Submits a payment and waits for its confirmation. Must provide sender, receiver, and amount.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "Sender address; its signer must be registered",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "Receiver address",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "amount",
				Usage:    "Amount to transfer, in microalgos",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "note",
				Usage: "Optional note stored with the transaction",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			params := txcompose.PaymentParams{
				Sender:   cmd.String("from"),
				Receiver: cmd.String("to"),
				Amount:   cmd.Uint64("amount"),
			}
			if note := cmd.String("note"); note != "" {
				params.Note = []byte(note)
			}

			result, err := client.Send().Payment(ctx, params)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			fmt.Fprintf(out, "transaction: %s\n", result.TxID)
			fmt.Fprintf(out, "confirmed round: %d\n", result.Confirmation.ConfirmedRound)
			return nil
		},
	}
}
