package cli

import (
	"context"
	"fmt"

	"github.com/algopilot/algopilot/internal/signerregistry"
	"github.com/algopilot/algopilot/internal/txdispatch"

	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/urfave/cli/v3"
)

// accountCommand groups the account management subcommands.
func accountCommand(client *txdispatch.Client) *cli.Command {
	return &cli.Command{
		Name:        "account",
		Description: "Create, resolve, and inspect accounts on the connected network.",
		Usage:       "algopilot account [subcommand] [flags]",
		Commands: []*cli.Command{
			newAccountCommand(client),
			dispenserAccountCommand(client),
			kmdAccountCommand(client),
			accountInfoCommand(client),
		},
	}
}

// newAccountCommand returns a CLI command that generates a fresh random
// account and registers its signer on the facade.
//
// Usage example:
//
//	algopilot account new
func newAccountCommand(client *txdispatch.Client) *cli.Command {
	return &cli.Command{
		Name:        "new",
		Description: "Generate a fresh account and register its signer.",
		Usage:       "Creates a random account and prints its address and recovery mnemonic.",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			account, err := client.Account().Random()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "address:  %s\n", account.Address)
			if phrase := accountMnemonic(account); phrase != "" {
				fmt.Fprintf(cmd.Root().Writer, "mnemonic: %s\n", phrase)
			}
			return nil
		},
	}
}

// dispenserAccountCommand returns a CLI command that resolves the network's
// funding account, going through the default KMD wallet on LocalNet and the
// configured dispenser mnemonic everywhere else.
//
// Usage example:
//
//	algopilot account dispenser
func dispenserAccountCommand(client *txdispatch.Client) *cli.Command {
	return &cli.Command{
		Name:        "dispenser",
		Description: "Resolve the network's funding account and register its signer.",
		Usage:       "Prints the dispenser account address.",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			account, err := client.Account().Dispenser(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "address: %s\n", account.Address)
			return nil
		},
	}
}

// kmdAccountCommand returns a CLI command that selects an account from a key
// management daemon wallet and registers its signer on the facade.
//
// Usage example:
//
//	algopilot account kmd --wallet unencrypted-default-wallet
func kmdAccountCommand(client *txdispatch.Client) *cli.Command {
	return &cli.Command{
		Name:        "kmd",
		Description: "Select an account from a key management daemon wallet.",
		Usage:       "Resolves the first account of the named wallet. Must provide the wallet name.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "wallet",
				Usage:    "Wallet display name (e.g., unencrypted-default-wallet)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			account, err := client.Account().FromWallet(ctx, cmd.String("wallet"), nil)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "address: %s\n", account.Address)
			return nil
		},
	}
}

// accountInfoCommand returns a CLI command that shows the ledger state of one
// account.
//
// Usage example:
//
//	algopilot account info --address ADDRESS
func accountInfoCommand(client *txdispatch.Client) *cli.Command {
	return &cli.Command{
		Name:        "info",
		Description: "Show the ledger state of an account.",
		Usage:       "Prints the balance and status of the given address.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Account address to inspect",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info, err := client.Account().AccountInformation(ctx, cmd.String("address"))
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			fmt.Fprintf(out, "address: %s\n", info.Address)
			fmt.Fprintf(out, "balance: %d microalgos\n", info.Amount)
			fmt.Fprintf(out, "status:  %s\n", info.Status)
			return nil
		},
	}
}

// accountMnemonic derives the recovery phrase of an account backed by a plain
// keypair. Other signer kinds produce an empty phrase.
func accountMnemonic(account signerregistry.Account) string {
	basic, ok := account.Signer.(transaction.BasicAccountTransactionSigner)
	if !ok {
		return ""
	}

	phrase, err := mnemonic.FromPrivateKey(basic.Account.PrivateKey)
	if err != nil {
		return ""
	}
	return phrase
}
