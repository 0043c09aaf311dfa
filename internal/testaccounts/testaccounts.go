// Package testaccounts provisions disposable funded accounts for exercising
// code against a live network. Each account is generated fresh, registered on
// the facade's signer registry, and funded either by the network's dispenser
// account or by an external funding service.
package testaccounts

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/transaction"

	"github.com/algopilot/algopilot/internal/pkg/logger"
	"github.com/algopilot/algopilot/internal/signerregistry"
	"github.com/algopilot/algopilot/internal/txcompose"
	"github.com/algopilot/algopilot/internal/txdispatch"
)

// fundingNote marks the funding payment on the ledger.
const fundingNote = "Funding test account"

// Funder sources test funds from a service outside the ledger, such as the
// hosted TestNet dispenser API.
type Funder interface {
	// Fund asks the service to send the given amount of microalgos to the
	// receiver and returns the id of the funding transaction.
	Fund(ctx context.Context, receiver string, amount uint64) (string, error)
}

// config holds the optional settings of one provisioning run.
type config struct {
	suppressLogs bool
	funder       Funder
}

// Option configures a provisioning run.
type Option func(*config)

// WithSuppressedLogs disables the provisioning log lines. Useful for tests
// that create accounts in bulk.
func WithSuppressedLogs() Option {
	return func(c *config) {
		c.suppressLogs = true
	}
}

// WithFunder routes the funding through the given service instead of a
// dispenser-account payment. Required on networks whose dispenser account is
// not available locally.
func WithFunder(funder Funder) Option {
	return func(c *config) {
		c.funder = funder
	}
}

// GenerateFunded creates a fresh account, registers it on the facade, funds
// it with initialFunds microalgos, and returns it once the ledger reports the
// new balance. Funding comes from the network's dispenser account unless an
// external funder is configured.
func GenerateFunded(ctx context.Context, client *txdispatch.Client, initialFunds uint64, opts ...Option) (signerregistry.Account, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	account, err := client.Account().Random()
	if err != nil {
		return signerregistry.Account{}, fmt.Errorf("generating test account: %w", err)
	}

	if !cfg.suppressLogs {
		logger.Info(ctx, "new test account created",
			"address", account.Address,
			"mnemonic", recoveryPhrase(account),
		)
	}

	if err := fund(ctx, client, cfg.funder, account.Address, initialFunds); err != nil {
		return signerregistry.Account{}, fmt.Errorf("funding test account: %w", err)
	}

	info, err := client.Account().AccountInformation(ctx, account.Address)
	if err != nil {
		return signerregistry.Account{}, fmt.Errorf("reading funded account back: %w", err)
	}

	if !cfg.suppressLogs {
		logger.Info(ctx, "test account funded",
			"address", account.Address,
			"balance", info.Amount,
		)
	}

	return account, nil
}

// fund moves the initial funds to the receiver, either through the configured
// funder or as a payment from the network's dispenser account.
func fund(ctx context.Context, client *txdispatch.Client, funder Funder, receiver string, amount uint64) error {
	if funder != nil {
		_, err := funder.Fund(ctx, receiver, amount)
		return err
	}

	dispenser, err := client.Account().Dispenser(ctx)
	if err != nil {
		return err
	}

	_, err = client.Send().Payment(ctx, txcompose.PaymentParams{
		Sender:   dispenser.Address,
		Receiver: receiver,
		Amount:   amount,
		Note:     []byte(fundingNote),
	})
	return err
}

// recoveryPhrase derives the mnemonic of an account backed by a plain
// keypair. Other signer kinds produce an empty phrase.
func recoveryPhrase(account signerregistry.Account) string {
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
