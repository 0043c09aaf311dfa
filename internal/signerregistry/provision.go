package signerregistry

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/algopilot/algopilot/internal/network"
	"github.com/algopilot/algopilot/internal/pkg/logger"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
)

// defaultLocalNetWalletName is the wallet every LocalNet ships with, holding
// its pre-funded accounts.
const defaultLocalNetWalletName = "unencrypted-default-wallet"

// dispenserMnemonicEnv names the environment variable consulted for the
// dispenser secret when none was configured on the service.
const dispenserMnemonicEnv = "DISPENSER_MNEMONIC"

// localNetDispenserMinBalance is the balance, in microalgos, a default-wallet
// account must exceed to qualify as the LocalNet dispenser.
const localNetDispenserMinBalance = 1_000_000_000

// provision runs an acquisition strategy, registers the acquired account, and
// returns it. Every provisioning operation funnels through here so the
// register-before-return contract holds uniformly.
func (s *service) provision(ctx context.Context, source string, acquire func() (Account, error)) (Account, error) {
	account, err := acquire()
	if err != nil {
		return Account{}, err
	}

	if err := s.Register(account.Address, account.Signer); err != nil {
		return Account{}, err
	}

	logger.Info(ctx, "account registered", "address", account.Address, "source", source)
	return account, nil
}

// Random generates a fresh keypair, registers it, and returns it. The ledger
// is never contacted.
func (s *service) Random() (Account, error) {
	return s.provision(context.Background(), "random", func() (Account, error) {
		account := crypto.GenerateAccount()
		return Account{
			Address: account.Address.String(),
			Signer:  transaction.BasicAccountTransactionSigner{Account: account},
		}, nil
	})
}

// Dispenser resolves the network's funding account. The connected ledger's
// genesis id decides the path: LocalNet goes through the default KMD wallet,
// anything else recovers the account from the configured dispenser secret.
func (s *service) Dispenser(ctx context.Context) (Account, error) {
	return s.provision(ctx, "dispenser", func() (Account, error) {
		localNet, err := s.isLocalNet(ctx)
		if err != nil {
			return Account{}, err
		}

		if localNet {
			return s.localNetDispenserAccount(ctx)
		}
		return s.dispenserFromSecret()
	})
}

// LocalNetDispenser resolves the LocalNet default funded account, failing
// with ErrNotLocalNet when the connected ledger is a public network.
func (s *service) LocalNetDispenser(ctx context.Context) (Account, error) {
	return s.provision(ctx, "localnet_dispenser", func() (Account, error) {
		localNet, err := s.isLocalNet(ctx)
		if err != nil {
			return Account{}, err
		}

		if !localNet {
			return Account{}, ErrNotLocalNet
		}
		return s.localNetDispenserAccount(ctx)
	})
}

// FromWallet selects an account from the named KMD wallet, registers it, and
// returns it.
func (s *service) FromWallet(ctx context.Context, walletName string, predicate AccountPredicate) (Account, error) {
	return s.provision(ctx, "wallet", func() (Account, error) {
		return s.walletAccount(ctx, walletName, predicate)
	})
}

// isLocalNet classifies the connected ledger by the genesis id reported in
// its suggested parameters.
func (s *service) isLocalNet(ctx context.Context) (bool, error) {
	params, err := s.ledger.SuggestedParams(ctx)
	if err != nil {
		return false, err
	}
	return network.IsLocalNetGenesis(params.GenesisID), nil
}

// dispenserFromSecret recovers the funding account from the configured
// mnemonic, falling back to the environment variable.
func (s *service) dispenserFromSecret() (Account, error) {
	secret := s.cfg.dispenserMnemonic
	if secret == "" {
		secret = os.Getenv(dispenserMnemonicEnv)
	}
	if secret == "" {
		return Account{}, ErrDispenserSecretNotSet
	}

	key, err := mnemonic.ToPrivateKey(secret)
	if err != nil {
		return Account{}, fmt.Errorf("recovering dispenser account: %w", err)
	}

	account, err := crypto.AccountFromPrivateKey(key)
	if err != nil {
		return Account{}, fmt.Errorf("recovering dispenser account: %w", err)
	}

	return Account{
		Address: account.Address.String(),
		Signer:  transaction.BasicAccountTransactionSigner{Account: account},
	}, nil
}

// localNetDispenserAccount picks the funded online account from the LocalNet
// default wallet.
func (s *service) localNetDispenserAccount(ctx context.Context) (Account, error) {
	return s.walletAccount(ctx, defaultLocalNetWalletName, func(account models.Account) bool {
		return account.Status != "Offline" && account.Amount > localNetDispenserMinBalance
	})
}

// walletAccount lists the wallet's addresses, applies the predicate, and
// exports the selected account's key. Ledger and keystore failures propagate
// unchanged; an unknown wallet maps onto ErrAccountNotFound.
func (s *service) walletAccount(ctx context.Context, walletName string, predicate AccountPredicate) (Account, error) {
	if s.keystore == nil {
		return Account{}, ErrNoKeystore
	}

	addresses, err := s.keystore.WalletAddresses(ctx, walletName)
	if err != nil {
		if errors.Is(err, ErrWalletNotFound) {
			return Account{}, fmt.Errorf("wallet %q: %w", walletName, ErrAccountNotFound)
		}
		return Account{}, err
	}

	var selected string
	if predicate == nil {
		if len(addresses) > 0 {
			selected = addresses[0]
		}
	} else {
		for _, address := range addresses {
			info, err := s.ledger.AccountInformation(ctx, address)
			if err != nil {
				return Account{}, err
			}

			if predicate(info) {
				selected = address
				break
			}
		}
	}
	if selected == "" {
		return Account{}, fmt.Errorf("wallet %q: %w", walletName, ErrAccountNotFound)
	}

	key, err := s.keystore.ExportKey(ctx, walletName, selected)
	if err != nil {
		return Account{}, err
	}

	account, err := crypto.AccountFromPrivateKey(key)
	if err != nil {
		return Account{}, fmt.Errorf("exported key for %s: %w", selected, err)
	}

	return Account{
		Address: selected,
		Signer:  transaction.BasicAccountTransactionSigner{Account: account},
	}, nil
}
