package signerregistry

import (
	"context"
	"crypto/ed25519"
	"errors"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

var (
	// ErrSignerNotFound is returned by SignerFor when the address has no
	// registered signer and no default signer is set.
	ErrSignerNotFound = errors.New("no signer found for address")

	// ErrAccountNotFound is returned by FromWallet when the named wallet is
	// missing, empty, or contains no account satisfying the predicate.
	ErrAccountNotFound = errors.New("no account found in wallet")

	// ErrNotLocalNet is returned by LocalNetDispenser when the connected
	// ledger is not a LocalNet.
	ErrNotLocalNet = errors.New("connected network is not a LocalNet")

	// ErrNoKeystore is returned by wallet-backed operations when the service
	// was built without a key management client.
	ErrNoKeystore = errors.New("no key management service configured")

	// ErrDispenserSecretNotSet is returned by Dispenser on public networks
	// when no dispenser mnemonic is configured.
	ErrDispenserSecretNotSet = errors.New("dispenser mnemonic is not configured")

	// ErrWalletNotFound must be returned by Keystore implementations when the
	// requested wallet name does not exist.
	ErrWalletNotFound = errors.New("wallet not found")
)

// Account pairs an address with the signer that authorizes its transactions.
// Every provisioning operation returns one, and the registry keeps a copy of
// the signer under the address.
type Account struct {
	Address string
	Signer  transaction.TransactionSigner
}

// AccountPredicate selects a wallet candidate from its on-ledger summary
// (status, balance, and so on). Returning true keeps the candidate.
type AccountPredicate func(account models.Account) bool

// Ledger is the subset of the algod API the registry consumes.
type Ledger interface {
	// AccountInformation returns the ledger's view of the given address.
	AccountInformation(ctx context.Context, address string) (models.Account, error)

	// AccountAssetInformation returns the given address's holding of one asset.
	AccountAssetInformation(ctx context.Context, address string, assetID uint64) (models.AccountAssetResponse, error)

	// SuggestedParams returns the current transaction parameters. The registry
	// only reads the genesis id from them to classify the network.
	SuggestedParams(ctx context.Context) (types.SuggestedParams, error)
}

// Keystore is the subset of the key management daemon API the registry
// consumes. Implementations report an unknown wallet name with
// ErrWalletNotFound.
type Keystore interface {
	// WalletAddresses lists the addresses held by the named wallet.
	WalletAddresses(ctx context.Context, walletName string) ([]string, error)

	// ExportKey returns the private key for the given address of the named
	// wallet.
	ExportKey(ctx context.Context, walletName, address string) (ed25519.PrivateKey, error)
}
