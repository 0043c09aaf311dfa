// Package signerregistry resolves which cryptographic signer authorizes
// transactions for a given Algorand address. It keeps an in-process map from
// address to signer with an optional default fallback, and provisions new
// entries from fresh keypairs, the network's dispenser account, or a KMD
// wallet.
package signerregistry

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
)

// Service is the signer registry. Registration and resolution are pure
// in-process operations; provisioning operations reach the ledger or the key
// management daemon, register the acquired account, and return it.
type Service interface {
	// Register stores the signer under the address, overwriting any earlier
	// registration for the same address. It validates only that the address is
	// non-empty and the signer non-nil, and never touches the network.
	Register(address string, signer transaction.TransactionSigner) error

	// SetDefaultSigner replaces the fallback signer used for addresses with no
	// explicit registration.
	SetDefaultSigner(signer transaction.TransactionSigner)

	// SignerFor returns the signer registered for the address, or the default
	// signer when none is. When neither exists it fails with
	// ErrSignerNotFound. The lookup has no side effects.
	SignerFor(address string) (transaction.TransactionSigner, error)

	// Random generates a fresh keypair, registers it, and returns the pair.
	Random() (Account, error)

	// Dispenser resolves the network's funding account. On a LocalNet it is
	// the default funded KMD wallet account; on public networks it is
	// recovered from the configured dispenser mnemonic. The account is
	// registered before it is returned.
	Dispenser(ctx context.Context) (Account, error)

	// LocalNetDispenser resolves the LocalNet default funded account through
	// KMD. It fails with ErrNotLocalNet when the connected ledger is not a
	// LocalNet.
	LocalNetDispenser(ctx context.Context) (Account, error)

	// FromWallet selects an account from the named KMD wallet. When predicate
	// is non-nil, each candidate's ledger summary is fetched and the first
	// match wins; otherwise the wallet's first address is picked. The selected
	// account's key is exported, registered, and returned. A missing wallet,
	// an empty wallet, or a predicate rejecting every candidate fails with
	// ErrAccountNotFound.
	FromWallet(ctx context.Context, walletName string, predicate AccountPredicate) (Account, error)

	// AccountInformation is a passthrough query to the ledger.
	AccountInformation(ctx context.Context, address string) (models.Account, error)

	// AccountAssetInformation is a passthrough query to the ledger.
	AccountAssetInformation(ctx context.Context, address string, assetID uint64) (models.AccountAssetResponse, error)
}

// config holds the optional settings for the registry service.
type config struct {
	dispenserMnemonic string
}

// Option configures the registry service.
type Option func(*config)

// WithDispenserMnemonic supplies the out-of-band secret that recovers the
// funding account on networks without a KMD default wallet. When unset, the
// DISPENSER_MNEMONIC environment variable is consulted at call time.
func WithDispenserMnemonic(mnemonic string) Option {
	return func(c *config) {
		c.dispenserMnemonic = mnemonic
	}
}

// service is the concrete implementation of the Service interface.
type service struct {
	ledger   Ledger
	keystore Keystore

	cfg config

	state *registryState
}

// Ensure compile-time compliance with the Service interface.
var _ Service = (*service)(nil)

// New creates a registry service backed by the given ledger and keystore
// clients. The keystore may be nil on networks without KMD; wallet-backed
// operations then fail with ErrNoKeystore.
func New(ledger Ledger, keystore Keystore, opts ...Option) *service {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		ledger:   ledger,
		keystore: keystore,
		cfg:      cfg,
		state:    newRegistryState(),
	}
}
