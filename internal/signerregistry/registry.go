package signerregistry

import (
	"context"
	"fmt"
	"sync"

	"github.com/algopilot/algopilot/internal/pkg/validator"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
)

// registration is the validated input of Register.
type registration struct {
	Address string                        `validate:"required"`
	Signer  transaction.TransactionSigner `validate:"required"`
}

// registryState holds the signer map and the default fallback behind a
// read-write mutex, making one registry instance safe for concurrent use.
// Entries are only ever created or overwritten, never deleted.
type registryState struct {
	mu            sync.RWMutex
	signers       map[string]transaction.TransactionSigner
	defaultSigner transaction.TransactionSigner
}

func newRegistryState() *registryState {
	return &registryState{
		signers: make(map[string]transaction.TransactionSigner),
	}
}

// set stores the signer under the address. Last write wins.
func (r *registryState) set(address string, signer transaction.TransactionSigner) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.signers[address] = signer
}

// setDefault replaces the fallback signer.
func (r *registryState) setDefault(signer transaction.TransactionSigner) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.defaultSigner = signer
}

// resolve returns the signer registered for the address, falling back to the
// default signer. The second return reports whether any signer was found.
func (r *registryState) resolve(address string) (transaction.TransactionSigner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if signer, ok := r.signers[address]; ok {
		return signer, true
	}
	if r.defaultSigner != nil {
		return r.defaultSigner, true
	}
	return nil, false
}

// Register stores the signer under the address, overwriting any earlier
// registration. Only the shape of the input is validated; the address is
// never checked against the ledger.
func (s *service) Register(address string, signer transaction.TransactionSigner) error {
	reg := registration{
		Address: address,
		Signer:  signer,
	}
	if err := validator.Validate(reg); err != nil {
		return err
	}

	s.state.set(address, signer)
	return nil
}

// SetDefaultSigner replaces the fallback signer used when an address has no
// explicit registration.
func (s *service) SetDefaultSigner(signer transaction.TransactionSigner) {
	s.state.setDefault(signer)
}

// SignerFor resolves the signer for the address. Registered signers win over
// the default; with neither present it fails with ErrSignerNotFound.
func (s *service) SignerFor(address string) (transaction.TransactionSigner, error) {
	signer, ok := s.state.resolve(address)
	if !ok {
		return nil, fmt.Errorf("address %s: %w", address, ErrSignerNotFound)
	}
	return signer, nil
}

// AccountInformation forwards the query to the ledger. No caching, no
// registry interaction.
func (s *service) AccountInformation(ctx context.Context, address string) (models.Account, error) {
	return s.ledger.AccountInformation(ctx, address)
}

// AccountAssetInformation forwards the query to the ledger. No caching, no
// registry interaction.
func (s *service) AccountAssetInformation(ctx context.Context, address string, assetID uint64) (models.AccountAssetResponse, error) {
	return s.ledger.AccountAssetInformation(ctx, address, assetID)
}
