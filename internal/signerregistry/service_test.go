package signerregistry

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/algopilot/algopilot/internal/pkg/logger"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
)

func init() {
	_ = logger.Init(logger.WithLevel("error"))
}

// ledgerStub is a function-backed Ledger with call counters.
type ledgerStub struct {
	accountInformationFunc      func(ctx context.Context, address string) (models.Account, error)
	accountAssetInformationFunc func(ctx context.Context, address string, assetID uint64) (models.AccountAssetResponse, error)
	suggestedParamsFunc         func(ctx context.Context) (types.SuggestedParams, error)

	accountInformationCalls int
	suggestedParamsCalls    int
}

func (l *ledgerStub) AccountInformation(ctx context.Context, address string) (models.Account, error) {
	l.accountInformationCalls++
	return l.accountInformationFunc(ctx, address)
}

func (l *ledgerStub) AccountAssetInformation(ctx context.Context, address string, assetID uint64) (models.AccountAssetResponse, error) {
	return l.accountAssetInformationFunc(ctx, address, assetID)
}

func (l *ledgerStub) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	l.suggestedParamsCalls++
	return l.suggestedParamsFunc(ctx)
}

// keystoreStub is a function-backed Keystore with call counters.
type keystoreStub struct {
	walletAddressesFunc func(ctx context.Context, walletName string) ([]string, error)
	exportKeyFunc       func(ctx context.Context, walletName, address string) (ed25519.PrivateKey, error)

	exportKeyCalls int
}

func (k *keystoreStub) WalletAddresses(ctx context.Context, walletName string) ([]string, error) {
	return k.walletAddressesFunc(ctx, walletName)
}

func (k *keystoreStub) ExportKey(ctx context.Context, walletName, address string) (ed25519.PrivateKey, error) {
	k.exportKeyCalls++
	return k.exportKeyFunc(ctx, walletName, address)
}

func TestNew(t *testing.T) {
	t.Run("should create a service with the given collaborators", func(t *testing.T) {
		ledger := &ledgerStub{}
		keystore := &keystoreStub{}

		svc := New(ledger, keystore)

		assert.NotNil(t, svc)
		assert.Same(t, ledger, svc.ledger.(*ledgerStub))
		assert.Same(t, keystore, svc.keystore.(*keystoreStub))
	})

	t.Run("should accept a nil keystore", func(t *testing.T) {
		svc := New(&ledgerStub{}, nil)

		assert.NotNil(t, svc)
		assert.Nil(t, svc.keystore)
	})
}

func TestWithDispenserMnemonic(t *testing.T) {
	t.Run("should set the dispenser secret", func(t *testing.T) {
		cfg := config{}

		WithDispenserMnemonic("some words")(&cfg)

		assert.Equal(t, "some words", cfg.dispenserMnemonic)
	})
}
