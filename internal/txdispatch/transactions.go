package txdispatch

import (
	"context"
	"errors"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/algopilot/algopilot/internal/signerregistry"
	"github.com/algopilot/algopilot/internal/txcompose"
)

// Builder assembles unsigned transactions without submitting anything.
// Transactions come back populated with suggested parameters and group
// metadata, ready for inspection or an external signing flow.
type Builder interface {
	Payment(ctx context.Context, params txcompose.PaymentParams) (types.Transaction, error)
	AssetCreate(ctx context.Context, params txcompose.AssetCreateParams) (types.Transaction, error)
	AssetConfig(ctx context.Context, params txcompose.AssetConfigParams) (types.Transaction, error)
	AssetFreeze(ctx context.Context, params txcompose.AssetFreezeParams) (types.Transaction, error)
	AssetDestroy(ctx context.Context, params txcompose.AssetDestroyParams) (types.Transaction, error)
	AssetTransfer(ctx context.Context, params txcompose.AssetTransferParams) (types.Transaction, error)
	AssetOptIn(ctx context.Context, params txcompose.AssetOptInParams) (types.Transaction, error)
	AppCall(ctx context.Context, params txcompose.AppCallParams) (types.Transaction, error)
	OnlineKeyReg(ctx context.Context, params txcompose.OnlineKeyRegParams) (types.Transaction, error)
	MethodCall(ctx context.Context, params txcompose.MethodCallParams) ([]types.Transaction, error)
}

// builder implements Builder on top of the facade.
type builder struct {
	client *Client
}

var _ Builder = builder{}

// Transactions returns the transaction builder of this facade.
func (c *Client) Transactions() Builder {
	return builder{client: c}
}

// buildResolver resolves signers through the registry but substitutes an
// empty signer for unknown addresses, so transactions can be built before
// any signer is registered.
func buildResolver(registry signerregistry.Service) txcompose.SignerResolver {
	return func(address string) (transaction.TransactionSigner, error) {
		signer, err := registry.SignerFor(address)
		if errors.Is(err, signerregistry.ErrSignerNotFound) {
			return transaction.EmptyTransactionSigner{}, nil
		}

		return signer, err
	}
}

// newGroup opens a build-only group with the permissive signer resolution.
func (b builder) newGroup() *txcompose.Composer {
	c := b.client
	return txcompose.New(c.algod, buildResolver(c.registry), c.params.SuggestedParams, c.validityWindow)
}

// buildSingle builds the group and unwraps its lead transaction.
func (b builder) buildSingle(ctx context.Context, group *txcompose.Composer) (types.Transaction, error) {
	stxns, err := group.BuildGroup(ctx)
	if err != nil {
		return types.Transaction{}, err
	}

	return stxns[0].Txn, nil
}

func (b builder) Payment(ctx context.Context, params txcompose.PaymentParams) (types.Transaction, error) {
	return b.buildSingle(ctx, b.newGroup().AddPayment(params))
}

func (b builder) AssetCreate(ctx context.Context, params txcompose.AssetCreateParams) (types.Transaction, error) {
	return b.buildSingle(ctx, b.newGroup().AddAssetCreate(params))
}

func (b builder) AssetConfig(ctx context.Context, params txcompose.AssetConfigParams) (types.Transaction, error) {
	return b.buildSingle(ctx, b.newGroup().AddAssetConfig(params))
}

func (b builder) AssetFreeze(ctx context.Context, params txcompose.AssetFreezeParams) (types.Transaction, error) {
	return b.buildSingle(ctx, b.newGroup().AddAssetFreeze(params))
}

func (b builder) AssetDestroy(ctx context.Context, params txcompose.AssetDestroyParams) (types.Transaction, error) {
	return b.buildSingle(ctx, b.newGroup().AddAssetDestroy(params))
}

func (b builder) AssetTransfer(ctx context.Context, params txcompose.AssetTransferParams) (types.Transaction, error) {
	return b.buildSingle(ctx, b.newGroup().AddAssetTransfer(params))
}

func (b builder) AssetOptIn(ctx context.Context, params txcompose.AssetOptInParams) (types.Transaction, error) {
	return b.buildSingle(ctx, b.newGroup().AddAssetOptIn(params))
}

func (b builder) AppCall(ctx context.Context, params txcompose.AppCallParams) (types.Transaction, error) {
	return b.buildSingle(ctx, b.newGroup().AddAppCall(params))
}

func (b builder) OnlineKeyReg(ctx context.Context, params txcompose.OnlineKeyRegParams) (types.Transaction, error) {
	return b.buildSingle(ctx, b.newGroup().AddOnlineKeyReg(params))
}

func (b builder) MethodCall(ctx context.Context, params txcompose.MethodCallParams) ([]types.Transaction, error) {
	stxns, err := b.newGroup().AddMethodCall(params).BuildGroup(ctx)
	if err != nil {
		return nil, err
	}

	txns := make([]types.Transaction, 0, len(stxns))
	for _, stxn := range stxns {
		txns = append(txns, stxn.Txn)
	}

	return txns, nil
}
