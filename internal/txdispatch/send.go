package txdispatch

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/google/uuid"

	"github.com/algopilot/algopilot/internal/pkg/logger"
	"github.com/algopilot/algopilot/internal/txcompose"
)

// SendResult reports a submitted and confirmed transaction.
type SendResult struct {
	// TxID is the id of the submitted transaction.
	TxID string
	// Confirmation is the confirmed transaction information reported by the
	// node.
	Confirmation models.PendingTransactionInfoResponse
}

// Sender submits single transactions and waits for their confirmation. Each
// call builds a one-off group, signs it through the registry, sends it, and
// blocks until the network confirms it.
type Sender interface {
	Payment(ctx context.Context, params txcompose.PaymentParams) (SendResult, error)
	AssetCreate(ctx context.Context, params txcompose.AssetCreateParams) (SendResult, error)
	AssetConfig(ctx context.Context, params txcompose.AssetConfigParams) (SendResult, error)
	AssetFreeze(ctx context.Context, params txcompose.AssetFreezeParams) (SendResult, error)
	AssetDestroy(ctx context.Context, params txcompose.AssetDestroyParams) (SendResult, error)
	AssetTransfer(ctx context.Context, params txcompose.AssetTransferParams) (SendResult, error)
	AssetOptIn(ctx context.Context, params txcompose.AssetOptInParams) (SendResult, error)
	AppCall(ctx context.Context, params txcompose.AppCallParams) (SendResult, error)
	OnlineKeyReg(ctx context.Context, params txcompose.OnlineKeyRegParams) (SendResult, error)
	MethodCall(ctx context.Context, params txcompose.MethodCallParams) (SendResult, error)
}

// sender implements Sender on top of the facade.
type sender struct {
	client *Client
}

var _ Sender = sender{}

// Send returns the transaction sender of this facade.
func (c *Client) Send() Sender {
	return sender{client: c}
}

// dispatch submits a one-off group and waits for the confirmation of its
// lead transaction. Every dispatch is logged under a fresh dispatch id.
func (s sender) dispatch(ctx context.Context, kind string, group *txcompose.Composer) (SendResult, error) {
	dispatchID := uuid.NewString()

	logger.Info(ctx, "submitting transaction",
		"dispatch_id", dispatchID,
		"kind", kind,
	)

	res, err := s.client.runner.Run(ctx, group)
	if err != nil {
		logger.Error(ctx, "transaction submission failed",
			"dispatch_id", dispatchID,
			"kind", kind,
			"error", err,
		)

		return SendResult{}, fmt.Errorf("sending %s: %w", kind, err)
	}

	txID := res.TxIDs[0]

	confirmation, err := s.client.confirmer.WaitForConfirmation(ctx, txID)
	if err != nil {
		logger.Error(ctx, "transaction confirmation failed",
			"dispatch_id", dispatchID,
			"kind", kind,
			"tx_id", txID,
			"error", err,
		)

		return SendResult{}, fmt.Errorf("confirming %s: %w", kind, err)
	}

	logger.Info(ctx, "transaction confirmed",
		"dispatch_id", dispatchID,
		"kind", kind,
		"tx_id", txID,
		"round", confirmation.ConfirmedRound,
	)

	return SendResult{TxID: txID, Confirmation: confirmation}, nil
}

func (s sender) Payment(ctx context.Context, params txcompose.PaymentParams) (SendResult, error) {
	return s.dispatch(ctx, "payment", s.client.NewGroup().AddPayment(params))
}

func (s sender) AssetCreate(ctx context.Context, params txcompose.AssetCreateParams) (SendResult, error) {
	return s.dispatch(ctx, "asset create", s.client.NewGroup().AddAssetCreate(params))
}

func (s sender) AssetConfig(ctx context.Context, params txcompose.AssetConfigParams) (SendResult, error) {
	return s.dispatch(ctx, "asset config", s.client.NewGroup().AddAssetConfig(params))
}

func (s sender) AssetFreeze(ctx context.Context, params txcompose.AssetFreezeParams) (SendResult, error) {
	return s.dispatch(ctx, "asset freeze", s.client.NewGroup().AddAssetFreeze(params))
}

func (s sender) AssetDestroy(ctx context.Context, params txcompose.AssetDestroyParams) (SendResult, error) {
	return s.dispatch(ctx, "asset destroy", s.client.NewGroup().AddAssetDestroy(params))
}

func (s sender) AssetTransfer(ctx context.Context, params txcompose.AssetTransferParams) (SendResult, error) {
	return s.dispatch(ctx, "asset transfer", s.client.NewGroup().AddAssetTransfer(params))
}

func (s sender) AssetOptIn(ctx context.Context, params txcompose.AssetOptInParams) (SendResult, error) {
	return s.dispatch(ctx, "asset opt in", s.client.NewGroup().AddAssetOptIn(params))
}

func (s sender) AppCall(ctx context.Context, params txcompose.AppCallParams) (SendResult, error) {
	return s.dispatch(ctx, "application call", s.client.NewGroup().AddAppCall(params))
}

func (s sender) OnlineKeyReg(ctx context.Context, params txcompose.OnlineKeyRegParams) (SendResult, error) {
	return s.dispatch(ctx, "online key registration", s.client.NewGroup().AddOnlineKeyReg(params))
}

func (s sender) MethodCall(ctx context.Context, params txcompose.MethodCallParams) (SendResult, error) {
	return s.dispatch(ctx, "method call", s.client.NewGroup().AddMethodCall(params))
}
