package algod

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// confirmationWaitRounds bounds how many rounds WaitForConfirmation follows
// the chain before giving up on a transaction.
const confirmationWaitRounds = 4

// AccountInformation fetches the current state of an account.
func (c *client) AccountInformation(ctx context.Context, address string) (models.Account, error) {
	return c.conn.AccountInformation(address).Do(ctx)
}

// AccountAssetInformation fetches one account's holding of a single asset.
func (c *client) AccountAssetInformation(ctx context.Context, address string, assetID uint64) (models.AccountAssetResponse, error) {
	return c.conn.AccountAssetInformation(address, assetID).Do(ctx)
}

// SuggestedParams fetches the node's current suggested transaction
// parameters.
func (c *client) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	return c.conn.SuggestedParams().Do(ctx)
}

// WaitForConfirmation blocks until the transaction is confirmed or the
// round budget is spent, and returns the confirmed transaction information.
func (c *client) WaitForConfirmation(ctx context.Context, txID string) (models.PendingTransactionInfoResponse, error) {
	return transaction.WaitForConfirmation(c.conn, txID, confirmationWaitRounds, ctx)
}
