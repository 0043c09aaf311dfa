// Package txcompose builds and submits atomic transaction groups. A Composer
// accumulates typed parameter records, converts them into transactions
// against a single suggested-parameters snapshot, and hands the whole group
// to the node as one unit.
package txcompose

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/algopilot/algopilot/internal/pkg/validator"
)

// ErrEmptyGroup is returned when building a composer that has no queued
// transactions.
var ErrEmptyGroup = errors.New("no transactions in group")

// defaultWaitRounds bounds how many rounds Execute waits for the group to
// appear in a confirmed block.
const defaultWaitRounds = 4

// SignerResolver maps a sender address to the signer responsible for it.
type SignerResolver func(address string) (transaction.TransactionSigner, error)

// ParamsProvider supplies the suggested transaction parameters the group is
// built against.
type ParamsProvider func(ctx context.Context) (types.SuggestedParams, error)

// ExecuteResult reports a confirmed group submission.
type ExecuteResult struct {
	// GroupID is the base64 encoded group digest. Single transactions carry
	// no digest, so it is empty for groups of one.
	GroupID string
	// ConfirmedRound is the round the group was confirmed in.
	ConfirmedRound uint64
	// TxIDs holds the transaction ids in group order.
	TxIDs []string
}

// Composer accumulates transactions for one atomic group. Add methods record
// invalid parameters instead of failing so calls chain fluently; recorded
// errors surface on BuildGroup or Execute. A Composer is single use and not
// safe for concurrent use.
type Composer struct {
	client          *algod.Client
	resolveSigner   SignerResolver
	suggestedParams ParamsProvider
	validityWindow  uint64

	items     []groupItem
	errs      []error
	atc       transaction.AtomicTransactionComposer
	populated bool
}

// New creates a composer bound to the given node client, signer resolution
// and suggested-parameters source. defaultValidityWindow caps the validity
// range of every transaction that does not set its own window; zero keeps
// the ledger-supplied range.
func New(client *algod.Client, resolveSigner SignerResolver, suggestedParams ParamsProvider, defaultValidityWindow uint64) *Composer {
	return &Composer{
		client:          client,
		resolveSigner:   resolveSigner,
		suggestedParams: suggestedParams,
		validityWindow:  defaultValidityWindow,
	}
}

// windowFor picks the record's own validity window over the composer default.
func (c *Composer) windowFor(recordWindow uint64) uint64 {
	if recordWindow > 0 {
		return recordWindow
	}

	return c.validityWindow
}

// add validates a record and queues it for the group.
func (c *Composer) add(item groupItem) *Composer {
	if err := validator.Validate(item); err != nil {
		c.errs = append(c.errs, err)
		return c
	}

	c.items = append(c.items, item)
	return c
}

// AddPayment queues a microalgo transfer.
func (c *Composer) AddPayment(p PaymentParams) *Composer { return c.add(p) }

// AddAssetCreate queues the creation of a new asset.
func (c *Composer) AddAssetCreate(p AssetCreateParams) *Composer { return c.add(p) }

// AddAssetConfig queues a reconfiguration of an existing asset's roles.
func (c *Composer) AddAssetConfig(p AssetConfigParams) *Composer { return c.add(p) }

// AddAssetFreeze queues a freeze or unfreeze of one account's holding.
func (c *Composer) AddAssetFreeze(p AssetFreezeParams) *Composer { return c.add(p) }

// AddAssetDestroy queues the destruction of an asset.
func (c *Composer) AddAssetDestroy(p AssetDestroyParams) *Composer { return c.add(p) }

// AddAssetTransfer queues an asset transfer.
func (c *Composer) AddAssetTransfer(p AssetTransferParams) *Composer { return c.add(p) }

// AddAssetOptIn queues the sender's opt-in to an asset.
func (c *Composer) AddAssetOptIn(p AssetOptInParams) *Composer { return c.add(p) }

// AddAppCall queues a raw application call.
func (c *Composer) AddAppCall(p AppCallParams) *Composer { return c.add(p) }

// AddOnlineKeyReg queues an online key registration.
func (c *Composer) AddOnlineKeyReg(p OnlineKeyRegParams) *Composer { return c.add(p) }

// AddMethodCall queues an ABI method call.
func (c *Composer) AddMethodCall(p MethodCallParams) *Composer { return c.add(p) }

// populate converts the queued records into the underlying atomic group.
// Nothing is sent to the node before this point, so parameter and signer
// errors abort the whole group without any submission.
func (c *Composer) populate(ctx context.Context) error {
	if c.populated {
		return nil
	}

	if len(c.errs) > 0 {
		return errors.Join(c.errs...)
	}

	if len(c.items) == 0 {
		return ErrEmptyGroup
	}

	sp, err := c.suggestedParams(ctx)
	if err != nil {
		return err
	}

	for _, item := range c.items {
		if err := item.addToGroup(c, sp); err != nil {
			return err
		}
	}

	c.populated = true
	return nil
}

// BuildGroup converts the queued records into a transaction group with its
// group digest assigned, without submitting anything.
func (c *Composer) BuildGroup(ctx context.Context) ([]transaction.TransactionWithSigner, error) {
	if err := c.populate(ctx); err != nil {
		return nil, err
	}

	return c.atc.BuildGroup()
}

// Execute builds, signs and submits the group, then waits for confirmation.
func (c *Composer) Execute(ctx context.Context) (ExecuteResult, error) {
	if err := c.populate(ctx); err != nil {
		return ExecuteResult{}, err
	}

	group, err := c.atc.BuildGroup()
	if err != nil {
		return ExecuteResult{}, err
	}

	res, err := c.atc.Execute(c.client, ctx, defaultWaitRounds)
	if err != nil {
		return ExecuteResult{}, err
	}

	return ExecuteResult{
		GroupID:        groupID(group),
		ConfirmedRound: res.ConfirmedRound,
		TxIDs:          res.TxIDs,
	}, nil
}

// groupID extracts the base64 group digest from a built group.
func groupID(group []transaction.TransactionWithSigner) string {
	if len(group) == 0 || (group[0].Txn.Group == types.Digest{}) {
		return ""
	}

	return base64.StdEncoding.EncodeToString(group[0].Txn.Group[:])
}
