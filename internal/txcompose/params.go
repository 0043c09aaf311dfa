package txcompose

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// groupItem is one parameter record queued on a composer, able to append its
// transactions to the underlying atomic group.
type groupItem interface {
	addToGroup(c *Composer, sp types.SuggestedParams) error
}

// withValidityWindow pins the record's validity window onto a parameter
// snapshot. A zero window keeps the ledger-supplied last valid round.
func withValidityWindow(sp types.SuggestedParams, window uint64) types.SuggestedParams {
	if window > 0 {
		sp.LastRoundValid = sp.FirstRoundValid + types.Round(window)
	}
	return sp
}

// addPlain resolves the sender's signer and appends a single built
// transaction to the group.
func (c *Composer) addPlain(sender string, txn types.Transaction) error {
	signer, err := c.resolveSigner(sender)
	if err != nil {
		return err
	}

	return c.atc.AddTransaction(transaction.TransactionWithSigner{
		Txn:    txn,
		Signer: signer,
	})
}

// PaymentParams describes a microalgo transfer.
type PaymentParams struct {
	Sender           string `validate:"required,algoaddr"`
	Receiver         string `validate:"required,algoaddr"`
	Amount           uint64
	Note             []byte
	CloseRemainderTo string `validate:"omitempty,algoaddr"`
	ValidityWindow   uint64
}

func (p PaymentParams) addToGroup(c *Composer, sp types.SuggestedParams) error {
	txn, err := transaction.MakePaymentTxn(
		p.Sender,
		p.Receiver,
		p.Amount,
		p.Note,
		p.CloseRemainderTo,
		withValidityWindow(sp, c.windowFor(p.ValidityWindow)),
	)
	if err != nil {
		return err
	}
	return c.addPlain(p.Sender, txn)
}

// AssetCreateParams describes the creation of a new asset.
type AssetCreateParams struct {
	Sender         string `validate:"required,algoaddr"`
	Total          uint64 `validate:"required"`
	Decimals       uint32
	DefaultFrozen  bool
	UnitName       string `validate:"max=8"`
	AssetName      string `validate:"max=32"`
	URL            string `validate:"max=96"`
	MetadataHash   string
	Manager        string `validate:"omitempty,algoaddr"`
	Reserve        string `validate:"omitempty,algoaddr"`
	Freeze         string `validate:"omitempty,algoaddr"`
	Clawback       string `validate:"omitempty,algoaddr"`
	Note           []byte
	ValidityWindow uint64
}

func (p AssetCreateParams) addToGroup(c *Composer, sp types.SuggestedParams) error {
	txn, err := transaction.MakeAssetCreateTxn(
		p.Sender,
		p.Note,
		withValidityWindow(sp, c.windowFor(p.ValidityWindow)),
		p.Total,
		p.Decimals,
		p.DefaultFrozen,
		p.Manager,
		p.Reserve,
		p.Freeze,
		p.Clawback,
		p.UnitName,
		p.AssetName,
		p.URL,
		p.MetadataHash,
	)
	if err != nil {
		return err
	}
	return c.addPlain(p.Sender, txn)
}

// AssetConfigParams rewrites the mutable role addresses of an existing asset.
// Leaving a role empty clears it permanently.
type AssetConfigParams struct {
	Sender         string `validate:"required,algoaddr"`
	AssetID        uint64 `validate:"required"`
	Manager        string `validate:"omitempty,algoaddr"`
	Reserve        string `validate:"omitempty,algoaddr"`
	Freeze         string `validate:"omitempty,algoaddr"`
	Clawback       string `validate:"omitempty,algoaddr"`
	Note           []byte
	ValidityWindow uint64
}

func (p AssetConfigParams) addToGroup(c *Composer, sp types.SuggestedParams) error {
	txn, err := transaction.MakeAssetConfigTxn(
		p.Sender,
		p.Note,
		withValidityWindow(sp, c.windowFor(p.ValidityWindow)),
		p.AssetID,
		p.Manager,
		p.Reserve,
		p.Freeze,
		p.Clawback,
		false,
	)
	if err != nil {
		return err
	}
	return c.addPlain(p.Sender, txn)
}

// AssetFreezeParams flips the frozen flag of one account's asset holding.
type AssetFreezeParams struct {
	Sender         string `validate:"required,algoaddr"`
	AssetID        uint64 `validate:"required"`
	Account        string `validate:"required,algoaddr"`
	Frozen         bool
	Note           []byte
	ValidityWindow uint64
}

func (p AssetFreezeParams) addToGroup(c *Composer, sp types.SuggestedParams) error {
	txn, err := transaction.MakeAssetFreezeTxn(
		p.Sender,
		p.Note,
		withValidityWindow(sp, c.windowFor(p.ValidityWindow)),
		p.AssetID,
		p.Account,
		p.Frozen,
	)
	if err != nil {
		return err
	}
	return c.addPlain(p.Sender, txn)
}

// AssetDestroyParams removes an asset from the ledger. Only the manager of an
// asset whose full supply sits in the creator account may destroy it.
type AssetDestroyParams struct {
	Sender         string `validate:"required,algoaddr"`
	AssetID        uint64 `validate:"required"`
	Note           []byte
	ValidityWindow uint64
}

func (p AssetDestroyParams) addToGroup(c *Composer, sp types.SuggestedParams) error {
	txn, err := transaction.MakeAssetDestroyTxn(
		p.Sender,
		p.Note,
		withValidityWindow(sp, c.windowFor(p.ValidityWindow)),
		p.AssetID,
	)
	if err != nil {
		return err
	}
	return c.addPlain(p.Sender, txn)
}

// AssetTransferParams moves asset units between accounts.
type AssetTransferParams struct {
	Sender         string `validate:"required,algoaddr"`
	Receiver       string `validate:"required,algoaddr"`
	AssetID        uint64 `validate:"required"`
	Amount         uint64
	CloseAssetsTo  string `validate:"omitempty,algoaddr"`
	Note           []byte
	ValidityWindow uint64
}

func (p AssetTransferParams) addToGroup(c *Composer, sp types.SuggestedParams) error {
	txn, err := transaction.MakeAssetTransferTxn(
		p.Sender,
		p.Receiver,
		p.Amount,
		p.Note,
		withValidityWindow(sp, c.windowFor(p.ValidityWindow)),
		p.CloseAssetsTo,
		p.AssetID,
	)
	if err != nil {
		return err
	}
	return c.addPlain(p.Sender, txn)
}

// AssetOptInParams opts the sender into holding an asset via a zero-amount
// self-transfer.
type AssetOptInParams struct {
	Sender         string `validate:"required,algoaddr"`
	AssetID        uint64 `validate:"required"`
	Note           []byte
	ValidityWindow uint64
}

func (p AssetOptInParams) addToGroup(c *Composer, sp types.SuggestedParams) error {
	txn, err := transaction.MakeAssetAcceptanceTxn(
		p.Sender,
		p.Note,
		withValidityWindow(sp, c.windowFor(p.ValidityWindow)),
		p.AssetID,
	)
	if err != nil {
		return err
	}
	return c.addPlain(p.Sender, txn)
}

// AppCallParams describes a raw application call. A zero AppID creates the
// application from the supplied programs and schemas.
type AppCallParams struct {
	Sender          string `validate:"required,algoaddr"`
	AppID           uint64
	OnComplete      types.OnCompletion
	ApprovalProgram []byte
	ClearProgram    []byte
	GlobalSchema    types.StateSchema
	LocalSchema     types.StateSchema
	Args            [][]byte
	Accounts        []string `validate:"dive,algoaddr"`
	ForeignApps     []uint64
	ForeignAssets   []uint64
	Note            []byte
	ValidityWindow  uint64
}

func (p AppCallParams) addToGroup(c *Composer, sp types.SuggestedParams) error {
	sender, err := types.DecodeAddress(p.Sender)
	if err != nil {
		return err
	}

	txn, err := transaction.MakeApplicationCallTx(
		p.AppID,
		p.Args,
		p.Accounts,
		p.ForeignApps,
		p.ForeignAssets,
		p.OnComplete,
		p.ApprovalProgram,
		p.ClearProgram,
		p.GlobalSchema,
		p.LocalSchema,
		withValidityWindow(sp, c.windowFor(p.ValidityWindow)),
		sender,
		p.Note,
		types.Digest{},
		[32]byte{},
		types.Address{},
	)
	if err != nil {
		return err
	}
	return c.addPlain(p.Sender, txn)
}

// OnlineKeyRegParams brings an account online for consensus participation.
// The participation keys are base64 encoded, as produced by the node.
type OnlineKeyRegParams struct {
	Sender          string `validate:"required,algoaddr"`
	VoteKey         string `validate:"required"`
	SelectionKey    string `validate:"required"`
	StateProofKey   string `validate:"required"`
	VoteFirst       uint64 `validate:"required"`
	VoteLast        uint64 `validate:"required,gtefield=VoteFirst"`
	VoteKeyDilution uint64 `validate:"required"`
	Note            []byte
	ValidityWindow  uint64
}

func (p OnlineKeyRegParams) addToGroup(c *Composer, sp types.SuggestedParams) error {
	txn, err := transaction.MakeKeyRegTxnWithStateProofKey(
		p.Sender,
		p.Note,
		withValidityWindow(sp, c.windowFor(p.ValidityWindow)),
		p.VoteKey,
		p.SelectionKey,
		p.StateProofKey,
		p.VoteFirst,
		p.VoteLast,
		p.VoteKeyDilution,
		false,
	)
	if err != nil {
		return err
	}
	return c.addPlain(p.Sender, txn)
}

// MethodCallParams describes an ABI method call. The group may expand into
// more than one transaction when the method consumes transaction arguments.
type MethodCallParams struct {
	Sender          string `validate:"required,algoaddr"`
	AppID           uint64
	Method          abi.Method
	Args            []any
	OnComplete      types.OnCompletion
	ApprovalProgram []byte
	ClearProgram    []byte
	GlobalSchema    types.StateSchema
	LocalSchema     types.StateSchema
	Accounts        []string `validate:"dive,algoaddr"`
	ForeignApps     []uint64
	ForeignAssets   []uint64
	Note            []byte
	ValidityWindow  uint64
}

func (p MethodCallParams) addToGroup(c *Composer, sp types.SuggestedParams) error {
	if p.Method.Name == "" {
		return fmt.Errorf("method call for app %d: no ABI method given", p.AppID)
	}

	sender, err := types.DecodeAddress(p.Sender)
	if err != nil {
		return err
	}

	signer, err := c.resolveSigner(p.Sender)
	if err != nil {
		return err
	}

	return c.atc.AddMethodCall(transaction.AddMethodCallParams{
		AppID:           p.AppID,
		Method:          p.Method,
		MethodArgs:      p.Args,
		Sender:          sender,
		SuggestedParams: withValidityWindow(sp, c.windowFor(p.ValidityWindow)),
		OnComplete:      p.OnComplete,
		ApprovalProgram: p.ApprovalProgram,
		ClearProgram:    p.ClearProgram,
		GlobalSchema:    p.GlobalSchema,
		LocalSchema:     p.LocalSchema,
		ForeignAccounts: p.Accounts,
		ForeignApps:     p.ForeignApps,
		ForeignAssets:   p.ForeignAssets,
		Note:            p.Note,
		Signer:          signer,
	})
}
