package txcompose

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algopilot/algopilot/internal/pkg/validator"
)

var errNoSigner = errors.New("no signer registered")

type resolverStub struct {
	signers map[string]transaction.TransactionSigner
	calls   int
}

func (s *resolverStub) resolve(address string) (transaction.TransactionSigner, error) {
	s.calls++

	signer, ok := s.signers[address]
	if !ok {
		return nil, fmt.Errorf("address %s: %w", address, errNoSigner)
	}

	return signer, nil
}

type paramsStub struct {
	params types.SuggestedParams
	err    error
	calls  int
}

func (s *paramsStub) provide(_ context.Context) (types.SuggestedParams, error) {
	s.calls++

	if s.err != nil {
		return types.SuggestedParams{}, s.err
	}

	return s.params, nil
}

func testAccount() (transaction.BasicAccountTransactionSigner, string) {
	account := crypto.GenerateAccount()
	return transaction.BasicAccountTransactionSigner{Account: account}, account.Address.String()
}

func testParams() types.SuggestedParams {
	return types.SuggestedParams{
		Fee:             1_000,
		FlatFee:         true,
		GenesisID:       "sandnet-v1",
		GenesisHash:     bytes.Repeat([]byte{0x01}, 32),
		FirstRoundValid: 1_000,
		LastRoundValid:  2_000,
		MinFee:          1_000,
	}
}

// testComposer wires a composer to a single funded sender and canned
// suggested parameters. The nil node client is fine for pure build paths.
func testComposer(t *testing.T, window uint64) (*Composer, string) {
	t.Helper()

	signer, sender := testAccount()
	resolver := &resolverStub{signers: map[string]transaction.TransactionSigner{sender: signer}}
	provider := &paramsStub{params: testParams()}

	return New(nil, resolver.resolve, provider.provide, window), sender
}

func TestBuildGroup(t *testing.T) {
	t.Run("should build a payment with the default validity window", func(t *testing.T) {
		signer, sender := testAccount()
		_, receiver := testAccount()
		resolver := &resolverStub{signers: map[string]transaction.TransactionSigner{sender: signer}}
		provider := &paramsStub{params: testParams()}

		composer := New(nil, resolver.resolve, provider.provide, 10)
		group, err := composer.
			AddPayment(PaymentParams{Sender: sender, Receiver: receiver, Amount: 250_000, Note: []byte("rent")}).
			BuildGroup(context.Background())
		require.NoError(t, err)
		require.Len(t, group, 1)

		txn := group[0].Txn
		assert.Equal(t, types.PaymentTx, txn.Type)
		assert.Equal(t, sender, txn.Sender.String())
		assert.Equal(t, receiver, txn.Receiver.String())
		assert.Equal(t, types.MicroAlgos(250_000), txn.Amount)
		assert.Equal(t, []byte("rent"), txn.Note)
		assert.Equal(t, types.Round(1_000), txn.FirstValid)
		assert.Equal(t, types.Round(1_010), txn.LastValid)
		assert.True(t, group[0].Signer.Equals(signer))
		assert.Equal(t, 1, provider.calls)
	})

	t.Run("should prefer the record validity window over the default", func(t *testing.T) {
		composer, sender := testComposer(t, 10)
		_, receiver := testAccount()

		group, err := composer.
			AddPayment(PaymentParams{Sender: sender, Receiver: receiver, Amount: 1, ValidityWindow: 3}).
			BuildGroup(context.Background())
		require.NoError(t, err)

		require.Len(t, group, 1)
		assert.Equal(t, types.Round(1_003), group[0].Txn.LastValid)
	})

	t.Run("should keep the ledger validity range when no window is set", func(t *testing.T) {
		composer, sender := testComposer(t, 0)
		_, receiver := testAccount()

		group, err := composer.
			AddPayment(PaymentParams{Sender: sender, Receiver: receiver, Amount: 1}).
			BuildGroup(context.Background())
		require.NoError(t, err)

		require.Len(t, group, 1)
		assert.Equal(t, types.Round(2_000), group[0].Txn.LastValid)
	})

	t.Run("should assign one group id across multiple transactions", func(t *testing.T) {
		composer, sender := testComposer(t, 10)
		_, receiver := testAccount()

		group, err := composer.
			AddPayment(PaymentParams{Sender: sender, Receiver: receiver, Amount: 1}).
			AddPayment(PaymentParams{Sender: sender, Receiver: receiver, Amount: 2}).
			BuildGroup(context.Background())
		require.NoError(t, err)
		require.Len(t, group, 2)

		assert.NotEqual(t, types.Digest{}, group[0].Txn.Group)
		assert.Equal(t, group[0].Txn.Group, group[1].Txn.Group)
	})

	t.Run("should leave a single transaction ungrouped", func(t *testing.T) {
		composer, sender := testComposer(t, 10)
		_, receiver := testAccount()

		group, err := composer.
			AddPayment(PaymentParams{Sender: sender, Receiver: receiver, Amount: 1}).
			BuildGroup(context.Background())
		require.NoError(t, err)

		require.Len(t, group, 1)
		assert.Equal(t, types.Digest{}, group[0].Txn.Group)
	})

	t.Run("should surface invalid parameters without fetching anything", func(t *testing.T) {
		resolver := &resolverStub{signers: map[string]transaction.TransactionSigner{}}
		provider := &paramsStub{params: testParams()}
		composer := New(nil, resolver.resolve, provider.provide, 10)

		_, err := composer.
			AddPayment(PaymentParams{Sender: "not an address", Receiver: "neither", Amount: 1}).
			BuildGroup(context.Background())
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.Zero(t, provider.calls)
		assert.Zero(t, resolver.calls)
	})

	t.Run("should collect errors across multiple adds", func(t *testing.T) {
		composer, sender := testComposer(t, 10)

		_, err := composer.
			AddPayment(PaymentParams{Sender: sender, Receiver: "bogus"}).
			AddAssetTransfer(AssetTransferParams{Sender: sender, Receiver: sender}).
			BuildGroup(context.Background())
		require.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.Contains(t, err.Error(), "Receiver")
		assert.Contains(t, err.Error(), "AssetID")
	})

	t.Run("should fail when no transactions were added", func(t *testing.T) {
		composer, _ := testComposer(t, 10)

		_, err := composer.BuildGroup(context.Background())
		assert.ErrorIs(t, err, ErrEmptyGroup)
	})

	t.Run("should propagate suggested parameter errors", func(t *testing.T) {
		expectedErr := errors.New("node unavailable")

		signer, sender := testAccount()
		resolver := &resolverStub{signers: map[string]transaction.TransactionSigner{sender: signer}}
		provider := &paramsStub{err: expectedErr}
		composer := New(nil, resolver.resolve, provider.provide, 10)

		_, err := composer.
			AddPayment(PaymentParams{Sender: sender, Receiver: sender, Amount: 1}).
			BuildGroup(context.Background())
		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("should propagate signer resolution failures", func(t *testing.T) {
		_, sender := testAccount()
		resolver := &resolverStub{signers: map[string]transaction.TransactionSigner{}}
		provider := &paramsStub{params: testParams()}
		composer := New(nil, resolver.resolve, provider.provide, 10)

		_, err := composer.
			AddPayment(PaymentParams{Sender: sender, Receiver: sender, Amount: 1}).
			BuildGroup(context.Background())
		assert.ErrorIs(t, err, errNoSigner)
	})
}

func TestBuildGroupKinds(t *testing.T) {
	t.Run("should map asset creation fields", func(t *testing.T) {
		composer, sender := testComposer(t, 10)

		group, err := composer.
			AddAssetCreate(AssetCreateParams{
				Sender:    sender,
				Total:     1_000_000,
				Decimals:  2,
				UnitName:  "PLT",
				AssetName: "Pilot",
				URL:       "https://example.com/pilot",
				Manager:   sender,
			}).
			BuildGroup(context.Background())
		require.NoError(t, err)
		require.Len(t, group, 1)

		txn := group[0].Txn
		assert.Equal(t, types.AssetConfigTx, txn.Type)
		assert.Zero(t, txn.ConfigAsset)
		assert.Equal(t, uint64(1_000_000), txn.AssetParams.Total)
		assert.Equal(t, uint32(2), txn.AssetParams.Decimals)
		assert.Equal(t, "PLT", txn.AssetParams.UnitName)
		assert.Equal(t, "Pilot", txn.AssetParams.AssetName)
		assert.Equal(t, "https://example.com/pilot", txn.AssetParams.URL)
		assert.Equal(t, sender, txn.AssetParams.Manager.String())
	})

	t.Run("should map asset reconfiguration fields", func(t *testing.T) {
		composer, sender := testComposer(t, 10)
		_, manager := testAccount()

		group, err := composer.
			AddAssetConfig(AssetConfigParams{Sender: sender, AssetID: 7, Manager: manager}).
			BuildGroup(context.Background())
		require.NoError(t, err)
		require.Len(t, group, 1)

		txn := group[0].Txn
		assert.Equal(t, types.AssetConfigTx, txn.Type)
		assert.Equal(t, types.AssetIndex(7), txn.ConfigAsset)
		assert.Equal(t, manager, txn.AssetParams.Manager.String())
		assert.Equal(t, types.ZeroAddress, txn.AssetParams.Reserve)
	})

	t.Run("should map asset freeze fields", func(t *testing.T) {
		composer, sender := testComposer(t, 10)
		_, target := testAccount()

		group, err := composer.
			AddAssetFreeze(AssetFreezeParams{Sender: sender, AssetID: 9, Account: target, Frozen: true}).
			BuildGroup(context.Background())
		require.NoError(t, err)
		require.Len(t, group, 1)

		txn := group[0].Txn
		assert.Equal(t, types.AssetFreezeTx, txn.Type)
		assert.Equal(t, types.AssetIndex(9), txn.FreezeAsset)
		assert.Equal(t, target, txn.FreezeAccount.String())
		assert.True(t, txn.AssetFrozen)
	})

	t.Run("should map asset destruction fields", func(t *testing.T) {
		composer, sender := testComposer(t, 10)

		group, err := composer.
			AddAssetDestroy(AssetDestroyParams{Sender: sender, AssetID: 11}).
			BuildGroup(context.Background())
		require.NoError(t, err)
		require.Len(t, group, 1)

		txn := group[0].Txn
		assert.Equal(t, types.AssetConfigTx, txn.Type)
		assert.Equal(t, types.AssetIndex(11), txn.ConfigAsset)
		assert.Equal(t, types.AssetParams{}, txn.AssetParams)
	})

	t.Run("should map asset transfer fields", func(t *testing.T) {
		composer, sender := testComposer(t, 10)
		_, receiver := testAccount()

		group, err := composer.
			AddAssetTransfer(AssetTransferParams{Sender: sender, Receiver: receiver, AssetID: 13, Amount: 500}).
			BuildGroup(context.Background())
		require.NoError(t, err)
		require.Len(t, group, 1)

		txn := group[0].Txn
		assert.Equal(t, types.AssetTransferTx, txn.Type)
		assert.Equal(t, types.AssetIndex(13), txn.XferAsset)
		assert.Equal(t, uint64(500), txn.AssetAmount)
		assert.Equal(t, receiver, txn.AssetReceiver.String())
		assert.Equal(t, types.ZeroAddress, txn.AssetCloseTo)
	})

	t.Run("should opt the sender into an asset with a zero self transfer", func(t *testing.T) {
		composer, sender := testComposer(t, 10)

		group, err := composer.
			AddAssetOptIn(AssetOptInParams{Sender: sender, AssetID: 15}).
			BuildGroup(context.Background())
		require.NoError(t, err)
		require.Len(t, group, 1)

		txn := group[0].Txn
		assert.Equal(t, types.AssetTransferTx, txn.Type)
		assert.Equal(t, types.AssetIndex(15), txn.XferAsset)
		assert.Zero(t, txn.AssetAmount)
		assert.Equal(t, sender, txn.AssetReceiver.String())
	})

	t.Run("should map application call fields", func(t *testing.T) {
		composer, sender := testComposer(t, 10)

		group, err := composer.
			AddAppCall(AppCallParams{
				Sender:     sender,
				AppID:      21,
				OnComplete: types.NoOpOC,
				Args:       [][]byte{[]byte("ping")},
			}).
			BuildGroup(context.Background())
		require.NoError(t, err)
		require.Len(t, group, 1)

		txn := group[0].Txn
		assert.Equal(t, types.ApplicationCallTx, txn.Type)
		assert.Equal(t, types.AppIndex(21), txn.ApplicationID)
		assert.Equal(t, types.NoOpOC, txn.OnCompletion)
		require.Len(t, txn.ApplicationArgs, 1)
		assert.Equal(t, []byte("ping"), txn.ApplicationArgs[0])
	})

	t.Run("should map online key registration fields", func(t *testing.T) {
		composer, sender := testComposer(t, 10)

		voteKey := bytes.Repeat([]byte{0x02}, 32)
		selectionKey := bytes.Repeat([]byte{0x03}, 32)
		stateProofKey := bytes.Repeat([]byte{0x04}, 64)

		group, err := composer.
			AddOnlineKeyReg(OnlineKeyRegParams{
				Sender:          sender,
				VoteKey:         base64.StdEncoding.EncodeToString(voteKey),
				SelectionKey:    base64.StdEncoding.EncodeToString(selectionKey),
				StateProofKey:   base64.StdEncoding.EncodeToString(stateProofKey),
				VoteFirst:       1_000,
				VoteLast:        2_000,
				VoteKeyDilution: 10_000,
			}).
			BuildGroup(context.Background())
		require.NoError(t, err)
		require.Len(t, group, 1)

		txn := group[0].Txn
		assert.Equal(t, types.KeyRegistrationTx, txn.Type)
		assert.Equal(t, voteKey, txn.VotePK[:])
		assert.Equal(t, selectionKey, txn.SelectionPK[:])
		assert.Equal(t, types.Round(1_000), txn.VoteFirst)
		assert.Equal(t, types.Round(2_000), txn.VoteLast)
		assert.Equal(t, uint64(10_000), txn.VoteKeyDilution)
		assert.False(t, txn.Nonparticipation)
	})

	t.Run("should encode the method selector of an ABI call", func(t *testing.T) {
		composer, sender := testComposer(t, 10)

		method, err := abi.MethodFromSignature("ping()void")
		require.NoError(t, err)

		group, err := composer.
			AddMethodCall(MethodCallParams{Sender: sender, AppID: 5, Method: method}).
			BuildGroup(context.Background())
		require.NoError(t, err)
		require.Len(t, group, 1)

		txn := group[0].Txn
		assert.Equal(t, types.ApplicationCallTx, txn.Type)
		assert.Equal(t, types.AppIndex(5), txn.ApplicationID)
		require.NotEmpty(t, txn.ApplicationArgs)
		assert.Equal(t, method.GetSelector(), txn.ApplicationArgs[0])
	})

	t.Run("should reject a method call without a method", func(t *testing.T) {
		composer, sender := testComposer(t, 10)

		_, err := composer.
			AddMethodCall(MethodCallParams{Sender: sender, AppID: 5}).
			BuildGroup(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no ABI method")
	})
}

func TestExecute(t *testing.T) {
	newCountingNode := func(t *testing.T) (*algod.Client, *int) {
		t.Helper()

		requests := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		client, err := algod.MakeClient(srv.URL, "")
		require.NoError(t, err)

		return client, &requests
	}

	t.Run("should not reach the node when parameters are invalid", func(t *testing.T) {
		client, requests := newCountingNode(t)
		provider := &paramsStub{params: testParams()}
		composer := New(client, (&resolverStub{}).resolve, provider.provide, 10)

		_, err := composer.
			AddPayment(PaymentParams{Sender: "bogus", Receiver: "also bogus", Amount: 1}).
			Execute(context.Background())
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.Zero(t, *requests)
		assert.Zero(t, provider.calls)
	})

	t.Run("should not reach the node when the group is empty", func(t *testing.T) {
		client, requests := newCountingNode(t)
		composer := New(client, (&resolverStub{}).resolve, (&paramsStub{params: testParams()}).provide, 10)

		_, err := composer.Execute(context.Background())
		assert.ErrorIs(t, err, ErrEmptyGroup)
		assert.Zero(t, *requests)
	})

	t.Run("should not reach the node when a signer is missing", func(t *testing.T) {
		client, requests := newCountingNode(t)
		_, sender := testAccount()
		composer := New(client, (&resolverStub{signers: map[string]transaction.TransactionSigner{}}).resolve, (&paramsStub{params: testParams()}).provide, 10)

		_, err := composer.
			AddPayment(PaymentParams{Sender: sender, Receiver: sender, Amount: 1}).
			Execute(context.Background())
		assert.ErrorIs(t, err, errNoSigner)
		assert.Zero(t, *requests)
	})
}
