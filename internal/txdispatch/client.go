// Package txdispatch exposes the top-level client facade. One Client bundles
// the node and indexer connections, the signer registry, and the
// suggested-parameters cache behind a small chainable API for building,
// sending, and inspecting transactions on a single network.
package txdispatch

import (
	"context"
	"fmt"
	"time"

	kmdclient "github.com/algorand/go-algorand-sdk/v2/client/kmd"
	algodv2 "github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/indexer"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/algopilot/algopilot/internal/config"
	"github.com/algopilot/algopilot/internal/infra/dispenser"
	kmdinfra "github.com/algopilot/algopilot/internal/infra/keystore/kmd"
	algodinfra "github.com/algopilot/algopilot/internal/infra/ledger/algod"
	"github.com/algopilot/algopilot/internal/network"
	"github.com/algopilot/algopilot/internal/paramcache"
	"github.com/algopilot/algopilot/internal/pkg/logger"
	"github.com/algopilot/algopilot/internal/signerregistry"
	"github.com/algopilot/algopilot/internal/txcompose"
)

// DefaultValidityWindow is how many rounds transactions built through the
// facade stay valid unless a record overrides it.
const DefaultValidityWindow = 10

// Confirmer waits for a submitted transaction to land in a block and reports
// the confirmed transaction information.
type Confirmer interface {
	WaitForConfirmation(ctx context.Context, txID string) (models.PendingTransactionInfoResponse, error)
}

// runner executes a composed transaction group. The indirection keeps the
// submission step swappable in tests.
type runner interface {
	Run(ctx context.Context, group *txcompose.Composer) (txcompose.ExecuteResult, error)
}

// composerRunner submits groups through the composer itself.
type composerRunner struct{}

func (composerRunner) Run(ctx context.Context, group *txcompose.Composer) (txcompose.ExecuteResult, error) {
	return group.Execute(ctx)
}

// Client is the facade bundling everything needed to work against one
// network. Build one per network with the factory functions. The Set*
// configuration methods are meant for setup; once configured, a Client is
// safe for concurrent use.
type Client struct {
	algod   *algodv2.Client
	indexer *indexer.Client

	registry  signerregistry.Service
	params    paramcache.Service
	confirmer Confirmer
	runner    runner

	validityWindow uint64
	dispenserToken string
}

// newClient wires a facade from its collaborators.
func newClient(algodClient *algodv2.Client, indexerClient *indexer.Client, registry signerregistry.Service, params paramcache.Service, confirmer Confirmer, run runner) *Client {
	return &Client{
		algod:          algodClient,
		indexer:        indexerClient,
		registry:       registry,
		params:         params,
		confirmer:      confirmer,
		runner:         run,
		validityWindow: DefaultValidityWindow,
	}
}

// FromClients assembles a facade from already constructed clients. The
// keystore may be nil on networks without a key management daemon.
func FromClients(algodClient *algodv2.Client, indexerClient *indexer.Client, keystore signerregistry.Keystore, opts ...signerregistry.Option) *Client {
	ledger := algodinfra.NewClient(algodClient)
	registry := signerregistry.New(ledger, keystore, opts...)
	params := paramcache.New(ledger)

	return newClient(algodClient, indexerClient, registry, params, ledger, composerRunner{})
}

// FromConfig connects a facade to the endpoints named by the network
// configuration. Indexer and kmd endpoints are optional.
func FromConfig(cfg network.Config, opts ...signerregistry.Option) (*Client, error) {
	if cfg.Algod.Address == "" {
		return nil, fmt.Errorf("network %q: node address is required", cfg.Name)
	}

	algodClient, err := algodv2.MakeClient(cfg.Algod.Address, cfg.Algod.Token)
	if err != nil {
		return nil, fmt.Errorf("creating node client: %w", err)
	}

	var indexerClient *indexer.Client
	if cfg.Indexer.Address != "" {
		indexerClient, err = indexer.MakeClient(cfg.Indexer.Address, cfg.Indexer.Token)
		if err != nil {
			return nil, fmt.Errorf("creating indexer client: %w", err)
		}
	}

	var keystore signerregistry.Keystore
	if cfg.Kmd.Address != "" {
		conn, err := kmdclient.MakeClient(cfg.Kmd.Address, cfg.Kmd.Token)
		if err != nil {
			return nil, fmt.Errorf("creating kmd client: %w", err)
		}

		keystore = kmdinfra.NewClient(conn)
	}

	return FromClients(algodClient, indexerClient, keystore, opts...), nil
}

// DefaultLocalNet connects a facade to a local development network on the
// standard ports.
func DefaultLocalNet() (*Client, error) {
	return FromConfig(network.LocalNet())
}

// TestNet connects a facade to the public test network through free public
// endpoints.
func TestNet() (*Client, error) {
	return FromConfig(network.TestNet())
}

// MainNet connects a facade to the public main network through free public
// endpoints.
func MainNet() (*Client, error) {
	return FromConfig(network.MainNet())
}

// FromEnvironment connects a facade to the endpoints named by the process
// environment, falling back to the local development defaults for anything
// unset.
func FromEnvironment() (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client, err := FromConfig(cfg.Network(), signerregistry.WithDispenserMnemonic(cfg.DispenserMnemonic))
	if err != nil {
		return nil, err
	}

	client.dispenserToken = cfg.DispenserAccessToken
	return client, nil
}

// Account returns the signer registry of this facade.
func (c *Client) Account() signerregistry.Service {
	return c.registry
}

// Algod returns the raw node client for operations the facade does not cover.
func (c *Client) Algod() *algodv2.Client {
	return c.algod
}

// Indexer returns the raw indexer client, or nil when the network has no
// indexer configured.
func (c *Client) Indexer() *indexer.Client {
	return c.indexer
}

// TestNetDispenser returns a client for the hosted dispenser API,
// authenticated with the access token from the environment configuration or,
// when none was loaded, the ALGOPILOT_DISPENSER_ACCESS_TOKEN variable.
func (c *Client) TestNetDispenser(opts ...dispenser.Option) (*dispenser.Client, error) {
	return dispenser.NewFromAccessToken(c.dispenserToken, opts...)
}

// SuggestedParams returns a suggested-parameters snapshot, served from the
// cache while fresh.
func (c *Client) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	return c.params.SuggestedParams(ctx)
}

// SetSuggestedParams seeds the parameter cache manually. A zero until keeps
// the snapshot for one cache timeout.
func (c *Client) SetSuggestedParams(params types.SuggestedParams, until time.Time) *Client {
	c.params.SetSuggestedParams(params, until)
	return c
}

// SetSuggestedParamsTimeout rewrites the cache timeout used for future
// refreshes.
func (c *Client) SetSuggestedParamsTimeout(ttl time.Duration) *Client {
	c.params.SetTimeout(ttl)
	return c
}

// SetDefaultValidityWindow overrides how many rounds transactions built by
// this facade stay valid.
func (c *Client) SetDefaultValidityWindow(window uint64) *Client {
	c.validityWindow = window
	return c
}

// SetDefaultSigner installs the fallback signer used for addresses with no
// explicit registration.
func (c *Client) SetDefaultSigner(signer transaction.TransactionSigner) *Client {
	c.registry.SetDefaultSigner(signer)
	return c
}

// SetSigner pins a signer to one address. Invalid registrations are logged
// and skipped; use Account().Register to handle the error instead.
func (c *Client) SetSigner(address string, signer transaction.TransactionSigner) *Client {
	if err := c.registry.Register(address, signer); err != nil {
		logger.Error(context.Background(), "signer registration skipped", "address", address, "error", err)
	}

	return c
}

// NewGroup opens a fresh transaction group bound to this facade's signer
// resolution and parameter cache.
func (c *Client) NewGroup() *txcompose.Composer {
	return txcompose.New(c.algod, c.registry.SignerFor, c.params.SuggestedParams, c.validityWindow)
}
