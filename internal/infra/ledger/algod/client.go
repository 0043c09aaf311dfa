// Package algod adapts the Algorand node REST client to the ledger
// interfaces consumed by the registry and the suggested-parameters cache.
package algod

import (
	algodv2 "github.com/algorand/go-algorand-sdk/v2/client/v2/algod"

	"github.com/algopilot/algopilot/internal/paramcache"
	"github.com/algopilot/algopilot/internal/signerregistry"
)

// client exposes the subset of node operations the rest of the system
// consumes. It communicates with an Algorand node via the SDK REST client.
type client struct {
	conn *algodv2.Client // Underlying REST client used to interact with the node
}

// Ensure client satisfies its consumer interfaces at compile time.
var (
	_ signerregistry.Ledger = (*client)(nil)
	_ paramcache.Fetcher    = (*client)(nil)
)

// NewClient creates a ledger adapter around the provided node connection.
func NewClient(conn *algodv2.Client) *client {
	return &client{
		conn: conn,
	}
}
