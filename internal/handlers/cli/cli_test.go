package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	algodv2 "github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/algopilot/algopilot/internal/pkg/logger"
	"github.com/algopilot/algopilot/internal/signerregistry"
	"github.com/algopilot/algopilot/internal/txdispatch"
)

func init() {
	_ = logger.Init(logger.WithLevel("error"))
}

// fakeNode is a minimal in-memory node backing the command tests.
type fakeNode struct {
	t         *testing.T
	genesisID string
	balance   uint64

	submissions int
}

func (n *fakeNode) handler() http.HandlerFunc {
	genesisHash := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{1}, 32))

	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v2/transactions/params":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w,
				`{"consensus-version":"future","fee":0,"genesis-hash":%q,"genesis-id":%q,"last-round":1,"min-fee":1000}`,
				genesisHash, n.genesisID,
			)
		case r.URL.Path == "/v2/transactions" && r.Method == http.MethodPost:
			n.submissions++
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"txId":"PENDING"}`)
		case r.URL.Path == "/v2/status":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"last-round":1}`)
		case strings.HasPrefix(r.URL.Path, "/v2/status/wait-for-block-after/"):
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"last-round":2}`)
		case strings.HasPrefix(r.URL.Path, "/v2/transactions/pending/"):
			w.Header().Set("Content-Type", "application/msgpack")
			_, _ = w.Write(msgpack.Encode(models.PendingTransactionInfoResponse{ConfirmedRound: 2}))
		case strings.HasPrefix(r.URL.Path, "/v2/accounts/"):
			address := strings.TrimPrefix(r.URL.Path, "/v2/accounts/")
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"address":%q,"amount":%d,"status":"Offline"}`, address, n.balance)
		default:
			n.t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

// newTestFacade points a facade at a fake node.
func newTestFacade(t *testing.T, node *fakeNode, opts ...signerregistry.Option) *txdispatch.Client {
	t.Helper()

	srv := httptest.NewServer(node.handler())
	t.Cleanup(srv.Close)

	conn, err := algodv2.MakeClient(srv.URL, strings.Repeat("a", 64))
	require.NoError(t, err)

	return txdispatch.FromClients(conn, nil, nil, opts...)
}

// runCommand executes one command under a throwaway app and captures its
// output.
func runCommand(t *testing.T, cmd *cli.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := &cli.Command{
		Writer:   &out,
		Commands: []*cli.Command{cmd},
	}

	err := app.Run(t.Context(), append([]string{"test"}, args...))
	return out.String(), err
}

func TestRun(t *testing.T) {
	// Save original os.Args to restore after tests
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	t.Run("should create CLI app with correct metadata", func(t *testing.T) {
		node := &fakeNode{t: t, genesisID: "sandnet-v1"}
		client := newTestFacade(t, node)

		os.Args = []string{"algopilot", "--help"}

		assert.NoError(t, Run(t.Context(), client))
	})

	t.Run("should show help for a specific command", func(t *testing.T) {
		node := &fakeNode{t: t, genesisID: "sandnet-v1"}
		client := newTestFacade(t, node)

		os.Args = []string{"algopilot", "help", "account"}

		assert.NoError(t, Run(t.Context(), client))
	})

	t.Run("should run the params command end to end", func(t *testing.T) {
		node := &fakeNode{t: t, genesisID: "sandnet-v1"}
		client := newTestFacade(t, node)

		os.Args = []string{"algopilot", "params", "show"}

		assert.NoError(t, Run(t.Context(), client))
	})

	t.Run("should fail on missing required flags", func(t *testing.T) {
		node := &fakeNode{t: t, genesisID: "sandnet-v1"}
		client := newTestFacade(t, node)

		os.Args = []string{"algopilot", "send", "payment"}

		assert.Error(t, Run(t.Context(), client))
	})
}
