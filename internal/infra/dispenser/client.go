// Package dispenser provides a client for the hosted dispenser API that
// funds accounts on the public test network. Requests authenticate with a
// bearer access token, so the HTTP client handed in must carry one.
package dispenser

import (
	"errors"
	"os"

	"github.com/hashicorp/go-retryablehttp"

	transporthttp "github.com/algopilot/algopilot/internal/pkg/transport/http"
)

// DefaultBaseURL points at the hosted dispenser for the public test network.
const DefaultBaseURL = "https://api.dispenser.algorandfoundation.tools"

// accessTokenEnv names the environment variable consulted for the API access
// token when none was handed to NewFromAccessToken.
const accessTokenEnv = "ALGOPILOT_DISPENSER_ACCESS_TOKEN"

// algoAssetID identifies the native currency on the dispenser API.
const algoAssetID = 0

// ErrFundingFailed is returned when the dispenser rejects a request. The
// rejection code reported by the API is attached to the error message.
var ErrFundingFailed = errors.New("dispenser request rejected")

// ErrAccessTokenNotSet is returned by NewFromAccessToken when no access token
// was given and none is present in the environment.
var ErrAccessTokenNotSet = errors.New("dispenser access token is not configured")

// Client talks to the dispenser REST API.
type Client struct {
	conn    *retryablehttp.Client // HTTP client carrying the bearer token
	baseURL string
}

// config holds the client settings configurable via options.
type config struct {
	baseURL string
}

// Option overrides one client setting.
type Option func(*config)

// WithBaseURL points the client at a different dispenser deployment.
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// NewClient creates a dispenser client around the provided HTTP connection.
func NewClient(conn *retryablehttp.Client, opts ...Option) *Client {
	cfg := config{
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{
		conn:    conn,
		baseURL: cfg.baseURL,
	}
}

// NewFromAccessToken creates a dispenser client with its own HTTP transport
// authenticating via the given bearer token. An empty token falls back to the
// ALGOPILOT_DISPENSER_ACCESS_TOKEN environment variable; with neither set it
// fails with ErrAccessTokenNotSet.
func NewFromAccessToken(accessToken string, opts ...Option) (*Client, error) {
	if accessToken == "" {
		accessToken = os.Getenv(accessTokenEnv)
	}
	if accessToken == "" {
		return nil, ErrAccessTokenNotSet
	}

	conn := transporthttp.NewClient(transporthttp.WithAuthorization(accessToken))
	return NewClient(conn, opts...), nil
}
