// Package kmd adapts the Algorand key management daemon to the
// signerregistry.Keystore interface. Wallets are addressed by display name,
// and a fresh wallet handle is acquired and released around every call since
// handles expire server side.
package kmd

import (
	"errors"

	kmdclient "github.com/algorand/go-algorand-sdk/v2/client/kmd"

	"github.com/algopilot/algopilot/internal/pkg/resilience/retry"
	"github.com/algopilot/algopilot/internal/signerregistry"
)

// client implements the signerregistry.Keystore interface on top of the SDK
// kmd client.
type client struct {
	conn     kmdclient.Client // Underlying kmd REST client
	password string           // Wallet password, empty for unencrypted wallets
	retrier  retry.Retry      // Retry policy applied to every daemon call
}

// Ensure client implements the signerregistry.Keystore interface at compile time.
var _ signerregistry.Keystore = (*client)(nil)

// config holds the client settings configurable via options.
type config struct {
	password string
	retrier  retry.Retry
}

// Option overrides one client setting.
type Option func(*config)

// WithWalletPassword sets the password used to acquire wallet handles and
// export keys. The default is empty, which matches the unencrypted wallets a
// local development network ships with.
func WithWalletPassword(password string) Option {
	return func(c *config) {
		c.password = password
	}
}

// WithRetry replaces the retry policy applied to daemon calls.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retrier = r
	}
}

// isRetryable keeps the retry policy away from lookups that failed because
// the wallet does not exist.
func isRetryable(err error) bool {
	return !errors.Is(err, signerregistry.ErrWalletNotFound)
}

// NewClient creates a keystore adapter around the provided kmd connection.
func NewClient(conn kmdclient.Client, opts ...Option) *client {
	cfg := config{
		retrier: retry.New(retry.WithRetryIf(isRetryable)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &client{
		conn:     conn,
		password: cfg.password,
		retrier:  cfg.retrier,
	}
}
