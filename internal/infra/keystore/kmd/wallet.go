package kmd

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/algopilot/algopilot/internal/signerregistry"
)

// walletID resolves a wallet's id from its display name. The daemon only
// addresses wallets by id, while callers know them by name.
func (c *client) walletID(walletName string) (string, error) {
	resp, err := c.conn.ListWallets()
	if err != nil {
		return "", err
	}

	for _, wallet := range resp.Wallets {
		if wallet.Name == walletName {
			return wallet.ID, nil
		}
	}

	return "", fmt.Errorf("wallet %q: %w", walletName, signerregistry.ErrWalletNotFound)
}

// withWalletHandle runs fn with a freshly acquired wallet handle and releases
// the handle before returning.
func (c *client) withWalletHandle(walletName string, fn func(handle string) error) error {
	id, err := c.walletID(walletName)
	if err != nil {
		return err
	}

	resp, err := c.conn.InitWalletHandle(id, c.password)
	if err != nil {
		return err
	}

	handle := resp.WalletHandleToken
	defer func() {
		_, _ = c.conn.ReleaseWalletHandle(handle)
	}()

	return fn(handle)
}

// WalletAddresses lists the addresses held by the named wallet.
func (c *client) WalletAddresses(ctx context.Context, walletName string) ([]string, error) {
	var addresses []string

	err := c.retrier.Execute(ctx, func() error {
		return c.withWalletHandle(walletName, func(handle string) error {
			resp, err := c.conn.ListKeys(handle)
			if err != nil {
				return err
			}

			addresses = resp.Addresses
			return nil
		})
	})

	return addresses, err
}

// ExportKey extracts the private key backing one address of the named wallet.
func (c *client) ExportKey(ctx context.Context, walletName, address string) (ed25519.PrivateKey, error) {
	var key ed25519.PrivateKey

	err := c.retrier.Execute(ctx, func() error {
		return c.withWalletHandle(walletName, func(handle string) error {
			resp, err := c.conn.ExportKey(handle, c.password, address)
			if err != nil {
				return err
			}

			key = resp.PrivateKey
			return nil
		})
	})

	return key, err
}
