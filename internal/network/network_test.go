package network

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalNet(t *testing.T) {
	t.Run("should point at the default LocalNet ports", func(t *testing.T) {
		cfg := LocalNet()

		assert.Equal(t, "localnet", cfg.Name)
		assert.Equal(t, "http://localhost:4001", cfg.Algod.Address)
		assert.Equal(t, "http://localhost:8980", cfg.Indexer.Address)
		assert.Equal(t, "http://localhost:4002", cfg.Kmd.Address)
	})

	t.Run("should carry the default token on every service", func(t *testing.T) {
		cfg := LocalNet()

		expected := strings.Repeat("a", 64)
		assert.Equal(t, expected, cfg.Algod.Token)
		assert.Equal(t, expected, cfg.Indexer.Token)
		assert.Equal(t, expected, cfg.Kmd.Token)
	})

	t.Run("should hand out independent values", func(t *testing.T) {
		first := LocalNet()
		first.Algod.Address = "http://changed:1234"

		assert.Equal(t, "http://localhost:4001", LocalNet().Algod.Address)
	})
}

func TestTestNet(t *testing.T) {
	cfg := TestNet()

	assert.Equal(t, "testnet", cfg.Name)
	assert.Equal(t, "https://testnet-api.algonode.cloud", cfg.Algod.Address)
	assert.Equal(t, "https://testnet-idx.algonode.cloud", cfg.Indexer.Address)
	assert.Empty(t, cfg.Algod.Token, "public AlgoNode endpoints require no token")
	assert.Empty(t, cfg.Kmd.Address, "no KMD runs on public networks")
}

func TestMainNet(t *testing.T) {
	cfg := MainNet()

	assert.Equal(t, "mainnet", cfg.Name)
	assert.Equal(t, "https://mainnet-api.algonode.cloud", cfg.Algod.Address)
	assert.Equal(t, "https://mainnet-idx.algonode.cloud", cfg.Indexer.Address)
	assert.Empty(t, cfg.Kmd.Address, "no KMD runs on public networks")
}

func TestIsLocalNetGenesis(t *testing.T) {
	t.Run("should accept every LocalNet genesis id", func(t *testing.T) {
		for _, id := range []string{"devnet-v1", "sandnet-v1", "dockernet-v1"} {
			assert.True(t, IsLocalNetGenesis(id), "genesis id %s should be LocalNet", id)
		}
	})

	t.Run("should reject public network genesis ids", func(t *testing.T) {
		for _, id := range []string{"testnet-v1.0", "mainnet-v1.0", "betanet-v1.0", ""} {
			assert.False(t, IsLocalNetGenesis(id), "genesis id %s should not be LocalNet", id)
		}
	})
}
