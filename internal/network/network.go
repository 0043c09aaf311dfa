// Package network defines the endpoint presets for the named Algorand
// networks. Each preset pairs the algod, indexer, and KMD endpoints with their
// access tokens. Presets are returned by value and never mutated after
// construction.
package network

import "strings"

// LocalNetToken is the API token every stock LocalNet service (algod, indexer,
// KMD) is provisioned with.
var LocalNetToken = strings.Repeat("a", 64)

// localNetGenesisIDs lists the genesis ids a LocalNet ledger may report,
// depending on how the network was brought up.
var localNetGenesisIDs = []string{"devnet-v1", "sandnet-v1", "dockernet-v1"}

// Endpoint is an addressable network service plus the token that authorizes
// requests against it. An empty Address means the service is not available on
// that network.
type Endpoint struct {
	Address string
	Token   string
}

// Config describes one named network: where to reach its algod node, its
// indexer, and, when present, its KMD key-management daemon.
type Config struct {
	Name    string
	Algod   Endpoint
	Indexer Endpoint
	Kmd     Endpoint
}

// LocalNet returns the preset for a stock LocalNet brought up on the default
// ports with the default token.
func LocalNet() Config {
	return Config{
		Name:    "localnet",
		Algod:   Endpoint{Address: "http://localhost:4001", Token: LocalNetToken},
		Indexer: Endpoint{Address: "http://localhost:8980", Token: LocalNetToken},
		Kmd:     Endpoint{Address: "http://localhost:4002", Token: LocalNetToken},
	}
}

// TestNet returns the preset for the public TestNet, served through the free
// AlgoNode API. No KMD runs on public networks.
func TestNet() Config {
	return Config{
		Name:    "testnet",
		Algod:   Endpoint{Address: "https://testnet-api.algonode.cloud"},
		Indexer: Endpoint{Address: "https://testnet-idx.algonode.cloud"},
	}
}

// MainNet returns the preset for MainNet, served through the free AlgoNode
// API. No KMD runs on public networks.
func MainNet() Config {
	return Config{
		Name:    "mainnet",
		Algod:   Endpoint{Address: "https://mainnet-api.algonode.cloud"},
		Indexer: Endpoint{Address: "https://mainnet-idx.algonode.cloud"},
	}
}

// IsLocalNetGenesis reports whether the given genesis id belongs to a LocalNet
// ledger.
func IsLocalNetGenesis(genesisID string) bool {
	for _, id := range localNetGenesisIDs {
		if genesisID == id {
			return true
		}
	}
	return false
}
