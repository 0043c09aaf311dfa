// Package config loads the process configuration from environment variables.
// The variable names follow the conventions of the Algorand tooling ecosystem
// (ALGOD_SERVER, ALGOD_TOKEN, INDEXER_SERVER, KMD_SERVER, ...), with defaults
// matching a stock LocalNet so a bare environment points at a local ledger.
package config

import (
	"strings"

	"github.com/algopilot/algopilot/internal/network"
	"github.com/algopilot/algopilot/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// Service holds the environment-supplied coordinates of one ledger service.
// Port, when set, is appended to Server when the full address is assembled.
type Service struct {
	Server string `envconfig:"SERVER" validate:"required,url"`
	Port   string `envconfig:"PORT"`
	Token  string `envconfig:"TOKEN"`
}

// Address assembles the full service address from Server and the optional
// Port.
func (s Service) Address() string {
	address := strings.TrimRight(s.Server, "/")
	if s.Port != "" {
		address += ":" + s.Port
	}
	return address
}

// Config is the full environment configuration of the process.
type Config struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error panic fatal"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"algopilot"`
	Telemetry   bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`

	Algod   Service
	Indexer Service
	Kmd     Service

	// DispenserMnemonic is the out-of-band secret that recovers the funding
	// account on networks without a KMD default wallet.
	DispenserMnemonic string `envconfig:"DISPENSER_MNEMONIC"`

	// DispenserAccessToken authorizes calls to the hosted TestNet dispenser
	// API.
	DispenserAccessToken string `envconfig:"ALGOPILOT_DISPENSER_ACCESS_TOKEN"`
}

// Load reads the configuration from the environment, applies the LocalNet
// defaults for anything unset, and validates the result.
func Load() (Config, error) {
	var cfg Config

	local := network.LocalNet()
	cfg.Algod = Service{Server: local.Algod.Address, Token: local.Algod.Token}
	cfg.Indexer = Service{Server: local.Indexer.Address, Token: local.Indexer.Token}
	cfg.Kmd = Service{Server: local.Kmd.Address, Token: local.Kmd.Token}

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Network converts the loaded configuration into a network.Config usable by
// the facade factories.
func (c Config) Network() network.Config {
	return network.Config{
		Name:    "environment",
		Algod:   network.Endpoint{Address: c.Algod.Address(), Token: c.Algod.Token},
		Indexer: network.Endpoint{Address: c.Indexer.Address(), Token: c.Indexer.Token},
		Kmd:     network.Endpoint{Address: c.Kmd.Address(), Token: c.Kmd.Token},
	}
}
