package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Define errors
var (
	ErrMissingDiscordClientID = errors.New("DISCORD_CLIENT_ID must be set")
	ErrMissingDiscordSecret   = errors.New("DISCORD_CLIENT_SECRET must be set")
)

// Config holds runtime configuration, loaded from the environment. The
// Discord client secret is deliberately env-only: it must never appear
// in source, flags, or anything served to a client.
type Config struct {
	// ListenAddr is where the HTTP API listens
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// PublicOrigin is the externally visible origin of this server,
	// used as the trusted source for OAuth callback relaying
	PublicOrigin string `env:"PUBLIC_ORIGIN" envDefault:"http://localhost:8080"`

	// DiscordClientID is the public OAuth application id
	DiscordClientID string `env:"DISCORD_CLIENT_ID"`

	// DiscordClientSecret authenticates the server-side token exchange
	DiscordClientSecret string `env:"DISCORD_CLIENT_SECRET"`

	// EthRPCURL is the JSON-RPC endpoint of an Ethereum node
	EthRPCURL string `env:"ETH_RPC_URL" envDefault:"https://ethereum-sepolia-rpc.publicnode.com"`

	// ContractAddress is the deployed game contract
	ContractAddress string `env:"CONTRACT_ADDRESS" envDefault:"0x3394e568B58FE88dF143815bf6c82bE24042ee17"`

	// EthPrivateKey signs game transactions. Hex, without 0x prefix.
	EthPrivateKey string `env:"ETH_PRIVATE_KEY"`

	// StakeETH is the stake per game, in ether
	StakeETH string `env:"STAKE_ETH" envDefault:"0.01"`
}

// Load parses configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// ValidateDiscord checks the fields the OAuth proxy requires
func (c *Config) ValidateDiscord() error {
	if c.DiscordClientID == "" {
		return ErrMissingDiscordClientID
	}
	if c.DiscordClientSecret == "" {
		return ErrMissingDiscordSecret
	}
	return nil
}
