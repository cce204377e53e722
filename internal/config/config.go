// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package config loads seedwallet settings from a config file, SEEDWALLET_
// environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/complex-gh/seedwallet"
	"github.com/complex-gh/seedwallet/internal/phrase"
)

// EnvPrefix prefixes every environment variable, e.g. SEEDWALLET_NETWORK.
const EnvPrefix = "SEEDWALLET"

// Keys.
const (
	KeyNetwork        = "network"
	KeySolanaRPC      = "solana.rpc_url"
	KeyEthereumRPC    = "ethereum.rpc_url"
	KeyEthereumScheme = "ethereum.scheme"
	KeyState          = "state"
	KeyLogLevel       = "log_level"
	KeyLanguage       = "language"
	KeyTimeout        = "timeout"
)

// Network selects the cluster or chain the RPC clients talk to.
type Network string

const (
	Mainnet Network = "mainnet"
	Devnet  Network = "devnet"
	Testnet Network = "testnet"
)

type endpoints struct {
	solana, ethereum string
}

var defaultEndpoints = map[Network]endpoints{
	Mainnet: {"https://api.mainnet-beta.solana.com", "https://ethereum-rpc.publicnode.com"},
	Devnet:  {"https://api.devnet.solana.com", "https://ethereum-sepolia-rpc.publicnode.com"},
	Testnet: {"https://api.testnet.solana.com", "https://ethereum-hoodi-rpc.publicnode.com"},
}

// Faucet reports whether the network hands out test funds.
func (n Network) Faucet() bool {
	return n == Devnet || n == Testnet
}

// ChainConfig holds per chain settings.
type ChainConfig struct {
	RPCURL string `mapstructure:"rpc_url"`
	Scheme string `mapstructure:"scheme"`
}

// Config is the resolved configuration.
type Config struct {
	Network  Network       `mapstructure:"network"`
	Solana   ChainConfig   `mapstructure:"solana"`
	Ethereum ChainConfig   `mapstructure:"ethereum"`
	State    string        `mapstructure:"state"`
	LogLevel string        `mapstructure:"log_level"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// SetDefaults registers every key with its default so environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyNetwork, string(Devnet))
	v.SetDefault(KeySolanaRPC, "")
	v.SetDefault(KeyEthereumRPC, "")
	v.SetDefault(KeyEthereumScheme, seedwallet.EthereumBIP44.String())
	v.SetDefault(KeyState, "")
	v.SetDefault(KeyLogLevel, zerolog.InfoLevel.String())
	v.SetDefault(KeyLanguage, "english")
	v.SetDefault(KeyTimeout, 15*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// ReadFile reads the config file at path into v. With an empty path the
// default file is read if it exists.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		path = DefaultFile()
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("could not read config %s: %w", path, err)
	}
	return nil
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	cfg.Network = Network(strings.ToLower(strings.TrimSpace(string(cfg.Network))))
	def, ok := defaultEndpoints[cfg.Network]
	if !ok {
		return nil, fmt.Errorf("invalid %s %q: want mainnet, devnet or testnet", KeyNetwork, cfg.Network)
	}
	if cfg.Solana.RPCURL == "" {
		cfg.Solana.RPCURL = def.solana
	}
	if cfg.Ethereum.RPCURL == "" {
		cfg.Ethereum.RPCURL = def.ethereum
	}
	if cfg.State == "" {
		cfg.State = DefaultStatePath()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	for key, raw := range map[string]string{KeySolanaRPC: c.Solana.RPCURL, KeyEthereumRPC: c.Ethereum.RPCURL} {
		if err := checkURL(raw); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
	}
	if _, err := seedwallet.ParseEthereumScheme(c.Ethereum.Scheme); err != nil {
		errs = append(errs, fmt.Errorf("invalid %s: %w", KeyEthereumScheme, err))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("invalid %s: %w", KeyLogLevel, err))
	}
	if phrase.Wordlist(c.Language) == nil {
		errs = append(errs, fmt.Errorf("invalid %s: %q is not supported", KeyLanguage, c.Language))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("invalid %s: must be positive", KeyTimeout))
	}
	return errors.Join(errs...)
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("could not parse %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported scheme in %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

// EthereumScheme returns the configured Ethereum derivation scheme.
func (c *Config) EthereumScheme() seedwallet.EthereumScheme {
	s, _ := seedwallet.ParseEthereumScheme(c.Ethereum.Scheme)
	return s
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// RPCURL returns the endpoint for chain.
func (c *Config) RPCURL(chain seedwallet.Chain) (string, error) {
	switch chain {
	case seedwallet.Solana:
		return c.Solana.RPCURL, nil
	case seedwallet.Ethereum:
		return c.Ethereum.RPCURL, nil
	default:
		return "", fmt.Errorf("%w: %d", seedwallet.ErrUnknownChain, int(chain))
	}
}

func userDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "seedwallet")
}

// DefaultFile is the config file read when --config is not given.
func DefaultFile() string {
	return filepath.Join(userDir(), "config.yaml")
}

// DefaultStatePath is where the session state is kept by default.
func DefaultStatePath() string {
	return filepath.Join(userDir(), "wallets.toml")
}
