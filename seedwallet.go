// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package seedwallet derives Solana and Ethereum wallets deterministically
// from a single BIP39 mnemonic phrase.
//
// A mnemonic is expanded into a 64-byte seed with ExpandMnemonic. Keypairs
// are derived from the seed with Derive, which follows SLIP-0010 for ed25519
// (Solana, m/44'/501'/i'/0') and BIP32 for secp256k1 (Ethereum,
// m/44'/60'/i'/0/0 by default). A Registry keeps an ordered, append-only list
// of derived wallets per chain and tracks the next account index.
//
// The package performs no network I/O. Private key material is never
// rendered by fmt or by loggers; it is only exposed through explicit
// accessors and, for registry entries, behind a per-wallet visibility gate.
package seedwallet

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidMnemonic is returned when a phrase is not a valid BIP39 mnemonic.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	// ErrDerivation is returned when a key cannot be derived, for example
	// because the seed has the wrong length or the index is out of range.
	ErrDerivation = errors.New("derivation failed")

	// ErrDuplicate is returned when a derived public key is already present
	// in the registry.
	ErrDuplicate = errors.New("duplicate wallet")

	// ErrNotFound is returned when a registry lookup misses.
	ErrNotFound = errors.New("wallet not found")

	// ErrUnknownChain is returned for chains other than Solana and Ethereum.
	ErrUnknownChain = errors.New("unknown chain")

	// ErrKeyHidden is returned when a private key is requested while the
	// wallet's key visibility is off.
	ErrKeyHidden = errors.New("private key is hidden")

	// ErrClosed is returned by a registry after Close.
	ErrClosed = errors.New("registry is closed")
)

// Chain identifies a blockchain family.
type Chain int

const (
	// Solana uses ed25519 keys derived with SLIP-0010.
	Solana Chain = iota + 1
	// Ethereum uses secp256k1 keys derived with BIP32.
	Ethereum
)

// Chains lists every supported chain in display order.
var Chains = []Chain{Solana, Ethereum}

// String returns the short ticker-style name of the chain.
func (c Chain) String() string {
	switch c {
	case Solana:
		return "sol"
	case Ethereum:
		return "eth"
	default:
		return fmt.Sprintf("chain(%d)", int(c))
	}
}

// Name returns the human readable name of the chain.
func (c Chain) Name() string {
	switch c {
	case Solana:
		return "Solana"
	case Ethereum:
		return "Ethereum"
	default:
		return c.String()
	}
}

// CoinType returns the SLIP-0044 coin type of the chain.
func (c Chain) CoinType() (uint32, error) {
	switch c {
	case Solana:
		return CoinTypeSolana, nil
	case Ethereum:
		return CoinTypeEthereum, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownChain, c)
	}
}

// ParseChain parses a chain name. Accepted values are "sol", "solana",
// "eth" and "ethereum", in any case.
func ParseChain(s string) (Chain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sol", "solana":
		return Solana, nil
	case "eth", "ethereum":
		return Ethereum, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be sol or eth)", ErrUnknownChain, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Chain) MarshalText() ([]byte, error) {
	if _, err := c.CoinType(); err != nil {
		return nil, err
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Chain) UnmarshalText(text []byte) error {
	parsed, err := ParseChain(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
