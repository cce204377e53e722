// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedwallet

import "fmt"

// DeriveFunc derives the keypair for chain at index from seed.
type DeriveFunc func(seed Seed, index uint32, chain Chain) (*Keypair, error)

// Deriver derives chain keypairs from a seed. The zero value uses the BIP44
// Ethereum scheme.
type Deriver struct {
	Ethereum EthereumScheme
}

// Derive returns the keypair for chain at the given account index.
//
// Solana keys follow SLIP-0010 at m/44'/501'/index'/0'. Ethereum keys follow
// BIP32 on the path selected by d.Ethereum. The call is pure: the same seed,
// index and chain always produce byte-identical keys.
//
// It fails with ErrDerivation if the seed is not SeedSize bytes or the index
// exceeds MaxIndex, and with ErrUnknownChain for unsupported chains.
func (d Deriver) Derive(seed Seed, index uint32, chain Chain) (*Keypair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes, got %d", ErrDerivation, SeedSize, len(seed))
	}

	switch chain {
	case Solana:
		return deriveSolana(seed, index)
	case Ethereum:
		return deriveEthereum(seed, index, d.Ethereum)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownChain, chain)
	}
}

// Derive derives with the default Deriver.
func Derive(seed Seed, index uint32, chain Chain) (*Keypair, error) {
	return Deriver{}.Derive(seed, index, chain)
}
