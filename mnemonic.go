// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedwallet

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// SeedSize is the length in bytes of a BIP39 seed.
const SeedSize = 64

// Seed is the 64-byte binary seed expanded from a mnemonic.
type Seed []byte

// Wipe zeroes the seed in place.
func (s Seed) Wipe() {
	clear(s)
}

// String never prints seed bytes.
func (s Seed) String() string {
	return redacted
}

// NormalizeMnemonic collapses runs of whitespace in a phrase to single
// spaces and trims both ends, so that phrases pasted across lines expand to
// the same seed.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}

// ExpandMnemonic validates a BIP39 mnemonic against the active word list and
// expands it into a 64-byte seed. The passphrase is the optional BIP39
// passphrase (the "25th word"); pass "" when none is used.
//
// The result is byte-for-byte reproducible for identical input. An invalid
// phrase returns an error wrapping ErrInvalidMnemonic.
func ExpandMnemonic(mnemonic, passphrase string) (Seed, error) {
	normalized := NormalizeMnemonic(mnemonic)
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty phrase", ErrInvalidMnemonic)
	}

	seed, err := bip39.NewSeedWithErrorChecking(normalized, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}

	return Seed(seed), nil
}

// ValidateMnemonic reports whether a phrase is a valid BIP39 mnemonic.
func ValidateMnemonic(mnemonic string) error {
	normalized := NormalizeMnemonic(mnemonic)
	if !bip39.IsMnemonicValid(normalized) {
		return fmt.Errorf("%w: checksum or word list mismatch", ErrInvalidMnemonic)
	}
	return nil
}
