// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package phrase produces BIP39 mnemonic phrases for seedwallet: fresh ones
// from random entropy, or deterministic ones from an ed25519 SSH key.
package phrase

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// WordCounts lists the supported phrase lengths.
var WordCounts = []int{12, 15, 18, 21, 24}

// entropyBits maps word count to BIP39 entropy size.
var entropyBits = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

// EntropyBits returns the entropy size in bits for a word count.
func EntropyBits(wordCount int) (int, error) {
	bits, ok := entropyBits[wordCount]
	if !ok {
		return 0, fmt.Errorf("invalid word count: %d (must be 12, 15, 18, 21, or 24)", wordCount)
	}
	return bits, nil
}

// New returns a mnemonic of wordCount words from crypto/rand entropy.
func New(wordCount int) (string, error) {
	bits, err := EntropyBits(wordCount)
	if err != nil {
		return "", err
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("could not read entropy: %w", err)
	}
	defer clear(entropy)

	words, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("could not create a mnemonic set of words: %w", err)
	}
	return words, nil
}

// combineSeedPassphrase XORs the SHA256 of the passphrase into the key seed.
func combineSeedPassphrase(keySeed []byte, seedPassphrase string) []byte {
	passphraseHash := sha256.Sum256([]byte(seedPassphrase))

	combined := make([]byte, len(keySeed))
	for i := range keySeed {
		combined[i] = keySeed[i] ^ passphraseHash[i]
	}
	return combined
}

// FromKey derives a mnemonic of wordCount words from an ed25519 private key.
// The same key, word count and passphrase always give the same phrase.
//
// A non-empty seedPassphrase is mixed into the key seed, so one SSH key can
// back several independent wallets. For 24 words without a passphrase the
// raw key seed is the entropy, so the phrase round-trips to the key; shorter
// phrases hash the seed with the word count prepended, so different lengths
// do not share words.
func FromKey(key ed25519.PrivateKey, wordCount int, seedPassphrase string) (string, error) {
	if len(key) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("invalid ed25519 key length: %d", len(key))
	}
	bits, err := EntropyBits(wordCount)
	if err != nil {
		return "", err
	}

	seed := key.Seed()
	defer clear(seed)
	if seedPassphrase != "" {
		combined := combineSeedPassphrase(seed, seedPassphrase)
		defer clear(combined)
		seed = combined
	}

	if wordCount == 24 {
		words, err := bip39.NewMnemonic(seed)
		if err != nil {
			return "", fmt.Errorf("could not create a mnemonic set of words: %w", err)
		}
		return words, nil
	}

	prefixed := binary.BigEndian.AppendUint16(nil, uint16(wordCount))
	prefixed = append(prefixed, seed...)
	defer clear(prefixed)

	hash := sha256.Sum256(prefixed)
	defer clear(hash[:])

	words, err := bip39.NewMnemonic(hash[:bits/8])
	if err != nil {
		return "", fmt.Errorf("could not create a mnemonic set of words: %w", err)
	}
	return words, nil
}
