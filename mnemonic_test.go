// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedwallet

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/matryer/is"
)

const (
	abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	junkMnemonic    = "test test test test test test test test test test test junk"
)

// TestExpandMnemonic_BIP39Vectors checks the seed against the reference BIP39 vectors.
func TestExpandMnemonic_BIP39Vectors(t *testing.T) {
	tests := []struct {
		name       string
		passphrase string
		want       string
	}{
		{
			name:       "no passphrase",
			passphrase: "",
			want:       "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4",
		},
		{
			name:       "TREZOR passphrase",
			passphrase: "TREZOR",
			want:       "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			seed, err := ExpandMnemonic(abandonMnemonic, tt.passphrase)
			is.NoErr(err)
			is.Equal(len(seed), SeedSize)
			is.Equal(hex.EncodeToString(seed), tt.want)
		})
	}
}

// TestExpandMnemonic_Deterministic verifies identical input gives identical seeds
func TestExpandMnemonic_Deterministic(t *testing.T) {
	is := is.New(t)

	seed1, err := ExpandMnemonic(junkMnemonic, "")
	is.NoErr(err)
	seed2, err := ExpandMnemonic(junkMnemonic, "")
	is.NoErr(err)

	is.Equal([]byte(seed1), []byte(seed2))
}

// TestExpandMnemonic_Whitespace verifies pasted phrases are normalized
func TestExpandMnemonic_Whitespace(t *testing.T) {
	is := is.New(t)

	want, err := ExpandMnemonic(junkMnemonic, "")
	is.NoErr(err)

	got, err := ExpandMnemonic("  test test test test\ttest test\ntest test test test test   junk \n", "")
	is.NoErr(err)

	is.Equal([]byte(got), []byte(want))
}

// TestExpandMnemonic_Invalid verifies malformed phrases are rejected
func TestExpandMnemonic_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"invalid mnemonic phrase",
		"abandon abandon abandon",
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
	}

	for _, mnemonic := range invalid {
		t.Run(mnemonic, func(t *testing.T) {
			is := is.New(t)
			seed, err := ExpandMnemonic(mnemonic, "")
			is.True(errors.Is(err, ErrInvalidMnemonic))
			is.Equal(seed, nil)
			is.True(errors.Is(ValidateMnemonic(mnemonic), ErrInvalidMnemonic))
		})
	}
}

func TestSeedString(t *testing.T) {
	is := is.New(t)
	seed, err := ExpandMnemonic(abandonMnemonic, "")
	is.NoErr(err)
	is.Equal(seed.String(), redacted)

	seed.Wipe()
	is.Equal([]byte(seed), make([]byte, SeedSize))
}
