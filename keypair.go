// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedwallet

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
)

const redacted = "[REDACTED]"

// Secret holds raw private key bytes. Every fmt verb, text and JSON
// marshaling prints a placeholder instead of the bytes.
type Secret []byte

// String implements fmt.Stringer.
func (s Secret) String() string { return redacted }

// GoString implements fmt.GoStringer.
func (s Secret) GoString() string { return redacted }

// Format implements fmt.Formatter so that %x, %v, %s and friends all redact.
func (s Secret) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

// MarshalText implements encoding.TextMarshaler.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// Bytes returns a copy of the raw secret.
func (s Secret) Bytes() []byte {
	out := make([]byte, len(s))
	copy(out, s)
	return out
}

// Keypair is a derived signing keypair. It is immutable once derived.
type Keypair struct {
	Chain     Chain
	Index     uint32
	Path      DerivationPath
	PublicKey string

	// Solana: 64-byte ed25519 private key (seed || public key).
	// Ethereum: 32-byte secp256k1 scalar.
	secret Secret
}

// Format prints the chain, index, address and path of the keypair. Key
// material is never printed, whatever the verb.
func (k Keypair) Format(f fmt.State, _ rune) {
	_, _ = fmt.Fprintf(f, "%s #%d %s (%s)", k.Chain, k.Index, k.PublicKey, k.Path)
}

// PrivateKey returns the raw private key material.
func (k *Keypair) PrivateKey() Secret {
	return k.secret
}

// EncodePrivateKey returns the private key in the import format wallets use
// for the chain: base58 of the 64-byte key for Solana, 0x-prefixed hex of the
// scalar for Ethereum. It returns "" once the keypair is wiped.
func (k *Keypair) EncodePrivateKey() string {
	if k.Wiped() {
		return ""
	}
	switch k.Chain {
	case Solana:
		return base58.Encode(k.secret)
	case Ethereum:
		return hexutil.Encode(k.secret)
	default:
		return ""
	}
}

// Ed25519 returns the Solana signing key.
func (k *Keypair) Ed25519() (ed25519.PrivateKey, error) {
	if k.Chain != Solana || len(k.secret) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("keypair for %s is not an ed25519 key", k.Chain)
	}
	if k.Wiped() {
		return nil, fmt.Errorf("%w: %s key was wiped", ErrClosed, k.Chain)
	}
	return ed25519.PrivateKey(k.secret.Bytes()), nil
}

// ECDSA returns the Ethereum signing key.
func (k *Keypair) ECDSA() (*ecdsa.PrivateKey, error) {
	if k.Chain != Ethereum {
		return nil, fmt.Errorf("keypair for %s is not a secp256k1 key", k.Chain)
	}
	if k.Wiped() {
		return nil, fmt.Errorf("%w: %s key was wiped", ErrClosed, k.Chain)
	}
	key, err := crypto.ToECDSA(k.secret)
	if err != nil {
		return nil, fmt.Errorf("could not load secp256k1 key: %w", err)
	}
	return key, nil
}

// Equal reports whether two keypairs hold the same key material. The
// private keys are compared in constant time.
func (k *Keypair) Equal(other *Keypair) bool {
	if k == nil || other == nil {
		return k == other
	}
	same := subtle.ConstantTimeCompare(k.secret, other.secret) == 1
	return same && k.Chain == other.Chain && k.PublicKey == other.PublicKey
}

// Wipe zeroes the private key material.
func (k *Keypair) Wipe() {
	clear(k.secret)
}

// Wiped reports whether the private key material has been zeroed.
func (k *Keypair) Wiped() bool {
	return subtle.ConstantTimeCompare(k.secret, make([]byte, len(k.secret))) == 1
}
