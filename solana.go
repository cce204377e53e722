// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedwallet

import (
	"crypto/ed25519"
	"fmt"

	slip10 "github.com/anyproto/go-slip10"
	"github.com/mr-tron/base58"
)

// slip10Derive returns the SLIP-0010 ed25519 signing key at path. ed25519
// has no public derivation, so every segment must be hardened.
func slip10Derive(seed []byte, path DerivationPath) (ed25519.PrivateKey, error) {
	if !path.Hardened() {
		return nil, fmt.Errorf("%w: ed25519 only supports hardened segments, got %s", ErrDerivation, path)
	}

	node, err := slip10.DeriveForPath(path.String(), seed)
	if err != nil {
		return nil, fmt.Errorf("%w: could not derive %s: %w", ErrDerivation, path, err)
	}

	_, priv := node.Keypair()
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: unexpected ed25519 key length %d", ErrDerivation, len(priv))
	}
	return ed25519.PrivateKey(priv), nil
}

// deriveSolana derives the ed25519 keypair at m/44'/501'/index'/0'.
func deriveSolana(seed Seed, index uint32) (*Keypair, error) {
	path, err := SolanaPath(index)
	if err != nil {
		return nil, err
	}

	priv, err := slip10Derive(seed, path)
	if err != nil {
		return nil, err
	}

	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected ed25519 public key type", ErrDerivation)
	}

	return &Keypair{
		Chain:     Solana,
		Index:     index,
		Path:      path,
		PublicKey: base58.Encode(pub),
		secret:    Secret(priv),
	}, nil
}
