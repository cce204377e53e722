// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedwallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
)

// deriveEthereum derives the secp256k1 keypair for index under scheme.
func deriveEthereum(seed Seed, index uint32, scheme EthereumScheme) (*Keypair, error) {
	path, err := EthereumPath(index, scheme)
	if err != nil {
		return nil, err
	}

	// The network parameters only affect extended key serialization, which
	// is never used here.
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("%w: could not create master key: %w", ErrDerivation, err)
	}

	for _, seg := range path {
		key, err = key.Derive(seg)
		if err != nil {
			return nil, fmt.Errorf("%w: could not derive segment %d of %s: %w", ErrDerivation, seg, path, err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: could not get private key: %w", ErrDerivation, err)
	}
	defer priv.Zero()

	ecdsaKey := priv.ToECDSA()
	address := crypto.PubkeyToAddress(ecdsaKey.PublicKey)

	return &Keypair{
		Chain:     Ethereum,
		Index:     index,
		Path:      path,
		PublicKey: address.Hex(),
		secret:    Secret(crypto.FromECDSA(ecdsaKey)),
	}, nil
}
