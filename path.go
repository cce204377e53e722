// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedwallet

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/ethereum/go-ethereum/accounts"
)

const (
	// Purpose is the BIP44 purpose segment.
	Purpose uint32 = 44
	// CoinTypeSolana is the SLIP-0044 coin type for Solana.
	CoinTypeSolana uint32 = 501
	// CoinTypeEthereum is the SLIP-0044 coin type for Ethereum.
	CoinTypeEthereum uint32 = 60

	// HardenedOffset is added to a segment to mark it hardened.
	HardenedOffset = hdkeychain.HardenedKeyStart
	// MaxIndex is the largest account index that can be hardened.
	MaxIndex = HardenedOffset - 1
)

// DerivationPath is a BIP32 path. Segments at or above HardenedOffset are
// hardened.
type DerivationPath []uint32

// String renders the path in m/44'/60'/0'/0/0 notation.
func (p DerivationPath) String() string {
	return accounts.DerivationPath(p).String()
}

// Hardened reports whether every segment of the path is hardened.
func (p DerivationPath) Hardened() bool {
	for _, seg := range p {
		if seg < HardenedOffset {
			return false
		}
	}
	return true
}

// ParseDerivationPath parses an absolute path such as m/44'/501'/0'/0'.
func ParseDerivationPath(s string) (DerivationPath, error) {
	if !strings.HasPrefix(strings.TrimSpace(s), "m") {
		return nil, fmt.Errorf("%w: path %q must start at the master key m", ErrDerivation, s)
	}
	p, err := accounts.ParseDerivationPath(s)
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse path %q: %w", ErrDerivation, s, err)
	}
	return DerivationPath(p), nil
}

// EthereumScheme selects the derivation layout used for Ethereum accounts.
// A registry applies a single scheme to every wallet it derives.
type EthereumScheme int

const (
	// EthereumBIP44 derives m/44'/60'/i'/0/0: the account segment carries the
	// index and change/address_index are unhardened. Index 0 matches the
	// first account of MetaMask and Hardhat.
	EthereumBIP44 EthereumScheme = iota
	// EthereumHardened derives m/44'/60'/i'/0', hardening the change segment
	// the same way as the Solana layout.
	EthereumHardened
)

// String returns the configuration name of the scheme.
func (s EthereumScheme) String() string {
	switch s {
	case EthereumBIP44:
		return "bip44"
	case EthereumHardened:
		return "hardened"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// ParseEthereumScheme parses "bip44" or "hardened".
func ParseEthereumScheme(s string) (EthereumScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bip44", "standard":
		return EthereumBIP44, nil
	case "hardened", "all-hardened":
		return EthereumHardened, nil
	default:
		return 0, fmt.Errorf("unknown ethereum scheme %q (must be bip44 or hardened)", s)
	}
}

func checkIndex(index uint32) error {
	if index > MaxIndex {
		return fmt.Errorf("%w: index %d exceeds hardened range (max %d)", ErrDerivation, index, MaxIndex)
	}
	return nil
}

// SolanaPath returns m/44'/501'/index'/0'.
func SolanaPath(index uint32) (DerivationPath, error) {
	if err := checkIndex(index); err != nil {
		return nil, err
	}
	return DerivationPath{
		HardenedOffset + Purpose,
		HardenedOffset + CoinTypeSolana,
		HardenedOffset + index,
		HardenedOffset + 0,
	}, nil
}

// EthereumPath returns the Ethereum path for index under the given scheme.
func EthereumPath(index uint32, scheme EthereumScheme) (DerivationPath, error) {
	if err := checkIndex(index); err != nil {
		return nil, err
	}
	switch scheme {
	case EthereumBIP44:
		return DerivationPath{
			HardenedOffset + Purpose,
			HardenedOffset + CoinTypeEthereum,
			HardenedOffset + index,
			0,
			0,
		}, nil
	case EthereumHardened:
		return DerivationPath{
			HardenedOffset + Purpose,
			HardenedOffset + CoinTypeEthereum,
			HardenedOffset + index,
			HardenedOffset + 0,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown ethereum scheme %s", ErrDerivation, scheme)
	}
}
