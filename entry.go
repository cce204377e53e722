// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedwallet

import (
	"fmt"
	"sync/atomic"
)

// WalletEntry is a wallet held by a Registry. Everything but the key
// visibility flag is fixed at creation.
type WalletEntry struct {
	keypair    *Keypair
	keyVisible atomic.Bool
	closed     atomic.Bool
}

func newWalletEntry(kp *Keypair) *WalletEntry {
	return &WalletEntry{keypair: kp}
}

// Chain returns the chain of the wallet.
func (e *WalletEntry) Chain() Chain { return e.keypair.Chain }

// Index returns the account index the wallet was derived at.
func (e *WalletEntry) Index() uint32 { return e.keypair.Index }

// Path returns the derivation path of the wallet.
func (e *WalletEntry) Path() DerivationPath { return e.keypair.Path }

// PublicKey returns the address: base58 for Solana, EIP-55 hex for Ethereum.
func (e *WalletEntry) PublicKey() string { return e.keypair.PublicKey }

// Keypair returns the signing keypair for handing to a chain client.
func (e *WalletEntry) Keypair() *Keypair { return e.keypair }

// KeyVisible reports whether the private key may be displayed.
func (e *WalletEntry) KeyVisible() bool { return e.keyVisible.Load() }

// SetKeyVisible sets the visibility flag.
func (e *WalletEntry) SetKeyVisible(visible bool) { e.keyVisible.Store(visible) }

// ToggleKeyVisible flips the visibility flag and returns the new value.
// Toggling twice restores the original value.
func (e *WalletEntry) ToggleKeyVisible() bool {
	for {
		old := e.keyVisible.Load()
		if e.keyVisible.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// RevealPrivateKey returns the encoded private key, or ErrKeyHidden while
// the visibility flag is off. Once the registry is closed it fails with
// ErrClosed whatever the flag says.
func (e *WalletEntry) RevealPrivateKey() (string, error) {
	if e.closed.Load() {
		return "", fmt.Errorf("%w: %s wallet %s", ErrClosed, e.Chain(), e.PublicKey())
	}
	if !e.KeyVisible() {
		return "", fmt.Errorf("%w: %s wallet %s", ErrKeyHidden, e.Chain(), e.PublicKey())
	}
	return e.keypair.EncodePrivateKey(), nil
}

// close hides and wipes the private key for good.
func (e *WalletEntry) close() {
	e.closed.Store(true)
	e.keyVisible.Store(false)
	e.keypair.Wipe()
}

// String describes the wallet without key material.
func (e *WalletEntry) String() string {
	return fmt.Sprintf("%s #%d %s (%s)", e.Chain(), e.Index(), e.PublicKey(), e.Path())
}
