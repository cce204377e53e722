// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedwallet

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Registry is an ordered, append-only collection of wallets derived from
// one seed. Each chain has its own list and its own next account index.
//
// A Registry is safe for concurrent use: additions are serialized so the
// index sequence stays gapless and public keys stay unique per chain.
type Registry struct {
	mu      sync.Mutex
	id      uuid.UUID
	seed    Seed
	scheme  EthereumScheme
	derive  DeriveFunc
	log     zerolog.Logger
	closed  bool
	wallets map[Chain][]*WalletEntry
	byKey   map[Chain]map[string]*WalletEntry
	next    map[Chain]uint32
}

// Option configures a Registry.
type Option func(*Registry)

// WithEthereumScheme sets the Ethereum derivation layout. It applies to
// every Ethereum wallet of the registry.
func WithEthereumScheme(scheme EthereumScheme) Option {
	return func(r *Registry) { r.scheme = scheme }
}

// WithLogger sets the logger used for registry events. Private keys are
// never logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) { r.log = logger }
}

// WithDeriveFunc replaces the derivation function. By default the registry
// uses a Deriver configured with its Ethereum scheme.
func WithDeriveFunc(fn DeriveFunc) Option {
	return func(r *Registry) { r.derive = fn }
}

// WithID sets the session ID instead of generating a random one.
func WithID(id uuid.UUID) Option {
	return func(r *Registry) { r.id = id }
}

// NewRegistry returns an empty registry over seed. The registry keeps its
// own copy of the seed; Close wipes it.
func NewRegistry(seed Seed, opts ...Option) *Registry {
	r := &Registry{
		id:      uuid.New(),
		seed:    append(Seed(nil), seed...),
		log:     zerolog.Nop(),
		wallets: make(map[Chain][]*WalletEntry),
		byKey:   make(map[Chain]map[string]*WalletEntry),
		next:    make(map[Chain]uint32),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.derive == nil {
		r.derive = Deriver{Ethereum: r.scheme}.Derive
	}
	return r
}

// NewRegistryFromMnemonic expands mnemonic and returns a registry over the
// resulting seed.
func NewRegistryFromMnemonic(mnemonic, passphrase string, opts ...Option) (*Registry, error) {
	seed, err := ExpandMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer seed.Wipe()
	return NewRegistry(seed, opts...), nil
}

// ID returns the session ID of the registry.
func (r *Registry) ID() uuid.UUID { return r.id }

// Scheme returns the Ethereum derivation scheme of the registry.
func (r *Registry) Scheme() EthereumScheme { return r.scheme }

// AddWallet derives the wallet at the chain's next index and appends it.
//
// If the derived public key is already registered, AddWallet returns an
// error wrapping ErrDuplicate and leaves the registry unchanged, including
// the next index.
func (r *Registry) AddWallet(chain Chain) (*WalletEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	return r.addLocked(chain, r.next[chain])
}

func (r *Registry) addLocked(chain Chain, index uint32) (*WalletEntry, error) {
	kp, err := r.derive(r.seed, index, chain)
	if err != nil {
		return nil, fmt.Errorf("could not derive %s wallet %d: %w", chain, index, err)
	}

	key := lookupKey(chain, kp.PublicKey)
	if existing, ok := r.byKey[chain][key]; ok {
		kp.Wipe()
		r.log.Warn().
			Str("session", r.id.String()).
			Stringer("chain", chain).
			Uint32("index", index).
			Uint32("existing_index", existing.Index()).
			Str("public_key", existing.PublicKey()).
			Msg("derived wallet is already registered")
		return nil, fmt.Errorf("%w: %s wallet %s already registered at index %d",
			ErrDuplicate, chain, existing.PublicKey(), existing.Index())
	}

	return r.commitLocked(chain, index, kp), nil
}

// commitLocked appends a derived keypair whose public key is known to be
// new for its chain.
func (r *Registry) commitLocked(chain Chain, index uint32, kp *Keypair) *WalletEntry {
	entry := newWalletEntry(kp)
	if r.byKey[chain] == nil {
		r.byKey[chain] = make(map[string]*WalletEntry)
	}
	r.byKey[chain][lookupKey(chain, kp.PublicKey)] = entry
	r.wallets[chain] = append(r.wallets[chain], entry)
	r.next[chain] = index + 1

	r.log.Debug().
		Str("session", r.id.String()).
		Stringer("chain", chain).
		Uint32("index", index).
		Str("path", kp.Path.String()).
		Str("public_key", kp.PublicKey).
		Msg("wallet added")

	return entry
}

// Restore re-derives the first count wallets of chain, in index order. It is
// used to rebuild a registry from persisted bookkeeping and requires the
// chain to be empty.
func (r *Registry) Restore(chain Chain, count uint32) ([]*WalletEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if len(r.wallets[chain]) > 0 {
		return nil, fmt.Errorf("could not restore %s wallets: registry already holds %d", chain, len(r.wallets[chain]))
	}

	// Derive everything before touching the registry so a failure part way
	// leaves the chain empty.
	derived := make([]*Keypair, 0, count)
	wipe := func() {
		for _, kp := range derived {
			kp.Wipe()
		}
	}
	seen := make(map[string]uint32, count)
	for i := uint32(0); i < count; i++ {
		kp, err := r.derive(r.seed, i, chain)
		if err != nil {
			wipe()
			return nil, fmt.Errorf("could not derive %s wallet %d: %w", chain, i, err)
		}
		key := lookupKey(chain, kp.PublicKey)
		if first, ok := seen[key]; ok {
			kp.Wipe()
			wipe()
			return nil, fmt.Errorf("%w: %s wallet %s derived at index %d and %d",
				ErrDuplicate, chain, kp.PublicKey, first, i)
		}
		seen[key] = i
		derived = append(derived, kp)
	}

	restored := make([]*WalletEntry, 0, count)
	for i, kp := range derived {
		restored = append(restored, r.commitLocked(chain, uint32(i), kp)) //nolint:gosec
	}
	return restored, nil
}

// List returns the wallets of chain in insertion order. The returned slice
// is a copy; listing again yields the same entries in the same order.
func (r *Registry) List(chain Chain) []*WalletEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*WalletEntry, len(r.wallets[chain]))
	copy(out, r.wallets[chain])
	return out
}

// Find returns the wallet of chain with the given public key. Ethereum
// addresses match regardless of hex case.
func (r *Registry) Find(chain Chain, publicKey string) (*WalletEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.byKey[chain][lookupKey(chain, publicKey)]; ok {
		return entry, nil
	}
	return nil, fmt.Errorf("%w: %s wallet %s", ErrNotFound, chain, publicKey)
}

// NextIndex returns the index the next AddWallet call derives at. It equals
// the number of wallets added for chain.
func (r *Registry) NextIndex(chain Chain) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next[chain]
}

// Len returns the number of wallets of chain.
func (r *Registry) Len(chain Chain) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.wallets[chain])
}

// Close wipes the seed and every derived private key. Later additions and
// key reveals fail with ErrClosed; entries already handed out keep their
// public data.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.seed.Wipe()
	for _, entries := range r.wallets {
		for _, e := range entries {
			e.close()
		}
	}
	r.log.Debug().Str("session", r.id.String()).Msg("registry closed")
}

// lookupKey canonicalizes a public key for map lookups.
func lookupKey(chain Chain, publicKey string) string {
	if chain == Ethereum && common.IsHexAddress(publicKey) {
		return common.HexToAddress(publicKey).Hex()
	}
	return publicKey
}
