// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package store persists wallet registry bookkeeping to a TOML file so a
// session can be resumed from the same mnemonic. The file holds public data
// only: indices, public keys and visibility flags. Secrets are re-derived on
// load and never written.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/complex-gh/seedwallet"
)

// Version is the state file format version.
const Version = 1

// ErrMismatch is returned when a state file does not belong to the mnemonic
// it is applied to.
var ErrMismatch = errors.New("state does not match mnemonic")

// State is the on-disk form of a registry.
type State struct {
	Version   int       `toml:"version"`
	Session   uuid.UUID `toml:"session"`
	Scheme    string    `toml:"ethereum_scheme"`
	UpdatedAt time.Time `toml:"updated_at"`
	Wallets   []Record  `toml:"wallet"`
}

// Record is one registered wallet.
type Record struct {
	Chain      seedwallet.Chain `toml:"chain"`
	Index      uint32           `toml:"index"`
	PublicKey  string           `toml:"public_key"`
	KeyVisible bool             `toml:"key_visible"`
}

// Snapshot captures the public state of r.
func Snapshot(r *seedwallet.Registry) State {
	st := State{
		Version:   Version,
		Session:   r.ID(),
		Scheme:    r.Scheme().String(),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, c := range seedwallet.Chains {
		for _, e := range r.List(c) {
			st.Wallets = append(st.Wallets, Record{
				Chain:      e.Chain(),
				Index:      e.Index(),
				PublicKey:  e.PublicKey(),
				KeyVisible: e.KeyVisible(),
			})
		}
	}
	return st
}

// Count returns the number of records of chain.
func (s State) Count(chain seedwallet.Chain) int {
	n := 0
	for _, w := range s.Wallets {
		if w.Chain == chain {
			n++
		}
	}
	return n
}

// EthereumScheme parses the stored scheme.
func (s State) EthereumScheme() (seedwallet.EthereumScheme, error) {
	return seedwallet.ParseEthereumScheme(s.Scheme)
}

// Load reads the state file at path. A missing file yields an error that
// satisfies errors.Is(err, fs.ErrNotExist).
func Load(path string) (State, error) {
	var st State
	if _, err := toml.DecodeFile(path, &st); err != nil {
		return State{}, fmt.Errorf("could not read state %s: %w", path, err)
	}
	if st.Version != Version {
		return State{}, fmt.Errorf("could not read state %s: unsupported version %d", path, st.Version)
	}
	for i, w := range st.Wallets {
		if w.PublicKey == "" {
			return State{}, fmt.Errorf("could not read state %s: wallet %d has no public key", path, i)
		}
	}
	return st, nil
}

// Save writes st to path, replacing any previous file atomically. The file
// is created with mode 0600.
func Save(path string, st State) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".seedwallet-*.toml")
	if err != nil {
		return fmt.Errorf("could not create state file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if err := toml.NewEncoder(tmp).Encode(st); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("could not encode state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("could not sync state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close state: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("could not chmod state: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not replace state: %w", err)
	}
	return nil
}

// Apply restores the wallets recorded in st into an empty registry built
// from the matching mnemonic, then restores visibility flags. Each chain's
// records must cover indices 0..n-1, since AddWallet never skips an index.
func Apply(r *seedwallet.Registry, st State) error {
	for _, c := range seedwallet.Chains {
		var records []Record
		for _, w := range st.Wallets {
			if w.Chain == c {
				records = append(records, w)
			}
		}
		if len(records) == 0 {
			continue
		}
		sort.Slice(records, func(i, j int) bool { return records[i].Index < records[j].Index })
		for i, rec := range records {
			if rec.Index != uint32(i) {
				return fmt.Errorf("could not restore %s wallets: index %d missing", c, i)
			}
		}

		entries, err := r.Restore(c, uint32(len(records)))
		if err != nil {
			return fmt.Errorf("could not restore %s wallets: %w", c, err)
		}
		for i, e := range entries {
			if found, err := r.Find(c, records[i].PublicKey); err != nil || found != e {
				return fmt.Errorf("%w: %s wallet %d derives %s, state has %s",
					ErrMismatch, c, records[i].Index, e.PublicKey(), records[i].PublicKey)
			}
			e.SetKeyVisible(records[i].KeyVisible)
		}
	}
	return nil
}

// Resume builds a registry for mnemonic from the state at path. A missing
// state file starts an empty session.
func Resume(path, mnemonic, passphrase string, opts ...seedwallet.Option) (*seedwallet.Registry, error) {
	st, err := Load(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return seedwallet.NewRegistryFromMnemonic(mnemonic, passphrase, opts...)
	case err != nil:
		return nil, err
	}

	scheme, err := st.EthereumScheme()
	if err != nil {
		return nil, fmt.Errorf("could not read state %s: %w", path, err)
	}
	opts = append(opts, seedwallet.WithEthereumScheme(scheme), seedwallet.WithID(st.Session))

	r, err := seedwallet.NewRegistryFromMnemonic(mnemonic, passphrase, opts...)
	if err != nil {
		return nil, err
	}
	if err := Apply(r, st); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}
