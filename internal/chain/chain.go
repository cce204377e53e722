// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package chain defines the RPC collaborators that consume seedwallet keys:
// balance queries, recent blockhash or nonce lookups, transaction status
// polling and test-network airdrops. Results are typed per chain instead of
// loosely shaped RPC payloads.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/complex-gh/seedwallet"
)

var (
	// ErrInvalidAddress is returned for addresses that do not parse for the chain.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidTxID is returned for malformed transaction IDs.
	ErrInvalidTxID = errors.New("invalid transaction id")
	// ErrTxNotFound is returned when the node does not know a transaction.
	ErrTxNotFound = errors.New("transaction not found")
	// ErrTxFailed is returned when a transaction landed with an error.
	ErrTxFailed = errors.New("transaction failed")
	// ErrUnsupported is returned for operations a chain or network does not offer.
	ErrUnsupported = errors.New("operation not supported")
)

// Client is the read side of a chain RPC endpoint. Implementations never see
// private keys.
type Client interface {
	// Chain returns the chain the client talks to.
	Chain() seedwallet.Chain
	// Balance returns the native balance of address.
	Balance(ctx context.Context, address string) (Balance, error)
	// Reference returns what a new transaction from address must commit to:
	// the latest blockhash on Solana, the pending nonce on Ethereum.
	Reference(ctx context.Context, address string) (Reference, error)
	// Status returns the current status of a transaction.
	Status(ctx context.Context, txID string) (TxReceipt, error)
	// Close releases the underlying connection.
	Close()
}

// Airdropper requests test-network funds.
type Airdropper interface {
	Airdrop(ctx context.Context, address string, amount *big.Int) (TxReceipt, error)
}

// Balance is an amount in the chain's smallest unit.
type Balance struct {
	Amount   *big.Int
	Decimals int
	Unit     string
}

// String renders the balance in whole units without float rounding,
// e.g. "1.5 SOL".
func (b Balance) String() string {
	return FormatAmount(b.Amount, b.Decimals) + " " + b.Unit
}

// Reference is a value a transaction has to commit to.
type Reference struct {
	// Kind is "blockhash" or "nonce".
	Kind  string
	Value string
	// Height is the last valid block height of a blockhash, or the nonce itself.
	Height uint64
}

// TxStatus is the lifecycle state of a transaction.
type TxStatus string

const (
	StatusPending   TxStatus = "pending"
	StatusProcessed TxStatus = "processed"
	StatusConfirmed TxStatus = "confirmed"
	StatusFinalized TxStatus = "finalized"
	StatusFailed    TxStatus = "failed"
)

var statusRank = map[TxStatus]int{
	StatusPending:   0,
	StatusProcessed: 1,
	StatusConfirmed: 2,
	StatusFinalized: 3,
}

// Reached reports whether s is at least as settled as target. A failed
// transaction never reaches any target.
func (s TxStatus) Reached(target TxStatus) bool {
	have, ok := statusRank[s]
	if !ok {
		return false
	}
	want, ok := statusRank[target]
	if !ok {
		return false
	}
	return have >= want
}

// ParseTxStatus parses a status name.
func ParseTxStatus(s string) (TxStatus, error) {
	st := TxStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := statusRank[st]; ok || st == StatusFailed {
		return st, nil
	}
	return "", fmt.Errorf("unknown transaction status %q", s)
}

// TxReceipt describes a submitted transaction.
type TxReceipt struct {
	ID     string
	Status TxStatus
	// Slot on Solana, block number on Ethereum; zero while pending.
	Slot uint64
	// Err holds the on-chain error of a failed transaction.
	Err string
}
