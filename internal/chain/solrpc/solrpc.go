// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package solrpc implements chain.Client against a Solana JSON-RPC endpoint.
package solrpc

import (
	"context"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"github.com/complex-gh/seedwallet"
	"github.com/complex-gh/seedwallet/internal/chain"
)

// Client talks to a Solana RPC node.
type Client struct {
	rpc        *rpc.Client
	url        string
	commitment rpc.CommitmentType
	log        zerolog.Logger
}

var (
	_ chain.Client     = (*Client)(nil)
	_ chain.Airdropper = (*Client)(nil)
)

// New returns a client for the RPC endpoint at url. Reads use confirmed
// commitment.
func New(url string, logger zerolog.Logger) *Client {
	return &Client{
		rpc:        rpc.New(url),
		url:        url,
		commitment: rpc.CommitmentConfirmed,
		log:        logger.With().Str("chain", "sol").Str("rpc", url).Logger(),
	}
}

// Chain implements chain.Client.
func (c *Client) Chain() seedwallet.Chain { return seedwallet.Solana }

func parseAddress(address string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %q: %w", chain.ErrInvalidAddress, address, err)
	}
	return pk, nil
}

// Balance returns the lamport balance of address.
func (c *Client) Balance(ctx context.Context, address string) (chain.Balance, error) {
	pk, err := parseAddress(address)
	if err != nil {
		return chain.Balance{}, err
	}

	out, err := c.rpc.GetBalance(ctx, pk, c.commitment)
	if err != nil {
		return chain.Balance{}, fmt.Errorf("could not get SOL balance: %w", err)
	}
	c.log.Debug().Str("address", address).Uint64("lamports", out.Value).Msg("balance")

	return chain.Balance{
		Amount:   new(big.Int).SetUint64(out.Value),
		Decimals: chain.SOLDecimals,
		Unit:     "SOL",
	}, nil
}

// Reference returns the latest finalized blockhash. The address is only
// validated; blockhashes are not per account.
func (c *Client) Reference(ctx context.Context, address string) (chain.Reference, error) {
	if _, err := parseAddress(address); err != nil {
		return chain.Reference{}, err
	}

	out, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return chain.Reference{}, fmt.Errorf("could not get latest blockhash: %w", err)
	}
	if out == nil || out.Value == nil {
		return chain.Reference{}, fmt.Errorf("could not get latest blockhash: empty response")
	}

	return chain.Reference{
		Kind:   "blockhash",
		Value:  out.Value.Blockhash.String(),
		Height: out.Value.LastValidBlockHeight,
	}, nil
}

// Status returns the status of a transaction signature.
func (c *Client) Status(ctx context.Context, txID string) (chain.TxReceipt, error) {
	sig, err := solana.SignatureFromBase58(txID)
	if err != nil {
		return chain.TxReceipt{}, fmt.Errorf("%w: %q: %w", chain.ErrInvalidTxID, txID, err)
	}

	out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return chain.TxReceipt{}, fmt.Errorf("could not get signature status: %w", err)
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return chain.TxReceipt{}, fmt.Errorf("%w: %s", chain.ErrTxNotFound, txID)
	}

	st := out.Value[0]
	receipt := chain.TxReceipt{ID: txID, Slot: st.Slot}
	switch {
	case st.Err != nil:
		receipt.Status = chain.StatusFailed
		receipt.Err = fmt.Sprint(st.Err)
	case st.ConfirmationStatus == rpc.ConfirmationStatusFinalized:
		receipt.Status = chain.StatusFinalized
	case st.ConfirmationStatus == rpc.ConfirmationStatusConfirmed:
		receipt.Status = chain.StatusConfirmed
	case st.ConfirmationStatus == rpc.ConfirmationStatusProcessed:
		receipt.Status = chain.StatusProcessed
	default:
		receipt.Status = chain.StatusPending
	}
	return receipt, nil
}

// Airdrop requests amount lamports for address. Only devnet and testnet
// nodes honor the request.
func (c *Client) Airdrop(ctx context.Context, address string, amount *big.Int) (chain.TxReceipt, error) {
	pk, err := parseAddress(address)
	if err != nil {
		return chain.TxReceipt{}, err
	}
	if amount == nil || amount.Sign() <= 0 || !amount.IsUint64() {
		return chain.TxReceipt{}, fmt.Errorf("invalid airdrop amount %v", amount)
	}

	sig, err := c.rpc.RequestAirdrop(ctx, pk, amount.Uint64(), rpc.CommitmentConfirmed)
	if err != nil {
		return chain.TxReceipt{}, fmt.Errorf("could not request airdrop: %w", err)
	}
	c.log.Info().
		Str("address", address).
		Str("lamports", amount.String()).
		Str("signature", sig.String()).
		Msg("airdrop requested")

	return chain.TxReceipt{ID: sig.String(), Status: chain.StatusPending}, nil
}

// Close implements chain.Client.
func (c *Client) Close() {
	if err := c.rpc.Close(); err != nil {
		c.log.Debug().Err(err).Msg("could not close rpc client")
	}
}
