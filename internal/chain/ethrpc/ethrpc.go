// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package ethrpc implements chain.Client against an Ethereum JSON-RPC endpoint.
package ethrpc

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"

	"github.com/complex-gh/seedwallet"
	"github.com/complex-gh/seedwallet/internal/chain"
)

// Client talks to an Ethereum RPC node.
type Client struct {
	eth *ethclient.Client
	log zerolog.Logger
}

var _ chain.Client = (*Client)(nil)

// Dial connects to the RPC endpoint at url.
func Dial(ctx context.Context, url string, logger zerolog.Logger) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("could not dial ethereum rpc: %w", err)
	}
	return &Client{
		eth: eth,
		log: logger.With().Str("chain", "eth").Str("rpc", url).Logger(),
	}, nil
}

// Chain implements chain.Client.
func (c *Client) Chain() seedwallet.Chain { return seedwallet.Ethereum }

func parseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("%w: %q", chain.ErrInvalidAddress, address)
	}
	return common.HexToAddress(address), nil
}

func parseHash(txID string) (common.Hash, error) {
	b, err := hexutil.Decode(txID)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%w: %q", chain.ErrInvalidTxID, txID)
	}
	return common.BytesToHash(b), nil
}

// Balance returns the wei balance of address at the latest block.
func (c *Client) Balance(ctx context.Context, address string) (chain.Balance, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return chain.Balance{}, err
	}

	wei, err := c.eth.BalanceAt(ctx, addr, nil)
	if err != nil {
		return chain.Balance{}, fmt.Errorf("could not get ETH balance: %w", err)
	}
	c.log.Debug().Str("address", addr.Hex()).Str("wei", wei.String()).Msg("balance")

	return chain.Balance{
		Amount:   wei,
		Decimals: chain.ETHDecimals,
		Unit:     "ETH",
	}, nil
}

// Reference returns the pending nonce of address.
func (c *Client) Reference(ctx context.Context, address string) (chain.Reference, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return chain.Reference{}, err
	}

	nonce, err := c.eth.PendingNonceAt(ctx, addr)
	if err != nil {
		return chain.Reference{}, fmt.Errorf("could not get pending nonce: %w", err)
	}

	return chain.Reference{
		Kind:   "nonce",
		Value:  strconv.FormatUint(nonce, 10),
		Height: nonce,
	}, nil
}

// Status returns the status of a transaction hash. A mined transaction is
// reported as confirmed; a known but unmined one as pending.
func (c *Client) Status(ctx context.Context, txID string) (chain.TxReceipt, error) {
	hash, err := parseHash(txID)
	if err != nil {
		return chain.TxReceipt{}, err
	}

	receipt, err := c.eth.TransactionReceipt(ctx, hash)
	if errors.Is(err, ethereum.NotFound) {
		_, pending, err := c.eth.TransactionByHash(ctx, hash)
		if errors.Is(err, ethereum.NotFound) {
			return chain.TxReceipt{}, fmt.Errorf("%w: %s", chain.ErrTxNotFound, txID)
		}
		if err != nil {
			return chain.TxReceipt{}, fmt.Errorf("could not get transaction: %w", err)
		}
		if pending {
			return chain.TxReceipt{ID: txID, Status: chain.StatusPending}, nil
		}
		// Mined but the node has no receipt yet.
		return chain.TxReceipt{ID: txID, Status: chain.StatusProcessed}, nil
	}
	if err != nil {
		return chain.TxReceipt{}, fmt.Errorf("could not get transaction receipt: %w", err)
	}

	out := chain.TxReceipt{ID: txID, Status: chain.StatusConfirmed}
	if receipt.BlockNumber != nil {
		out.Slot = receipt.BlockNumber.Uint64()
	}
	if receipt.Status == types.ReceiptStatusFailed {
		out.Status = chain.StatusFailed
		out.Err = "execution reverted"
	}
	return out, nil
}

// Close implements chain.Client.
func (c *Client) Close() {
	c.eth.Close()
}
