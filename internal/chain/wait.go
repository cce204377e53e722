// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package chain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// StatusReader reads transaction status.
type StatusReader interface {
	Status(ctx context.Context, txID string) (TxReceipt, error)
}

// WaitForStatus polls r every interval until the transaction reaches target,
// fails, or ctx is done. A transaction the node does not know yet is polled
// again; any other error ends the wait.
func WaitForStatus(ctx context.Context, r StatusReader, txID string, target TxStatus, interval time.Duration) (TxReceipt, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := TxReceipt{ID: txID, Status: StatusPending}
	for {
		receipt, err := r.Status(ctx, txID)
		switch {
		case errors.Is(err, ErrTxNotFound):
		case err != nil:
			return last, err
		case receipt.Status == StatusFailed:
			return receipt, fmt.Errorf("%w: %s: %s", ErrTxFailed, txID, receipt.Err)
		case receipt.Status.Reached(target):
			return receipt, nil
		default:
			last = receipt
		}

		select {
		case <-ctx.Done():
			return last, fmt.Errorf("gave up waiting for %s to reach %s: %w", txID, target, ctx.Err())
		case <-ticker.C:
		}
	}
}
