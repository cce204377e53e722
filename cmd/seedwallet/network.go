package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/complex-gh/seedwallet"
	"github.com/complex-gh/seedwallet/internal/chain"
	"github.com/complex-gh/seedwallet/internal/chain/ethrpc"
	"github.com/complex-gh/seedwallet/internal/chain/solrpc"
)

// dial returns the RPC client of c for the configured network.
func (a *app) dial(ctx context.Context, c seedwallet.Chain) (chain.Client, error) {
	url, err := a.cfg.RPCURL(c)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	switch c {
	case seedwallet.Solana:
		return solrpc.New(url, a.log), nil
	case seedwallet.Ethereum:
		return ethrpc.Dial(ctx, url, a.log) //nolint:wrapcheck
	default:
		return nil, fmt.Errorf("%w: %s", seedwallet.ErrUnknownChain, c)
	}
}

func (a *app) withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.cfg.Timeout)
}

func (a *app) balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <sol|eth> [address...]",
		Short: "Show native balances",
		Long: `Show native balances. Without addresses, the balances of every
wallet of the session are shown, which needs the seed phrase.`,
		Example: `  seedwallet balance sol HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk
  seedwallet balance eth < phrase.txt`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: chainCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := seedwallet.ParseChain(args[0])
			if err != nil {
				return err //nolint:wrapcheck
			}

			addresses := args[1:]
			if len(addresses) == 0 {
				r, err := a.openRegistry(cmd)
				if err != nil {
					return err
				}
				for _, e := range r.List(c) {
					addresses = append(addresses, e.PublicKey())
				}
				r.Close()
				if len(addresses) == 0 {
					return fmt.Errorf("no %s wallets in the session", c)
				}
			}

			ctx, cancel := a.withTimeout(cmd)
			defer cancel()
			client, err := a.dial(ctx, c)
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			for _, addr := range addresses {
				bal, err := client.Balance(ctx, addr)
				if err != nil {
					return err //nolint:wrapcheck
				}
				_, _ = fmt.Fprintf(out, "%s  %s\n", addr, bal)
			}
			return nil
		},
	}
}

func (a *app) referenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reference <sol|eth> <address>",
		Short: "Show the latest blockhash (sol) or pending nonce (eth)",
		Long: `Show the value a new transaction from address has to commit to:
the latest finalized blockhash on Solana, the pending nonce on Ethereum.`,
		Args:              cobra.ExactArgs(2), //nolint:mnd
		ValidArgsFunction: chainCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := seedwallet.ParseChain(args[0])
			if err != nil {
				return err //nolint:wrapcheck
			}
			ctx, cancel := a.withTimeout(cmd)
			defer cancel()
			client, err := a.dial(ctx, c)
			if err != nil {
				return err
			}
			defer client.Close()

			ref, err := client.Reference(ctx, args[1])
			if err != nil {
				return err //nolint:wrapcheck
			}
			out := cmd.OutOrStdout()
			switch ref.Kind {
			case "blockhash":
				_, _ = fmt.Fprintf(out, "blockhash %s (valid until block height %d)\n", ref.Value, ref.Height)
			default:
				_, _ = fmt.Fprintf(out, "%s %s\n", ref.Kind, ref.Value)
			}
			return nil
		},
	}
}

func (a *app) airdropCmd() *cobra.Command {
	var (
		amount string
		wait   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "airdrop <address>",
		Short: "Request test SOL on devnet or testnet",
		Example: `  seedwallet airdrop HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk
  seedwallet airdrop HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk --amount 0.5 --wait 1m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.Network.Faucet() {
				return fmt.Errorf("%w: airdrops are only available on devnet and testnet, not %s",
					chain.ErrUnsupported, a.cfg.Network)
			}
			lamports, err := chain.ParseAmount(amount, chain.SOLDecimals)
			if err != nil {
				return err //nolint:wrapcheck
			}

			ctx, cancel := a.withTimeout(cmd)
			defer cancel()
			client, err := a.dial(ctx, seedwallet.Solana)
			if err != nil {
				return err
			}
			defer client.Close()

			dropper, ok := client.(chain.Airdropper)
			if !ok {
				return fmt.Errorf("%w: airdrop", chain.ErrUnsupported)
			}
			receipt, err := dropper.Airdrop(ctx, args[0], lamports)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if wait > 0 {
				receipt, err = a.waitFor(cmd, client, receipt.ID, chain.StatusConfirmed, wait)
				if err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", receipt.ID, receipt.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "1", "Amount of SOL to request")
	cmd.Flags().DurationVar(&wait, "wait", 0, "Wait up to this long for confirmation")
	return cmd
}

func (a *app) txCmd() *cobra.Command {
	var (
		until string
		wait  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "tx <sol|eth> <signature-or-hash>",
		Short: "Show the status of a transaction",
		Example: `  seedwallet tx sol 2zf1D3JpcScRk9TTCWSQmbKr8hB9nfiLK9iA7mHvNuxqSrDDLCRFY7mb48txGysNHWns8autYb6meqyhRAPs23qT
  seedwallet tx eth 0x88df01... --until confirmed --wait 2m`,
		Args:              cobra.ExactArgs(2), //nolint:mnd
		ValidArgsFunction: chainCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := seedwallet.ParseChain(args[0])
			if err != nil {
				return err //nolint:wrapcheck
			}
			ctx, cancel := a.withTimeout(cmd)
			defer cancel()
			client, err := a.dial(ctx, c)
			if err != nil {
				return err
			}
			defer client.Close()

			var receipt chain.TxReceipt
			if until != "" {
				target, err := chain.ParseTxStatus(until)
				if err != nil {
					return err //nolint:wrapcheck
				}
				receipt, err = a.waitFor(cmd, client, args[1], target, wait)
				if err != nil {
					return err
				}
			} else {
				receipt, err = client.Status(ctx, args[1])
				if err != nil {
					return err //nolint:wrapcheck
				}
			}

			line := fmt.Sprintf("%s  %s", receipt.ID, receipt.Status)
			if receipt.Slot > 0 {
				unit := "slot"
				if c == seedwallet.Ethereum {
					unit = "block"
				}
				line += fmt.Sprintf("  %s %d", unit, receipt.Slot)
			}
			if receipt.Err != "" {
				line += "  " + receipt.Err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
	cmd.Flags().StringVar(&until, "until", "", "Poll until the transaction reaches this status")
	cmd.Flags().DurationVar(&wait, "wait", 2*time.Minute, "How long to poll with --until") //nolint:mnd
	return cmd
}

// pollInterval is how often transaction status is polled.
var pollInterval = 2 * time.Second

func (a *app) waitFor(cmd *cobra.Command, r chain.StatusReader, txID string, target chain.TxStatus, wait time.Duration) (chain.TxReceipt, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), wait)
	defer cancel()

	a.log.Debug().Str("tx", txID).Str("target", string(target)).Dur("wait", wait).Msg("waiting for transaction")
	return chain.WaitForStatus(ctx, r, txID, target, pollInterval) //nolint:wrapcheck
}
