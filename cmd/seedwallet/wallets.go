package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/complex-gh/seedwallet"
	"github.com/complex-gh/seedwallet/internal/store"
)

func chainArg(args []string, i int) ([]seedwallet.Chain, error) {
	if len(args) <= i {
		return seedwallet.Chains, nil
	}
	c, err := seedwallet.ParseChain(args[i])
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return []seedwallet.Chain{c}, nil
}

func chainCompletion(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"sol", "eth"}, cobra.ShellCompDirectiveNoFileComp
}

// openRegistry reads the seed phrase and resumes the saved session.
func (a *app) openRegistry(cmd *cobra.Command) (*seedwallet.Registry, error) {
	mnemonic, err := a.readMnemonic(cmd)
	if err != nil {
		return nil, err
	}
	passphrase, err := a.readPassphrase()
	if err != nil {
		return nil, err
	}

	r, err := store.Resume(a.cfg.State, mnemonic, passphrase,
		seedwallet.WithEthereumScheme(a.cfg.EthereumScheme()),
		seedwallet.WithLogger(a.log),
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if r.Scheme() != a.cfg.EthereumScheme() {
		a.log.Warn().
			Stringer("session", r.Scheme()).
			Stringer("configured", a.cfg.EthereumScheme()).
			Msg("keeping the ethereum scheme of the saved session")
	}
	return r, nil
}

func (a *app) saveRegistry(r *seedwallet.Registry) error {
	if err := store.Save(a.cfg.State, store.Snapshot(r)); err != nil {
		return err //nolint:wrapcheck
	}
	a.log.Debug().Str("state", a.cfg.State).Msg("session saved")
	return nil
}

func printEntry(w io.Writer, e *seedwallet.WalletEntry) {
	line := fmt.Sprintf("#%d  %s  %s", e.Index(), e.Path(), e.PublicKey())
	if key, err := e.RevealPrivateKey(); err == nil {
		line += "  " + key
	}
	_, _ = fmt.Fprintln(w, line)
}

func (a *app) deriveCmd() *cobra.Command {
	var (
		index   uint32
		count   int
		private bool
	)

	cmd := &cobra.Command{
		Use:   "derive <sol|eth>",
		Short: "Derive wallets without touching the session",
		Long: `Derive wallets at explicit indices. Nothing is recorded in the
session state; use "add" for that.`,
		Example: `  seedwallet derive sol
  seedwallet derive eth --index 3 --count 2 --private`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: chainCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := seedwallet.ParseChain(args[0])
			if err != nil {
				return err //nolint:wrapcheck
			}
			if count < 1 {
				return fmt.Errorf("invalid count %d", count)
			}
			mnemonic, err := a.readMnemonic(cmd)
			if err != nil {
				return err
			}
			passphrase, err := a.readPassphrase()
			if err != nil {
				return err
			}
			seed, err := seedwallet.ExpandMnemonic(mnemonic, passphrase)
			if err != nil {
				return err //nolint:wrapcheck
			}
			defer seed.Wipe()

			d := seedwallet.Deriver{Ethereum: a.cfg.EthereumScheme()}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "[%s wallets]\n\n", strings.ToLower(c.Name()))
			for i := 0; i < count; i++ {
				kp, err := d.Derive(seed, index+uint32(i), c) //nolint:gosec
				if err != nil {
					return err //nolint:wrapcheck
				}
				line := fmt.Sprintf("#%d  %s  %s", kp.Index, kp.Path, kp.PublicKey)
				if private {
					line += "  " + kp.EncodePrivateKey()
				}
				kp.Wipe()
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&index, "index", 0, "First index to derive")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of consecutive wallets")
	cmd.Flags().BoolVar(&private, "private", false, "Print private keys")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "add <sol|eth>",
		Short: "Add the next wallet of a chain to the session",
		Example: `  seedwallet add sol
  seedwallet add eth --count 3`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: chainCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := seedwallet.ParseChain(args[0])
			if err != nil {
				return err //nolint:wrapcheck
			}
			if count < 1 {
				return fmt.Errorf("invalid count %d", count)
			}
			r, err := a.openRegistry(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			out := cmd.OutOrStdout()
			var addErr error
			for i := 0; i < count; i++ {
				e, err := r.AddWallet(c)
				if err != nil {
					addErr = err
					break
				}
				printEntry(out, e)
			}
			if err := a.saveRegistry(r); err != nil {
				return err
			}
			return addErr //nolint:wrapcheck
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of wallets to add")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "list [sol|eth]",
		Short:             "List the wallets of the session",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: chainCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			chains, err := chainArg(args, 0)
			if err != nil {
				return err
			}
			r, err := a.openRegistry(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			out := cmd.OutOrStdout()
			for i, c := range chains {
				if i > 0 {
					_, _ = fmt.Fprintln(out)
				}
				_, _ = fmt.Fprintf(out, "[%s wallets]\n\n", strings.ToLower(c.Name()))
				entries := r.List(c)
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(out, "none")
				}
				for _, e := range entries {
					printEntry(out, e)
				}
			}
			return nil
		},
	}
}

func (a *app) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "toggle <sol|eth> <public-key>",
		Short:             "Show or hide the private key of a wallet",
		Args:              cobra.ExactArgs(2), //nolint:mnd
		ValidArgsFunction: chainCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := seedwallet.ParseChain(args[0])
			if err != nil {
				return err //nolint:wrapcheck
			}
			r, err := a.openRegistry(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			e, err := r.Find(c, args[1])
			if err != nil {
				return err //nolint:wrapcheck
			}
			visible := e.ToggleKeyVisible()
			if err := a.saveRegistry(r); err != nil {
				return err
			}

			state := "hidden"
			if visible {
				state = "visible"
			}
			a.log.Info().
				Stringer("chain", c).
				Str("public_key", e.PublicKey()).
				Bool("key_visible", visible).
				Msg("toggled private key")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "private key %s\n", state)
			printEntry(cmd.OutOrStdout(), e)
			return nil
		},
	}
}
