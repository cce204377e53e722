// Package main provides the seedwallet CLI for deriving Solana and Ethereum
// wallets from a BIP39 seed phrase.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/complex-gh/seedwallet/internal/config"
	"github.com/complex-gh/seedwallet/internal/logging"
	"github.com/complex-gh/seedwallet/internal/phrase"
)

const (
	maxWidth = 72
)

var (
	baseStyle  = lipgloss.NewStyle().Margin(0, 0, 1, 2) //nolint:mnd
	red        = lipgloss.Color(completeColor("#FF4444", "196", "9"))
	errorStyle = baseStyle.
			Foreground(red).
			Background(lipgloss.AdaptiveColor{Light: completeColor("#FFEBEB", "255", "7"), Dark: completeColor("#2B1A1A", "235", "8")}).
			Padding(1, 2) //nolint:mnd
)

// app carries the state shared by every command of one invocation.
type app struct {
	v   *viper.Viper
	cfg *config.Config
	log zerolog.Logger

	configFile    string
	mnemonicFile  string
	askPassphrase bool
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zerolog.Nop()}
	config.SetDefaults(a.v)

	rootCmd := &cobra.Command{
		Use:   "seedwallet",
		Short: "Derive Solana and Ethereum wallets from a seed phrase",
		Long: `Derive Solana and Ethereum wallets from a BIP39 seed phrase.

Solana wallets follow m/44'/501'/i'/0' (SLIP-0010 ed25519), the layout
used by Phantom and Solflare. Ethereum wallets follow m/44'/60'/i'/0/0
by default, or m/44'/60'/i'/0' with --scheme hardened.

The seed phrase is read from standard input, from --mnemonic-file, or
prompted for on the terminal. It is never written to disk: the state
file only records indices, public keys and visibility flags.

SECURITY TIP: Add a space before the command to prevent it from being
saved in your shell history. For example:
     seedwallet derive sol --private
    ^ (note the leading space)`,
		Example: `  seedwallet mnemonic --words 24
  seedwallet derive sol --count 3 < phrase.txt
  seedwallet add eth
  seedwallet list
  seedwallet toggle sol HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk
  seedwallet balance sol HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk
  seedwallet airdrop HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk --amount 0.5`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default "+config.DefaultFile()+")")
	flags.StringVar(&a.mnemonicFile, "mnemonic-file", "", "Read the seed phrase from this file instead of stdin")
	flags.BoolVar(&a.askPassphrase, "passphrase", false, "Prompt for a BIP39 passphrase")
	flags.StringP("language", "l", "english", "Seed phrase language")
	flags.String("network", string(config.Devnet), "Network: mainnet, devnet or testnet")
	flags.String("state", "", "Session state file (default "+config.DefaultStatePath()+")")
	flags.String("scheme", "bip44", "Ethereum derivation scheme: bip44 or hardened")
	flags.String("log-level", "info", "Log level")
	flags.Duration("timeout", 0, "RPC timeout (default 15s)")
	flags.String("sol-rpc", "", "Solana RPC URL")
	flags.String("eth-rpc", "", "Ethereum RPC URL")

	for key, name := range map[string]string{
		config.KeyLanguage:       "language",
		config.KeyNetwork:        "network",
		config.KeyState:          "state",
		config.KeyEthereumScheme: "scheme",
		config.KeyLogLevel:       "log-level",
		config.KeyTimeout:        "timeout",
		config.KeySolanaRPC:      "sol-rpc",
		config.KeyEthereumRPC:    "eth-rpc",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(
		a.mnemonicCmd(),
		a.validateCmd(),
		a.deriveCmd(),
		a.addCmd(),
		a.listCmd(),
		a.toggleCmd(),
		a.balanceCmd(),
		a.referenceCmd(),
		a.airdropCmd(),
		a.txCmd(),
		a.qrCmd(),
		manCmd(rootCmd),
		completionCmd(rootCmd),
	)
	return rootCmd
}

// setup loads the configuration once flags are parsed.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.ReadFile(a.v, a.configFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logging.Auto(cmd.ErrOrStderr(), cfg.Level())

	return phrase.SetLanguage(cfg.Language)
}

func manCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:          "man",
		Args:         cobra.NoArgs,
		Short:        "generate man pages",
		Hidden:       true,
		SilenceUsage: true,
		// man pages need no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			manPage, err := mcobra.NewManPage(1, rootCmd)
			if err != nil {
				//nolint: wrapcheck
				return err
			}
			manPage = manPage.WithSection("Copyright", "(C) 2025-2026 complex.\n"+
				"Released under MIT license.")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), manPage.Build(roff.NewDocument()))
			return err //nolint:wrapcheck
		},
	}
}

// completionCmd generates shell completion scripts for bash, zsh, fish, and powershell.
func completionCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for seedwallet.

To load completions:

Bash:
  $ source <(seedwallet completion bash)

Zsh:
  $ seedwallet completion zsh > "${fpath[1]}/_seedwallet"

Fish:
  $ seedwallet completion fish | source

PowerShell:
  PS> seedwallet completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage:          true,
		PersistentPreRunE:     func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unknown shell: %s", args[0])
			}
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError renders err in a styled block on terminals and as a plain line
// otherwise.
func printError(w *os.File, err error) {
	if !isatty.IsTerminal(w.Fd()) {
		_, _ = fmt.Fprintln(w, "Error:", err)
		return
	}
	b := strings.Builder{}
	b.WriteRune('\n')
	renderBlock(&b, errorStyle, getWidth(maxWidth), err.Error())
	_, _ = fmt.Fprint(w, b.String())
}

func getWidth(maxw int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint: gosec
	if err != nil || w > maxw {
		return maxWidth
	}
	return w
}

func renderBlock(w io.Writer, s lipgloss.Style, width int, str string) {
	_, _ = io.WriteString(w, s.Width(width).Render(str))
	_, _ = io.WriteString(w, "\n")
}

func completeColor(truecolor, ansi256, ansi string) string {
	//nolint: exhaustive
	switch lipgloss.ColorProfile() {
	case termenv.TrueColor:
		return truecolor
	case termenv.ANSI256:
		return ansi256
	}
	return ansi
}
