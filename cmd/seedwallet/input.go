package main

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"
	"golang.org/x/term"

	"github.com/complex-gh/seedwallet"
	"github.com/complex-gh/seedwallet/internal/phrase"
)

// maxMnemonicInput bounds how much is read when looking for a seed phrase.
const maxMnemonicInput = 4096

func (a *app) mnemonicCmd() *cobra.Command {
	var (
		words          int
		keyPath        string
		seedPassphrase string
	)

	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Generate a seed phrase",
		Long: `Generate a BIP39 seed phrase.

By default the phrase is drawn from fresh random entropy. With
--from-ssh-key it is derived deterministically from a password-protected
ed25519 SSH key, so the key doubles as a backup of the phrase.

Valid word counts are: 12, 15, 18, 21, or 24.`,
		Example: `  seedwallet mnemonic
  seedwallet mnemonic --words 12
  seedwallet mnemonic --from-ssh-key ~/.ssh/id_ed25519 --seed-passphrase "extra"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				mnemonic string
				err      error
			)
			if keyPath != "" {
				var key *ed25519.PrivateKey
				key, err = loadSSHKey(keyPath)
				if err != nil {
					return err
				}
				mnemonic, err = phrase.FromKey(*key, words, seedPassphrase)
			} else {
				mnemonic, err = phrase.New(words)
			}
			if err != nil {
				return fmt.Errorf("could not generate %d-word mnemonic: %w", words, err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "[%d word seed phrase]\n\n%s\n", words, mnemonic)
			return nil
		},
	}
	cmd.Flags().IntVarP(&words, "words", "w", 24, "Word count: 12, 15, 18, 21 or 24") //nolint:mnd
	cmd.Flags().StringVar(&keyPath, "from-ssh-key", "", "Derive the phrase from this ed25519 SSH key")
	cmd.Flags().StringVar(&seedPassphrase, "seed-passphrase", "", "Passphrase to combine with the SSH key seed")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a seed phrase without deriving anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mnemonic, err := a.readMnemonic(cmd)
			if err != nil {
				return err
			}
			if err := seedwallet.ValidateMnemonic(mnemonic); err != nil {
				return err //nolint:wrapcheck
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "valid %d word seed phrase\n", len(strings.Fields(mnemonic)))
			return nil
		},
	}
}

// readMnemonic reads the seed phrase from --mnemonic-file, from piped input,
// or from a hidden terminal prompt.
func (a *app) readMnemonic(cmd *cobra.Command) (string, error) {
	if a.mnemonicFile != "" {
		// G304: the path is user input, which is expected for a CLI tool
		bts, err := os.ReadFile(a.mnemonicFile) //nolint:gosec
		if err != nil {
			return "", fmt.Errorf("could not read mnemonic: %w", err)
		}
		return seedwallet.NormalizeMnemonic(string(bts)), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		defer fmt.Fprintf(os.Stderr, "\n")
		bts, err := readPassword("Enter your seed phrase: ")
		if err != nil {
			return "", err
		}
		return seedwallet.NormalizeMnemonic(string(bts)), nil
	}

	bts, err := io.ReadAll(io.LimitReader(in, maxMnemonicInput))
	if err != nil {
		return "", fmt.Errorf("could not read mnemonic: %w", err)
	}
	mnemonic := seedwallet.NormalizeMnemonic(string(bts))
	if mnemonic == "" {
		return "", fmt.Errorf("%w: no seed phrase on standard input", seedwallet.ErrInvalidMnemonic)
	}
	return mnemonic, nil
}

// readPassphrase returns the BIP39 passphrase, prompting only when asked to.
func (a *app) readPassphrase() (string, error) {
	if !a.askPassphrase {
		return "", nil
	}
	defer fmt.Fprintf(os.Stderr, "\n")
	pass, err := readPassword("Enter the BIP39 passphrase: ")
	if err != nil {
		return "", err
	}
	return string(pass), nil
}

// resolveKeyPath resolves a bare filename against ~/.ssh when it does not
// exist in the working directory.
func resolveKeyPath(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	cleanedPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanedPath); dir != "." && dir != "" {
		return "", fmt.Errorf("could not open %s: %w", path, os.ErrNotExist)
	}
	if strings.HasPrefix(path, "./") || strings.HasPrefix(path, ".\\") {
		return "", fmt.Errorf("could not open %s: %w", path, os.ErrNotExist)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, ".ssh", filepath.Base(cleanedPath))
	if _, err := os.Stat(defaultPath); err != nil {
		return "", fmt.Errorf("could not open %s: file not found in current directory or ~/.ssh: %w", path, os.ErrNotExist)
	}
	return defaultPath, nil
}

// loadSSHKey reads a password-protected ed25519 key, asking for its
// passphrase on the terminal.
func loadSSHKey(path string) (*ed25519.PrivateKey, error) {
	resolved, err := resolveKeyPath(path)
	if err != nil {
		return nil, err
	}
	// G304: resolved is user-provided input, which is expected for a CLI tool
	bts, err := os.ReadFile(resolved) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("could not read key: %w", err)
	}

	key, err := parsePrivateKey(bts, nil)
	switch {
	case err == nil:
		return nil, fmt.Errorf("key is not password-protected: keys are required to be password-protected")
	case isPasswordError(err):
		pass, err := askKeyPassphrase(resolved)
		if err != nil {
			return nil, err
		}
		key, err = parsePrivateKey(bts, pass)
		if err != nil {
			return nil, fmt.Errorf("could not parse key with passphrase: %w", err)
		}
	default:
		return nil, fmt.Errorf("could not parse key: %w", err)
	}

	ed25519Key, ok := key.(*ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unsupported key type %T: only ed25519 keys can seed a phrase", key)
	}
	return ed25519Key, nil
}

func parsePrivateKey(bts, pass []byte) (interface{}, error) {
	if len(pass) == 0 {
		//nolint: wrapcheck
		return ssh.ParseRawPrivateKey(bts)
	}
	//nolint: wrapcheck
	return ssh.ParseRawPrivateKeyWithPassphrase(bts, pass)
}

func isPasswordError(err error) bool {
	var kerr *ssh.PassphraseMissingError
	return errors.As(err, &kerr)
}

func askKeyPassphrase(path string) ([]byte, error) {
	defer fmt.Fprintf(os.Stderr, "\n")
	return readPassword(fmt.Sprintf("Enter the passphrase to unlock %q: ", path))
}

func readPassword(msg string) ([]byte, error) {
	_, _ = fmt.Fprint(os.Stderr, msg)
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open tty: %w", err)
	}
	defer t.Close()                                     //nolint: errcheck
	pass, err := term.ReadPassword(int(t.Input().Fd())) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("could not read passphrase: %w", err)
	}
	return pass, nil
}
