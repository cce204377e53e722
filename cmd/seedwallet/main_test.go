package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/tyler-smith/go-bip39"

	"github.com/complex-gh/seedwallet"
	"github.com/complex-gh/seedwallet/internal/chain"
)

const (
	abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	junkMnemonic    = "test test test test test test test test test test test junk"
)

// run executes the CLI with stdin and returns what it printed on stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDerive(t *testing.T) {
	is := is.New(t)

	out, err := run(t, abandonMnemonic+"\n", "derive", "sol", "--count", "2")
	is.NoErr(err)
	is.True(strings.Contains(out, "[solana wallets]"))
	is.True(strings.Contains(out, "#0  m/44'/501'/0'/0'  HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk"))
	is.True(strings.Contains(out, "#1  m/44'/501'/1'/0'  Hh8QwFUA6MtVu1qAoq12ucvFHNwCcVTV7hpWjeY1Hztb"))
}

func TestDerive_EthereumPrivate(t *testing.T) {
	is := is.New(t)

	out, err := run(t, junkMnemonic, "derive", "eth", "--private")
	is.NoErr(err)
	is.True(strings.Contains(out, "m/44'/60'/0'/0/0  0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"))
	is.True(strings.Contains(out, "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"))

	out, err = run(t, junkMnemonic, "derive", "eth")
	is.NoErr(err)
	is.True(!strings.Contains(out, "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"))
}

func TestDerive_HardenedScheme(t *testing.T) {
	is := is.New(t)

	out, err := run(t, junkMnemonic, "derive", "eth", "--scheme", "hardened")
	is.NoErr(err)
	is.True(strings.Contains(out, "m/44'/60'/0'/0'"))
	is.True(!strings.Contains(out, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"))
}

func TestDerive_Errors(t *testing.T) {
	is := is.New(t)

	_, err := run(t, abandonMnemonic, "derive", "btc")
	is.True(errors.Is(err, seedwallet.ErrUnknownChain))

	_, err = run(t, "abandon abandon abandon", "derive", "sol")
	is.True(errors.Is(err, seedwallet.ErrInvalidMnemonic))

	_, err = run(t, "", "derive", "sol")
	is.True(errors.Is(err, seedwallet.ErrInvalidMnemonic))

	_, err = run(t, abandonMnemonic, "derive", "sol", "--network", "moonnet")
	is.True(err != nil)
}

func TestValidate(t *testing.T) {
	is := is.New(t)

	out, err := run(t, "  "+junkMnemonic+"  ", "validate")
	is.NoErr(err)
	is.Equal(out, "valid 12 word seed phrase\n")

	_, err = run(t, "test test test", "validate")
	is.True(errors.Is(err, seedwallet.ErrInvalidMnemonic))
}

func TestMnemonic(t *testing.T) {
	is := is.New(t)

	out, err := run(t, "", "mnemonic", "--words", "12")
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	is.Equal(lines[0], "[12 word seed phrase]")
	is.True(bip39.IsMnemonicValid(lines[len(lines)-1]))

	_, err = run(t, "", "mnemonic", "--words", "13")
	is.True(err != nil)
}

// TestSession walks through add, list and toggle against one state file
func TestSession(t *testing.T) {
	is := is.New(t)
	state := filepath.Join(t.TempDir(), "wallets.toml")

	out, err := run(t, abandonMnemonic, "add", "sol", "--state", state, "--count", "2")
	is.NoErr(err)
	is.True(strings.Contains(out, "#0  m/44'/501'/0'/0'  HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk\n"))
	is.True(strings.Contains(out, "#1  m/44'/501'/1'/0'  Hh8QwFUA6MtVu1qAoq12ucvFHNwCcVTV7hpWjeY1Hztb\n"))

	out, err = run(t, abandonMnemonic, "add", "eth", "--state", state)
	is.NoErr(err)
	is.True(strings.Contains(out, "#0  m/44'/60'/0'/0/0  0x"))

	out, err = run(t, abandonMnemonic, "list", "--state", state)
	is.NoErr(err)
	is.True(strings.Contains(out, "[solana wallets]"))
	is.True(strings.Contains(out, "[ethereum wallets]"))
	is.True(strings.Contains(out, "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk\n")) // no key while hidden

	out, err = run(t, abandonMnemonic, "toggle", "sol", "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk", "--state", state)
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "private key visible\n"))
	is.True(strings.Contains(out, "27npWoNE4HfmLeQo1TyWcW7NEA28qnsnDK7kcttDQEWrCWnro83HMJ97rMmpvYYZRwDAvG4KRuB7hTBacvwD7bgi"))

	out, err = run(t, abandonMnemonic, "list", "sol", "--state", state)
	is.NoErr(err)
	is.True(strings.Contains(out, "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk  27npWoNE4HfmLeQo1TyWcW7NEA28qnsnDK7kcttDQEWrCWnro83HMJ97rMmpvYYZRwDAvG4KRuB7hTBacvwD7bgi"))
	is.True(!strings.Contains(out, "[ethereum wallets]"))

	out, err = run(t, abandonMnemonic, "toggle", "sol", "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk", "--state", state)
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "private key hidden\n"))
	is.True(!strings.Contains(out, "27npWoNE"))

	_, err = run(t, abandonMnemonic, "toggle", "sol", "Hh8QwFUA6MtVu1qAoq12ucvFHNwCcVTV7hpWjeY1Hztc", "--state", state)
	is.True(errors.Is(err, seedwallet.ErrNotFound))

	// a different phrase cannot resume the session
	_, err = run(t, junkMnemonic, "list", "--state", state)
	is.True(err != nil)
}

func TestAdd_InvalidCount(t *testing.T) {
	is := is.New(t)
	state := filepath.Join(t.TempDir(), "wallets.toml")

	for _, count := range []string{"0", "-2"} {
		_, err := run(t, abandonMnemonic, "add", "sol", "--state", state, "--count", count)
		is.True(err != nil)
		_, statErr := os.Stat(state)
		is.True(errors.Is(statErr, os.ErrNotExist)) // nothing written
	}
}

func solanaNode(t *testing.T, results map[string]string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":` + results[req.Method] + `}`))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestBalance(t *testing.T) {
	is := is.New(t)
	url := solanaNode(t, map[string]string{
		"getBalance": `{"context":{"slot":1},"value":24981836}`,
	})

	out, err := run(t, "", "balance", "sol", "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk", "--sol-rpc", url)
	is.NoErr(err)
	is.Equal(out, "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk  0.024981836 SOL\n")

	_, err = run(t, "", "balance", "sol", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "--sol-rpc", url)
	is.True(errors.Is(err, chain.ErrInvalidAddress))
}

func TestBalance_SessionWallets(t *testing.T) {
	is := is.New(t)
	state := filepath.Join(t.TempDir(), "wallets.toml")
	url := solanaNode(t, map[string]string{
		"getBalance": `{"context":{"slot":1},"value":1000000000}`,
	})

	_, err := run(t, abandonMnemonic, "add", "sol", "--state", state, "--count", "2")
	is.NoErr(err)

	out, err := run(t, abandonMnemonic, "balance", "sol", "--state", state, "--sol-rpc", url)
	is.NoErr(err)
	is.Equal(strings.Count(out, "1 SOL\n"), 2)
}

func TestAirdrop(t *testing.T) {
	is := is.New(t)
	sig := "2zf1D3JpcScRk9TTCWSQmbKr8hB9nfiLK9iA7mHvNuxqSrDDLCRFY7mb48txGysNHWns8autYb6meqyhRAPs23qT"
	url := solanaNode(t, map[string]string{"requestAirdrop": `"` + sig + `"`})

	out, err := run(t, "", "airdrop", "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk", "--amount", "0.5", "--sol-rpc", url)
	is.NoErr(err)
	is.Equal(out, sig+"  pending\n")

	_, err = run(t, "", "airdrop", "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk", "--network", "mainnet", "--sol-rpc", url)
	is.True(errors.Is(err, chain.ErrUnsupported))
}

func TestQR(t *testing.T) {
	is := is.New(t)

	out, err := run(t, "", "qr", "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk")
	is.NoErr(err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	is.True(len(lines) > 10)
	is.True(strings.Contains(out, "█"))

	png := filepath.Join(t.TempDir(), "addr.png")
	_, err = run(t, "", "qr", "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk", "--png", png)
	is.NoErr(err)
}

func TestRenderQR(t *testing.T) {
	is := is.New(t)
	got := renderQR([][]bool{
		{true, false},
		{true, true},
		{false, true},
	})
	is.Equal(got, " ▀\n█▄\n")
}
