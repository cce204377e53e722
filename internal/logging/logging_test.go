// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/complex-gh/seedwallet"
)

func TestNew_JSON(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer

	log := New(&buf, zerolog.InfoLevel, false)
	log.Debug().Msg("hidden")
	log.Info().Str("chain", "sol").Msg("wallet added")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	is.Equal(len(lines), 1)

	var event map[string]any
	is.NoErr(json.Unmarshal([]byte(lines[0]), &event))
	is.Equal(event["level"], "info")
	is.Equal(event["chain"], "sol")
	is.Equal(event["message"], "wallet added")
	is.True(event["time"] != nil)
}

func TestNew_Pretty(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer

	log := New(&buf, zerolog.DebugLevel, true)
	log.Debug().Str("path", "m/44'/501'/0'/0'").Msg("derived")

	out := buf.String()
	is.True(strings.Contains(out, "derived"))
	is.True(strings.Contains(out, "m/44'/501'/0'/0'"))
	is.True(!strings.HasPrefix(out, "{"))
}

func TestAuto_NonTerminalIsJSON(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer

	log := Auto(&buf, zerolog.WarnLevel)
	log.Info().Msg("hidden")
	log.Warn().Msg("kept")

	out := strings.TrimSpace(buf.String())
	is.True(strings.HasPrefix(out, "{"))
	is.True(!strings.Contains(out, "hidden"))

	var event map[string]any
	is.NoErr(json.Unmarshal([]byte(out), &event))
	is.Equal(event["message"], "kept")
}

// TestRegistryLogs_NoSecrets wires the logger into a registry and checks no
// private key reaches the output
func TestRegistryLogs_NoSecrets(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer

	r, err := seedwallet.NewRegistryFromMnemonic(
		"test test test test test test test test test test test junk", "",
		seedwallet.WithLogger(New(&buf, zerolog.DebugLevel, false)),
	)
	is.NoErr(err)
	defer r.Close()

	sol, err := r.AddWallet(seedwallet.Solana)
	is.NoErr(err)
	eth, err := r.AddWallet(seedwallet.Ethereum)
	is.NoErr(err)

	out := buf.String()
	is.True(strings.Contains(out, sol.PublicKey()))
	is.True(strings.Contains(out, eth.PublicKey()))
	is.True(!strings.Contains(out, sol.Keypair().EncodePrivateKey()))
	is.True(!strings.Contains(out, strings.TrimPrefix(eth.Keypair().EncodePrivateKey(), "0x")))
}
