// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedwallet

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

// TestSecret_NeverFormatted verifies no fmt verb, marshaler or logger prints key bytes
func TestSecret_NeverFormatted(t *testing.T) {
	is := is.New(t)

	kp, err := Derive(mustSeed(t, junkMnemonic), 0, Ethereum)
	is.NoErr(err)
	rawHex := hex.EncodeToString(kp.PrivateKey())

	printed := []string{
		fmt.Sprintf("%v", kp.PrivateKey()),
		fmt.Sprintf("%s", kp.PrivateKey()),
		fmt.Sprintf("%x", kp.PrivateKey()),
		fmt.Sprintf("%#v", kp.PrivateKey()),
		fmt.Sprintf("%+v", kp),
		fmt.Sprintf("%#v", *kp),
		fmt.Sprint(kp),
	}
	for _, out := range printed {
		is.True(!strings.Contains(out, rawHex))
		is.True(!strings.Contains(out, kp.EncodePrivateKey()))
	}
	is.Equal(printed[0], redacted)
	is.True(strings.Contains(printed[4], kp.PublicKey))

	js, err := json.Marshal(map[string]any{"key": kp.PrivateKey()})
	is.NoErr(err)
	is.Equal(string(js), `{"key":"[REDACTED]"}`)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Interface("key", kp.PrivateKey()).Stringer("secret", kp.PrivateKey()).Msg("derived")
	is.True(!strings.Contains(buf.String(), rawHex))
	is.True(strings.Contains(buf.String(), redacted))
}

func TestKeypair_EncodePrivateKey(t *testing.T) {
	is := is.New(t)
	seed := mustSeed(t, junkMnemonic)

	sol, err := Derive(seed, 0, Solana)
	is.NoErr(err)
	is.True(len(sol.EncodePrivateKey()) > 80)

	eth, err := Derive(seed, 0, Ethereum)
	is.NoErr(err)
	is.True(strings.HasPrefix(eth.EncodePrivateKey(), "0x"))
	is.Equal(len(eth.EncodePrivateKey()), 66)
}

func TestKeypair_Signers(t *testing.T) {
	is := is.New(t)
	seed := mustSeed(t, junkMnemonic)

	eth, err := Derive(seed, 0, Ethereum)
	is.NoErr(err)
	key, err := eth.ECDSA()
	is.NoErr(err)
	is.Equal(crypto.PubkeyToAddress(key.PublicKey).Hex(), eth.PublicKey)

	// the raw scalar loads as a secp256k1 key on its own
	_, pub := btcec.PrivKeyFromBytes(eth.PrivateKey().Bytes())
	is.Equal(crypto.PubkeyToAddress(*pub.ToECDSA()).Hex(), eth.PublicKey)

	_, err = eth.Ed25519()
	is.True(err != nil)

	sol, err := Derive(seed, 0, Solana)
	is.NoErr(err)
	signer, err := sol.Ed25519()
	is.NoErr(err)
	is.Equal(len(signer), 64)
	_, err = sol.ECDSA()
	is.True(err != nil)
}

func TestKeypair_Wipe(t *testing.T) {
	is := is.New(t)

	kp, err := Derive(mustSeed(t, junkMnemonic), 0, Solana)
	is.NoErr(err)
	other, err := Derive(mustSeed(t, junkMnemonic), 0, Solana)
	is.NoErr(err)
	is.True(kp.Equal(other))

	kp.Wipe()
	is.Equal(kp.PrivateKey().Bytes(), make([]byte, len(kp.PrivateKey())))
	is.True(!kp.Equal(other))
}

func TestParseChain(t *testing.T) {
	tests := []struct {
		in   string
		want Chain
		ok   bool
	}{
		{"sol", Solana, true},
		{"Solana", Solana, true},
		{" ETH ", Ethereum, true},
		{"ethereum", Ethereum, true},
		{"btc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			is := is.New(t)
			got, err := ParseChain(tt.in)
			is.Equal(err == nil, tt.ok)
			is.Equal(got, tt.want)
		})
	}
}

func TestChain_Text(t *testing.T) {
	is := is.New(t)

	text, err := Ethereum.MarshalText()
	is.NoErr(err)
	is.Equal(string(text), "eth")

	var c Chain
	is.NoErr(c.UnmarshalText([]byte("sol")))
	is.Equal(c, Solana)

	_, err = Chain(7).MarshalText()
	is.True(err != nil)
}

func TestParseDerivationPath(t *testing.T) {
	is := is.New(t)

	p, err := ParseDerivationPath("m/44'/501'/7'/0'")
	is.NoErr(err)
	want, err := SolanaPath(7)
	is.NoErr(err)
	is.Equal(p, want)
	is.Equal(p.String(), "m/44'/501'/7'/0'")

	_, err = ParseDerivationPath("44'/501'")
	is.True(err != nil)
	_, err = ParseDerivationPath("m/x")
	is.True(err != nil)
}

func TestParseEthereumScheme(t *testing.T) {
	is := is.New(t)

	s, err := ParseEthereumScheme("bip44")
	is.NoErr(err)
	is.Equal(s, EthereumBIP44)

	s, err = ParseEthereumScheme("Hardened")
	is.NoErr(err)
	is.Equal(s, EthereumHardened)
	is.Equal(s.String(), "hardened")

	_, err = ParseEthereumScheme("ledger")
	is.True(err != nil)
}
