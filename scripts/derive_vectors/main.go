// derive_vectors prints the first Solana and Ethereum wallets of a BIP39 mnemonic,
// for producing and checking test fixtures.
//
// Usage:
//
//	go run ./scripts/derive_vectors "your 24 word seed phrase here"
//
// Or with stdin:
//
//	echo "your 24 word seed phrase" | go run ./scripts/derive_vectors
//
// The SEEDWALLET_VECTORS environment variable sets how many indices are printed
// per chain (default 2). Ethereum addresses are printed for both the bip44 and
// the hardened scheme.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/complex-gh/seedwallet"
)

func main() {
	var mnemonic string

	if len(os.Args) > 1 {
		mnemonic = strings.Join(os.Args[1:], " ")
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			mnemonic = strings.TrimSpace(scanner.Text())
		}
	}

	if mnemonic == "" {
		fmt.Fprintln(os.Stderr, "Usage: derive_vectors \"24 word seed phrase\"")
		fmt.Fprintln(os.Stderr, "   or: echo \"seed phrase\" | derive_vectors")
		os.Exit(1)
	}

	count := uint32(2)
	if s := os.Getenv("SEEDWALLET_VECTORS"); s != "" {
		n, err := strconv.ParseUint(s, 10, 31)
		if err != nil || n == 0 {
			fmt.Fprintf(os.Stderr, "Error: invalid SEEDWALLET_VECTORS %q\n", s)
			os.Exit(1)
		}
		count = uint32(n)
	}

	seed, err := seedwallet.ExpandMnemonic(mnemonic, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer seed.Wipe()

	derivers := []struct {
		chain   seedwallet.Chain
		deriver seedwallet.Deriver
	}{
		{seedwallet.Solana, seedwallet.Deriver{}},
		{seedwallet.Ethereum, seedwallet.Deriver{Ethereum: seedwallet.EthereumBIP44}},
		{seedwallet.Ethereum, seedwallet.Deriver{Ethereum: seedwallet.EthereumHardened}},
	}
	for _, d := range derivers {
		for i := uint32(0); i < count; i++ {
			kp, err := d.deriver.Derive(seed, i, d.chain)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%s\t%s\t%s\t%s\n", d.chain, kp.Path, kp.PublicKey, kp.EncodePrivateKey())
			kp.Wipe()
		}
	}
}
