// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package chain

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	// SOLDecimals is the number of lamport decimals in one SOL.
	SOLDecimals = 9
	// ETHDecimals is the number of wei decimals in one ether.
	ETHDecimals = 18
)

// FormatAmount inserts the decimal point into an integer amount and trims
// trailing zeros: FormatAmount(24981836, 9) = "0.024981836",
// FormatAmount(1500000000, 9) = "1.5".
func FormatAmount(value *big.Int, decimals int) string {
	if value == nil {
		value = new(big.Int)
	}

	neg := value.Sign() < 0
	s := new(big.Int).Abs(value).String()

	if decimals > 0 {
		if len(s) <= decimals {
			s = strings.Repeat("0", decimals-len(s)+1) + s
		}
		pos := len(s) - decimals
		whole, frac := s[:pos], strings.TrimRight(s[pos:], "0")
		s = whole
		if frac != "" {
			s += "." + frac
		}
	}

	if neg {
		return "-" + s
	}
	return s
}

// ParseAmount converts a decimal string in whole units to the smallest unit:
// ParseAmount("0.024981836", 9) = 24981836. More fractional digits than
// decimals is an error rather than a silent truncation.
func ParseAmount(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if hasDot && strings.Contains(frac, ".") {
		return nil, fmt.Errorf("invalid decimal format %q", s)
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("amount %q has more than %d decimals", s, decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("invalid amount %q", s)
		}
	}

	out, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return out, nil
}
