package common

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
)

const (
	SOLDecimals   = 9 // SOL has 9 decimals (lamports)
	TokenDecimals = 6 // USDC has 6 decimals (minor units)
)

// LamportsToSOL converts lamports to a SOL string without float precision loss
func LamportsToSOL(lamports uint64) string {
	return formatWithDecimals(lamports, SOLDecimals)
}

// MinorToAmount converts minor units to a decimal token amount string
// without float precision loss
func MinorToAmount(minor uint64) string {
	return formatWithDecimals(minor, TokenDecimals)
}

// AmountToMinor converts a decimal token amount string to minor units.
// The amount must be positive; excess precision is rounded to 6
// decimals.
func AmountToMinor(amount string) (uint64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if d.Sign() <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	// Anything below one minor unit is rounded away
	minor := d.Shift(TokenDecimals).Round(0)
	if minor.Sign() <= 0 {
		return 0, fmt.Errorf("amount must be at least 0.000001")
	}
	if !minor.BigInt().IsUint64() {
		return 0, fmt.Errorf("amount out of range")
	}
	return minor.BigInt().Uint64(), nil
}

// CompareAmounts compares two decimal token amount strings without float
// precision loss. Returns -1 if a < b, 0 if a == b, 1 if a > b.
func CompareAmounts(a, b string) (int, error) {
	aVal, err := decimal.NewFromString(strings.TrimSpace(a))
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount %q: %w", a, err)
	}
	bVal, err := decimal.NewFromString(strings.TrimSpace(b))
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount %q: %w", b, err)
	}
	return aVal.Cmp(bVal), nil
}

// IsValidAddress reports whether s looks like a Solana address: base58
// text of 32-44 characters decoding to a 32-byte public key.
func IsValidAddress(s string) bool {
	if len(s) < 32 || len(s) > 44 {
		return false
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(raw) == 32
}

// TruncateAddress shortens an address for display, keeping the given
// prefix and suffix lengths. Strings not longer than prefix+suffix are
// returned unchanged.
func TruncateAddress(s string, prefix, suffix int) string {
	if prefix < 0 {
		prefix = 0
	}
	if suffix < 0 {
		suffix = 0
	}
	if len(s) <= prefix+suffix {
		return s
	}
	return s[:prefix] + "..." + s[len(s)-suffix:]
}

// formatWithDecimals converts an integer to a decimal string by
// inserting the decimal point
// Example: formatWithDecimals(24981836, 9) = "0.024981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := fmt.Sprintf("%d", value)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}
