// Package money provides the exact-decimal value types used by the ledger:
// Amount for the funds carried on a single transaction and Balance for a
// client's running funds. Both carry four fractional digits and never touch
// floating point.
package money

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits carried by every monetary value.
const Scale = 4

const scaleFactor = 10_000

var (
	ErrOverflow  = errors.New("overflow updating balance")
	ErrUnderflow = errors.New("underflow updating balance")
)

// Amount is a non-negative fixed-point amount stored as units of 1/10000.
// It is carried by deposits and withdrawals only; running balances, which
// can go negative, use Balance.
type Amount uint64

// ParseAmount parses a decimal string such as "1", "1." or "1.5" into an
// Amount. It rejects signs, non-digit characters, more than four fractional
// digits, and values whose scaled representation does not fit in 64 bits.
// An absent or empty fractional part means zero cents.
func ParseAmount(s string) (Amount, error) {
	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" || !allDigits(whole) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > Scale {
		return 0, fmt.Errorf("invalid amount %q: at most %d fractional digits", s, Scale)
	}
	if !allDigits(frac) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	units, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q too large", s)
	}
	var cents uint64
	if frac != "" {
		// cannot fail, at most four digits
		cents, _ = strconv.ParseUint(frac, 10, 64)
		for i := len(frac); i < Scale; i++ {
			cents *= 10
		}
	}

	if units > math.MaxUint64/scaleFactor {
		return 0, fmt.Errorf("amount %q too large", s)
	}
	scaled := units * scaleFactor
	if scaled > math.MaxUint64-cents {
		return 0, fmt.Errorf("amount %q too large", s)
	}
	return Amount(scaled + cents), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String renders the amount with exactly four fractional digits.
func (a Amount) String() string {
	return fmt.Sprintf("%d.%04d", uint64(a)/scaleFactor, uint64(a)%scaleFactor)
}

// Decimal returns the exact decimal value of the amount.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -Scale)
}
