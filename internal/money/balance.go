package money

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Balance is a signed decimal with four fractional digits used for a
// client's available and held funds. The coefficient is arbitrary precision
// but every operation keeps the value inside the signed 128-bit scaled
// range, so range breaches surface as errors instead of wrapping. The zero
// value is a zero balance.
type Balance struct {
	d decimal.Decimal
}

var (
	maxBalance = func() decimal.Decimal {
		max := new(big.Int).Lsh(big.NewInt(1), 127)
		max.Sub(max, big.NewInt(1))
		return decimal.NewFromBigInt(max, -Scale)
	}()
	minBalance = decimal.NewFromBigInt(new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127)), -Scale)
)

// MaxBalance returns the largest representable balance.
func MaxBalance() Balance { return Balance{maxBalance} }

// MinBalance returns the smallest (most negative) representable balance.
func MinBalance() Balance { return Balance{minBalance} }

// TryAdd returns the balance increased by amount. The receiver is not
// modified; the caller decides whether to commit the result.
func (b Balance) TryAdd(a Amount) (Balance, error) {
	n := b.d.Add(a.Decimal())
	if n.Cmp(maxBalance) > 0 {
		return Balance{}, ErrOverflow
	}
	return Balance{n}, nil
}

// TrySub returns the balance decreased by amount, without modifying the
// receiver.
func (b Balance) TrySub(a Amount) (Balance, error) {
	n := b.d.Sub(a.Decimal())
	if n.Cmp(minBalance) < 0 {
		return Balance{}, ErrUnderflow
	}
	return Balance{n}, nil
}

// Add returns b + o. Both operands are range-checked on every mutation, so
// a breach here means corrupted state; it panics rather than returning a
// wrong total.
func (b Balance) Add(o Balance) Balance {
	n := b.d.Add(o.d)
	if n.Cmp(maxBalance) > 0 || n.Cmp(minBalance) < 0 {
		panic("balance corruption: available + held out of representable range")
	}
	return Balance{n}
}

// Less reports whether the balance is strictly below amount.
func (b Balance) Less(a Amount) bool {
	return b.d.Cmp(a.Decimal()) < 0
}

// Equal reports whether two balances are numerically equal.
func (b Balance) Equal(o Balance) bool { return b.d.Equal(o.d) }

// Sign returns -1 for negative balances, 0 for zero and 1 for positive.
func (b Balance) Sign() int { return b.d.Sign() }

// String renders the balance with exactly four fractional digits.
func (b Balance) String() string { return b.d.StringFixed(Scale) }
