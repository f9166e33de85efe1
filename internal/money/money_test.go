package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAmount(t *testing.T, s string) Amount {
	t.Helper()
	a, err := ParseAmount(s)
	require.NoError(t, err)
	return a
}

// every valid input renders back with exactly four fractional digits
func TestParseAmountRendering(t *testing.T) {
	cases := map[string]string{
		"0":                     "0.0000",
		"1":                     "1.0000",
		"1.":                    "1.0000",
		"1.5":                   "1.5000",
		"1.0000":                "1.0000",
		"0.0001":                "0.0001",
		"42.42":                 "42.4200",
		"1844674407370955.1615": "1844674407370955.1615",
	}
	for in, want := range cases {
		a, err := ParseAmount(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, a.String(), "input %q", in)
	}
}

func TestParseAmountRejects(t *testing.T) {
	inputs := []string{
		"",
		".",
		".5",
		"-1.00",
		"-0.001",
		"0.-5",
		"+1",
		"1.00000", // five fractional digits
		"1.2.3",
		"abc",
		"1,5",
		"1.5 ",
		"18446744073709551615",    // scaled representation overflows
		"1844674407370955.1616",   // one unit past the representable max
		"99999999999999999999999", // whole part alone overflows
	}
	for _, in := range inputs {
		_, err := ParseAmount(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestBalanceCheckedArithmetic(t *testing.T) {
	one := mustAmount(t, "0.0001")

	_, err := MaxBalance().TryAdd(one)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = MinBalance().TrySub(one)
	assert.ErrorIs(t, err, ErrUnderflow)

	var b Balance
	next, err := b.TryAdd(mustAmount(t, "1.5"))
	require.NoError(t, err)
	assert.Equal(t, "1.5000", next.String())
	// the receiver is untouched, committing is the caller's decision
	assert.Equal(t, "0.0000", b.String())

	neg, err := b.TrySub(mustAmount(t, "0.5"))
	require.NoError(t, err)
	assert.Equal(t, "-0.5000", neg.String())
	assert.Equal(t, -1, neg.Sign())
}

func TestBalanceLess(t *testing.T) {
	var zero Balance
	assert.True(t, zero.Less(mustAmount(t, "0.0001")))
	assert.False(t, zero.Less(mustAmount(t, "0")))

	two, err := zero.TryAdd(mustAmount(t, "2"))
	require.NoError(t, err)
	assert.False(t, two.Less(mustAmount(t, "2")))
	assert.True(t, two.Less(mustAmount(t, "2.0001")))
}

func TestBalanceAddPanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { MaxBalance().Add(MaxBalance()) })

	sum := MaxBalance().Add(MinBalance())
	assert.Equal(t, "-0.0001", sum.String())
}
