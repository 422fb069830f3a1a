package lib

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedFromRatio(t *testing.T) {
	tests := []struct {
		name      string
		detail    string
		num       uint64
		den       uint64
		truncated uint64
	}{
		{
			name:      "exact unit",
			detail:    "equal reserves price at exactly 1",
			num:       1_000,
			den:       1_000,
			truncated: 1,
		},
		{
			name:      "fractional value truncates",
			detail:    "values below 1 truncate to zero on conversion",
			num:       1,
			den:       2,
			truncated: 0,
		},
		{
			name:      "zero denominator sentinel",
			detail:    "a zero denominator yields the zero sentinel, never a trap",
			num:       5,
			den:       0,
			truncated: 0,
		},
		{
			name:      "large ratio",
			detail:    "ratios of full range uint64 inputs stay exact",
			num:       math.MaxUint64,
			den:       1,
			truncated: math.MaxUint64,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := NewFixedFromRatio(test.num, test.den)
			require.Equal(t, test.truncated, f.Uint64Truncated())
		})
	}
}

func TestFixedArithmetic(t *testing.T) {
	two, three := NewFixedFromUint64(2), NewFixedFromUint64(3)
	require.Zero(t, two.Add(three).Cmp(NewFixedFromUint64(5)))
	require.Zero(t, three.Sub(two).Cmp(OneFixed()))
	// subtraction floors at zero
	require.True(t, two.Sub(three).IsZero())
	// 2 * 3 / 4 = 1.5, truncates to 1
	require.EqualValues(t, 1, two.MulDivUint64(3, 4).Uint64Truncated())
	// a zero divisor yields the zero sentinel
	require.True(t, two.MulDivUint64(3, 0).IsZero())
}

func TestFixedBytesRoundTrip(t *testing.T) {
	original := NewFixedFromRatio(355, 113)
	restored := NewFixedFromBytes(original.Bytes())
	require.Zero(t, original.Cmp(restored))
}

func TestFixedScaledUint64(t *testing.T) {
	half := NewFixedFromRatio(1, 2)
	require.EqualValues(t, 500_000_000, half.ScaledUint64(1_000_000_000))
	// saturation at the top of the range
	big := NewFixedFromUint64(math.MaxUint64)
	require.EqualValues(t, uint64(math.MaxUint64), big.ScaledUint64(2))
}

func TestFixedZeroValueSafe(t *testing.T) {
	var zero Fixed
	require.True(t, zero.IsZero())
	require.EqualValues(t, 0, zero.Uint64Truncated())
	require.Zero(t, zero.Cmp(ZeroFixed()))
	require.Zero(t, zero.Add(OneFixed()).Cmp(OneFixed()))
}
