package lib

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoinLenPrefixRoundTrip(t *testing.T) {
	key := JoinLenPrefix([]byte{7}, []byte("segment"), []byte{0, 1})
	segments := DecodeLengthPrefixed(key)
	require.Len(t, segments, 3)
	require.Equal(t, []byte{7}, segments[0])
	require.Equal(t, []byte("segment"), segments[1])
	require.Equal(t, []byte{0, 1}, segments[2])
	// nil segments are skipped entirely
	require.Equal(t, JoinLenPrefix([]byte{7}), JoinLenPrefix(nil, []byte{7}, nil))
}

func TestFormatUint64Sorts(t *testing.T) {
	// big-endian formatting preserves numeric order under byte comparison
	previous := FormatUint64(0)
	for _, u := range []uint64{1, 255, 256, 1 << 20, math.MaxUint64} {
		current := FormatUint64(u)
		require.Equal(t, -1, bytes.Compare(previous, current))
		previous = current
	}
}

func TestSafeMath(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		got      uint64
		expected uint64
	}{
		{
			name:     "add saturates",
			detail:   "addition past the range clamps at the maximum",
			got:      SafeAdd(math.MaxUint64, 1),
			expected: math.MaxUint64,
		},
		{
			name:     "sub floors",
			detail:   "subtraction below zero clamps at zero",
			got:      SafeSub(3, 5),
			expected: 0,
		},
		{
			name:     "mul div exact",
			detail:   "wide intermediates avoid overflow in the product",
			got:      SafeMulDiv(math.MaxUint64, 2, 4),
			expected: math.MaxUint64 / 2,
		},
		{
			name:     "mul div zero divisor",
			detail:   "a zero divisor yields zero, never a trap",
			got:      SafeMulDiv(10, 10, 0),
			expected: 0,
		},
		{
			name:     "mul div saturates",
			detail:   "a quotient past the range clamps at the maximum",
			got:      SafeMulDiv(math.MaxUint64, 3, 1),
			expected: math.MaxUint64,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, test.got)
		})
	}
}

func TestHexBytesJSON(t *testing.T) {
	original := HexBytes{0xde, 0xad, 0xbe, 0xef}
	bz, err := MarshalJSON(original)
	require.NoError(t, err)
	require.Equal(t, `"deadbeef"`, string(bz))
	var restored HexBytes
	require.NoError(t, UnmarshalJSON(bz, &restored))
	require.Equal(t, original, restored)
}
