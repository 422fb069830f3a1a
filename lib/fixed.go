package lib

import (
	"math"
	"math/big"
)

/*
	Fixed is the deterministic fixed-point number used for pool prices and stake weights.

	The raw value is an arbitrary-precision integer scaled by 2^32 (32 fractional bits), wide
	enough that the ratio of any two uint64 reserves is exactly representable without float
	arithmetic. All operations floor, never round, and never trap.
*/

// FixedFracBits is the number of fractional bits in a Fixed value
const FixedFracBits = 32

var fixedOne = new(big.Int).Lsh(big.NewInt(1), FixedFracBits)

// Fixed is an immutable fixed-point value; the zero value is 0.0
type Fixed struct {
	raw *big.Int
}

// ZeroFixed() returns 0.0, the defined sentinel for undefined ratios
func ZeroFixed() Fixed { return Fixed{raw: new(big.Int)} }

// OneFixed() returns exactly 1.0
func OneFixed() Fixed { return Fixed{raw: new(big.Int).Set(fixedOne)} }

// NewFixedFromUint64() converts an integer into a Fixed
func NewFixedFromUint64(u uint64) Fixed {
	return Fixed{raw: new(big.Int).Lsh(new(big.Int).SetUint64(u), FixedFracBits)}
}

// NewFixedFromRatio() returns num/den as a Fixed; a zero denominator yields the zero sentinel
func NewFixedFromRatio(num, den uint64) Fixed {
	if den == 0 {
		return ZeroFixed()
	}
	raw := new(big.Int).Lsh(new(big.Int).SetUint64(num), FixedFracBits)
	raw.Quo(raw, new(big.Int).SetUint64(den))
	return Fixed{raw: raw}
}

// NewFixedFromBytes() reconstructs a Fixed from its big-endian raw bytes
func NewFixedFromBytes(bz []byte) Fixed {
	return Fixed{raw: new(big.Int).SetBytes(bz)}
}

// Bytes() returns the big-endian raw bytes for persistence
func (f Fixed) Bytes() []byte { return f.rawInt().Bytes() }

// IsZero() returns true if the value is exactly 0.0
func (f Fixed) IsZero() bool { return f.rawInt().Sign() == 0 }

// Cmp() compares two Fixed values: -1 if f < o, 0 if equal, 1 if f > o
func (f Fixed) Cmp(o Fixed) int { return f.rawInt().Cmp(o.rawInt()) }

// Add() returns f + o
func (f Fixed) Add(o Fixed) Fixed {
	return Fixed{raw: new(big.Int).Add(f.rawInt(), o.rawInt())}
}

// Sub() returns f - o floored at 0.0; prices are never negative
func (f Fixed) Sub(o Fixed) Fixed {
	raw := new(big.Int).Sub(f.rawInt(), o.rawInt())
	if raw.Sign() < 0 {
		raw.SetInt64(0)
	}
	return Fixed{raw: raw}
}

// MulDivUint64() returns f * num / den, floored; a zero denominator yields the zero sentinel
func (f Fixed) MulDivUint64(num, den uint64) Fixed {
	if den == 0 {
		return ZeroFixed()
	}
	raw := new(big.Int).Mul(f.rawInt(), new(big.Int).SetUint64(num))
	raw.Quo(raw, new(big.Int).SetUint64(den))
	return Fixed{raw: raw}
}

// Uint64Truncated() returns the integer part, truncated toward zero and saturating at MaxUint64
// this is the conversion rule at the cross-VM query boundary
func (f Fixed) Uint64Truncated() uint64 {
	whole := new(big.Int).Rsh(f.rawInt(), FixedFracBits)
	if !whole.IsUint64() {
		return math.MaxUint64
	}
	return whole.Uint64()
}

// ScaledUint64() returns the value multiplied by scale, truncated, saturating at MaxUint64
// used to project fractional prices onto integer wire types (e.g. 1e9 scaling)
func (f Fixed) ScaledUint64(scale uint64) uint64 {
	raw := new(big.Int).Mul(f.rawInt(), new(big.Int).SetUint64(scale))
	raw.Rsh(raw, FixedFracBits)
	if !raw.IsUint64() {
		return math.MaxUint64
	}
	return raw.Uint64()
}

// rawInt() guards the zero-value Fixed
func (f Fixed) rawInt() *big.Int {
	if f.raw == nil {
		return new(big.Int)
	}
	return f.raw
}
