package lib

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"math/big"
)

// HexBytes is a byte slice that JSON-marshals as a hex string
type HexBytes []byte

// NewHexBytesFromString() converts a hex string into HexBytes
func NewHexBytesFromString(s string) (HexBytes, ErrorI) {
	bz, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrStringToBytes(err)
	}
	return bz, nil
}

// String() returns the hex string representation
func (x HexBytes) String() string { return hex.EncodeToString(x) }

// MarshalJSON() satisfies the json.Marshaler interface
func (x HexBytes) MarshalJSON() ([]byte, error) {
	return MarshalJSON(x.String())
}

// UnmarshalJSON() satisfies the json.Unmarshaler interface
func (x *HexBytes) UnmarshalJSON(b []byte) (err error) {
	s := new(string)
	if err = UnmarshalJSON(b, s); err != nil {
		return
	}
	*x, err = hex.DecodeString(*s)
	return
}

/*
	Key helpers below

	- Length prefixed append is used to be able to easily separate the segments of a key
	- BigEndian encoding is used for integers to accommodate the lexicographical sorting
	  nature of the key-value database
*/

// JoinLenPrefix() appends segments together, each prefixed by its single-byte length
func JoinLenPrefix(toAppend ...[]byte) (res []byte) {
	for _, segment := range toAppend {
		if segment == nil {
			continue
		}
		res = append(res, byte(len(segment)))
		res = append(res, segment...)
	}
	return
}

// DecodeLengthPrefixed() splits a key back into its segments
func DecodeLengthPrefixed(key []byte) (segments [][]byte) {
	for i := 0; i < len(key); {
		segmentLength := int(key[i])
		i++
		if i+segmentLength > len(key) {
			return
		}
		segments = append(segments, key[i:i+segmentLength])
		i += segmentLength
	}
	return
}

// FormatUint64() encodes a uint64 as 8 big-endian bytes
func FormatUint64(u uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, u)
	return b
}

// FormatUint16() encodes a uint16 as 2 big-endian bytes
func FormatUint16(u uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, u)
	return b
}

/*
	Overflow-safe integer math below: the AMM and lock-cost arithmetic must never wrap,
	as reserve and cost inputs originate from un-trusted callers
*/

// SafeAdd() executes saturating uint64 addition
func SafeAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// SafeSub() executes saturating uint64 subtraction
func SafeSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

// SafeMulDiv() computes (a * b) / c with big.Int intermediates, floored, saturating at MaxUint64
// a zero divisor yields zero rather than trapping
func SafeMulDiv(a, b, c uint64) uint64 {
	if c == 0 {
		return 0
	}
	res := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	res.Quo(res, new(big.Int).SetUint64(c))
	if !res.IsUint64() {
		return math.MaxUint64
	}
	return res.Uint64()
}
