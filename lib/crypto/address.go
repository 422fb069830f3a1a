package crypto

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
)

// AddressI abstracts the short account identifier derived from a public key
type AddressI interface {
	Bytes() []byte
	String() string
	Equals(AddressI) bool
}

// Address is a 20-byte account identifier
type Address []byte

var _ AddressI = &Address{}

const (
	AddressSize = 20
)

func (a *Address) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }
func (a *Address) Bytes() []byte                { return (*a)[:] }
func (a *Address) String() string               { return hex.EncodeToString(a.Bytes()) }
func (a *Address) Equals(e AddressI) bool       { return bytes.Equal(a.Bytes(), e.Bytes()) }

func (a *Address) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	bz, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*a = bz
	return nil
}

// NewAddress() derives an Address from a public key by hashing and truncating
func NewAddress(publicKey []byte) AddressI {
	return NewAddressFromBytes(ShortHash(publicKey))
}

// NewAddressFromBytes() wraps raw bytes as an Address
func NewAddressFromBytes(bz []byte) AddressI {
	if bz == nil {
		return nil
	}
	a := Address(bz)
	return &a
}

// NewAddressFromString() parses a hex string into an Address
func NewAddressFromString(hexString string) (AddressI, error) {
	bz, err := hex.DecodeString(hexString)
	if err != nil {
		return nil, err
	}
	return NewAddressFromBytes(bz), nil
}
