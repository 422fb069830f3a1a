package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

const (
	HashSize = blake2b.Size256
)

// Hash() executes the global hashing algorithm on input bytes
func Hash(msg []byte) []byte {
	h := blake2b.Sum256(msg)
	return h[:]
}

// ShortHash() executes the global hashing algorithm on input bytes
// and truncates the output to the address size
func ShortHash(msg []byte) []byte {
	h := blake2b.Sum256(msg)
	return h[:AddressSize]
}

// HashString() returns the hex version of a hash
func HashString(msg []byte) string { return hex.EncodeToString(Hash(msg)) }
