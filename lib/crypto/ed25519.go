package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
)

const (
	Ed25519PubKeySize = ed25519.PublicKeySize
)

// PublicKeyI abstracts a signature-verification key that can derive its account Address
type PublicKeyI interface {
	Bytes() []byte
	Address() AddressI
	VerifyBytes(msg, sig []byte) bool
}

// ED25519PublicKey is the concrete ed25519 implementation of PublicKeyI
type ED25519PublicKey struct {
	key ed25519.PublicKey
}

var _ PublicKeyI = &ED25519PublicKey{}

func (p *ED25519PublicKey) Bytes() []byte      { return p.key }
func (p *ED25519PublicKey) Address() AddressI  { return NewAddress(p.key) }
func (p *ED25519PublicKey) VerifyBytes(msg, sig []byte) bool {
	return ed25519.Verify(p.key, msg, sig)
}

// NewPublicKeyED25519() wraps raw public key bytes
func NewPublicKeyED25519(bz []byte) PublicKeyI {
	return &ED25519PublicKey{key: bz}
}

// NewED25519PublicKeyFromString() parses a hex string into a PublicKeyI
func NewED25519PublicKeyFromString(hexString string) (PublicKeyI, error) {
	bz, err := hex.DecodeString(hexString)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyED25519(bz), nil
}

// NewED25519KeyPair() generates a fresh keypair
func NewED25519KeyPair() (priv ed25519.PrivateKey, pub PublicKeyI, err error) {
	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return privKey, NewPublicKeyED25519(pubKey), nil
}
