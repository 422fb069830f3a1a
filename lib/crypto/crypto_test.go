package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestED25519KeyPairDerivesAddress(t *testing.T) {
	private, public, err := NewED25519KeyPair()
	require.NoError(t, err)
	require.Len(t, public.Bytes(), Ed25519PubKeySize)
	// the address is the truncated hash of the public key
	address := public.Address()
	require.Len(t, address.Bytes(), AddressSize)
	require.Equal(t, ShortHash(public.Bytes()), address.Bytes())
	// derivation is deterministic for the same key bytes
	require.True(t, address.Equals(NewAddress(public.Bytes())))
	// the keypair signs and verifies
	msg := []byte("message")
	sig := ed25519.Sign(private, msg)
	require.True(t, public.VerifyBytes(msg, sig))
	require.False(t, public.VerifyBytes([]byte("other"), sig))
}

func TestPublicKeyStringRoundTrip(t *testing.T) {
	_, public, err := NewED25519KeyPair()
	require.NoError(t, err)
	restored, err := NewED25519PublicKeyFromString(hex.EncodeToString(public.Bytes()))
	require.NoError(t, err)
	require.Equal(t, public.Bytes(), restored.Bytes())
	require.True(t, public.Address().Equals(restored.Address()))
}

func TestAddressStringRoundTrip(t *testing.T) {
	_, public, err := NewED25519KeyPair()
	require.NoError(t, err)
	address := public.Address()
	restored, err := NewAddressFromString(address.String())
	require.NoError(t, err)
	require.True(t, address.Equals(restored))
}

func TestHash(t *testing.T) {
	msg := []byte("message")
	require.Len(t, Hash(msg), HashSize)
	// hashing is deterministic and hex encodes at double the byte length
	require.Equal(t, Hash(msg), Hash(msg))
	require.Len(t, HashString(msg), HashSize*2)
	require.NotEqual(t, HashString(msg), HashString([]byte("other")))
}
