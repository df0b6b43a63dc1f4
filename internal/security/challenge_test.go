package security

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChallenge(t *testing.T) {
	a, err := NewChallenge()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	_, err = hex.DecodeString(a)
	assert.NoError(t, err)

	b, err := NewChallenge()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifySignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	challenge, err := NewChallenge()
	require.NoError(t, err)

	pubkeyHex := hex.EncodeToString(pub)
	signatureHex := hex.EncodeToString(ed25519.Sign(priv, []byte(challenge)))

	t.Run("valid signature", func(t *testing.T) {
		assert.NoError(t, VerifySignature(pubkeyHex, challenge, signatureHex))
	})

	t.Run("wrong challenge", func(t *testing.T) {
		assert.Error(t, VerifySignature(pubkeyHex, "different-challenge", signatureHex))
	})

	t.Run("wrong key", func(t *testing.T) {
		otherPub, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)
		assert.Error(t, VerifySignature(hex.EncodeToString(otherPub), challenge, signatureHex))
	})

	t.Run("pubkey not hex", func(t *testing.T) {
		assert.Error(t, VerifySignature("zz", challenge, signatureHex))
	})

	t.Run("pubkey wrong length", func(t *testing.T) {
		assert.Error(t, VerifySignature("abcd", challenge, signatureHex))
	})

	t.Run("signature wrong length", func(t *testing.T) {
		assert.Error(t, VerifySignature(pubkeyHex, challenge, "abcd"))
	})
}

func TestDeriveKey(t *testing.T) {
	a, err := DeriveKey("secret", "jwt-signing")
	require.NoError(t, err)
	assert.Len(t, a, 32)

	// Same secret under a different purpose must yield a different key.
	b, err := DeriveKey("secret", "other")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	again, err := DeriveKey("secret", "jwt-signing")
	require.NoError(t, err)
	assert.Equal(t, a, again)
}
