package security

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

const challengeBytes = 32

// NewChallenge generates a random hex-encoded login challenge.
func NewChallenge() (string, error) {
	buf := make([]byte, challengeBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("failed to generate challenge: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// VerifySignature checks that signature is a valid ed25519 signature over
// the challenge string by the key behind the hex-encoded pubkey.
func VerifySignature(pubkeyHex, challenge, signatureHex string) error {
	pubkey, err := hex.DecodeString(pubkeyHex)
	if err != nil {
		return fmt.Errorf("invalid pubkey encoding: %w", err)
	}
	if len(pubkey) != ed25519.PublicKeySize {
		return fmt.Errorf("invalid pubkey length: %d", len(pubkey))
	}

	signature, err := hex.DecodeString(signatureHex)
	if err != nil {
		return fmt.Errorf("invalid signature encoding: %w", err)
	}
	if len(signature) != ed25519.SignatureSize {
		return fmt.Errorf("invalid signature length: %d", len(signature))
	}

	if !ed25519.Verify(ed25519.PublicKey(pubkey), []byte(challenge), signature) {
		return errors.New("signature verification failed")
	}
	return nil
}
