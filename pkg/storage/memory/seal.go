package memory

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// MinSecretLength is the shortest secret accepted by NewSealer.
const MinSecretLength = 16

const sealInfo = "proxystore memory slot v1"

var (
	// ErrSecretTooShort is returned by NewSealer for short secrets.
	ErrSecretTooShort = errors.New("memory: secret must be at least 16 bytes")

	// ErrSealedTooShort is returned when sealed content cannot hold a nonce.
	ErrSealedTooShort = errors.New("memory: sealed content too short")
)

// Sealer encrypts slot content with ChaCha20-Poly1305.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 256-bit key from secret with HKDF-SHA256.
func NewSealer(secret []byte) (*Sealer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(sealInfo)), key); err != nil {
		return nil, fmt.Errorf("memory: derive key: %w", err)
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext. The nonce is prepended to the result.
func (s *Sealer) Seal(plaintext, additionalData []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("memory: nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, additionalData), nil
}

// Open decrypts content produced by Seal.
func (s *Sealer) Open(sealed, additionalData []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(sealed) < n {
		return nil, ErrSealedTooShort
	}
	plaintext, err := s.aead.Open(nil, sealed[:n], sealed[n:], additionalData)
	if err != nil {
		return nil, fmt.Errorf("memory: open slot: %w", err)
	}
	return plaintext, nil
}
