// Package crypt seals and opens byte payloads with AES-256-GCM.
//
// A Sealer is bound to one secret; the 32-byte key is the SHA-256 of that
// secret. Sealed output is base64url(nonce || ciphertext || tag), which is
// safe to store as text in any key-value backend.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrDecrypt is returned when a payload cannot be decoded or authenticated.
var ErrDecrypt = errors.New("crypt: decryption failed")

// ErrNoKey is returned by New when the secret is empty.
var ErrNoKey = errors.New("crypt: APP_KEY not configured")

// Sealer encrypts and decrypts payloads with a fixed key.
type Sealer struct {
	aead cipher.AEAD
}

// New derives a key from secret and prepares the GCM cipher.
func New(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, ErrNoKey
	}
	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("crypt: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypt: new GCM: %w", err)
	}
	return &Sealer{aead: gcm}, nil
}

// Seal encrypts data with a fresh random nonce.
func (s *Sealer) Seal(data []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("crypt: nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, data, nil)

	out := make([]byte, base64.URLEncoding.EncodedLen(len(sealed)))
	base64.URLEncoding.Encode(out, sealed)
	return out, nil
}

// Open reverses Seal.
func (s *Sealer) Open(encoded []byte) ([]byte, error) {
	data := make([]byte, base64.URLEncoding.DecodedLen(len(encoded)))
	n, err := base64.URLEncoding.Decode(data, encoded)
	if err != nil {
		return nil, ErrDecrypt
	}
	data = data[:n]

	nonceSize := s.aead.NonceSize()
	if len(data) < nonceSize {
		return nil, ErrDecrypt
	}
	plain, err := s.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plain, nil
}
