package kv

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/lanchonete/pkg/crypt"
)

// Secure seals every value with AES-GCM before handing it to the inner
// Store, so the backing driver only ever sees ciphertext.
type Secure struct {
	inner  Store
	sealer *crypt.Sealer
}

// NewSecure wraps inner with a sealer derived from secret.
func NewSecure(inner Store, secret string) (*Secure, error) {
	sealer, err := crypt.New(secret)
	if err != nil {
		return nil, err
	}
	return &Secure{inner: inner, sealer: sealer}, nil
}

func (s *Secure) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	plain, err := s.sealer.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("kv/secure: open %s: %w", key, err)
	}
	return plain, nil
}

func (s *Secure) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := s.sealer.Seal(value)
	if err != nil {
		return fmt.Errorf("kv/secure: seal %s: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *Secure) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *Secure) Close() error {
	return Close(s.inner)
}
