package crypt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lanchonete/pkg/crypt"
)

func TestSealOpen(t *testing.T) {
	s, err := crypt.New("secret")
	require.NoError(t, err)

	sealed, err := s.Seal([]byte(`[{"id":"1"}]`))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), `"id"`)

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(plain))
}

func TestSealUsesFreshNonce(t *testing.T) {
	s, err := crypt.New("secret")
	require.NoError(t, err)

	a, _ := s.Seal([]byte("same"))
	b, _ := s.Seal([]byte("same"))
	assert.NotEqual(t, a, b)
}

func TestOpenWithWrongKey(t *testing.T) {
	a, _ := crypt.New("one")
	b, _ := crypt.New("two")

	sealed, err := a.Seal([]byte("payload"))
	require.NoError(t, err)

	_, err = b.Open(sealed)
	assert.ErrorIs(t, err, crypt.ErrDecrypt)
}

func TestOpenGarbage(t *testing.T) {
	s, _ := crypt.New("secret")

	_, err := s.Open([]byte("not base64 !!"))
	assert.ErrorIs(t, err, crypt.ErrDecrypt)

	_, err = s.Open([]byte("YWJj"))
	assert.ErrorIs(t, err, crypt.ErrDecrypt)
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := crypt.New("")
	assert.ErrorIs(t, err, crypt.ErrNoKey)
}
