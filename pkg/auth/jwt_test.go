package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	iss, err := NewIssuer("s3cret", time.Hour)
	require.NoError(t, err)

	tok, err := iss.Issue("Ana", "ana@example.com")
	require.NoError(t, err)

	claims, err := iss.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestValidateRejectsOtherSecret(t *testing.T) {
	a, _ := NewIssuer("one", time.Hour)
	b, _ := NewIssuer("two", time.Hour)

	tok, err := a.Issue("Ana", "ana@example.com")
	require.NoError(t, err)

	_, err = b.Validate(tok)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	iss, _ := NewIssuer("s3cret", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, err := iss.Issue("Ana", "ana@example.com")
	require.NoError(t, err)

	_, err = iss.Validate(tok)
	assert.Error(t, err)
}

func TestNewIssuerNeedsSecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, CheckPassword(hash, "secret"))
	assert.False(t, CheckPassword(hash, "Secret"))
}
