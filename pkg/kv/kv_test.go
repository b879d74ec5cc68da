package kv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lanchonete/pkg/kv"
)

// exerciseStore runs the behaviour every driver must share.
func exerciseStore(t *testing.T, s kv.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "orders")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "orders", []byte(`[]`)))
	got, err := s.Get(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Set(ctx, "orders", []byte(`[{"id":"1"}]`)))
	got, err = s.Get(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, s.Delete(ctx, "orders"))
	_, err = s.Get(ctx, "orders")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, "orders"))

	assert.ErrorIs(t, s.Set(ctx, "../escape", []byte("x")), kv.ErrInvalidKey)
	_, err = s.Get(ctx, "")
	assert.ErrorIs(t, err, kv.ErrInvalidKey)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, kv.NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	m := kv.NewMemory()
	ctx := context.Background()

	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "user", buf))
	buf[0] = 'z'

	got, err := m.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, 1, m.Len())
}

func TestDisk(t *testing.T) {
	d, err := kv.NewDisk(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, d)
}

func TestDiskLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	d, err := kv.NewDisk(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, d.Set(ctx, "orders", []byte("1")))
	require.NoError(t, d.Set(ctx, "orders", []byte("2")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "orders", entries[0].Name())

	raw, err := os.ReadFile(filepath.Join(dir, "orders"))
	require.NoError(t, err)
	assert.Equal(t, "2", string(raw))
}

func TestSecure(t *testing.T) {
	inner := kv.NewMemory()
	s, err := kv.NewSecure(inner, "app-key")
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestSecureHidesPlaintext(t *testing.T) {
	inner := kv.NewMemory()
	s, err := kv.NewSecure(inner, "app-key")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "user", []byte(`{"email":"ana@example.com"}`)))

	raw, err := inner.Get(ctx, "user")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "ana@example.com")

	plain, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"ana@example.com"}`, string(plain))
}

func TestSecureRejectsTamperedValue(t *testing.T) {
	inner := kv.NewMemory()
	s, err := kv.NewSecure(inner, "app-key")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, inner.Set(ctx, "orders", []byte("plain text")))

	_, err = s.Get(ctx, "orders")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, kv.ErrNotFound)
}

func TestSQLite(t *testing.T) {
	s, err := kv.NewSQL("sqlite", filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestSQLUnsupportedDriver(t *testing.T) {
	_, err := kv.NewSQL("oracle", "")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestInstrumentPassesThrough(t *testing.T) {
	s := kv.Instrument(kv.NewMemory(), "memory")
	exerciseStore(t, s)
	assert.NoError(t, kv.Close(s))
}
