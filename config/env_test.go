package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFiles(t *testing.T, appJSON, dotEnv string) {
	t.Helper()
	require.NoError(t, Load())

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")
	if appJSON != "" {
		require.NoError(t, os.WriteFile(jsonPath, []byte(appJSON), 0o600))
	}
	if dotEnv != "" {
		require.NoError(t, os.WriteFile(envPath, []byte(dotEnv), 0o600))
	}
	require.NoError(t, loadFrom(jsonPath, envPath))
	t.Cleanup(func() { _ = loadFrom(filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env")) })
}

func TestDefaults(t *testing.T) {
	withFiles(t, "", "")
	assert.Equal(t, "8080", AppPort())
	assert.Equal(t, "disk", StoreDriver())
	assert.True(t, StoreEncrypt())
	assert.Equal(t, 24*time.Hour, JWTTTL())
	assert.Equal(t, int64(1<<20), MaxBodyBytes())
	assert.False(t, IsProduction())
}

func TestDotEnvOverridesJSON(t *testing.T) {
	withFiles(t,
		`{"app_port": 9000, "store_driver": "redis", "store_encrypt": false, "redis_prefix": "json:"}`,
		"# comment\nexport APP_PORT=9100\nREDIS_PREFIX=\"env:\"\nJWT_TTL=2h\n",
	)
	assert.Equal(t, "9100", AppPort())
	assert.Equal(t, "redis", StoreDriver())
	assert.False(t, StoreEncrypt())
	assert.Equal(t, "env:", RedisPrefix())
	assert.Equal(t, 2*time.Hour, JWTTTL())
}

func TestSetOverrides(t *testing.T) {
	withFiles(t, "", "")
	Set("store_driver", "memory")
	t.Cleanup(func() {
		mu.Lock()
		delete(overrides, "STORE_DRIVER")
		mu.Unlock()
	})

	assert.Equal(t, "memory", StoreDriver())
}

func TestAppKeyFallsBackToJWTSecret(t *testing.T) {
	withFiles(t, "", "JWT_SECRET=abc\n")
	assert.Equal(t, "abc", AppKey())
}

func TestInvalidJSONIsAnError(t *testing.T) {
	require.NoError(t, Load())
	dir := t.TempDir()
	bad := filepath.Join(dir, "app.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	assert.Error(t, loadFrom(bad, filepath.Join(dir, ".env")))
}
