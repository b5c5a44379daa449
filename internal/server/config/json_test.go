package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"endpoint_addr_http":        "0.0.0.0:8080",
		"database_dsn":              "postgres://json",
		"session_secret":            "json-secret",
		"session_validity_duration": "2h",
		"secure_cookie":             true,
		"bcrypt_cost":               11,
		"trusted_proxies":           []string{"127.0.0.1"},
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		parseJson(cfg, []string{"-config", full})

		assert.Equal(t, "0.0.0.0:8080", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://json", cfg.DatabaseDSN)
		assert.Equal(t, "json-secret", cfg.SessionSecret)
		assert.Equal(t, 2*time.Hour, cfg.SessionValidityDuration)
		assert.True(t, cfg.SecureCookie)
		assert.Equal(t, 11, cfg.BcryptCost)
		assert.Equal(t, []string{"127.0.0.1"}, cfg.TrustedProxies)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"session_validity_duration": 60000000000,
		})

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-c", partial})

		assert.Equal(t, time.Minute, cfg.SessionValidityDuration)
		assert.Equal(t, ":8000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "keyboard cat", cfg.SessionSecret)
		assert.Equal(t, 10, cfg.BcryptCost)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := &Config{EndpointAddrHTTP: "defaults:1234", BcryptCost: 4}
		parseJson(cfg, []string{"-a", ":1"})

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, 4, cfg.BcryptCost)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Panics(t, func() { parseJson(&Config{}, []string{"-config", bad}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})
}
