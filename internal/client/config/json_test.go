package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Run("overlays every field", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"server_endpoint_addr": "www.example:9000",
			"home":                 "/tmp/lk",
			"timeout":              "3s",
		})

		cfg := &Config{}
		require.NoError(t, parseJson(cfg, path))

		want := &Config{ServerEndpointAddr: "www.example:9000", Home: "/tmp/lk", Timeout: 3 * time.Second}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("absent keys keep current values", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"timeout": "1m"})

		cfg := &Config{ServerEndpointAddr: "defaults:1234", Home: "/h"}
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
		assert.Equal(t, "/h", cfg.Home)
		assert.Equal(t, time.Minute, cfg.Timeout)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		err := parseJson(&Config{}, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}
