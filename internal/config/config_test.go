package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("ASA_CONFIG_PATH", "")
	t.Cleanup(reset)
	return tmp
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAndGet(t *testing.T) {
	isolate(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, 10, GetInt("page_size", 0))
	require.Equal(t, 500, GetInt("search_debounce_ms", 0))
	require.Equal(t, "keep", Get("rollback_policy", ""))
	require.False(t, GetBool("debug", true))
}

func TestDirsFollowXDG(t *testing.T) {
	tmp := isolate(t)
	Load()

	require.Equal(t, filepath.Join(tmp, "config", "asa"), Get("config_dir", ""))
	require.Equal(t, filepath.Join(tmp, "state", "asa"), Get("state_dir", ""))
}

func TestPrecedenceEnvOverFile(t *testing.T) {
	tmp := isolate(t)
	path := writeConfig(t, filepath.Join(tmp, "config", "asa"), `
page_size = 25
rollback_policy = "revert"
api_base_url = "https://shop.example.com/api/"
`)
	t.Setenv("ASA_PAGE_SIZE", "40")
	Load()

	require.Equal(t, path, Path())
	require.Equal(t, 40, GetInt("page_size", 0), "environment should override config file")
	require.Equal(t, "revert", Get("rollback_policy", ""), "config file value should be used when not overridden")
	require.Equal(t, "https://shop.example.com/api", Get("api_base_url", ""))
}

func TestExplicitConfigPath(t *testing.T) {
	tmp := isolate(t)
	path := writeConfig(t, filepath.Join(tmp, "elsewhere"), `units_fanout_limit = 8`)
	t.Setenv("ASA_CONFIG_PATH", path)
	Load()

	require.Equal(t, 8, GetInt("units_fanout_limit", 0))
	require.Equal(t, path, Path())
	_, leaked := All()["config_path"]
	require.False(t, leaked)
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("ASA_PAGE_SIZE", "-3")
	t.Setenv("ASA_ROLLBACK_POLICY", "sometimes")
	t.Setenv("ASA_API_BASE_URL", "ftp://nope")
	t.Setenv("ASA_DEBUG", "maybe")
	t.Setenv("ASA_LOGGING_LEVEL", "WARN")
	Load()

	require.Equal(t, "10", Get("page_size", ""))
	require.Equal(t, "keep", Get("rollback_policy", ""))
	require.Equal(t, "http://localhost:5000/api", Get("api_base_url", ""))
	require.Equal(t, "false", Get("debug", ""))
	require.Equal(t, "warn", Get("logging_level", ""))
}

func TestBoolNormalization(t *testing.T) {
	isolate(t)
	t.Setenv("ASA_QUIET", "yes")
	t.Setenv("ASA_LOGGING_ENABLED", "1")
	Load()

	require.True(t, GetBool("quiet", false))
	require.True(t, GetBool("logging_enabled", false))
	require.Equal(t, "true", Get("quiet", ""))
}

func TestMalformedFileIsIgnored(t *testing.T) {
	tmp := isolate(t)
	writeConfig(t, filepath.Join(tmp, "config", "asa"), `page_size = [`)
	Load()

	require.Equal(t, 10, GetInt("page_size", 0))
}

func TestGetDuration(t *testing.T) {
	isolate(t)
	Load()

	require.Equal(t, 500*time.Millisecond, GetDuration("search_debounce_ms", time.Millisecond, 0))
	require.Equal(t, 15*time.Second, GetDuration("request_timeout_seconds", time.Second, 0))
	require.Equal(t, time.Minute, GetDuration("missing", time.Second, time.Minute))
}

func TestSetOverrides(t *testing.T) {
	isolate(t)
	Load()
	Set("debug", "true")
	require.True(t, GetBool("debug", false))
}

func TestWriteSample(t *testing.T) {
	tmp := isolate(t)
	Load()

	path := filepath.Join(tmp, "sample", "config.toml")
	created, err := WriteSample(path)
	require.NoError(t, err)
	require.True(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "page_size = 10")
	require.Contains(t, string(data), "# asa configuration")

	created, err = WriteSample(path)
	require.NoError(t, err)
	require.False(t, created)

	t.Setenv("ASA_CONFIG_PATH", path)
	Load()
	require.Equal(t, 10, GetInt("page_size", 0))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"page_size", "5", "5"},
		{"page_size", "0", "def"},
		{"page_size", "ten", "def"},
		{"rollback_policy", "REVERT", "revert"},
		{"rollback_policy", "sometimes", "def"},
		{"quiet", "on", "true"},
		{"quiet", "Off", "false"},
		{"quiet", "maybe", "def"},
		{"api_base_url", "http://h/api/", "http://h/api"},
		{"api_base_url", "/api", "def"},
		{"timezone", "UTC", "UTC"},
		{"timezone", "Mars/Olympus", "def"},
		{"page_size", "", "def"},
		{"tui_settings_path", "/tmp/x.toml", "/tmp/x.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			require.Equal(t, tt.want, check(tt.key, tt.value, "def"))
		})
	}
}
