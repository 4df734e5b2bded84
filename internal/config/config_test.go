package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/anomaly-terminal/internal/database"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ANOMALY_CONFIG", "PREDICT_ENDPOINT", "PREDICT_TIMEOUT", "LOG_LEVEL", "LOG_FILE",
		"JOURNAL_ENABLED", "JOURNAL_PATH", "DEMO_ADDRESS", "DEMO_FAIL_DAYS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8000/predict", cfg.Service.Endpoint)
	require.Zero(t, cfg.Service.Timeout)
	require.Equal(t, "info", cfg.Log.Level)
	require.True(t, cfg.Journal.Enabled)
	require.Equal(t, database.DBPath(), cfg.Journal.Path)
	require.Equal(t, "127.0.0.1:8000", cfg.Demo.Address)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service:
  endpoint: http://predict.internal:9000/predict
  timeout: 45s
log:
  level: debug
journal:
  enabled: false
demo:
  failDays: [2, 5]
`), 0o644))

	t.Setenv("ANOMALY_CONFIG", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://predict.internal:9000/predict", cfg.Service.Endpoint)
	require.Equal(t, 45*time.Second, cfg.Service.Timeout)
	require.Equal(t, "warn", cfg.Log.Level)
	require.False(t, cfg.Journal.Enabled)
	require.Equal(t, []int{2, 5}, cfg.Demo.FailDays)
}

func TestLoad_DefaultPathAndDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	os.Unsetenv("PREDICT_TIMEOUT")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), []byte("service:\n  endpoint: https://sst.example.com/predict\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PREDICT_TIMEOUT=12s\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PREDICT_TIMEOUT") })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://sst.example.com/predict", cfg.Service.Endpoint)
	require.Equal(t, 12*time.Second, cfg.Service.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	t.Setenv("PREDICT_ENDPOINT", "http://localhost:8123/predict")
	t.Setenv("JOURNAL_ENABLED", "0")
	t.Setenv("DEMO_FAIL_DAYS", "1, 3,")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8123/predict", cfg.Service.Endpoint)
	require.False(t, cfg.Journal.Enabled)
	require.Equal(t, []int{1, 3}, cfg.Demo.FailDays)
}

func TestLoad_BadEnv(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	t.Setenv("PREDICT_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	t.Setenv("ANOMALY_CONFIG", "does-not-exist.yaml")
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"relative endpoint", func(c *Config) { c.Service.Endpoint = "/predict" }, true},
		{"ftp endpoint", func(c *Config) { c.Service.Endpoint = "ftp://host/predict" }, true},
		{"negative timeout", func(c *Config) { c.Service.Timeout = -time.Second }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"journal without path", func(c *Config) { c.Journal.Path = " " }, true},
		{"disabled journal without path", func(c *Config) { c.Journal.Enabled = false; c.Journal.Path = "" }, false},
		{"empty demo address", func(c *Config) { c.Demo.Address = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
