package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santhosh1815/hmi/internal/config"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()

	oldArgs := os.Args
	os.Args = append([]string{"hmi"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "hmi.toml")
	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err)

	return configPath
}

func TestLoad(t *testing.T) {
	resetArgs(t)

	configPath := writeConfigFile(t, `
interval = 500
history_size = 120
initial_load = 75
listen = ":9090"
log_level = "debug"
telemetry = true
database = "/path/to/telemetry.db"
diagnostics_url = "https://analysis.example.com/v1/diagnose"
diagnostics_api_key = "secret"
diagnostics_timeout = 30
`)
	t.Setenv("HMI_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Interval, "Expected Interval 500")
	assert.Equal(t, 120, cfg.HistorySize, "Expected HistorySize 120")
	assert.Equal(t, 75, cfg.InitialLoad, "Expected InitialLoad 75")
	assert.Equal(t, ":9090", cfg.Listen, "Expected Listen :9090")
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel debug")
	assert.True(t, cfg.Telemetry, "Expected Telemetry true")
	assert.Equal(t, "/path/to/telemetry.db", cfg.Database)
	assert.Equal(t, "https://analysis.example.com/v1/diagnose", cfg.DiagnosticsURL)
	assert.Equal(t, "secret", cfg.DiagnosticsAPIKey)
	assert.Equal(t, 30, cfg.DiagnosticsTimeout)
}

func TestLoadDefaults(t *testing.T) {
	resetArgs(t)

	// Ensure no config file is used
	t.Setenv("HMI_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := config.Load()
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, config.DefaultInterval, cfg.Interval, "Expected default Interval 1000")
	assert.Equal(t, config.DefaultHistorySize, cfg.HistorySize, "Expected default HistorySize 60")
	assert.Equal(t, config.DefaultInitialLoad, cfg.InitialLoad, "Expected default InitialLoad 50")
	assert.Equal(t, config.DefaultListenAddr, cfg.Listen, "Expected default Listen :8080")
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel, "Expected default LogLevel info")
	assert.False(t, cfg.Telemetry, "Expected default Telemetry false")
	assert.Equal(t, config.DefaultDiagTimeout, cfg.DiagnosticsTimeout)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	resetArgs(t)

	configPath := writeConfigFile(t, `
This is not a valid TOML file
`)
	t.Setenv("HMI_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read configuration")
}

func TestInvalidLogLevel(t *testing.T) {
	resetArgs(t)

	configPath := writeConfigFile(t, `
log_level = "invalid"
`)
	t.Setenv("HMI_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid log level")
}

func TestInvalidInterval(t *testing.T) {
	resetArgs(t)

	configPath := writeConfigFile(t, `
interval = 0
`)
	t.Setenv("HMI_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid interval value")
}

func TestLogLevelFlag(t *testing.T) {
	resetArgs(t, "--log-level", "debug")
	t.Setenv("HMI_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel to be set by flag")
}

func TestFlagOverridesFile(t *testing.T) {
	resetArgs(t, "--interval", "250")

	configPath := writeConfigFile(t, `
interval = 500
`)
	t.Setenv("HMI_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Interval, "Expected flag to override file value")
}
