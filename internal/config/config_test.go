package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_ParsesFields(t *testing.T) {
	path := writeConfigFile(t, `{
		"port": 9090,
		"database_url": "postgres://localhost/pipeline",
		"actor": "system",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/pipeline", cfg.DatabaseURL)
	assert.Equal(t, "system", cfg.Actor)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.DemoChecks)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_PortRange(t *testing.T) {
	valid := &Config{Port: 8080}
	assert.NoError(t, valid.Validate())

	invalid := &Config{Port: 70000}
	assert.Error(t, invalid.Validate())
}

func TestValidate_NegativeSeriesDays(t *testing.T) {
	cfg := &Config{MaxSeriesDays: -1}
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults_FillsEmptyFields(t *testing.T) {
	cfg := Config{Port: 9090}
	defaults := Config{Port: 8080, DatabaseURL: "postgres://localhost/pipeline", Actor: "system"}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, 9090, merged.Port)
	assert.Equal(t, "postgres://localhost/pipeline", merged.DatabaseURL)
	assert.Equal(t, "system", merged.Actor)
}

func TestMergeWithDefaults_ChainsLayeredSources(t *testing.T) {
	// Flags win over the config file, which wins over defaults
	flags := Config{Actor: "cli-user"}
	file := Config{Port: 9090, MaxSeriesDays: 30}
	defaults := Config{Port: 8080, DatabaseURL: "postgres://localhost/pipeline"}

	merged := flags.MergeWithDefaults(file)
	merged = merged.MergeWithDefaults(defaults)

	assert.Equal(t, "cli-user", merged.Actor)
	assert.Equal(t, 9090, merged.Port)
	assert.Equal(t, 30, merged.MaxSeriesDays)
	assert.Equal(t, "postgres://localhost/pipeline", merged.DatabaseURL)
}
