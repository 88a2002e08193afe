package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv 清除变量，测试结束后由 t.Setenv 的清理逻辑恢复
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaultsWithoutEnvFile(t *testing.T) {
	unsetEnv(t, "VANGUARD_ADDR", "GEMINI_API_KEY", "API_KEY", "VANGUARD_ADVICE_TIMEOUT")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "highscore.db", cfg.HighScoreDB)
	assert.Equal(t, 8*time.Second, cfg.AdviceTimeout)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoadReadsEnvFile(t *testing.T) {
	unsetEnv(t, "VANGUARD_ADDR", "GEMINI_API_KEY", "API_KEY", "VANGUARD_ADVICE_TIMEOUT")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("VANGUARD_ADDR=:9090\nAPI_KEY=secret\nVANGUARD_ADVICE_TIMEOUT=2s\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
	assert.Equal(t, 2*time.Second, cfg.AdviceTimeout)
}

func TestGetEnvVariable(t *testing.T) {
	_, err := GetEnvVariable("")
	assert.Error(t, err)
	t.Setenv("VANGUARD_TEST_VAR", "x")
	v, err := GetEnvVariable("VANGUARD_TEST_VAR")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestLoadLogSettings(t *testing.T) {
	unsetEnv(t, "VANGUARD_LOG_LEVEL")
	t.Setenv("VANGUARD_LOG_FORMAT", "json")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
}
