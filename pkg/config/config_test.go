package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	c := Default()
	assert.Equal(t, 3000, c.Server.Port)
	assert.Equal(t, 2, c.Providers.Birdeye.OverviewAttempts)
	assert.Equal(t, 750*time.Millisecond, c.Providers.Birdeye.RetryInterval)
	assert.Equal(t, 50, c.Providers.Helius.TxLimit)
	assert.Equal(t, 60*time.Second, c.Cache.SentimentTTL)
	assert.Zero(t, c.Cache.AnalyzeTTL)
	assert.False(t, c.Events.Enabled)
	require.NoError(t, c.Validate())
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	c.ApplyEnv(env(map[string]string{
		"PORT":            "8080",
		"BIRDEYE_API_KEY": "be",
		"HF_API_KEY":      "hf",
		"REDIS_ADDR":      "redis:6379",
		"KAFKA_BROKERS":   "k1:9092,k2:9092",
	}))

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "be", c.Providers.Birdeye.APIKey)
	assert.Equal(t, "hf", c.Providers.HuggingFace.APIKey)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.True(t, c.Events.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Events.Brokers)
	require.NoError(t, c.Validate())
}

func TestPrimaryHuggingFaceKeyWins(t *testing.T) {
	c := Default()
	c.ApplyEnv(env(map[string]string{"HUGGINGFACE_API_KEY": "primary", "HF_API_KEY": "alias"}))
	assert.Equal(t, "primary", c.Providers.HuggingFace.APIKey)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Server.Port = 0
	assert.Error(t, c.Validate())

	c = Default()
	c.Log.Level = "loud"
	assert.Error(t, c.Validate())

	c = Default()
	c.Events.Enabled = true
	assert.Error(t, c.Validate())

	c = Default()
	c.Log.Digest.Enabled = true
	assert.Error(t, c.Validate())
}

func TestCredentials(t *testing.T) {
	c := Default()
	c.Providers.Helius.APIKey = "h"
	assert.Equal(t, []Credential{
		{Env: "BIRDEYE_API_KEY"},
		{Env: "HUGGINGFACE_API_KEY"},
		{Env: "HELIUS_API_KEY", Configured: true},
	}, c.Credentials())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 4000\ncache:\n  analyze_ttl: 30s\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4000, c.Server.Port)
	assert.Equal(t, 30*time.Second, c.Cache.AnalyzeTTL)
	assert.Equal(t, "solana", c.Providers.Birdeye.Chain)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
