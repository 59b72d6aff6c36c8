package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	opts, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", opts.Addr)
	assert.Equal(t, "http://localhost:8080", opts.BaseURL)
	assert.Empty(t, opts.DatabaseDSN)
	assert.Empty(t, opts.RedisAddr)
	assert.Equal(t, 8, opts.KeyLength)
	assert.Equal(t, 60*time.Second, opts.CacheTTL)
	assert.False(t, opts.EnableHTTPS)
}

func TestEnvOverridesFlags(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:9090")
	t.Setenv("BASE_URL", "https://sho.rt")
	t.Setenv("SHORT_KEY_LENGTH", "10")
	t.Setenv("CACHE_TTL", "30s")

	opts, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", opts.Addr)
	assert.Equal(t, "https://sho.rt", opts.BaseURL)
	assert.Equal(t, 10, opts.KeyLength)
	assert.Equal(t, 30*time.Second, opts.CacheTTL)
}
