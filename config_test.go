package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		maxPlayers:   8,
		port:         8080,
		queryTimeout: 30 * time.Second,
		roundGrace:   3 * time.Second,
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().validate())

	cfg := validConfig()
	cfg.port = 0
	assert.Error(t, cfg.validate())

	cfg = validConfig()
	cfg.port = 70000
	assert.Error(t, cfg.validate())

	cfg = validConfig()
	cfg.maxPlayers = 0
	assert.Error(t, cfg.validate())

	cfg = validConfig()
	cfg.queryTimeout = 0
	assert.Error(t, cfg.validate())

	cfg = validConfig()
	cfg.tlsCert = "cert.pem"
	assert.Error(t, cfg.validate(), "cert without key must be rejected")

	cfg.tlsKey = "key.pem"
	assert.NoError(t, cfg.validate())
}

func TestConfigScheme(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "http", cfg.scheme())

	cfg.tlsCert = "cert.pem"
	cfg.tlsKey = "key.pem"
	assert.Equal(t, "https", cfg.scheme())
}

func TestNewCmdFlagDefaults(t *testing.T) {
	cfg := &Config{}
	cmd := newCmd(cfg)
	require.NoError(t, cmd.ParseFlags([]string{}))

	assert.Equal(t, "0.0.0.0", cfg.bind)
	assert.Equal(t, 8080, cfg.port)
	assert.Equal(t, 8, cfg.maxPlayers)
	assert.Equal(t, 30*time.Second, cfg.queryTimeout)
	assert.Equal(t, 3*time.Second, cfg.roundGrace)
	assert.Equal(t, "https://api.duckduckgo.com/", cfg.searchURL)
	assert.NoError(t, cfg.validate())
}
