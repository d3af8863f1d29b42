package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "marketplace-api", cfg.App.Name)
	assert.Equal(t, 8029, cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.False(t, cfg.Store.InMemory())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 30, cfg.Redis.InboxCacheTTLSec)
	assert.Equal(t, "marketplace.events", cfg.RabbitMQ.ExchangeName.MarketplaceEvents)
	assert.Equal(t, "message.created", cfg.RabbitMQ.RoutingKey.MessageCreated)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("MARKET_APP_PORT", "9100")
	t.Setenv("MARKET_STORE_DRIVER", "memory")
	t.Setenv("MARKET_REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.App.Port)
	assert.True(t, cfg.Store.InMemory())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "0.0.0.0:9100", cfg.App.Addr())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "market.yaml")
	body := []byte("app:\n  name: market-test\nlog:\n  level: debug\nrabbitmq:\n  routing_key:\n    project_created: p.created\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "market-test", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "p.created", cfg.RabbitMQ.RoutingKey.ProjectCreated)
	// untouched keys keep their defaults
	assert.Equal(t, "proposal.created", cfg.RabbitMQ.RoutingKey.ProposalCreated)
}
