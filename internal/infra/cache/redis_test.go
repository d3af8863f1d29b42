package cache

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dappwork/marketplace/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := New(config.RedisConfig{Addr: mr.Addr(), PoolSize: 2})
	require.NoError(t, err)
	assert.NoError(t, RegisterOpenTelemetryPlugin(rdb))
	assert.NoError(t, Close(rdb))
}

func TestNew_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(config.RedisConfig{Addr: addr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), addr)
}
