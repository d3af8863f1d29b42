package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/dappwork/marketplace/internal/config"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

// New connects to redis and pings it. An unreachable server is an error.
func New(rc config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
		PoolSize: rc.PoolSize,
	}
	if rc.EnableTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s: %w", rc.Addr, err)
	}
	return rdb, nil
}

// RegisterOpenTelemetryPlugin traces inbox cache commands through the global tracer provider.
func RegisterOpenTelemetryPlugin(rdb *redis.Client) error {
	return redisotel.InstrumentTracing(rdb, redisotel.WithDBStatement(false))
}

func Close(rdb *redis.Client) error {
	return rdb.Close()
}
