package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DhavalSuthar-24/crease/internal/commentary"
	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/store"
)

// ConnectRedis opens and pings the Redis client named by REDIS_URL.
func ConnectRedis(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// OpenStore builds the working-copy store picked by STORE_DRIVER. The
// returned close function releases its connection.
func OpenStore(ctx context.Context, cfg Config) (match.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store.Driver {
	case StoreMemory:
		return store.NewMemoryStore(), noop, nil
	case StoreSQLite:
		s, err := store.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case StoreRedis:
		client, err := ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisStore(client, cfg.Store.LiveTTL), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// EngineOptions turns the scoring settings into engine options. A zero
// commentary seed seeds from the clock.
func EngineOptions(cfg Config) match.Options {
	opts := match.Options{
		AllOutWickets:         cfg.Scoring.AllOutWickets,
		RotateStrikeAtOverEnd: cfg.Scoring.RotateStrikeAtOverEnd,
	}
	if cfg.Scoring.CommentarySeed != 0 {
		opts.Commentary = commentary.NewSeeded(cfg.Scoring.CommentarySeed)
	} else {
		opts.Commentary = commentary.NewSeeded(uint64(time.Now().UnixNano()))
	}
	return opts
}
