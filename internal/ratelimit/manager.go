// Package ratelimit provides Redis-backed per-client request limiting. With
// Redis configured, the limit holds across replicas; without it the server
// falls back to the in-process limiter in the middleware package.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Manager counts requests per client in fixed one-minute windows
type Manager struct {
	redis *redis.Client
	rpm   int
}

// NewManager connects to Redis and verifies the connection
func NewManager(redisURL string, rpm int) (*Manager, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Manager{redis: client, rpm: rpm}, nil
}

func (m *Manager) Close() error { return m.redis.Close() }

// Allow counts one request for the client and reports whether it fits the
// current minute window. resetSec says how long until the window turns over.
// On Redis failure the request is allowed: a broken limiter must not take
// the read API down.
func (m *Manager) Allow(ctx context.Context, clientID string) (allowed bool, resetSec int, err error) {
	now := time.Now().UTC()
	window := now.Unix() / 60
	key := fmt.Sprintf("rl:%s:%d", clientID, window)

	pipe := m.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, 0, err
	}

	if int(incr.Val()) > m.rpm {
		secPassed := int(now.Unix() % 60)
		return false, 60 - secPassed, nil
	}
	return true, 0, nil
}
