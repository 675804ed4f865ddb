// Package redis owns the connection used by the session store. Redis is
// optional here: without it, sessions fall back to the in-memory store and
// die with the process.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"memoria/internal/platform/config"
)

// Client wraps go-redis so the session store and the health probe share one
// connection pool.
type Client struct {
	*redis.Client
}

// New connects using the configured URL, or returns nil when no URL is set.
// Connectivity is verified before the client is handed out so a bad URL
// fails startup instead of the first login.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health reports whether the connection still answers. Used by the health
// endpoint alongside the database ping.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.Client.Close()
}
