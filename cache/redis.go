package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 5 * time.Second

// RedisConfig configures a Redis connection.
type RedisConfig struct {
	// URL is a redis:// or rediss:// URL. Takes precedence over Addrs.
	URL string

	// Addrs are host:port seeds. One address connects to a single node,
	// several to a cluster, and MasterName selects Sentinel.
	Addrs      []string
	MasterName string
	Username   string
	Password   string
	DB         int

	// DialTimeout, ReadTimeout and WriteTimeout default to 5 seconds.
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DialRedis connects to Redis and verifies the connection with PING.
func DialRedis(ctx context.Context, cfg RedisConfig) (goredis.UniversalClient, error) {
	opts := &goredis.UniversalOptions{
		Addrs:        cfg.Addrs,
		MasterName:   cfg.MasterName,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  orDefault(cfg.DialTimeout),
		ReadTimeout:  orDefault(cfg.ReadTimeout),
		WriteTimeout: orDefault(cfg.WriteTimeout),
	}

	if cfg.URL != "" {
		parsed, err := goredis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("cache: parse redis url: %w", err)
		}
		opts.Addrs = []string{parsed.Addr}
		opts.Username = parsed.Username
		opts.Password = parsed.Password
		opts.DB = parsed.DB
		opts.TLSConfig = parsed.TLSConfig
	}

	if len(opts.Addrs) == 0 {
		return nil, errors.New("cache: at least one redis address is required")
	}

	client := goredis.NewUniversalClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping redis: %w", err)
	}
	return client, nil
}

func orDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultRedisTimeout
	}
	return d
}

// RedisCache stores values in Redis under a key prefix.
// Each operation is a single Redis command, so writes are atomic per key.
type RedisCache struct {
	client goredis.UniversalClient
	prefix string
}

// NewRedisCache creates a cache backed by client. Keys are stored as
// prefix+key.
func NewRedisCache(client goredis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get retrieves a value. redis.Nil is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %q: %w", ErrBackend, key, err)
	}
	return val, true, nil
}

// Set stores value with ttl. TTL<=0 stores nothing.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %q: %w", ErrBackend, key, err)
	}
	return nil
}

// Delete removes a value. Idempotent - no error on miss.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: delete %q: %w", ErrBackend, key, err)
	}
	return nil
}

var _ Cache = (*RedisCache)(nil)
