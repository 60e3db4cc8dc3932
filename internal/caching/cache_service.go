package caching

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "invoicedash:page:"

// CacheService caches rendered view data per route path. Each path holds any number
// of variants (for example one per query string) that are dropped together.
type CacheService interface {
	GetPage(ctx context.Context, path, variant string, dst any) (bool, error)
	SetPage(ctx context.Context, path, variant string, value any, ttl time.Duration) error
	InvalidatePath(ctx context.Context, path string) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCacheService accepts either host:port or a redis:// / rediss:// URL.
func NewRedisCacheService(addr, password string, db int, logger *zap.Logger) (CacheService, error) {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		if password != "" {
			parsed.Password = password
		}
		opts = parsed
	}

	client := redis.NewClient(opts)

	// Test initial connectivity
	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		logger.Warn("redis ping failed on initialization", zap.String("addr", opts.Addr), zap.Error(pingErr))
	} else {
		logger.Debug("redis connection established", zap.String("addr", opts.Addr))
	}

	return NewCacheServiceFromClient(client, logger), nil
}

// NewCacheServiceFromClient wraps an existing client.
func NewCacheServiceFromClient(client *redis.Client, logger *zap.Logger) CacheService {
	return &redisCacheService{client: client, logger: logger}
}

func pageKey(path, variant string) string {
	return keyPrefix + path + ":" + variant
}

func (r *redisCacheService) GetPage(ctx context.Context, path, variant string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, pageKey(path, variant)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // cache miss
		}
		return false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) SetPage(ctx context.Context, path, variant string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, pageKey(path, variant), string(data), ttl).Err()
}

// InvalidatePath drops every cached variant of path.
func (r *redisCacheService) InvalidatePath(ctx context.Context, path string) error {
	pattern := keyPrefix + path + ":*"
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	r.logger.Debug("invalidated cached path", zap.String("path", path), zap.Int("keys", len(keys)))
	return nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
