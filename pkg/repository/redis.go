package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/storefront/pkg/config"
	"github.com/example/storefront/pkg/models"
	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned by GetProfile when nothing is cached for a username.
var ErrCacheMiss = errors.New("cache miss")

type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		ttl: cfg.ProfileTTL,
	}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func (r *RedisRepository) setJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisRepository) getJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func profileKey(username string) string {
	return fmt.Sprintf("customer:profile:%s", username)
}

// CacheProfile stores a customer profile. Profiles cannot be edited through
// the API, so entries only leave the cache when the TTL runs out.
func (r *RedisRepository) CacheProfile(ctx context.Context, profile *models.Profile) error {
	return r.setJSON(ctx, profileKey(profile.Username), profile, r.ttl)
}

func (r *RedisRepository) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.getJSON(ctx, profileKey(username), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
