package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const themeKeyPrefix = "regmap:theme:"

// RedisStore keeps theme preferences in Redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// ConnectRedis dials Redis from a URL (falling back to treating the value
// as a plain address) and verifies the connection.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Theme(ctx context.Context, key string) (string, error) {
	theme, err := s.client.Get(ctx, themeKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("prefs get: %w", err)
	}
	if !validTheme(theme) {
		return DefaultTheme, nil
	}
	return theme, nil
}

func (s *RedisStore) SetTheme(ctx context.Context, key, theme string) error {
	if !validTheme(theme) {
		return ErrInvalidTheme
	}
	if err := s.client.Set(ctx, themeKeyPrefix+key, theme, 0).Err(); err != nil {
		return fmt.Errorf("prefs set: %w", err)
	}
	return nil
}
