package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "statline:resp:"

// Redis shares cached responses between service instances.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRedis(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// DialRedis parses url, checks the server answers, and returns the client.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}

func Key(url string) string {
	return keyPrefix + url
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := r.client.Get(ctx, Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("redis cache read failed")
		return nil, false, err
	}
	return body, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, body []byte) error {
	if r.ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, Key(key), body, r.ttl).Err(); err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("redis cache write failed")
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
