// Package blobstore persists whole-collection JSON snapshots in a
// key-value store. This is a full-snapshot overwrite protocol, not an
// event log: the design assumes a single active operator session.
package blobstore

import (
	"context"
	"errors"

	"github.com/Juanchoszs/StarWash/internal/config"
	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "starwash:"

// Redis stores each collection as one JSON array under starwash:<type>.
type Redis struct {
	client *redis.Client
}

func NewRedis(cfg config.Config) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
	}
}

// Load returns the stored snapshot for one collection, or nil when the
// key has never been written.
func (r *Redis) Load(ctx context.Context, c domain.Collection) ([]byte, error) {
	data, err := r.client.Get(ctx, keyPrefix+string(c)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save overwrites the stored snapshot for one collection. Snapshots do
// not expire.
func (r *Redis) Save(ctx context.Context, c domain.Collection, data []byte) error {
	return r.client.Set(ctx, keyPrefix+string(c), data, 0).Err()
}

// Health checks the key-value store connectivity.
func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
