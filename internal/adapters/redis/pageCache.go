package redis

import (
	"context"
	"errors"
	"time"

	"yatube/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultPrefix namespaces page-cache keys so Clear never touches other data.
const DefaultPrefix = "yatube:page:"

// clearBatch is how many keys Clear deletes per DEL.
const clearBatch = 100

// PageCacheRedis implements PageCache on Redis strings with EX expiry
type PageCacheRedis struct {
	Client *redis.Client
	Prefix string
}

func NewPageCacheRedis(client *redis.Client) *PageCacheRedis {
	return &PageCacheRedis{
		Client: client,
		Prefix: DefaultPrefix,
	}
}

func (r *PageCacheRedis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.Client.Get(ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *PageCacheRedis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, r.Prefix+key, value, ttl).Err()
}

// Clear deletes every key under Prefix using SCAN, never FLUSHDB.
func (r *PageCacheRedis) Clear(ctx context.Context) error {
	iter := r.Client.Scan(ctx, 0, r.Prefix+"*", clearBatch).Iterator()

	batch := make([]string, 0, clearBatch)
	deleted := 0
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == clearBatch {
			if err := r.Client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			deleted += len(batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		if err := r.Client.Del(ctx, batch...).Err(); err != nil {
			return err
		}
		deleted += len(batch)
	}

	config.Logger.Info("Page cache cleared", zap.String("prefix", r.Prefix), zap.Int("keys", deleted))
	return nil
}
