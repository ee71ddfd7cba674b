package session

import (
	"context"

	"github.com/redis/go-redis/v9"

	"lacquer/internal/domain"
)

const redisKeyPrefix = "lacquer:session:"

// RedisRepository stores tokens in Redis.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a Redis-backed token repository.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, &domain.StorageError{Op: "get", Err: err}
	}
	return val, true, nil
}

func (r *RedisRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return &domain.StorageError{Op: "set", Err: err}
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return &domain.StorageError{Op: "delete", Err: err}
	}
	return nil
}
