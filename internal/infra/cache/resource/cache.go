package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const keyPrefix = "reservation:resource:"

// Cache кеш календарей ресурсов в Redis.
// Данные кеша носят справочный характер: холды и бронирования всегда читаются из БД.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кеш ресурсов
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

// Get возвращает ресурс из кеша или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, id string) (*domain.Resource, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - %v", ErrRedis, err)
	}

	var cached cachedResource
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("%w: Get - %v", ErrDecode, err)
	}

	return cached.toDomain(), nil
}

// Set сохраняет ресурс в кеш
func (c *Cache) Set(ctx context.Context, res *domain.Resource) error {
	data, err := json.Marshal(fromDomain(res))
	if err != nil {
		return fmt.Errorf("%w: Set - %v", ErrEncode, err)
	}

	if err := c.client.Set(ctx, key(res.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - %v", ErrRedis, err)
	}
	return nil
}

// Invalidate удаляет ресурс из кеша
func (c *Cache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - %v", ErrRedis, err)
	}
	return nil
}
