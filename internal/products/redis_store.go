package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-microservices-shop/internal/redisx"
)

// RedisStore keeps each product as a JSON document plus a sorted index of ids.
type RedisStore struct {
	rdb *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, p Product, createdAt time.Time) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisx.ProductKey(p.ID), b, 0)
		pipe.ZAdd(ctx, redisx.KeyProductIndex, redis.Z{Score: float64(createdAt.UnixNano()), Member: p.ID})
		return nil
	})
	return err
}

func (s *RedisStore) FindByID(ctx context.Context, id string) (Product, error) {
	b, err := s.rdb.Get(ctx, redisx.ProductKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, err
	}
	var p Product
	if err := json.Unmarshal(b, &p); err != nil {
		return Product{}, fmt.Errorf("decode product %s: %w", id, err)
	}
	return p, nil
}

// FindAll returns products in creation order. Ids whose document is gone are skipped.
func (s *RedisStore) FindAll(ctx context.Context) ([]Product, error) {
	ids, err := s.rdb.ZRange(ctx, redisx.KeyProductIndex, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisx.ProductKey(id)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var p Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", ids[i], err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Exists reports whether a product document is stored under id.
func (s *RedisStore) Exists(ctx context.Context, id string) (bool, error) {
	return redisx.Exists(ctx, s.rdb, redisx.ProductKey(id))
}
