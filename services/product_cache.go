package services

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const productListKeyPrefix = "products:list:"

// ProductCache keeps GET /products results in redis. A nil client turns
// every method into a no-op, so the service never depends on redis being up.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewProductCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *ProductCache {
	return &ProductCache{client: client, ttl: ttl, log: log}
}

func (c *ProductCache) enabled() bool {
	return c != nil && c.client != nil
}

func listKey(f repository.ProductFilter) (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", productListKeyPrefix, md5.Sum(data)), nil
}

func (c *ProductCache) Get(ctx context.Context, f repository.ProductFilter) ([]entity.Product, bool) {
	if !c.enabled() {
		return nil, false
	}
	key, err := listKey(f)
	if err != nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("product cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var out []entity.Product
	if err := json.Unmarshal(val, &out); err != nil {
		c.log.Warn("product cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return out, true
}

func (c *ProductCache) Set(ctx context.Context, f repository.ProductFilter, products []entity.Product) {
	if !c.enabled() {
		return
	}
	key, err := listKey(f)
	if err != nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("product cache write failed", zap.Error(err))
	}
}

// Invalidate drops every cached listing; any product write can change any filter's result.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	iter := c.client.Scan(ctx, 0, productListKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("product cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("product cache invalidation failed", zap.Error(err))
	}
}
