package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ndemidova/ringshop-backend/internal/app/model"
	"github.com/ndemidova/ringshop-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const productsKey = "catalog:products"

const opTimeout = 2 * time.Second

// ProductCache keeps the serialized catalog listing in Redis. Every
// failure degrades to a cache miss; the caller falls back to the
// database.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *ProductCache) GetProducts() ([]model.Product, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, productsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Catalog cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		logger.Warn("Catalog cache entry corrupt, dropping it", map[string]interface{}{
			"error": err.Error(),
		})
		c.Invalidate()
		return nil, false
	}
	return products, true
}

func (c *ProductCache) SetProducts(products []model.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		logger.Warn("Failed to encode catalog for cache", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, productsKey, data, c.ttl).Err(); err != nil {
		logger.Warn("Catalog cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (c *ProductCache) Invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.client.Del(ctx, productsKey).Err(); err != nil {
		logger.Warn("Catalog cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
