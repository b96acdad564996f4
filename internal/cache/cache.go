package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"claynova-backend/internal/models"
)

// Storefront reads are cached for the same window the frontend used
// to hold query results.
const productTTL = 5 * time.Minute

// Cache keys for the cached product lists. Category lists are keyed
// per category.
const (
	KeyVisible    = "products:visible"
	KeyFeatured   = "products:featured"
	KeyCategories = "products:categories"

	categoryKeyPrefix = "products:category:"
)

func CategoryKey(category string) string {
	return categoryKeyPrefix + category
}

// ProductCache is an optional Redis-backed read cache. A nil
// *ProductCache is valid and disables caching entirely.
type ProductCache struct {
	client *redis.Client
}

func NewProductCache(addr, password string) (*ProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &ProductCache{client: client}, nil
}

// GetProducts returns the cached list for key, or (nil, false) on a
// miss or any Redis failure. Cache errors never propagate: the
// caller just reads the database.
func (c *ProductCache) GetProducts(ctx context.Context, key string) ([]models.Product, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}

	return products, true
}

func (c *ProductCache) SetProducts(ctx context.Context, key string, products []models.Product) {
	if c == nil {
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		return
	}

	c.client.Set(ctx, key, data, productTTL)
}

// Invalidate drops every cached product list. Called after any
// write so the storefront never serves a stale catalog for more
// than one request.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	keys := []string{KeyVisible, KeyFeatured, KeyCategories}
	for _, category := range models.Categories {
		keys = append(keys, CategoryKey(category))
	}
	keys = append(keys, CategoryKey(models.CategoryAll))

	c.client.Del(ctx, keys...)
}

func (c *ProductCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
