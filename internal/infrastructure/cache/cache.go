package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	ProductKeyPrefix     = "product:detail:"
	ProductListKeyPrefix = "products:v:"
	VersionKey           = "products:version"
)

// ProductCache stores catalog reads. Any write to the catalog must call
// Invalidate before the write is acknowledged.
type ProductCache interface {
	GetProductList(ctx context.Context, query catalog.Query) (dto.ProductListResponse, bool)
	SetProductList(ctx context.Context, query catalog.Query, res dto.ProductListResponse)
	GetProduct(ctx context.Context, id string) (domain.Product, bool)
	SetProduct(ctx context.Context, product domain.Product)
	Invalidate(ctx context.Context, ids ...string) error
}

type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return redis.NewClient(opts), nil
}

func CreateRedisProductCache(client *redis.Client, ttl time.Duration) ProductCache {
	return &RedisProductCache{client: client, ttl: ttl}
}

func (c *RedisProductCache) GetProductList(ctx context.Context, query catalog.Query) (dto.ProductListResponse, bool) {
	var res dto.ProductListResponse

	version, err := c.version(ctx)
	if err != nil {
		return res, false
	}

	return res, c.get(ctx, listKey(version, query), &res)
}

func (c *RedisProductCache) SetProductList(ctx context.Context, query catalog.Query, res dto.ProductListResponse) {
	version, err := c.version(ctx)
	if err != nil {
		return
	}

	c.set(ctx, listKey(version, query), res)
}

func (c *RedisProductCache) GetProduct(ctx context.Context, id string) (domain.Product, bool) {
	var product domain.Product
	return product, c.get(ctx, ProductKeyPrefix+id, &product)
}

func (c *RedisProductCache) SetProduct(ctx context.Context, product domain.Product) {
	c.set(ctx, ProductKeyPrefix+product.ID.Hex(), product)
}

// Invalidate bumps the list version, orphaning every cached list, and drops
// the cached details of ids. Empty ids are ignored.
func (c *RedisProductCache) Invalidate(ctx context.Context, ids ...string) error {
	if err := c.client.Incr(ctx, VersionKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}

	keys := detailKeys(ids)
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cached products: %w", err)
	}

	return nil
}

func detailKeys(ids []string) []string {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			keys = append(keys, ProductKeyPrefix+id)
		}
	}
	return keys
}

func (c *RedisProductCache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, VersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		// SetNX keeps a concurrent Invalidate from being overwritten.
		if err := c.client.SetNX(ctx, VersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, VersionKey).Int64()
	}

	return ver, err
}

func (c *RedisProductCache) get(ctx context.Context, key string, dst interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Ctx(ctx).Warn().Err(err).Str("component", "ProductCache").Str("key", key).Msg("cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "ProductCache").Str("key", key).Msg("cache entry unreadable")
		return false
	}

	return true
}

func (c *RedisProductCache) set(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "ProductCache").Msg("")
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "ProductCache").Str("key", key).Msg("cache write failed")
	}
}

func listKey(version int64, query catalog.Query) string {
	return fmt.Sprintf("%s%d:%s", ProductListKeyPrefix, version, query.CacheKey())
}

// NoopProductCache never hits.
type NoopProductCache struct{}

func (NoopProductCache) GetProductList(ctx context.Context, query catalog.Query) (dto.ProductListResponse, bool) {
	return dto.ProductListResponse{}, false
}

func (NoopProductCache) SetProductList(ctx context.Context, query catalog.Query, res dto.ProductListResponse) {
}

func (NoopProductCache) GetProduct(ctx context.Context, id string) (domain.Product, bool) {
	return domain.Product{}, false
}

func (NoopProductCache) SetProduct(ctx context.Context, product domain.Product) {}

func (NoopProductCache) Invalidate(ctx context.Context, ids ...string) error {
	return nil
}
