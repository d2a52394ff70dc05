package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Alturino/grocery/product/pkg/response"
)

const (
	KeyProduct = "products:%s"

	fieldValue = "v"
)

// setIfNewer writes the product hash unless the stored version is newer, so a
// reader that fetched a row before an update cannot overwrite the cache entry
// written after it.
var setIfNewer = redis.NewScript(`
local stored = redis.call("HGET", KEYS[1], "t")
if stored and tonumber(stored) > tonumber(ARGV[1]) then
	return 0
end
redis.call("HSET", KEYS[1], "t", ARGV[1], "v", ARGV[2])
if tonumber(ARGV[3]) > 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[3])
end
return 1
`)

func ProductKey(id uuid.UUID) string {
	return fmt.Sprintf(KeyProduct, id.String())
}

// ProductCache keeps serialized products by id, versioned by UpdatedAt.
// Derived fields such as the image list are not stored.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

// Get reports false without error on a miss.
func (p *ProductCache) Get(c context.Context, id uuid.UUID) (response.Product, bool, error) {
	raw, err := p.client.HGet(c, ProductKey(id), fieldValue).Bytes()
	if errors.Is(err, redis.Nil) {
		return response.Product{}, false, nil
	}
	if err != nil {
		return response.Product{}, false, fmt.Errorf("failed getting product from cache with error=%w", err)
	}

	product := response.Product{}
	if err := json.Unmarshal(raw, &product); err != nil {
		return response.Product{}, false, fmt.Errorf("failed unmarshaling product cache with error=%w", err)
	}
	return product, true, nil
}

// Set stores product and reports whether it was written. An entry with a
// newer UpdatedAt is left untouched.
func (p *ProductCache) Set(c context.Context, product response.Product) (bool, error) {
	raw, err := json.Marshal(product)
	if err != nil {
		return false, fmt.Errorf("failed marshaling product cache with error=%w", err)
	}
	written, err := setIfNewer.Run(
		c,
		p.client,
		[]string{ProductKey(product.ID)},
		product.UpdatedAt.UnixMicro(),
		raw,
		p.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed setting product cache with error=%w", err)
	}
	return written == 1, nil
}

func (p *ProductCache) Delete(c context.Context, id uuid.UUID) error {
	if err := p.client.Del(c, ProductKey(id)).Err(); err != nil {
		return fmt.Errorf("failed deleting product cache with error=%w", err)
	}
	return nil
}
