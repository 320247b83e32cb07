package cache

import (
	"context"
	"fmt"
	"time"
)

var ErrKeyNotExist = fmt.Errorf("cache key not exists")

// Cache is a TTL key-value store. Values are JSON-encoded on write and
// decoded on read, so the caller only deals with typed structs.
type Cache interface {
	GetAs(ctx context.Context, key string, out interface{}) error
	SetExp(ctx context.Context, key string, inValue interface{}, expireDur time.Duration) error
	Delete(ctx context.Context, key string) error
}
