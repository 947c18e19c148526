package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service defines cache operations. Values are serialized as JSON so every
// backend returns the same shape to Get.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Close() error
}

// GenerateKeyWithParams creates a cache key with multiple parameters.
// String params are lower-cased and trimmed so equivalent queries share a key.
func GenerateKeyWithParams(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		if s, ok := param.(string); ok {
			param = strings.ToLower(strings.TrimSpace(s))
		}
		key = fmt.Sprintf("%s:%v", key, param)
	}
	return key
}
