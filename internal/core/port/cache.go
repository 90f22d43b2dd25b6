package port

import (
	"context"
	"time"
)

// CachePort - кэш ответов справочников с ограниченным временем жизни.
// Промах кэша - это found=false без ошибки.
type CachePort interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
