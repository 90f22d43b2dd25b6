package redis_cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConnect_FailsWhenRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	cache, err := Connect(ctx, Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
	assert.Nil(t, cache)
}
