package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Deduper struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDeduper(rdb *redis.Client, ttl time.Duration) *Deduper {
	return &Deduper{rdb: rdb, ttl: ttl}
}

// AcquireOnce tries to acquire a dedup lock for a given handler + emailID.
// Returns true if this is the FIRST time processing, false for a duplicate.
func (d *Deduper) AcquireOnce(ctx context.Context, handler, emailID string) bool {
	key := fmt.Sprintf("dedup:%s:%s", handler, emailID)

	ok, err := d.rdb.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		// Redis 挂了？为了安全：当 redis 不可用时，不阻止处理，返回 true
		return true
	}
	return ok
}

// Release drops the dedup lock early so the email can be re-analyzed on demand.
func (d *Deduper) Release(ctx context.Context, handler, emailID string) {
	key := fmt.Sprintf("dedup:%s:%s", handler, emailID)
	_ = d.rdb.Del(ctx, key).Err()
}
