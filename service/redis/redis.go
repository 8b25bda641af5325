package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/collectibles/base/ctx"
)

// Forever keeps a key without expiration
const Forever = time.Duration(-1)

var (
	ErrNotFound = redis.ErrNil
	ErrNoTTL    = errors.New("key has no ttl")
	ErrGapTime  = errors.New("no redis pool available")
)

// Service is the subset of redis commands the marketplace needs
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(c ctx.Ctx, keys ...string) (int, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	// TTL returns the remaining seconds, ErrNotFound or ErrNoTTL
	TTL(c ctx.Ctx, key string) (int, error)
	Incrby(c ctx.Ctx, key string, val int) (int64, error)
	Ping(c ctx.Ctx) error
}
