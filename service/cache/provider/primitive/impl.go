package primitive

import (
	"strconv"
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/service/cache/provider"
)

type impl struct {
	name  string
	cache *freecache.Cache
}

// NewPrimitive is an in process cache of size MB
func NewPrimitive(name string, size int) provider.Provider {
	return &impl{name, freecache.NewCache(size * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, expireAt, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Get failed")
		return nil, 0, err
	}
	return val, ttlOf(expireAt), nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Incr(c ctx.Ctx, key string, val int) (int64, time.Duration, error) {
	v, expireAt, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return 0, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.GetWithExpiration failed")
		return 0, 0, err
	}

	i, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("strconv.ParseInt failed")
		return 0, 0, err
	}

	nv := i + int64(val)
	ttl := ttlOf(expireAt)
	return nv, ttl, im.Set(c, key, []byte(strconv.FormatInt(nv, 10)), ttl)
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}

// ttlOf converts freecache's absolute expiry in unix seconds, zero when the
// entry never expires.
func ttlOf(expireAt uint32) time.Duration {
	if expireAt == 0 {
		return 0
	}
	ttl := time.Until(time.Unix(int64(expireAt), 0))
	if ttl < time.Second {
		return time.Second
	}
	return ttl.Truncate(time.Second)
}
