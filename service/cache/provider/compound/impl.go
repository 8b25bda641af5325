package compound

import (
	"strconv"
	"time"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/service/cache/provider"
)

type impl struct {
	layers []provider.Provider
}

// NewCompound stacks layers, fastest first. A hit in a lower layer is
// copied into the layers above it. A broken layer is skipped on reads so
// a remote cache outage degrades to the local layer.
func NewCompound(layers []provider.Provider) provider.Provider {
	return &impl{layers}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	var lastErr error
	for idx, lyr := range im.layers {
		val, ttl, err := lyr.Get(c, key)
		if err == provider.ErrNotFound {
			continue
		} else if err != nil {
			c.WithFields(map[string]interface{}{"err": err, "key": key, "layer": idx}).Warn("layer Get failed")
			lastErr = err
			continue
		}

		im.backfill(c, idx, key, val, ttl)
		return val, ttl, nil
	}

	if lastErr != nil {
		return nil, 0, lastErr
	}
	return nil, 0, provider.ErrNotFound
}

func (im *impl) backfill(c ctx.Ctx, hitIdx int, key string, val []byte, ttl time.Duration) {
	for idx := 0; idx < hitIdx; idx++ {
		if err := im.layers[idx].Set(c, key, val, ttl); err != nil {
			c.WithFields(map[string]interface{}{"err": err, "key": key, "layer": idx}).Warn("layer backfill failed")
		}
	}
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

// Incr counts in the last layer and copies the result to the layers above
func (im *impl) Incr(c ctx.Ctx, key string, val int) (int64, time.Duration, error) {
	last := im.layers[len(im.layers)-1]
	res, ttl, err := last.Incr(c, key, val)
	if err != nil {
		return 0, 0, err
	}

	for _, lyr := range im.layers[:len(im.layers)-1] {
		if err := lyr.Set(c, key, []byte(strconv.FormatInt(res, 10)), ttl); err != nil {
			return 0, 0, err
		}
	}
	return res, ttl, nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil {
			return err
		}
	}
	return nil
}
