package repository

import (
	"strconv"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain/annotation"
	"github.com/x-xyz/collectibles/domain/keys"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/service/redis"
)

type redisRepo struct {
	redis redis.Service
}

func NewRedisRepo(r redis.Service) annotation.Repo {
	return &redisRepo{redis: r}
}

func likesKey(key listing.Key) string {
	return keys.RedisKey(keys.PfxLikes, string(key.Kind), strconv.FormatUint(key.Id, 10))
}

func (r *redisRepo) GetLikes(c ctx.Ctx, key listing.Key) (int64, error) {
	val, err := r.redis.Get(c, likesKey(key))
	if err == redis.ErrNotFound {
		return 0, nil
	} else if err != nil {
		c.WithField("err", err).Warn("redis.Get failed")
		return 0, err
	}
	return strconv.ParseInt(string(val), 10, 64)
}

func (r *redisRepo) SetLikes(c ctx.Ctx, key listing.Key, likes int64) error {
	if err := r.redis.Set(c, likesKey(key), []byte(strconv.FormatInt(likes, 10)), redis.Forever); err != nil {
		c.WithField("err", err).Warn("redis.Set failed")
		return err
	}
	return nil
}
