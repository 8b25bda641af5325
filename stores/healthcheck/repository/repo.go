package repository

import (
	"time"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain"
	hcdomain "github.com/x-xyz/collectibles/domain/healthcheck"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/service/query"
	"github.com/x-xyz/collectibles/service/redis"
)

const pingTimeout = 2 * time.Second

// RepoCfg lists the backends to ping. Redis and Mongo are optional.
type RepoCfg struct {
	Ledger listing.LedgerRepo
	Redis  redis.Service
	Mongo  query.Mongo
}

type impl struct {
	ledger listing.LedgerRepo
	redis  redis.Service
	mongo  query.Mongo
}

// New creates new healthCheckRepo object representation of HealthCheckRepo interface
func New(cfg *RepoCfg) hcdomain.HealthCheckRepo {
	return &impl{
		ledger: cfg.Ledger,
		redis:  cfg.Redis,
		mongo:  cfg.Mongo,
	}
}

func (im *impl) Ping(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if _, err := im.ledger.ItemCount(ctx); err != nil {
		context.WithField("err", err).Error("ping ledger error")
		return domain.NewError(domain.ErrMarketplaceUnavailable, err)
	}

	if im.mongo != nil {
		if err := im.mongo.Ping(ctx); err != nil {
			context.WithField("err", err).Error("ping mongo error")
			return err
		}
	}

	if im.redis != nil {
		if err := im.redis.Ping(ctx); err != nil {
			context.WithField("err", err).Error("ping redis error")
			return err
		}
	}
	return nil
}
