package query

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/database/mongoclient"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/base/metrics"
	"github.com/x-xyz/collectibles/domain"
)

const (
	queryMaxTime  = 20 * time.Second
	slowThreshold = 500 * time.Millisecond
)

var (
	timeNow = time.Now
	met     = metrics.New("mongo")
)

type impl struct {
	client *mongoclient.Client
}

// New initializes an impl
func New(client *mongoclient.Client) Mongo {
	return &impl{client: client}
}

func (im *impl) collection(table domain.Table) *mongo.Collection {
	return im.client.DB().Collection(string(table))
}

func (im *impl) FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error {
	defer met.BumpTime("time", "func", "findone", "table", string(table)).End()
	defer slowLog(context, string(table), "findone", query)()

	context = ctx.WithValues(context, map[string]interface{}{
		"table": table,
		"query": query,
	})

	findOneOpts := options.FindOne().SetMaxTime(queryMaxTime)
	res := im.collection(table).FindOne(context, query, findOneOpts)

	if err := res.Decode(result); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		context.WithField("err", err).Error("FindOne: FindOne error")
		return err
	}
	return nil
}

func (im *impl) Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error {
	defer met.BumpTime("time", "func", "upsert", "table", string(table)).End()
	defer slowLog(context, string(table), "upsert", selector)()

	context = ctx.WithValues(context, map[string]interface{}{
		"table":    table,
		"selector": selector,
	})

	replaceOpts := options.Replace().SetUpsert(true)
	if _, err := im.collection(table).ReplaceOne(context, selector, update, replaceOpts); err != nil {
		context.WithField("err", err).Error("Upsert: ReplaceOne failed")
		return err
	}
	return nil
}

func (im *impl) Ping(context ctx.Ctx) error {
	c, cancel := ctx.WithTimeout(context, 2*time.Second)
	defer cancel()
	if err := im.client.Ping(c, readpref.Primary()); err != nil {
		context.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}

func slowLog(context ctx.Ctx, table, action string, query interface{}) func() {
	start := timeNow()

	return func() {
		elapsed := timeNow().Sub(start)
		if elapsed >= slowThreshold {
			met.BumpSum("slowlog", 1, "table", table, "action", action)
			context.WithFields(log.Fields{
				"table":      table,
				"action":     action,
				"startTime":  start.Unix(),
				"durationMs": elapsed.Milliseconds(),
				"query":      query,
			}).Warn("mongo slowlog")
		}
	}
}
