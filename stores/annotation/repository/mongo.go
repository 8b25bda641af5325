package repository

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/annotation"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/service/query"
)

var timeNow = time.Now

type likesDoc struct {
	Kind      listing.Kind `bson:"kind"`
	Id        uint64       `bson:"id"`
	Likes     int64        `bson:"likes"`
	UpdatedAt time.Time    `bson:"updatedAt"`
}

type mongoRepo struct {
	query query.Mongo
}

func NewMongoRepo(q query.Mongo) annotation.Repo {
	return &mongoRepo{query: q}
}

func selector(key listing.Key) bson.M {
	return bson.M{"kind": key.Kind, "id": key.Id}
}

func (r *mongoRepo) GetLikes(c ctx.Ctx, key listing.Key) (int64, error) {
	doc := likesDoc{}
	err := r.query.FindOne(c, domain.TableListingLikes, selector(key), &doc)
	if errors.Is(err, query.ErrNotFound) {
		return 0, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Warn("failed to query.FindOne")
		return 0, err
	}
	return doc.Likes, nil
}

func (r *mongoRepo) SetLikes(c ctx.Ctx, key listing.Key, likes int64) error {
	doc := &likesDoc{
		Kind:      key.Kind,
		Id:        key.Id,
		Likes:     likes,
		UpdatedAt: timeNow(),
	}
	if err := r.query.Upsert(c, domain.TableListingLikes, selector(key), doc); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Warn("failed to query.Upsert")
		return err
	}
	return nil
}
