package repository

import (
	"strconv"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/domain/annotation"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/service/pinata"
)

const (
	kvListing = "listing"
	kvLikes   = "likes"
)

type pinataRepo struct {
	pinata pinata.Service
}

// NewPinataRepo keeps like counters as key values of small pinned json
// documents, one pin per update. The newest pin of a listing wins.
func NewPinataRepo(p pinata.Service) annotation.Repo {
	return &pinataRepo{pinata: p}
}

func (r *pinataRepo) GetLikes(c ctx.Ctx, key listing.Key) (int64, error) {
	pins, err := r.pinata.PinList(c, map[string]string{kvListing: key.String()})
	if err != nil {
		c.WithField("err", err).Warn("pinata.PinList failed")
		return 0, err
	}
	if len(pins) == 0 {
		return 0, nil
	}

	newest := pins[0]
	for _, p := range pins[1:] {
		if p.DatePinned.After(newest.DatePinned) {
			newest = p
		}
	}
	likes, err := strconv.ParseInt(newest.Metadata.KeyValues[kvLikes], 10, 64)
	if err != nil {
		c.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Warn("invalid likes key value")
		return 0, err
	}
	return likes, nil
}

func (r *pinataRepo) SetLikes(c ctx.Ctx, key listing.Key, likes int64) error {
	kvs := map[string]interface{}{
		kvListing: key.String(),
		kvLikes:   strconv.FormatInt(likes, 10),
	}
	_, err := r.pinata.PinJson(c, kvs, pinata.WithMetadata(pinata.PinataMetadata{
		Name:      "likes-" + key.String(),
		KeyValues: kvs,
	}))
	if err != nil {
		c.WithField("err", err).Warn("pinata.PinJson failed")
		return err
	}
	return nil
}
