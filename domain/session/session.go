package session

import (
	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain/listing"
)

// Entry is the local view of a listing's likes
type Entry struct {
	Likes int64 `json:"likes"`
	Liked bool  `json:"liked"`
}

// Store is the per-session key value cache. It is loaded once at startup and
// flushed after every change; last write wins.
type Store interface {
	Get(c ctx.Ctx, key listing.Key) (Entry, bool)
	Set(c ctx.Ctx, key listing.Key, e Entry) error
	Load(c ctx.Ctx) error
	Flush(c ctx.Ctx) error
}
