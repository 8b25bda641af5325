package annotation

import (
	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain/listing"
)

// Repo stores like counters off the ledger. Nothing in it is authoritative.
type Repo interface {
	GetLikes(c ctx.Ctx, key listing.Key) (int64, error)
	SetLikes(c ctx.Ctx, key listing.Key, likes int64) error
}

type Usecase interface {
	// Annotate returns the like count and the liked-by-me flag. Failures
	// read as zero likes.
	Annotate(c ctx.Ctx, key listing.Key) (likes int64, liked bool)
	// Toggle flips the liked-by-me flag and moves the count by one
	Toggle(c ctx.Ctx, key listing.Key) (likes int64, liked bool, err error)
}
