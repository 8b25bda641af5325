package listing

import (
	"math/big"
	"time"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain"
)

// Coordinator runs the create-and-list saga and the validated ledger
// mutations that follow it.
type Coordinator interface {
	Create(c ctx.Ctx, req CreateRequest) (*SagaState, error)
	PlaceBid(c ctx.Ctx, key Key, amount *big.Int, bidder domain.Address) (*Listing, error)
	EndAuction(c ctx.Ctx, key Key, from domain.Address) error
	Purchase(c ctx.Ctx, key Key, buyer domain.Address) error
	Remove(c ctx.Ctx, key Key, seller domain.Address) error
}

// Reconciler materializes the marketplace view from the ledger, the content
// store and the annotation store.
type Reconciler interface {
	Refresh(c ctx.Ctx) error
	View(c ctx.Ctx, q Query) ([]*Listing, error)
	Get(c ctx.Ctx, key Key) (*Listing, error)
	// Start runs the countdown of the view until Stop or c is done
	Start(c ctx.Ctx)
	Stop()
	Countdown() map[Key]time.Duration
	SellerListings(c ctx.Ctx, seller domain.Address) (*SellerListings, error)
	Purchases(c ctx.Ctx, buyer domain.Address) ([]*Listing, error)
	Like(c ctx.Ctx, key Key) (*Listing, error)
}

type SellerListings struct {
	Listed []*Listing `json:"listed"`
	Sold   []*Listing `json:"sold"`
}
