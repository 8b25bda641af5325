package listing

import (
	"math/big"
	"time"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain"
)

// LedgerRepo is the marketplace and nft contract pair. Writes are sent from
// an account the backend can sign for and return once confirmed.
type LedgerRepo interface {
	// Operator is the marketplace address that sellers approve
	Operator() domain.Address
	Accounts() []domain.Address

	Mint(c ctx.Ctx, from domain.Address, tokenURI string) (*big.Int, error)
	// Approve returns ErrAlreadyApproved when operator already holds the approval
	Approve(c ctx.Ctx, from domain.Address, operator domain.Address, assetId *big.Int) error
	ListFixed(c ctx.Ctx, from domain.Address, assetId *big.Int, price *big.Int) (uint64, error)
	CreateAuction(c ctx.Ctx, from domain.Address, assetId *big.Int, minBid *big.Int, duration time.Duration) (uint64, error)
	CreateOpenBid(c ctx.Ctx, from domain.Address, assetId *big.Int, minBid *big.Int, basePrice *big.Int, duration time.Duration) (uint64, error)
	PurchaseItem(c ctx.Ctx, from domain.Address, itemId uint64, payment *big.Int) error
	PlaceBid(c ctx.Ctx, from domain.Address, auctionId uint64, amount *big.Int) error
	RemoveItem(c ctx.Ctx, from domain.Address, itemId uint64) error
	EndAuction(c ctx.Ctx, from domain.Address, auctionId uint64) error

	ItemCount(c ctx.Ctx) (uint64, error)
	AuctionCount(c ctx.Ctx) (uint64, error)
	Item(c ctx.Ctx, itemId uint64) (*ItemRecord, error)
	Auction(c ctx.Ctx, auctionId uint64) (*AuctionRecord, error)
	TotalPrice(c ctx.Ctx, itemId uint64) (*big.Int, error)
	TokenURI(c ctx.Ctx, assetId *big.Int) (string, error)
	// Purchases lists the item ids bought by buyer, oldest first
	Purchases(c ctx.Ctx, buyer domain.Address) ([]uint64, error)
}
