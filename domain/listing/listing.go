package listing

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/collectibles/domain"
)

// Kind names the ledger table a listing lives in. Items and auctions are
// numbered independently, so an id is only unique within its kind.
type Kind string

const (
	KindItem    Kind = "item"
	KindAuction Kind = "auction"
)

func (k Kind) IsValid() bool {
	return k == KindItem || k == KindAuction
}

type Key struct {
	Kind Kind   `json:"kind"`
	Id   uint64 `json:"id"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Kind, k.Id)
}

func ItemKey(id uint64) Key {
	return Key{Kind: KindItem, Id: id}
}

func AuctionKey(id uint64) Key {
	return Key{Kind: KindAuction, Id: id}
}

func ParseKey(kind, id string) (Key, error) {
	verr := &domain.ValidationError{}
	k := Kind(kind)
	if !k.IsValid() {
		verr.Addf("kind", "unknown listing kind %q", kind)
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		verr.Addf("id", "invalid listing id %q", id)
	}
	if err := verr.OrNil(); err != nil {
		return Key{}, err
	}
	return Key{Kind: k, Id: n}, nil
}

type SaleKind string

const (
	SaleKindFixedPrice SaleKind = "fixedPrice"
	SaleKindAuction    SaleKind = "auction"
	SaleKindOpenBid    SaleKind = "openBid"
)

func (s SaleKind) IsValid() bool {
	switch s {
	case SaleKindFixedPrice, SaleKindAuction, SaleKindOpenBid:
		return true
	}
	return false
}

// IsTimed reports whether the sale kind takes bids until an end time
func (s SaleKind) IsTimed() bool {
	return s == SaleKindAuction || s == SaleKindOpenBid
}

func (s SaleKind) LedgerKind() Kind {
	if s.IsTimed() {
		return KindAuction
	}
	return KindItem
}

type Status string

const (
	StatusActive  Status = "active"
	StatusSold    Status = "sold"
	StatusEnded   Status = "ended"
	StatusRemoved Status = "removed"
)

func (s Status) IsTerminal() bool {
	return s != StatusActive
}

// Phase is the time window of a timed listing
type Phase string

const (
	PhasePending Phase = "pending"
	PhaseActive  Phase = "active"
	PhaseEnded   Phase = "ended"
)

// ItemRecord is a fixed price entry as the ledger stores it
type ItemRecord struct {
	ItemId  uint64
	Nft     domain.Address
	TokenId *big.Int
	Price   *big.Int
	Seller  domain.Address
	Sold    bool
	Removed bool
}

func (r *ItemRecord) Key() Key {
	return ItemKey(r.ItemId)
}

func (r *ItemRecord) Status() Status {
	switch {
	case r.Removed:
		return StatusRemoved
	case r.Sold:
		return StatusSold
	}
	return StatusActive
}

// AuctionRecord is a timed entry as the ledger stores it. Settled is set
// once the ledger has paid out after the end time.
type AuctionRecord struct {
	AuctionId     uint64
	Nft           domain.Address
	TokenId       *big.Int
	Seller        domain.Address
	MinBid        *big.Int
	BasePrice     *big.Int
	StartTime     time.Time
	EndTime       time.Time
	HighestBid    *big.Int
	HighestBidder domain.Address
	Settled       bool
	OpenBid       bool
}

func (r *AuctionRecord) Key() Key {
	return AuctionKey(r.AuctionId)
}

func (r *AuctionRecord) SaleKind() SaleKind {
	if r.OpenBid {
		return SaleKindOpenBid
	}
	return SaleKindAuction
}

func (r *AuctionRecord) HasBid() bool {
	return r.HighestBid != nil && r.HighestBid.Sign() > 0
}

func (r *AuctionRecord) Phase(now time.Time) Phase {
	switch {
	case r.Settled || !now.Before(r.EndTime):
		return PhaseEnded
	case now.Before(r.StartTime):
		return PhasePending
	}
	return PhaseActive
}

func (r *AuctionRecord) Status(now time.Time) Status {
	if r.Phase(now) == PhaseEnded {
		return StatusEnded
	}
	return StatusActive
}

// CurrentPrice is the highest bid, or the minimum bid before anyone bid
func (r *AuctionRecord) CurrentPrice() *big.Int {
	if r.HasBid() {
		return new(big.Int).Set(r.HighestBid)
	}
	return new(big.Int).Set(domain.BigIntOrZero(r.MinBid))
}

// Listing is one entry of the marketplace view. Ledger fields are copied
// from confirmed reads only; LikeCount and LikedByMe are best effort.
type Listing struct {
	Key             Key             `json:"key"`
	AssetId         *big.Int        `json:"assetId"`
	Nft             domain.Address  `json:"nft"`
	SaleKind        SaleKind        `json:"saleKind"`
	Seller          domain.Address  `json:"seller"`
	BasePrice       *big.Int        `json:"basePrice,omitempty"`
	MinBid          *big.Int        `json:"minBid,omitempty"`
	Status          Status          `json:"status"`
	MetadataLocator string          `json:"metadataLocator"`
	Metadata        domain.Metadata `json:"metadata"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
	AuctionEnd      *time.Time      `json:"auctionEnd,omitempty"`
	HighestBid      *big.Int        `json:"highestBid,omitempty"`
	HighestBidder   domain.Address  `json:"highestBidder,omitempty"`
	TotalPrice      *big.Int        `json:"totalPrice"`
	LikeCount       int64           `json:"likeCount"`
	LikedByMe       bool            `json:"likedByMe"`
}

// FromItem builds the ledger part of a fixed price listing
func FromItem(r *ItemRecord, totalPrice *big.Int) *Listing {
	return &Listing{
		Key:        r.Key(),
		AssetId:    r.TokenId,
		Nft:        r.Nft,
		SaleKind:   SaleKindFixedPrice,
		Seller:     r.Seller,
		BasePrice:  r.Price,
		Status:     r.Status(),
		TotalPrice: totalPrice,
	}
}

// FromAuction builds the ledger part of a timed listing
func FromAuction(r *AuctionRecord, now time.Time) *Listing {
	start, end := r.StartTime, r.EndTime
	l := &Listing{
		Key:        r.Key(),
		AssetId:    r.TokenId,
		Nft:        r.Nft,
		SaleKind:   r.SaleKind(),
		Seller:     r.Seller,
		MinBid:     r.MinBid,
		Status:     r.Status(now),
		CreatedAt:  &start,
		AuctionEnd: &end,
		TotalPrice: r.CurrentPrice(),
	}
	if r.OpenBid {
		l.BasePrice = r.BasePrice
	}
	if r.HasBid() {
		l.HighestBid = r.HighestBid
		l.HighestBidder = r.HighestBidder
	}
	return l
}

// Remaining is the time left before AuctionEnd, never negative
func (l *Listing) Remaining(now time.Time) time.Duration {
	if l.AuctionEnd == nil || !now.Before(*l.AuctionEnd) {
		return 0
	}
	return l.AuctionEnd.Sub(now)
}

// ErrKindMismatch is returned when a key names the wrong ledger table for
// the requested operation.
func ErrKindMismatch(key Key, want Kind) error {
	return xerrors.Errorf("%s is not a %s listing: %w", key, want, domain.ErrState)
}
