package usecase

import (
	"errors"
	"math/big"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/listing"
)

// PlaceBid checks the bid against a fresh read of the auction, submits it
// and confirms it with a second read. Cached views are never trusted here.
func (co *coordinator) PlaceBid(c ctx.Ctx, key listing.Key, amount *big.Int, bidder domain.Address) (*listing.Listing, error) {
	if key.Kind != listing.KindAuction {
		return nil, listing.ErrKindMismatch(key, listing.KindAuction)
	}
	if amount == nil || amount.Sign() <= 0 {
		verr := &domain.ValidationError{}
		verr.Add("amount", "must be greater than 0")
		return nil, verr
	}

	c = ctx.WithValues(c, map[string]interface{}{
		"key":    key.String(),
		"bidder": bidder,
		"amount": amount.String(),
	})

	rec, err := co.ledger.Auction(c, key.Id)
	if err != nil {
		c.WithField("err", err).Error("ledger.Auction failed")
		return nil, err
	}
	if err := checkBid(rec, co.now(), amount); err != nil {
		c.WithField("err", err).Info("bid rejected")
		return nil, err
	}

	lc, cancel := co.ledgerCtx(c)
	defer cancel()
	if err := co.ledger.PlaceBid(lc, bidder, key.Id, amount); err != nil {
		c.WithField("err", err).Error("ledger.PlaceBid failed")
		if !co.now().Before(rec.EndTime) {
			return nil, domain.NewError(domain.ErrListingEnded, err)
		}
		if !errors.Is(err, domain.ErrBid) {
			err = domain.NewError(domain.ErrBid, err)
		}
		return nil, err
	}

	confirmed, err := co.ledger.Auction(c, key.Id)
	if err != nil {
		c.WithField("err", err).Error("ledger.Auction failed")
		return nil, err
	}
	if !confirmed.HasBid() || confirmed.HighestBid.Cmp(amount) != 0 || !confirmed.HighestBidder.Equals(bidder) {
		c.WithFields(log.Fields{
			"highestBid":    confirmed.HighestBid,
			"highestBidder": confirmed.HighestBidder,
		}).Error("bid not reflected by ledger")
		return nil, domain.NewError(domain.ErrBid, xerrors.Errorf("%s: highest bid is %s by %s", key, domain.BigIntOrZero(confirmed.HighestBid), confirmed.HighestBidder))
	}

	c.Info("bid confirmed")
	co.refresh(c)
	return listing.FromAuction(confirmed, co.now()), nil
}

// checkBid applies the auction rules in order: closure, phase, minimum bid
// and strict increase over the highest bid.
func checkBid(rec *listing.AuctionRecord, now time.Time, amount *big.Int) error {
	switch rec.Phase(now) {
	case listing.PhaseEnded:
		return domain.NewError(domain.ErrListingEnded, xerrors.Errorf("%s ended at %s", rec.Key(), rec.EndTime.Format(time.RFC3339)))
	case listing.PhasePending:
		return domain.NewError(domain.ErrState, xerrors.Errorf("%s starts at %s", rec.Key(), rec.StartTime.Format(time.RFC3339)))
	}
	if amount.Cmp(domain.BigIntOrZero(rec.MinBid)) < 0 {
		return domain.NewError(domain.ErrBidTooLow, xerrors.Errorf("minimum bid is %s", domain.BigIntOrZero(rec.MinBid)))
	}
	if rec.HasBid() && amount.Cmp(rec.HighestBid) <= 0 {
		return domain.NewError(domain.ErrBidTooLow, xerrors.Errorf("highest bid is %s", rec.HighestBid))
	}
	return nil
}
