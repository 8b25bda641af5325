package usecase

import (
	"sync"
	"time"

	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/goroutine"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/base/metrics"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/annotation"
	"github.com/x-xyz/collectibles/domain/listing"
)

const (
	defaultWorkers = 8
	defaultTick    = time.Second
)

// exclusion reasons, used as metric tags
const (
	reasonRead     = "read"
	reasonUri      = "uri"
	reasonMetadata = "metadata"
)

type ReconcilerCfg struct {
	Ledger     listing.LedgerRepo
	Content    domain.ContentStore
	Annotation annotation.Usecase
	Metrics    metrics.Service

	// Workers bounds concurrent metadata resolution
	Workers int
	// Tick is the countdown period
	Tick time.Duration
	Now  func() time.Time
}

type reconciler struct {
	ledger     listing.LedgerRepo
	content    domain.ContentStore
	annotation annotation.Usecase
	metrics    metrics.Service
	workers    int
	tick       time.Duration
	now        func() time.Time

	mu        sync.RWMutex
	view      []*listing.Listing
	remaining map[listing.Key]time.Duration
	cancel    func()
	stopped   chan *goroutine.PanicEvent
}

func NewReconciler(cfg *ReconcilerCfg) listing.Reconciler {
	r := &reconciler{
		ledger:     cfg.Ledger,
		content:    cfg.Content,
		annotation: cfg.Annotation,
		metrics:    cfg.Metrics,
		workers:    cfg.Workers,
		tick:       cfg.Tick,
		now:        cfg.Now,
		remaining:  map[listing.Key]time.Duration{},
	}
	if r.metrics == nil {
		r.metrics = metrics.New("reconciler")
	}
	if r.workers <= 0 {
		r.workers = defaultWorkers
	}
	if r.tick <= 0 {
		r.tick = defaultTick
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Refresh rebuilds the view from the ledger. Records that cannot be read or
// resolved are left out; only an unreadable ledger fails the refresh.
func (r *reconciler) Refresh(c ctx.Ctx) error {
	defer r.metrics.BumpTime("refresh.time").End()

	itemCount, auctionCount, err := r.counts(c)
	if err != nil {
		return err
	}

	now := r.now()
	bases := make([]*listing.Listing, 0, itemCount+auctionCount)
	for id := uint64(1); id <= itemCount; id++ {
		l, err := r.readItem(c, id)
		if err != nil {
			r.exclude(c, listing.ItemKey(id), reasonRead, err)
			continue
		}
		if l.Status.IsTerminal() {
			continue
		}
		bases = append(bases, l)
	}
	for id := uint64(1); id <= auctionCount; id++ {
		l, err := r.readAuction(c, id, now)
		if err != nil {
			r.exclude(c, listing.AuctionKey(id), reasonRead, err)
			continue
		}
		if l.Status.IsTerminal() {
			continue
		}
		bases = append(bases, l)
	}

	view := r.complete(c, bases)

	r.mu.Lock()
	r.view = view
	r.recount(r.now())
	r.mu.Unlock()

	c.WithFields(log.Fields{
		"items":    itemCount,
		"auctions": auctionCount,
		"listed":   len(view),
	}).Info("view refreshed")
	return nil
}

func (r *reconciler) counts(c ctx.Ctx) (uint64, uint64, error) {
	items, err := r.ledger.ItemCount(c)
	if err != nil {
		c.WithField("err", err).Error("ledger.ItemCount failed")
		return 0, 0, domain.NewError(domain.ErrMarketplaceUnavailable, err)
	}
	auctions, err := r.ledger.AuctionCount(c)
	if err != nil {
		c.WithField("err", err).Error("ledger.AuctionCount failed")
		return 0, 0, domain.NewError(domain.ErrMarketplaceUnavailable, err)
	}
	return items, auctions, nil
}

func (r *reconciler) readItem(c ctx.Ctx, id uint64) (*listing.Listing, error) {
	rec, err := r.ledger.Item(c, id)
	if err != nil {
		return nil, err
	}
	if rec.Status().IsTerminal() {
		return listing.FromItem(rec, rec.Price), nil
	}
	total, err := r.ledger.TotalPrice(c, id)
	if err != nil {
		return nil, err
	}
	return listing.FromItem(rec, total), nil
}

func (r *reconciler) readAuction(c ctx.Ctx, id uint64, now time.Time) (*listing.Listing, error) {
	rec, err := r.ledger.Auction(c, id)
	if err != nil {
		return nil, err
	}
	return listing.FromAuction(rec, now), nil
}

func (r *reconciler) read(c ctx.Ctx, key listing.Key) (*listing.Listing, error) {
	switch key.Kind {
	case listing.KindItem:
		return r.readItem(c, key.Id)
	case listing.KindAuction:
		return r.readAuction(c, key.Id, r.now())
	}
	return nil, xerrors.Errorf("unknown kind %q: %w", key.Kind, domain.ErrNotFound)
}

func (r *reconciler) exclude(c ctx.Ctx, key listing.Key, reason string, err error) {
	r.metrics.BumpSum("excluded", 1, "reason", reason)
	c.WithFields(log.Fields{
		"key":    key.String(),
		"reason": reason,
		"err":    err,
	}).Warn("listing excluded from view")
}

type resolved struct {
	idx int
	l   *listing.Listing
}

// complete resolves metadata and likes of bases concurrently. The result
// keeps the order of bases and drops what could not be resolved.
func (r *reconciler) complete(c ctx.Ctx, bases []*listing.Listing) []*listing.Listing {
	if len(bases) == 0 {
		return []*listing.Listing{}
	}

	b := goroutines.NewBatch(r.workers, goroutines.WithBatchSize(len(bases)))
	defer b.Close()
	for i := range bases {
		idx := i
		b.Queue(func() (interface{}, error) {
			l, reason, err := r.resolve(c, bases[idx])
			if err != nil {
				r.exclude(c, bases[idx].Key, reason, err)
				return resolved{idx: idx}, nil
			}
			return resolved{idx: idx, l: l}, nil
		})
	}
	b.QueueComplete()

	slots := make([]*listing.Listing, len(bases))
	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Error("batch result failed")
			continue
		}
		res := ret.Value().(resolved)
		slots[res.idx] = res.l
	}

	ls := make([]*listing.Listing, 0, len(bases))
	for _, l := range slots {
		if l != nil {
			ls = append(ls, l)
		}
	}
	return ls
}

func (r *reconciler) resolve(c ctx.Ctx, base *listing.Listing) (*listing.Listing, string, error) {
	uri, err := r.ledger.TokenURI(c, base.AssetId)
	if err != nil {
		return nil, reasonUri, err
	}
	md, err := r.content.Resolve(c, uri)
	if err != nil {
		return nil, reasonMetadata, err
	}
	l := *base
	l.MetadataLocator = uri
	l.Metadata = *md
	if r.annotation != nil {
		l.LikeCount, l.LikedByMe = r.annotation.Annotate(c, l.Key)
	}
	return &l, "", nil
}

func (r *reconciler) View(c ctx.Ctx, q listing.Query) ([]*listing.Listing, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := r.Refresh(c); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return q.Apply(r.view), nil
}

func (r *reconciler) Get(c ctx.Ctx, key listing.Key) (*listing.Listing, error) {
	base, err := r.read(c, key)
	if err != nil {
		c.WithFields(log.Fields{
			"key": key.String(),
			"err": err,
		}).Error("read listing failed")
		return nil, err
	}
	l, _, err := r.resolve(c, base)
	if err != nil {
		c.WithFields(log.Fields{
			"key": key.String(),
			"err": err,
		}).Error("resolve listing failed")
		return nil, err
	}
	return l, nil
}

func (r *reconciler) SellerListings(c ctx.Ctx, seller domain.Address) (*listing.SellerListings, error) {
	itemCount, _, err := r.counts(c)
	if err != nil {
		return nil, err
	}

	bases := []*listing.Listing{}
	for id := uint64(1); id <= itemCount; id++ {
		l, err := r.readItem(c, id)
		if err != nil {
			r.exclude(c, listing.ItemKey(id), reasonRead, err)
			continue
		}
		if !l.Seller.Equals(seller) || l.Status == listing.StatusRemoved {
			continue
		}
		bases = append(bases, l)
	}

	res := &listing.SellerListings{
		Listed: []*listing.Listing{},
		Sold:   []*listing.Listing{},
	}
	for _, l := range r.complete(c, bases) {
		if l.Status == listing.StatusSold {
			res.Sold = append(res.Sold, l)
		} else {
			res.Listed = append(res.Listed, l)
		}
	}
	return res, nil
}

func (r *reconciler) Purchases(c ctx.Ctx, buyer domain.Address) ([]*listing.Listing, error) {
	ids, err := r.ledger.Purchases(c, buyer)
	if err != nil {
		c.WithField("err", err).Error("ledger.Purchases failed")
		return nil, domain.NewError(domain.ErrMarketplaceUnavailable, err)
	}

	bases := make([]*listing.Listing, 0, len(ids))
	for _, id := range ids {
		l, err := r.readItem(c, id)
		if err != nil {
			r.exclude(c, listing.ItemKey(id), reasonRead, err)
			continue
		}
		bases = append(bases, l)
	}
	return r.complete(c, bases), nil
}

func (r *reconciler) Like(c ctx.Ctx, key listing.Key) (*listing.Listing, error) {
	if r.annotation == nil {
		return nil, xerrors.Errorf("likes are disabled: %w", domain.ErrState)
	}
	l, err := r.Get(c, key)
	if err != nil {
		return nil, err
	}
	likes, liked, err := r.annotation.Toggle(c, key)
	if err != nil {
		c.WithField("err", err).Error("annotation.Toggle failed")
		return nil, err
	}
	l.LikeCount, l.LikedByMe = likes, liked

	r.mu.Lock()
	r.view = withLikes(r.view, key, likes, liked)
	r.mu.Unlock()
	return l, nil
}

// withLikes returns a copy of view with the likes of key replaced. Listings
// already handed out by View are shared with callers and never written.
func withLikes(view []*listing.Listing, key listing.Key, likes int64, liked bool) []*listing.Listing {
	res := make([]*listing.Listing, len(view))
	for i, v := range view {
		if v.Key != key {
			res[i] = v
			continue
		}
		cp := *v
		cp.LikeCount, cp.LikedByMe = likes, liked
		res[i] = &cp
	}
	return res
}

// Start runs the countdown until Stop is called or c is done. Calling it
// again while running does nothing.
func (r *reconciler) Start(c ctx.Ctx) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	cc, cancel := ctx.WithCancel(c)
	r.cancel = cancel
	r.stopped = goroutine.RecoverableGo(func() {
		ticker := time.NewTicker(r.tick)
		defer ticker.Stop()
		for {
			select {
			case <-cc.Done():
				return
			case <-ticker.C:
				r.mu.Lock()
				r.recount(r.now())
				r.mu.Unlock()
			}
		}
	}, goroutine.WithName("countdown"), goroutine.WithAfterRecovered(func(interface{}, []byte) {
		r.metrics.BumpSum("countdown.panic", 1)
	}))
}

// Stop ends the countdown and waits for it to return
func (r *reconciler) Stop() {
	r.mu.Lock()
	cancel, stopped := r.cancel, r.stopped
	r.cancel, r.stopped = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}

func (r *reconciler) Countdown() map[listing.Key]time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make(map[listing.Key]time.Duration, len(r.remaining))
	for k, v := range r.remaining {
		res[k] = v
	}
	return res
}

// recount must be called with mu held
func (r *reconciler) recount(now time.Time) {
	remaining := make(map[listing.Key]time.Duration, len(r.remaining))
	for _, l := range r.view {
		if l.AuctionEnd == nil {
			continue
		}
		remaining[l.Key] = l.Remaining(now).Truncate(time.Second)
	}
	r.remaining = remaining
}
