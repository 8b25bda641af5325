package usecase

import (
	"context"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/base/metrics"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/listing"
)

const (
	defaultUploadAttempts = 3
	defaultUploadBackoff  = 500 * time.Millisecond
	defaultWriteTimeout   = 5 * time.Minute
)

type CoordinatorCfg struct {
	Ledger     listing.LedgerRepo
	Content    domain.ContentStore
	Reconciler listing.Reconciler
	// Notifier is told about minted assets that never got listed
	Notifier listing.OrphanNotifier
	Metrics  metrics.Service

	UploadAttempts int
	UploadBackoff  time.Duration
	// WriteTimeout bounds every ledger write, mining included. Writes do not
	// follow the caller's deadline.
	WriteTimeout time.Duration
	Now          func() time.Time
}

type coordinator struct {
	ledger     listing.LedgerRepo
	content    domain.ContentStore
	reconciler listing.Reconciler
	notifier   listing.OrphanNotifier
	metrics    metrics.Service

	uploadAttempts int
	uploadBackoff  time.Duration
	writeTimeout   time.Duration
	now            func() time.Time
}

func NewCoordinator(cfg *CoordinatorCfg) listing.Coordinator {
	co := &coordinator{
		ledger:         cfg.Ledger,
		content:        cfg.Content,
		reconciler:     cfg.Reconciler,
		notifier:       cfg.Notifier,
		metrics:        cfg.Metrics,
		uploadAttempts: cfg.UploadAttempts,
		uploadBackoff:  cfg.UploadBackoff,
		writeTimeout:   cfg.WriteTimeout,
		now:            cfg.Now,
	}
	if co.metrics == nil {
		co.metrics = metrics.New("coordinator")
	}
	if co.uploadAttempts <= 0 {
		co.uploadAttempts = defaultUploadAttempts
	}
	if co.uploadBackoff <= 0 {
		co.uploadBackoff = defaultUploadBackoff
	}
	if co.writeTimeout <= 0 {
		co.writeTimeout = defaultWriteTimeout
	}
	if co.now == nil {
		co.now = time.Now
	}
	return co
}

// ledgerCtx detaches a ledger write from the caller and bounds it by the
// write timeout instead.
func (co *coordinator) ledgerCtx(c ctx.Ctx) (ctx.Ctx, context.CancelFunc) {
	return ctx.WithTimeout(ctx.Detach(c), co.writeTimeout)
}

func (co *coordinator) Create(c ctx.Ctx, req listing.CreateRequest) (*listing.SagaState, error) {
	duration, err := validateCreate(&req, co.now())
	if err != nil {
		c.WithField("err", err).Warn("invalid create request")
		return nil, err
	}

	defer co.metrics.BumpTime("saga.time").End()

	s := newSaga(co, req, duration)
	serr := s.run(c)
	st := s.State()
	if serr != nil {
		co.metrics.BumpSum("saga.err", 1, "step", string(serr.Step))
		if serr.NeedsOperator() {
			co.reportOrphan(c, req.Seller, serr)
		}
		return &st, serr
	}

	c.WithFields(log.Fields{
		"sagaId": st.Id,
		"key":    st.Key,
	}).Info("listing created")
	co.refresh(c)
	return &st, nil
}

func (co *coordinator) reportOrphan(c ctx.Ctx, seller domain.Address, serr *listing.SagaError) {
	co.metrics.BumpSum("orphan", 1)
	c.WithFields(log.Fields{
		"seller":  seller,
		"assetId": serr.AssetIdString(),
		"step":    serr.Step,
	}).Error("minted asset may not be listed")
	if co.notifier == nil {
		return
	}
	if err := co.notifier.NotifyOrphan(ctx.Detach(c), seller, serr); err != nil {
		c.WithField("err", err).Error("notifier.NotifyOrphan failed")
	}
}

func (co *coordinator) EndAuction(c ctx.Ctx, key listing.Key, from domain.Address) error {
	if key.Kind != listing.KindAuction {
		return listing.ErrKindMismatch(key, listing.KindAuction)
	}
	rec, err := co.ledger.Auction(c, key.Id)
	if err != nil {
		c.WithField("err", err).Error("ledger.Auction failed")
		return err
	}
	if rec.Settled {
		return domain.NewError(domain.ErrState, xerrors.Errorf("%s is already settled", key))
	}
	if co.now().Before(rec.EndTime) {
		return domain.NewError(domain.ErrState, xerrors.Errorf("%s ends at %s", key, rec.EndTime.Format(time.RFC3339)))
	}
	lc, cancel := co.ledgerCtx(c)
	defer cancel()
	if err := co.ledger.EndAuction(lc, from, key.Id); err != nil {
		c.WithField("err", err).Error("ledger.EndAuction failed")
		return err
	}
	co.refresh(c)
	return nil
}

func (co *coordinator) Purchase(c ctx.Ctx, key listing.Key, buyer domain.Address) error {
	if key.Kind != listing.KindItem {
		return listing.ErrKindMismatch(key, listing.KindItem)
	}
	rec, err := co.ledger.Item(c, key.Id)
	if err != nil {
		c.WithField("err", err).Error("ledger.Item failed")
		return err
	}
	if st := rec.Status(); st != listing.StatusActive {
		return domain.NewError(domain.ErrState, xerrors.Errorf("%s is %s", key, st))
	}
	total, err := co.ledger.TotalPrice(c, key.Id)
	if err != nil {
		c.WithField("err", err).Error("ledger.TotalPrice failed")
		return err
	}
	lc, cancel := co.ledgerCtx(c)
	defer cancel()
	if err := co.ledger.PurchaseItem(lc, buyer, key.Id, total); err != nil {
		c.WithField("err", err).Error("ledger.PurchaseItem failed")
		return err
	}
	c.WithFields(log.Fields{
		"key":   key,
		"buyer": buyer,
		"paid":  total,
	}).Info("item purchased")
	co.refresh(c)
	return nil
}

func (co *coordinator) Remove(c ctx.Ctx, key listing.Key, seller domain.Address) error {
	if key.Kind != listing.KindItem {
		return listing.ErrKindMismatch(key, listing.KindItem)
	}
	rec, err := co.ledger.Item(c, key.Id)
	if err != nil {
		c.WithField("err", err).Error("ledger.Item failed")
		return err
	}
	if st := rec.Status(); st != listing.StatusActive {
		return domain.NewError(domain.ErrState, xerrors.Errorf("%s is %s", key, st))
	}
	if !rec.Seller.Equals(seller) {
		return domain.NewError(domain.ErrState, xerrors.Errorf("%s is not listed by %s", key, seller))
	}
	lc, cancel := co.ledgerCtx(c)
	defer cancel()
	if err := co.ledger.RemoveItem(lc, seller, key.Id); err != nil {
		c.WithField("err", err).Error("ledger.RemoveItem failed")
		return err
	}
	co.refresh(c)
	return nil
}

// refresh rebuilds the view after a confirmed write. The write already
// happened, so a failed refresh is only logged.
func (co *coordinator) refresh(c ctx.Ctx) {
	if co.reconciler == nil {
		return
	}
	if err := co.reconciler.Refresh(c); err != nil {
		c.WithField("err", err).Warn("reconciler.Refresh failed")
	}
}
