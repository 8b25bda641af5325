package usecase

import (
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/collectibles/base/backoff"
	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/listing"
)

// saga is one run of the create-and-list flow. It is not reusable: a saga
// that stopped can only be retried with a new one from the first step.
type saga struct {
	id       string
	req      listing.CreateRequest
	duration time.Duration
	co       *coordinator
	state    listing.SagaState
}

func newSaga(co *coordinator, req listing.CreateRequest, duration time.Duration) *saga {
	id := uuid.NewString()
	return &saga{
		id:       id,
		req:      req,
		duration: duration,
		co:       co,
		state:    listing.SagaState{Id: id},
	}
}

// State returns a copy of the progress so far
func (s *saga) State() listing.SagaState {
	st := s.state
	st.Completed = append([]listing.SagaStep(nil), s.state.Completed...)
	return st
}

func (s *saga) run(c ctx.Ctx) *listing.SagaError {
	c = ctx.WithValue(c, "sagaId", s.id)
	for _, step := range listing.SagaSteps {
		if err := c.Err(); err != nil {
			c.WithField("step", step).Warn("saga cancelled")
			serr := s.fail(step, err)
			serr.Cancelled = true
			return serr
		}

		res := s.exec(c, step)
		if !res.Ok() {
			c.WithFields(log.Fields{
				"step": step,
				"err":  res.Err,
			}).Error("saga step failed")
			return s.fail(step, res.Err)
		}
		s.apply(res)
		c.WithField("step", step).Info("saga step done")
	}
	return nil
}

func (s *saga) exec(c ctx.Ctx, step listing.SagaStep) listing.StepResult {
	switch step {
	case listing.SagaStepPutAsset:
		return s.putAsset(c)
	case listing.SagaStepPutMetadata:
		return s.putMetadata(c)
	case listing.SagaStepMint:
		return s.onLedger(c, s.mint)
	case listing.SagaStepApprove:
		return s.onLedger(c, s.approve)
	case listing.SagaStepList:
		return s.onLedger(c, s.list)
	}
	return listing.StepResult{Step: step, Err: errors.New("unknown saga step")}
}

func (s *saga) onLedger(c ctx.Ctx, step func(ctx.Ctx) listing.StepResult) listing.StepResult {
	lc, cancel := s.co.ledgerCtx(c)
	defer cancel()
	return step(lc)
}

func (s *saga) apply(res listing.StepResult) {
	switch res.Step {
	case listing.SagaStepPutAsset:
		s.state.AssetLocator = res.Locator
	case listing.SagaStepPutMetadata:
		s.state.MetadataLocator = res.Locator
	case listing.SagaStepMint:
		s.state.AssetId = res.AssetId
	case listing.SagaStepList:
		s.state.Key = res.Key
	}
	s.state.Completed = append(s.state.Completed, res.Step)
}

func (s *saga) fail(step listing.SagaStep, err error) *listing.SagaError {
	serr := &listing.SagaError{Step: step, Err: err}
	if s.state.AssetId != nil {
		serr.OrphanedAssetId = new(big.Int).Set(s.state.AssetId)
	}
	return serr
}

// upload retries content store writes. Nothing is on the ledger yet, so a
// repeated write at worst leaves an unreferenced object behind.
func (s *saga) upload(c ctx.Ctx, step listing.SagaStep, fn func() (string, error)) listing.StepResult {
	var locator string
	b := backoff.NewExponential(s.co.uploadBackoff, s.co.uploadBackoff*8)
	err := b.Retry(c, s.co.uploadAttempts, retryableUpload, func(attempt int) error {
		l, err := fn()
		if err != nil {
			c.WithFields(log.Fields{
				"step":    step,
				"attempt": attempt,
				"err":     err,
			}).Warn("upload attempt failed")
			return err
		}
		locator = l
		return nil
	})
	return listing.StepResult{Step: step, Locator: locator, Err: err}
}

func retryableUpload(err error) bool {
	return !errors.Is(err, domain.ErrValidation)
}

func (s *saga) putAsset(c ctx.Ctx) listing.StepResult {
	return s.upload(c, listing.SagaStepPutAsset, func() (string, error) {
		return s.co.content.PutAsset(c, s.req.Asset)
	})
}

func (s *saga) putMetadata(c ctx.Ctx) listing.StepResult {
	md := domain.Metadata{
		Name:        s.req.Name,
		Description: s.req.Description,
		Image:       s.state.AssetLocator,
		Creator:     s.req.Seller,
		Category:    s.req.Category,
	}
	return s.upload(c, listing.SagaStepPutMetadata, func() (string, error) {
		return s.co.content.PutMetadata(c, md)
	})
}

func (s *saga) mint(c ctx.Ctx) listing.StepResult {
	id, err := s.co.ledger.Mint(c, s.req.Seller, s.state.MetadataLocator)
	return listing.StepResult{Step: listing.SagaStepMint, AssetId: id, Err: err}
}

func (s *saga) approve(c ctx.Ctx) listing.StepResult {
	err := s.co.ledger.Approve(c, s.req.Seller, s.co.ledger.Operator(), s.state.AssetId)
	if errors.Is(err, domain.ErrAlreadyApproved) {
		c.Info("operator already approved")
		err = nil
	}
	return listing.StepResult{Step: listing.SagaStepApprove, Err: err}
}

func (s *saga) list(c ctx.Ctx) listing.StepResult {
	var (
		id  uint64
		err error
	)
	switch s.req.SaleKind {
	case listing.SaleKindFixedPrice:
		id, err = s.co.ledger.ListFixed(c, s.req.Seller, s.state.AssetId, s.req.Price)
	case listing.SaleKindAuction:
		id, err = s.co.ledger.CreateAuction(c, s.req.Seller, s.state.AssetId, s.req.MinBid, s.duration)
	case listing.SaleKindOpenBid:
		id, err = s.co.ledger.CreateOpenBid(c, s.req.Seller, s.state.AssetId, s.req.MinBid, s.req.Price, s.duration)
	default:
		err = domain.NewError(domain.ErrList, errors.New("unknown sale kind "+string(s.req.SaleKind)))
	}
	if err != nil {
		return listing.StepResult{Step: listing.SagaStepList, Err: err}
	}
	key := listing.Key{Kind: s.req.SaleKind.LedgerKind(), Id: id}
	return listing.StepResult{Step: listing.SagaStepList, Key: &key}
}
