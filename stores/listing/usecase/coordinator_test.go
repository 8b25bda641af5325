package usecase

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/ptr"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/domain/mocks"
	"github.com/x-xyz/collectibles/stores/ledger/repository"
)

type coordinatorTestSuite struct {
	suite.Suite

	clock    *testClock
	ledger   *repository.MemoryLedger
	content  *fakeContent
	notifier *fakeNotifier
	rec      listing.Reconciler
	im       listing.Coordinator
}

func (s *coordinatorTestSuite) SetupTest() {
	s.clock = newTestClock()
	s.ledger = repository.NewMemoryLedger(repository.MemoryLedgerCfg{
		FeePercent: 1,
		Now:        s.clock.Now,
	})
	s.content = newFakeContent()
	s.notifier = &fakeNotifier{}
	s.rec = NewReconciler(&ReconcilerCfg{
		Ledger:  s.ledger,
		Content: s.content,
		Now:     s.clock.Now,
	})
	s.im = s.newCoordinator(s.ledger, s.content)
}

func (s *coordinatorTestSuite) newCoordinator(ledger listing.LedgerRepo, content domain.ContentStore) listing.Coordinator {
	return NewCoordinator(&CoordinatorCfg{
		Ledger:         ledger,
		Content:        content,
		Reconciler:     s.rec,
		Notifier:       s.notifier,
		UploadAttempts: 3,
		UploadBackoff:  time.Millisecond,
		Now:            s.clock.Now,
	})
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(coordinatorTestSuite))
}

func (s *coordinatorTestSuite) fixedRequest(name string, price *big.Int) listing.CreateRequest {
	return listing.CreateRequest{
		Name:     name,
		Category: "art",
		Seller:   seller,
		SaleKind: listing.SaleKindFixedPrice,
		Asset:    domain.Asset{Name: name + ".png", Data: pngData},
		Price:    price,
	}
}

func (s *coordinatorTestSuite) auctionRequest(minBid *big.Int, d time.Duration) listing.CreateRequest {
	return listing.CreateRequest{
		Name:     "Dawn",
		Seller:   seller,
		SaleKind: listing.SaleKindAuction,
		Asset:    domain.Asset{Name: "dawn.png", Data: pngData},
		MinBid:   minBid,
		Start:    ptr.Time(s.clock.Now()),
		End:      ptr.Time(s.clock.Now().Add(d)),
	}
}

func (s *coordinatorTestSuite) createAuction(minBid *big.Int, d time.Duration) listing.Key {
	st, err := s.im.Create(mockCtx, s.auctionRequest(minBid, d))
	s.Require().NoError(err)
	return *st.Key
}

func (s *coordinatorTestSuite) TestCreateFixedPriceListing() {
	before, err := s.ledger.ItemCount(mockCtx)
	s.Require().NoError(err)

	st, err := s.im.Create(mockCtx, s.fixedRequest("Sunset", oneUnit))
	s.Require().NoError(err)
	s.Equal(listing.SagaSteps, st.Completed)
	s.Equal(listing.ItemKey(1), *st.Key)
	s.NotEmpty(st.Id)

	after, err := s.ledger.ItemCount(mockCtx)
	s.Require().NoError(err)
	s.Equal(before+1, after)

	l, err := s.rec.Get(mockCtx, *st.Key)
	s.Require().NoError(err)
	s.Equal(listing.StatusActive, l.Status)
	s.Equal(listing.SaleKindFixedPrice, l.SaleKind)
	s.Equal("Sunset", l.Metadata.Name)
	s.Equal(st.AssetLocator, l.Metadata.Image)
	s.Equal(seller, l.Metadata.Creator)
	s.Equal(st.MetadataLocator, l.MetadataLocator)
	s.Equal("1010000000000000000", l.TotalPrice.String())
}

func (s *coordinatorTestSuite) TestSagaStepsRunInOrder() {
	ordered := &orderedLedger{MemoryLedger: s.ledger, content: s.content}
	im := s.newCoordinator(ordered, s.content)

	s.Require().NotPanics(func() {
		_, err := im.Create(mockCtx, s.fixedRequest("Sunset", oneUnit))
		s.Require().NoError(err)
	})
	s.Equal([]string{"mint", "approve", "list"}, ordered.seen)
	s.Equal([]string{"putAsset", "putMetadata"}, s.content.calls)
}

func (s *coordinatorTestSuite) TestApprovalIsIdempotent() {
	first, err := s.im.Create(mockCtx, s.fixedRequest("One", oneUnit))
	s.Require().NoError(err)

	second, err := s.im.Create(mockCtx, s.fixedRequest("Two", oneUnit))
	s.Require().NoError(err)
	s.Equal(first.Completed, second.Completed)
	s.Equal(listing.ItemKey(2), *second.Key)

	err = s.ledger.Approve(mockCtx, seller, s.ledger.Operator(), second.AssetId)
	s.ErrorIs(err, domain.ErrAlreadyApproved)
}

func (s *coordinatorTestSuite) TestValidationCollectsEverything() {
	req := listing.CreateRequest{
		Seller:   "not an address",
		SaleKind: listing.SaleKindOpenBid,
		Asset:    domain.Asset{Name: "notes.txt", Data: []byte("plain text")},
		MinBid:   big.NewInt(0),
		Start:    ptr.Time(s.clock.Now()),
		End:      ptr.Time(s.clock.Now().Add(-time.Hour)),
	}

	_, err := s.im.Create(mockCtx, req)
	s.Require().ErrorIs(err, domain.ErrValidation)

	var verr *domain.ValidationError
	s.Require().True(errors.As(err, &verr))
	for _, field := range []string{"name", "seller", "asset", "price", "minBid", "end"} {
		s.True(verr.Has(field), field)
	}
	s.Zero(s.content.callCount())
}

func (s *coordinatorTestSuite) TestValidationRejectsSubSecondDuration() {
	req := s.auctionRequest(oneUnit, 500*time.Millisecond)

	_, err := s.im.Create(mockCtx, req)
	s.Require().ErrorIs(err, domain.ErrValidation)
	s.Zero(s.content.callCount())

	count, err := s.ledger.AuctionCount(mockCtx)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *coordinatorTestSuite) TestUploadIsRetried() {
	content := &mocks.ContentStore{}
	defer content.AssertExpectations(s.T())
	content.On("PutAsset", mock.Anything, mock.Anything).Return("", domain.ErrUpload).Once()
	content.On("PutAsset", mock.Anything, mock.Anything).Return("ipfs://asset", nil).Once()
	content.On("PutMetadata", mock.Anything, mock.MatchedBy(func(md domain.Metadata) bool {
		return md.Image == "ipfs://asset"
	})).Return("ipfs://meta", nil).Once()

	st, err := s.newCoordinator(s.ledger, content).Create(mockCtx, s.fixedRequest("Sunset", oneUnit))
	s.Require().NoError(err)
	s.Equal("ipfs://asset", st.AssetLocator)

	uri, err := s.ledger.TokenURI(mockCtx, st.AssetId)
	s.Require().NoError(err)
	s.Equal("ipfs://meta", uri)
}

func (s *coordinatorTestSuite) TestUploadExhausted() {
	content := &mocks.ContentStore{}
	defer content.AssertExpectations(s.T())
	content.On("PutAsset", mock.Anything, mock.Anything).Return("ipfs://asset", nil).Once()
	content.On("PutMetadata", mock.Anything, mock.Anything).Return("", domain.ErrUpload).Times(3)

	st, err := s.newCoordinator(s.ledger, content).Create(mockCtx, s.fixedRequest("Sunset", oneUnit))
	s.Require().ErrorIs(err, domain.ErrUpload)

	var serr *listing.SagaError
	s.Require().True(errors.As(err, &serr))
	s.Equal(listing.SagaStepPutMetadata, serr.Step)
	s.True(serr.Retryable())
	s.False(serr.Orphaned())
	s.Equal([]listing.SagaStep{listing.SagaStepPutAsset}, st.Completed)
	s.Empty(s.notifier.errs)
}

func (s *coordinatorTestSuite) TestListFailureReportsOrphan() {
	s.ledger.FailNext(repository.OpListFixed, errors.New("out of gas"))

	st, err := s.im.Create(mockCtx, s.fixedRequest("Sunset", oneUnit))
	s.Require().ErrorIs(err, domain.ErrList)

	var serr *listing.SagaError
	s.Require().True(errors.As(err, &serr))
	s.Equal(listing.SagaStepList, serr.Step)
	s.True(serr.Partial())
	s.Require().True(serr.Orphaned())
	s.Equal(int64(1), serr.OrphanedAssetId.Int64())
	s.Nil(st.Key)

	s.Require().Len(s.notifier.errs, 1)
	s.Equal(seller, s.notifier.seller)

	owner, ok := s.ledger.OwnerOf(serr.OrphanedAssetId)
	s.Require().True(ok)
	s.True(owner.Equals(seller))
}

func (s *coordinatorTestSuite) TestMintFailureNeedsOperator() {
	s.ledger.FailNext(repository.OpMint, errors.New("receipt timeout"))

	_, err := s.im.Create(mockCtx, s.fixedRequest("Sunset", oneUnit))
	s.Require().ErrorIs(err, domain.ErrMint)

	var serr *listing.SagaError
	s.Require().True(errors.As(err, &serr))
	s.True(serr.Partial())
	s.False(serr.Orphaned())
	s.True(serr.MintUnconfirmed())
	s.Equal("unknown", serr.AssetIdString())

	s.Require().Len(s.notifier.errs, 1)
	s.Equal(listing.SagaStepMint, s.notifier.errs[0].Step)
	s.Equal(seller, s.notifier.seller)
}

// createWithin runs Create and fails the test if it has not returned after d
func (s *coordinatorTestSuite) createWithin(d time.Duration, im listing.Coordinator, c ctx.Ctx, req listing.CreateRequest) error {
	done := make(chan error, 1)
	go func() {
		_, err := im.Create(c, req)
		done <- err
	}()
	select {
	case err := <-done:
		return err
	case <-time.After(d):
		s.FailNow("Create did not return", "still blocked after %s", d)
		return nil
	}
}

func (s *coordinatorTestSuite) stuckCoordinator(ledger listing.LedgerRepo) listing.Coordinator {
	return NewCoordinator(&CoordinatorCfg{
		Ledger:         ledger,
		Content:        s.content,
		Reconciler:     s.rec,
		Notifier:       s.notifier,
		UploadAttempts: 1,
		UploadBackoff:  time.Millisecond,
		WriteTimeout:   50 * time.Millisecond,
		Now:            s.clock.Now,
	})
}

func (s *coordinatorTestSuite) TestUnminedMintTimesOut() {
	im := s.stuckCoordinator(&stuckLedger{MemoryLedger: s.ledger, mint: true})

	err := s.createWithin(3*time.Second, im, mockCtx, s.fixedRequest("Sunset", oneUnit))
	s.Require().ErrorIs(err, domain.ErrMint)
	s.ErrorIs(err, context.DeadlineExceeded)

	var serr *listing.SagaError
	s.Require().True(errors.As(err, &serr))
	s.Equal(listing.SagaStepMint, serr.Step)
	s.False(serr.Cancelled)
	s.Require().Len(s.notifier.errs, 1)
}

func (s *coordinatorTestSuite) TestUnminedListingTimesOut() {
	im := s.stuckCoordinator(&stuckLedger{MemoryLedger: s.ledger, list: true})

	err := s.createWithin(3*time.Second, im, mockCtx, s.fixedRequest("Sunset", oneUnit))
	s.Require().ErrorIs(err, domain.ErrList)
	s.ErrorIs(err, context.DeadlineExceeded)

	var serr *listing.SagaError
	s.Require().True(errors.As(err, &serr))
	s.True(serr.Orphaned())
	s.Require().Len(s.notifier.errs, 1)
	s.Equal(int64(1), s.notifier.errs[0].OrphanedAssetId.Int64())
}

func (s *coordinatorTestSuite) TestUnminedPurchaseTimesOut() {
	st, err := s.im.Create(mockCtx, s.fixedRequest("Sunset", oneUnit))
	s.Require().NoError(err)

	im := s.stuckCoordinator(&stuckLedger{MemoryLedger: s.ledger, purchase: true})
	done := make(chan error, 1)
	go func() { done <- im.Purchase(mockCtx, *st.Key, buyer) }()
	select {
	case err := <-done:
		s.ErrorIs(err, domain.ErrPurchase)
		s.ErrorIs(err, context.DeadlineExceeded)
	case <-time.After(3 * time.Second):
		s.FailNow("Purchase did not return")
	}
}

func (s *coordinatorTestSuite) TestCancelStopsBeforeNextStep() {
	c, cancel := ctx.WithCancel(mockCtx)
	defer cancel()
	s.content.onPutMeta = cancel

	st, err := s.im.Create(c, s.fixedRequest("Sunset", oneUnit))
	s.Require().ErrorIs(err, context.Canceled)

	var serr *listing.SagaError
	s.Require().True(errors.As(err, &serr))
	s.Equal(listing.SagaStepMint, serr.Step)
	s.True(serr.Cancelled)
	s.True(serr.Retryable())
	s.Equal([]listing.SagaStep{listing.SagaStepPutAsset, listing.SagaStepPutMetadata}, st.Completed)

	_, minted := s.ledger.OwnerOf(big.NewInt(1))
	s.False(minted)
	s.Empty(s.notifier.errs)
}

func (s *coordinatorTestSuite) TestBidBelowMinimumOrTiedIsRejected() {
	minBid := big.NewInt(100)
	key := s.createAuction(minBid, time.Hour)

	_, err := s.im.PlaceBid(mockCtx, key, big.NewInt(99), bidder)
	s.ErrorIs(err, domain.ErrBidTooLow)

	l, err := s.im.PlaceBid(mockCtx, key, minBid, bidder)
	s.Require().NoError(err)
	s.Equal("100", l.HighestBid.String())
	s.True(l.HighestBidder.Equals(bidder))

	_, err = s.im.PlaceBid(mockCtx, key, minBid, buyer)
	s.ErrorIs(err, domain.ErrBidTooLow)
}

func (s *coordinatorTestSuite) TestBidsStrictlyIncrease() {
	key := s.createAuction(big.NewInt(5), time.Hour)

	amounts := []int64{5, 3, 6, 6, 10, 9, 11}
	var highs []int64
	for _, a := range amounts {
		before, err := s.ledger.Auction(mockCtx, key.Id)
		s.Require().NoError(err)

		_, err = s.im.PlaceBid(mockCtx, key, big.NewInt(a), bidder)

		after, rerr := s.ledger.Auction(mockCtx, key.Id)
		s.Require().NoError(rerr)
		if err != nil {
			s.ErrorIs(err, domain.ErrBidTooLow)
			s.Zero(before.HighestBid.Cmp(after.HighestBid))
			continue
		}
		highs = append(highs, after.HighestBid.Int64())
	}

	s.Equal([]int64{5, 6, 10, 11}, highs)
	for i := 1; i < len(highs); i++ {
		s.Greater(highs[i], highs[i-1])
	}
}

func (s *coordinatorTestSuite) TestBidAfterEndIsRejected() {
	key := s.createAuction(big.NewInt(5), time.Hour)

	s.clock.Advance(time.Hour)
	_, err := s.im.PlaceBid(mockCtx, key, big.NewInt(50), bidder)
	s.ErrorIs(err, domain.ErrListingEnded)
	s.ErrorIs(err, domain.ErrState)
}

func (s *coordinatorTestSuite) TestBidLandingAfterEndIsRejected() {
	hooked := &hookLedger{MemoryLedger: s.ledger}
	im := s.newCoordinator(hooked, s.content)
	key := s.createAuction(big.NewInt(5), time.Hour)

	s.clock.Advance(time.Hour - time.Second)
	hooked.beforeBid = func() { s.clock.Advance(time.Second) }

	_, err := im.PlaceBid(mockCtx, key, big.NewInt(50), bidder)
	s.ErrorIs(err, domain.ErrListingEnded)

	rec, err := s.ledger.Auction(mockCtx, key.Id)
	s.Require().NoError(err)
	s.False(rec.HasBid())
}

func (s *coordinatorTestSuite) TestBidOnItem() {
	st, err := s.im.Create(mockCtx, s.fixedRequest("Sunset", oneUnit))
	s.Require().NoError(err)

	_, err = s.im.PlaceBid(mockCtx, *st.Key, oneUnit, bidder)
	s.ErrorIs(err, domain.ErrState)
}

func (s *coordinatorTestSuite) TestBidLedgerFailure() {
	key := s.createAuction(big.NewInt(5), time.Hour)
	s.ledger.FailNext(repository.OpPlaceBid, errors.New("replacement underpriced"))

	_, err := s.im.PlaceBid(mockCtx, key, big.NewInt(50), bidder)
	s.ErrorIs(err, domain.ErrBid)
	s.False(errors.Is(err, domain.ErrState))
}

func (s *coordinatorTestSuite) TestPurchaseSellsOnce() {
	st, err := s.im.Create(mockCtx, s.fixedRequest("Sunset", oneUnit))
	s.Require().NoError(err)

	s.Require().NoError(s.im.Purchase(mockCtx, *st.Key, buyer))
	owner, _ := s.ledger.OwnerOf(st.AssetId)
	s.True(owner.Equals(buyer))

	err = s.im.Purchase(mockCtx, *st.Key, bidder)
	s.ErrorIs(err, domain.ErrState)

	view, err := s.rec.View(mockCtx, listing.Query{})
	s.Require().NoError(err)
	s.Empty(view)
}

func (s *coordinatorTestSuite) TestPurchaseAuction() {
	key := s.createAuction(big.NewInt(5), time.Hour)

	err := s.im.Purchase(mockCtx, key, buyer)
	s.ErrorIs(err, domain.ErrState)
}

func (s *coordinatorTestSuite) TestRemove() {
	st, err := s.im.Create(mockCtx, s.fixedRequest("Sunset", oneUnit))
	s.Require().NoError(err)

	err = s.im.Remove(mockCtx, *st.Key, buyer)
	s.ErrorIs(err, domain.ErrState)

	s.Require().NoError(s.im.Remove(mockCtx, *st.Key, seller))
	rec, err := s.ledger.Item(mockCtx, st.Key.Id)
	s.Require().NoError(err)
	s.True(rec.Removed)

	err = s.im.Remove(mockCtx, *st.Key, seller)
	s.ErrorIs(err, domain.ErrState)

	key := s.createAuction(big.NewInt(5), time.Hour)
	err = s.im.Remove(mockCtx, key, seller)
	s.ErrorIs(err, domain.ErrState)
}

func (s *coordinatorTestSuite) TestEndAuction() {
	st, err := s.im.Create(mockCtx, s.auctionRequest(big.NewInt(5), time.Hour))
	s.Require().NoError(err)
	key := *st.Key

	_, err = s.im.PlaceBid(mockCtx, key, big.NewInt(7), bidder)
	s.Require().NoError(err)

	err = s.im.EndAuction(mockCtx, key, seller)
	s.ErrorIs(err, domain.ErrState)

	s.clock.Advance(time.Hour)
	s.Require().NoError(s.im.EndAuction(mockCtx, key, seller))

	owner, _ := s.ledger.OwnerOf(st.AssetId)
	s.True(owner.Equals(bidder))

	err = s.im.EndAuction(mockCtx, key, seller)
	s.ErrorIs(err, domain.ErrState)
}

func TestCheckBid(t *testing.T) {
	start := time.Date(2022, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := &listing.AuctionRecord{
		AuctionId:  1,
		MinBid:     big.NewInt(10),
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		HighestBid: big.NewInt(0),
	}
	withBid := *rec
	withBid.HighestBid = big.NewInt(20)
	settled := *rec
	settled.Settled = true

	tests := []struct {
		name   string
		rec    *listing.AuctionRecord
		now    time.Time
		amount int64
		err    error
	}{
		{name: "pending", rec: rec, now: start.Add(-time.Second), amount: 10, err: domain.ErrState},
		{name: "ended", rec: rec, now: start.Add(time.Hour), amount: 10, err: domain.ErrListingEnded},
		{name: "settled", rec: &settled, now: start, amount: 10, err: domain.ErrListingEnded},
		{name: "below min", rec: rec, now: start, amount: 9, err: domain.ErrBidTooLow},
		{name: "at min", rec: rec, now: start, amount: 10},
		{name: "tie", rec: &withBid, now: start, amount: 20, err: domain.ErrBidTooLow},
		{name: "above", rec: &withBid, now: start, amount: 21},
	}
	for _, tt := range tests {
		err := checkBid(tt.rec, tt.now, big.NewInt(tt.amount))
		if tt.err == nil {
			require.NoError(t, err, tt.name)
			continue
		}
		require.ErrorIs(t, err, tt.err, tt.name)
	}
}
