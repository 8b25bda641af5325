package usecase

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/stores/ledger/repository"
)

const (
	seller = domain.Address("0x1111111111111111111111111111111111111111")
	buyer  = domain.Address("0x2222222222222222222222222222222222222222")
	bidder = domain.Address("0x3333333333333333333333333333333333333333")
)

var (
	mockCtx = ctx.Background()
	oneUnit = big.NewInt(1000000000000000000)
	pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
)

// fakeContent keeps metadata documents in memory under ipfs style locators
type fakeContent struct {
	mu        sync.Mutex
	seq       int
	docs      map[string]domain.Metadata
	failing   map[string]error
	calls     []string
	onPutMeta func()
}

func newFakeContent() *fakeContent {
	return &fakeContent{
		docs:    map[string]domain.Metadata{},
		failing: map[string]error{},
	}
}

func (f *fakeContent) PutAsset(c ctx.Ctx, asset domain.Asset) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.calls = append(f.calls, "putAsset")
	return fmt.Sprintf("ipfs://asset-%d", f.seq), nil
}

func (f *fakeContent) PutMetadata(c ctx.Ctx, md domain.Metadata) (string, error) {
	f.mu.Lock()
	f.seq++
	f.calls = append(f.calls, "putMetadata")
	locator := fmt.Sprintf("ipfs://meta-%d", f.seq)
	f.docs[locator] = md
	hook := f.onPutMeta
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return locator, nil
}

func (f *fakeContent) Resolve(c ctx.Ctx, locator string) (*domain.Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failing[locator]; err != nil {
		return nil, domain.NewError(domain.ErrResolve, err)
	}
	md, ok := f.docs[locator]
	if !ok {
		return nil, domain.NewError(domain.ErrResolve, domain.ErrNotFound)
	}
	return &md, nil
}

func (f *fakeContent) put(locator string, md domain.Metadata) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[locator] = md
}

func (f *fakeContent) fail(locator string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[locator] = err
}

func (f *fakeContent) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// orderedLedger records the saga's ledger calls next to the content calls
// and panics on the first one that arrives out of order.
type orderedLedger struct {
	*repository.MemoryLedger
	content *fakeContent
	seen    []string
}

func (o *orderedLedger) expect(step string) {
	o.content.mu.Lock()
	calls := append([]string(nil), o.content.calls...)
	o.content.mu.Unlock()

	all := append(calls, o.seen...)
	want := []string{"putAsset", "putMetadata", "mint", "approve", "list"}
	if len(all) >= len(want) || want[len(all)] != step {
		panic(fmt.Sprintf("%s called after %v", step, all))
	}
	o.seen = append(o.seen, step)
}

func (o *orderedLedger) Mint(c ctx.Ctx, from domain.Address, tokenURI string) (*big.Int, error) {
	o.expect("mint")
	return o.MemoryLedger.Mint(c, from, tokenURI)
}

func (o *orderedLedger) Approve(c ctx.Ctx, from domain.Address, operator domain.Address, assetId *big.Int) error {
	o.expect("approve")
	return o.MemoryLedger.Approve(c, from, operator, assetId)
}

func (o *orderedLedger) ListFixed(c ctx.Ctx, from domain.Address, assetId *big.Int, price *big.Int) (uint64, error) {
	o.expect("list")
	return o.MemoryLedger.ListFixed(c, from, assetId, price)
}

// hookLedger runs beforeBid right before the bid reaches the ledger
type hookLedger struct {
	*repository.MemoryLedger
	beforeBid func()
}

func (h *hookLedger) PlaceBid(c ctx.Ctx, from domain.Address, auctionId uint64, amount *big.Int) error {
	if h.beforeBid != nil {
		h.beforeBid()
	}
	return h.MemoryLedger.PlaceBid(c, from, auctionId, amount)
}

// stuckLedger holds the chosen writes until their context is done, the way a
// transaction that is never mined keeps a receipt wait going.
type stuckLedger struct {
	*repository.MemoryLedger
	mint     bool
	list     bool
	purchase bool
}

func (l *stuckLedger) Mint(c ctx.Ctx, from domain.Address, tokenURI string) (*big.Int, error) {
	if l.mint {
		<-c.Done()
		return nil, domain.NewError(domain.ErrMint, c.Err())
	}
	return l.MemoryLedger.Mint(c, from, tokenURI)
}

func (l *stuckLedger) ListFixed(c ctx.Ctx, from domain.Address, assetId *big.Int, price *big.Int) (uint64, error) {
	if l.list {
		<-c.Done()
		return 0, domain.NewError(domain.ErrList, c.Err())
	}
	return l.MemoryLedger.ListFixed(c, from, assetId, price)
}

func (l *stuckLedger) PurchaseItem(c ctx.Ctx, from domain.Address, itemId uint64, payment *big.Int) error {
	if l.purchase {
		<-c.Done()
		return domain.NewError(domain.ErrPurchase, c.Err())
	}
	return l.MemoryLedger.PurchaseItem(c, from, itemId, payment)
}

type fakeNotifier struct {
	seller domain.Address
	errs   []*listing.SagaError
}

func (f *fakeNotifier) NotifyOrphan(c ctx.Ctx, seller domain.Address, serr *listing.SagaError) error {
	f.seller = seller
	f.errs = append(f.errs, serr)
	return nil
}

// testClock is read by the countdown goroutine while tests move it
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2022, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
