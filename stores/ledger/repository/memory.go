package repository

import (
	"math/big"
	"sync"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/ptr"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/listing"
)

const (
	OpMint          = "mint"
	OpApprove       = "approve"
	OpListFixed     = "listFixed"
	OpCreateAuction = "createAuction"
	OpCreateOpenBid = "createOpenBid"
	OpPurchaseItem  = "purchaseItem"
	OpPlaceBid      = "placeBid"
	OpRemoveItem    = "removeItem"
	OpEndAuction    = "endAuction"
	OpRead          = "read"
)

type MemoryLedgerCfg struct {
	Operator domain.Address
	Nft      domain.Address
	// Accounts the ledger signs for. Empty accepts any sender.
	Accounts []domain.Address
	// FeePercent is added on top of the item price by TotalPrice
	FeePercent int64
	Now        func() time.Time
}

type token struct {
	owner domain.Address
	uri   string
}

// MemoryLedger is an in process marketplace and nft contract pair. It keeps
// the contract rules so that callers see the same rejections they would see
// on chain.
type MemoryLedger struct {
	mu sync.Mutex

	operator   domain.Address
	nft        domain.Address
	accounts   []domain.Address
	feePercent int64
	now        func() time.Time

	tokens    []*token
	approvals map[domain.Address]map[domain.Address]bool
	items     []*listing.ItemRecord
	auctions  []*listing.AuctionRecord
	purchases map[domain.Address][]uint64
	failures  map[string]error
	badReads  map[listing.Key]error
}

func NewMemoryLedger(cfg MemoryLedgerCfg) *MemoryLedger {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Operator.IsEmpty() {
		cfg.Operator = "0x00000000000000000000000000000000000000aa"
	}
	if cfg.Nft.IsEmpty() {
		cfg.Nft = "0x00000000000000000000000000000000000000bb"
	}
	return &MemoryLedger{
		operator:   cfg.Operator.ToLower(),
		nft:        cfg.Nft.ToLower(),
		accounts:   cfg.Accounts,
		feePercent: cfg.FeePercent,
		now:        cfg.Now,
		approvals:  map[domain.Address]map[domain.Address]bool{},
		purchases:  map[domain.Address][]uint64{},
		failures:   map[string]error{},
		badReads:   map[listing.Key]error{},
	}
}

// FailNext makes the next call of op fail with err before touching state
func (m *MemoryLedger) FailNext(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

// FailReads makes every read of key fail with err until called with a nil err
func (m *MemoryLedger) FailReads(key listing.Key, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.badReads, key)
		return
	}
	m.badReads[key] = err
}

func (m *MemoryLedger) injected(op string) error {
	if err, ok := m.failures[op]; ok {
		delete(m.failures, op)
		return err
	}
	return nil
}

func (m *MemoryLedger) Operator() domain.Address {
	return m.operator
}

func (m *MemoryLedger) Accounts() []domain.Address {
	return m.accounts
}

// OwnerOf returns the current holder of a token, the operator while listed
func (m *MemoryLedger) OwnerOf(assetId *big.Int) (domain.Address, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.token(assetId)
	if err != nil {
		return "", false
	}
	return t.owner, true
}

func (m *MemoryLedger) Mint(c ctx.Ctx, from domain.Address, tokenURI string) (*big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpMint); err != nil {
		return nil, domain.NewError(domain.ErrMint, err)
	}
	if err := m.checkSender(from); err != nil {
		return nil, domain.NewError(domain.ErrMint, err)
	}
	if tokenURI == "" {
		return nil, domain.NewError(domain.ErrMint, xerrors.New("empty token uri"))
	}
	m.tokens = append(m.tokens, &token{owner: from.ToLower(), uri: tokenURI})
	return big.NewInt(int64(len(m.tokens))), nil
}

func (m *MemoryLedger) Approve(c ctx.Ctx, from domain.Address, operator domain.Address, assetId *big.Int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpApprove); err != nil {
		return domain.NewError(domain.ErrApprove, err)
	}
	if err := m.checkSender(from); err != nil {
		return domain.NewError(domain.ErrApprove, err)
	}
	// approval covers every token of the owner, escrowed ones included
	owner, op := from.ToLower(), operator.ToLower()
	if m.approvals[owner][op] {
		return domain.ErrAlreadyApproved
	}
	if err := m.checkOwner(from, assetId); err != nil {
		return domain.NewError(domain.ErrApprove, err)
	}
	if m.approvals[owner] == nil {
		m.approvals[owner] = map[domain.Address]bool{}
	}
	m.approvals[owner][op] = true
	return nil
}

func (m *MemoryLedger) ListFixed(c ctx.Ctx, from domain.Address, assetId *big.Int, price *big.Int) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpListFixed); err != nil {
		return 0, domain.NewError(domain.ErrList, err)
	}
	if price == nil || price.Sign() <= 0 {
		return 0, domain.NewError(domain.ErrList, xerrors.New("price must be greater than zero"))
	}
	if err := m.escrow(from, assetId); err != nil {
		return 0, domain.NewError(domain.ErrList, err)
	}
	id := uint64(len(m.items) + 1)
	m.items = append(m.items, &listing.ItemRecord{
		ItemId:  id,
		Nft:     m.nft,
		TokenId: new(big.Int).Set(assetId),
		Price:   new(big.Int).Set(price),
		Seller:  from.ToLower(),
	})
	return id, nil
}

func (m *MemoryLedger) CreateAuction(c ctx.Ctx, from domain.Address, assetId *big.Int, minBid *big.Int, duration time.Duration) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpCreateAuction); err != nil {
		return 0, domain.NewError(domain.ErrList, err)
	}
	return m.createAuction(from, assetId, minBid, nil, duration)
}

func (m *MemoryLedger) CreateOpenBid(c ctx.Ctx, from domain.Address, assetId *big.Int, minBid *big.Int, basePrice *big.Int, duration time.Duration) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpCreateOpenBid); err != nil {
		return 0, domain.NewError(domain.ErrList, err)
	}
	if basePrice == nil || basePrice.Sign() <= 0 {
		return 0, domain.NewError(domain.ErrList, xerrors.New("base price must be greater than zero"))
	}
	return m.createAuction(from, assetId, minBid, basePrice, duration)
}

func (m *MemoryLedger) createAuction(from domain.Address, assetId, minBid, basePrice *big.Int, duration time.Duration) (uint64, error) {
	if minBid == nil || minBid.Sign() <= 0 {
		return 0, domain.NewError(domain.ErrList, xerrors.New("minimum bid must be greater than zero"))
	}
	if duration < time.Second {
		return 0, domain.NewError(domain.ErrList, xerrors.New("duration must be greater than zero"))
	}
	if err := m.escrow(from, assetId); err != nil {
		return 0, domain.NewError(domain.ErrList, err)
	}
	now := m.now().Truncate(time.Second)
	id := uint64(len(m.auctions) + 1)
	r := &listing.AuctionRecord{
		AuctionId:  id,
		Nft:        m.nft,
		TokenId:    new(big.Int).Set(assetId),
		Seller:     from.ToLower(),
		MinBid:     new(big.Int).Set(minBid),
		BasePrice:  new(big.Int),
		StartTime:  now,
		EndTime:    now.Add(duration.Truncate(time.Second)),
		HighestBid: new(big.Int),
	}
	if basePrice != nil {
		r.BasePrice.Set(basePrice)
		r.OpenBid = true
	}
	m.auctions = append(m.auctions, r)
	return id, nil
}

func (m *MemoryLedger) PurchaseItem(c ctx.Ctx, from domain.Address, itemId uint64, payment *big.Int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpPurchaseItem); err != nil {
		return domain.NewError(domain.ErrPurchase, err)
	}
	if err := m.checkSender(from); err != nil {
		return domain.NewError(domain.ErrPurchase, err)
	}
	it, err := m.item(itemId)
	if err != nil {
		return domain.NewError(domain.ErrPurchase, err)
	}
	if it.Sold || it.Removed {
		return domain.NewError(domain.ErrPurchase, xerrors.New("item not for sale"))
	}
	if payment == nil || payment.Cmp(m.totalPrice(it)) < 0 {
		return domain.NewError(domain.ErrPurchase, xerrors.New("not enough ether to cover item price and market fee"))
	}
	it.Sold = true
	m.tokens[it.TokenId.Int64()-1].owner = from.ToLower()
	m.purchases[from.ToLower()] = append(m.purchases[from.ToLower()], itemId)
	return nil
}

func (m *MemoryLedger) PlaceBid(c ctx.Ctx, from domain.Address, auctionId uint64, amount *big.Int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpPlaceBid); err != nil {
		return domain.NewError(domain.ErrBid, err)
	}
	if err := m.checkSender(from); err != nil {
		return domain.NewError(domain.ErrBid, err)
	}
	a, err := m.auction(auctionId)
	if err != nil {
		return domain.NewError(domain.ErrBid, err)
	}
	switch a.Phase(m.now()) {
	case listing.PhaseEnded:
		return domain.NewError(domain.ErrBid, xerrors.New("auction already ended"))
	case listing.PhasePending:
		return domain.NewError(domain.ErrBid, xerrors.New("auction not started"))
	}
	if amount == nil || amount.Cmp(a.MinBid) < 0 {
		return domain.NewError(domain.ErrBid, xerrors.New("bid below minimum"))
	}
	if amount.Cmp(a.HighestBid) <= 0 {
		return domain.NewError(domain.ErrBid, xerrors.New("there already is a higher bid"))
	}
	a.HighestBid = new(big.Int).Set(amount)
	a.HighestBidder = from.ToLower()
	return nil
}

func (m *MemoryLedger) RemoveItem(c ctx.Ctx, from domain.Address, itemId uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpRemoveItem); err != nil {
		return domain.NewError(domain.ErrRemove, err)
	}
	it, err := m.item(itemId)
	if err != nil {
		return domain.NewError(domain.ErrRemove, err)
	}
	if !it.Seller.Equals(from) {
		return domain.NewError(domain.ErrRemove, xerrors.New("only the seller can remove an item"))
	}
	if it.Sold || it.Removed {
		return domain.NewError(domain.ErrRemove, xerrors.New("item not for sale"))
	}
	it.Removed = true
	m.tokens[it.TokenId.Int64()-1].owner = it.Seller
	return nil
}

func (m *MemoryLedger) EndAuction(c ctx.Ctx, from domain.Address, auctionId uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpEndAuction); err != nil {
		return domain.NewError(domain.ErrSettle, err)
	}
	if err := m.checkSender(from); err != nil {
		return domain.NewError(domain.ErrSettle, err)
	}
	a, err := m.auction(auctionId)
	if err != nil {
		return domain.NewError(domain.ErrSettle, err)
	}
	if a.Settled {
		return domain.NewError(domain.ErrSettle, xerrors.New("auction already settled"))
	}
	if m.now().Before(a.EndTime) {
		return domain.NewError(domain.ErrSettle, xerrors.New("auction not yet ended"))
	}
	a.Settled = true
	winner := a.Seller
	if a.HasBid() {
		winner = a.HighestBidder
	}
	m.tokens[a.TokenId.Int64()-1].owner = winner
	return nil
}

func (m *MemoryLedger) ItemCount(c ctx.Ctx) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpRead); err != nil {
		return 0, domain.NewError(domain.ErrRead, err)
	}
	return uint64(len(m.items)), nil
}

func (m *MemoryLedger) AuctionCount(c ctx.Ctx) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpRead); err != nil {
		return 0, domain.NewError(domain.ErrRead, err)
	}
	return uint64(len(m.auctions)), nil
}

func (m *MemoryLedger) Item(c ctx.Ctx, itemId uint64) (*listing.ItemRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpRead); err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	if err := m.badReads[listing.ItemKey(itemId)]; err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	it, err := m.item(itemId)
	if err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	cp := *it
	cp.TokenId = ptr.Copy(it.TokenId)
	cp.Price = ptr.Copy(it.Price)
	return &cp, nil
}

func (m *MemoryLedger) Auction(c ctx.Ctx, auctionId uint64) (*listing.AuctionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected(OpRead); err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	if err := m.badReads[listing.AuctionKey(auctionId)]; err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	a, err := m.auction(auctionId)
	if err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	cp := *a
	cp.TokenId = ptr.Copy(a.TokenId)
	cp.MinBid = ptr.Copy(a.MinBid)
	cp.BasePrice = ptr.Copy(a.BasePrice)
	cp.HighestBid = ptr.Copy(a.HighestBid)
	return &cp, nil
}

func (m *MemoryLedger) TotalPrice(c ctx.Ctx, itemId uint64) (*big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, err := m.item(itemId)
	if err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	return m.totalPrice(it), nil
}

func (m *MemoryLedger) TokenURI(c ctx.Ctx, assetId *big.Int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.token(assetId)
	if err != nil {
		return "", domain.NewError(domain.ErrRead, err)
	}
	return t.uri, nil
}

func (m *MemoryLedger) Purchases(c ctx.Ctx, buyer domain.Address) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint64(nil), m.purchases[buyer.ToLower()]...), nil
}

func (m *MemoryLedger) totalPrice(it *listing.ItemRecord) *big.Int {
	total := new(big.Int).Mul(it.Price, big.NewInt(100+m.feePercent))
	return total.Div(total, big.NewInt(100))
}

func (m *MemoryLedger) checkSender(from domain.Address) error {
	if from.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if len(m.accounts) == 0 {
		return nil
	}
	for _, a := range m.accounts {
		if a.Equals(from) {
			return nil
		}
	}
	return xerrors.Errorf("no signer for %s", from)
}

func (m *MemoryLedger) checkOwner(from domain.Address, assetId *big.Int) error {
	if err := m.checkSender(from); err != nil {
		return err
	}
	t, err := m.token(assetId)
	if err != nil {
		return err
	}
	if !t.owner.Equals(from) {
		return xerrors.Errorf("%s does not own token %s", from, assetId)
	}
	return nil
}

// escrow moves the token from its owner to the marketplace
func (m *MemoryLedger) escrow(from domain.Address, assetId *big.Int) error {
	if err := m.checkOwner(from, assetId); err != nil {
		return err
	}
	if !m.approvals[from.ToLower()][m.operator] {
		return xerrors.New("transfer caller is not owner nor approved")
	}
	m.tokens[assetId.Int64()-1].owner = m.operator
	return nil
}

func (m *MemoryLedger) token(assetId *big.Int) (*token, error) {
	if assetId == nil || assetId.Sign() <= 0 || assetId.Cmp(big.NewInt(int64(len(m.tokens)))) > 0 {
		return nil, xerrors.Errorf("token %s: %w", assetId, domain.ErrNotFound)
	}
	return m.tokens[assetId.Int64()-1], nil
}

func (m *MemoryLedger) item(id uint64) (*listing.ItemRecord, error) {
	if id == 0 || id > uint64(len(m.items)) {
		return nil, xerrors.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return m.items[id-1], nil
}

func (m *MemoryLedger) auction(id uint64) (*listing.AuctionRecord, error) {
	if id == 0 || id > uint64(len(m.auctions)) {
		return nil, xerrors.Errorf("auction %d: %w", id, domain.ErrNotFound)
	}
	return m.auctions[id-1], nil
}
