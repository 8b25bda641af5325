package repository

import (
	"crypto/ecdsa"
	"math/big"
	"sync"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	contracts "github.com/x-xyz/collectibles/base/abi"
	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/ethereum"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/service/chain"
)

// Backend is satisfied by *ethclient.Client and the throttled wrapper around it
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

type EthereumLedgerCfg struct {
	Backend     Backend
	ChainId     *big.Int
	Marketplace domain.Address
	Nft         domain.Address
	Keys        []*ecdsa.PrivateKey
	// FromBlock bounds the Bought event scan of Purchases
	FromBlock uint64
}

type signer struct {
	mu   sync.Mutex
	opts *bind.TransactOpts
}

type ethereumLedger struct {
	backend     Backend
	chain       chain.Client
	marketplace common.Address
	nft         common.Address
	market      *bind.BoundContract
	nftContract *bind.BoundContract
	signers     map[domain.Address]*signer
	accounts    []domain.Address
	fromBlock   uint64
}

func NewEthereumLedger(cfg EthereumLedgerCfg) (listing.LedgerRepo, error) {
	l := &ethereumLedger{
		backend:     cfg.Backend,
		chain:       chain.NewClient(&chain.ClientCfg{Caller: cfg.Backend}),
		marketplace: ethereum.ToCommon(cfg.Marketplace),
		nft:         ethereum.ToCommon(cfg.Nft),
		signers:     map[domain.Address]*signer{},
		fromBlock:   cfg.FromBlock,
	}
	l.market = bind.NewBoundContract(l.marketplace, contracts.MarketplaceABI, cfg.Backend, cfg.Backend, cfg.Backend)
	l.nftContract = bind.NewBoundContract(l.nft, contracts.NftABI, cfg.Backend, cfg.Backend, cfg.Backend)

	for _, key := range cfg.Keys {
		opts, err := bind.NewKeyedTransactorWithChainID(key, cfg.ChainId)
		if err != nil {
			return nil, err
		}
		addr := ethereum.AddressOf(key)
		l.signers[addr] = &signer{opts: opts}
		l.accounts = append(l.accounts, addr)
	}
	return l, nil
}

func (l *ethereumLedger) Operator() domain.Address {
	return ethereum.ToDomain(l.marketplace)
}

func (l *ethereumLedger) Accounts() []domain.Address {
	return l.accounts
}

// transact sends one transaction and waits for its receipt. Sends of one
// account are serialized so that each picks up the next pending nonce.
func (l *ethereumLedger) transact(c ctx.Ctx, from domain.Address, contract *bind.BoundContract, value *big.Int, method string, params ...interface{}) (*types.Receipt, error) {
	s, ok := l.signers[from.ToLower()]
	if !ok {
		return nil, xerrors.Errorf("no signer for %s", from)
	}

	s.mu.Lock()
	opts := *s.opts
	opts.Context = c
	opts.Value = value
	tx, err := contract.Transact(&opts, method, params...)
	s.mu.Unlock()
	if err != nil {
		c.WithFields(log.Fields{
			"method": method,
			"from":   from,
			"err":    err,
		}).Error("contract.Transact failed")
		return nil, err
	}

	c = ctx.WithValue(c, "tx", tx.Hash().Hex())
	c.WithField("method", method).Info("transaction sent")

	receipt, err := bind.WaitMined(c, l.backend, tx)
	if err != nil {
		c.WithField("err", err).Error("bind.WaitMined failed")
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		c.WithField("method", method).Warn("transaction reverted")
		return nil, xerrors.Errorf("%s reverted in %s", method, tx.Hash().Hex())
	}
	return receipt, nil
}

func (l *ethereumLedger) Mint(c ctx.Ctx, from domain.Address, tokenURI string) (*big.Int, error) {
	receipt, err := l.transact(c, from, l.nftContract, nil, "mint", tokenURI)
	if err != nil {
		return nil, domain.NewError(domain.ErrMint, err)
	}
	id, err := mintedTokenId(receipt, l.nft)
	if err != nil {
		c.WithField("err", err).Error("mintedTokenId failed")
		return nil, domain.NewError(domain.ErrMint, err)
	}
	return id, nil
}

func (l *ethereumLedger) Approve(c ctx.Ctx, from domain.Address, operator domain.Address, assetId *big.Int) error {
	out, err := l.chain.Call(c, l.nft, contracts.NftABI, "isApprovedForAll", ethereum.ToCommon(from), ethereum.ToCommon(operator))
	if err != nil {
		return domain.NewError(domain.ErrApprove, err)
	}
	if approved, ok := out[0].(bool); ok && approved {
		return domain.ErrAlreadyApproved
	}
	if _, err := l.transact(c, from, l.nftContract, nil, "setApprovalForAll", ethereum.ToCommon(operator), true); err != nil {
		return domain.NewError(domain.ErrApprove, err)
	}
	return nil
}

func (l *ethereumLedger) ListFixed(c ctx.Ctx, from domain.Address, assetId *big.Int, price *big.Int) (uint64, error) {
	receipt, err := l.transact(c, from, l.market, nil, "makeItem", l.nft, assetId, price)
	if err != nil {
		return 0, domain.NewError(domain.ErrList, err)
	}
	id, err := eventId(receipt, l.marketplace, "Offered")
	if err != nil {
		return 0, domain.NewError(domain.ErrList, err)
	}
	return id, nil
}

func (l *ethereumLedger) CreateAuction(c ctx.Ctx, from domain.Address, assetId *big.Int, minBid *big.Int, duration time.Duration) (uint64, error) {
	receipt, err := l.transact(c, from, l.market, nil, "createAuction", l.nft, assetId, minBid, seconds(duration))
	if err != nil {
		return 0, domain.NewError(domain.ErrList, err)
	}
	id, err := eventId(receipt, l.marketplace, "AuctionCreated")
	if err != nil {
		return 0, domain.NewError(domain.ErrList, err)
	}
	return id, nil
}

func (l *ethereumLedger) CreateOpenBid(c ctx.Ctx, from domain.Address, assetId *big.Int, minBid *big.Int, basePrice *big.Int, duration time.Duration) (uint64, error) {
	receipt, err := l.transact(c, from, l.market, nil, "createOpenBid", l.nft, assetId, minBid, basePrice, seconds(duration))
	if err != nil {
		return 0, domain.NewError(domain.ErrList, err)
	}
	id, err := eventId(receipt, l.marketplace, "AuctionCreated")
	if err != nil {
		return 0, domain.NewError(domain.ErrList, err)
	}
	return id, nil
}

func (l *ethereumLedger) PurchaseItem(c ctx.Ctx, from domain.Address, itemId uint64, payment *big.Int) error {
	if _, err := l.transact(c, from, l.market, payment, "purchaseItem", new(big.Int).SetUint64(itemId)); err != nil {
		return domain.NewError(domain.ErrPurchase, err)
	}
	return nil
}

func (l *ethereumLedger) PlaceBid(c ctx.Ctx, from domain.Address, auctionId uint64, amount *big.Int) error {
	if _, err := l.transact(c, from, l.market, amount, "placeBid", new(big.Int).SetUint64(auctionId)); err != nil {
		return domain.NewError(domain.ErrBid, err)
	}
	return nil
}

func (l *ethereumLedger) RemoveItem(c ctx.Ctx, from domain.Address, itemId uint64) error {
	if _, err := l.transact(c, from, l.market, nil, "removeItem", new(big.Int).SetUint64(itemId)); err != nil {
		return domain.NewError(domain.ErrRemove, err)
	}
	return nil
}

func (l *ethereumLedger) EndAuction(c ctx.Ctx, from domain.Address, auctionId uint64) error {
	if _, err := l.transact(c, from, l.market, nil, "endAuction", new(big.Int).SetUint64(auctionId)); err != nil {
		return domain.NewError(domain.ErrSettle, err)
	}
	return nil
}

func (l *ethereumLedger) ItemCount(c ctx.Ctx) (uint64, error) {
	return l.count(c, "itemCount")
}

func (l *ethereumLedger) AuctionCount(c ctx.Ctx) (uint64, error) {
	return l.count(c, "auctionCount")
}

func (l *ethereumLedger) count(c ctx.Ctx, method string) (uint64, error) {
	out, err := l.chain.Call(c, l.marketplace, contracts.MarketplaceABI, method)
	if err != nil {
		return 0, domain.NewError(domain.ErrRead, err)
	}
	n, err := bigOutput(out, 0)
	if err != nil {
		return 0, domain.NewError(domain.ErrRead, err)
	}
	return n.Uint64(), nil
}

func (l *ethereumLedger) Item(c ctx.Ctx, itemId uint64) (*listing.ItemRecord, error) {
	out, err := l.chain.Call(c, l.marketplace, contracts.MarketplaceABI, "items", new(big.Int).SetUint64(itemId))
	if err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	r, err := itemFromOutputs(out)
	if err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	if r.ItemId != itemId {
		return nil, domain.NewError(domain.ErrRead, xerrors.Errorf("item %d: %w", itemId, domain.ErrNotFound))
	}
	return r, nil
}

func (l *ethereumLedger) Auction(c ctx.Ctx, auctionId uint64) (*listing.AuctionRecord, error) {
	out, err := l.chain.Call(c, l.marketplace, contracts.MarketplaceABI, "auctions", new(big.Int).SetUint64(auctionId))
	if err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	r, err := auctionFromOutputs(out)
	if err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	if r.AuctionId != auctionId {
		return nil, domain.NewError(domain.ErrRead, xerrors.Errorf("auction %d: %w", auctionId, domain.ErrNotFound))
	}
	return r, nil
}

func (l *ethereumLedger) TotalPrice(c ctx.Ctx, itemId uint64) (*big.Int, error) {
	out, err := l.chain.Call(c, l.marketplace, contracts.MarketplaceABI, "getTotalPrice", new(big.Int).SetUint64(itemId))
	if err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	p, err := bigOutput(out, 0)
	if err != nil {
		return nil, domain.NewError(domain.ErrRead, err)
	}
	return p, nil
}

func (l *ethereumLedger) TokenURI(c ctx.Ctx, assetId *big.Int) (string, error) {
	out, err := l.chain.Call(c, l.nft, contracts.NftABI, "tokenURI", assetId)
	if err != nil {
		return "", domain.NewError(domain.ErrRead, err)
	}
	uri, ok := out[0].(string)
	if !ok {
		return "", domain.NewError(domain.ErrRead, xerrors.Errorf("unexpected tokenURI output %T", out[0]))
	}
	return uri, nil
}

func (l *ethereumLedger) Purchases(c ctx.Ctx, buyer domain.Address) ([]uint64, error) {
	q := geth.FilterQuery{
		FromBlock: new(big.Int).SetUint64(l.fromBlock),
		Addresses: []common.Address{l.marketplace},
		Topics: [][]common.Hash{
			{contracts.MarketplaceABI.Events["Bought"].ID},
			nil,
			nil,
			{common.BytesToHash(ethereum.ToCommon(buyer).Bytes())},
		},
	}
	logs, err := l.backend.FilterLogs(c, q)
	if err != nil {
		c.WithField("err", err).Error("FilterLogs failed")
		return nil, domain.NewError(domain.ErrRead, err)
	}

	ids := make([]uint64, 0, len(logs))
	for i := range logs {
		if logs[i].Removed {
			continue
		}
		id, err := logId(&logs[i], "Bought")
		if err != nil {
			return nil, domain.NewError(domain.ErrRead, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seconds(d time.Duration) *big.Int {
	return big.NewInt(int64(d / time.Second))
}

// mintedTokenId reads the token id off the Transfer event from the zero
// address emitted by the nft contract.
func mintedTokenId(receipt *types.Receipt, nft common.Address) (*big.Int, error) {
	transfer := contracts.NftABI.Events["Transfer"].ID
	for _, lg := range receipt.Logs {
		if lg.Address != nft || len(lg.Topics) != 4 || lg.Topics[0] != transfer {
			continue
		}
		if lg.Topics[1] != (common.Hash{}) {
			continue
		}
		return new(big.Int).SetBytes(lg.Topics[3].Bytes()), nil
	}
	return nil, xerrors.New("no mint transfer in receipt")
}

// eventId returns the leading id argument of the first marketplace event
// with the given name.
func eventId(receipt *types.Receipt, marketplace common.Address, name string) (uint64, error) {
	ev := contracts.MarketplaceABI.Events[name]
	for _, lg := range receipt.Logs {
		if lg.Address != marketplace || len(lg.Topics) == 0 || lg.Topics[0] != ev.ID {
			continue
		}
		return logId(lg, name)
	}
	return 0, xerrors.Errorf("no %s event in receipt", name)
}

func logId(lg *types.Log, name string) (uint64, error) {
	out, err := contracts.MarketplaceABI.Unpack(name, lg.Data)
	if err != nil {
		return 0, err
	}
	id, err := bigOutput(out, 0)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

func bigOutput(out []interface{}, i int) (*big.Int, error) {
	if len(out) <= i {
		return nil, xerrors.Errorf("missing output %d", i)
	}
	n, ok := out[i].(*big.Int)
	if !ok {
		return nil, xerrors.Errorf("output %d is %T, not *big.Int", i, out[i])
	}
	return n, nil
}

func itemFromOutputs(out []interface{}) (*listing.ItemRecord, error) {
	if len(out) != 7 {
		return nil, xerrors.Errorf("items returned %d outputs", len(out))
	}
	ints := map[int]*big.Int{}
	for _, i := range []int{0, 2, 3} {
		n, err := bigOutput(out, i)
		if err != nil {
			return nil, err
		}
		ints[i] = n
	}
	nft, ok1 := out[1].(common.Address)
	seller, ok2 := out[4].(common.Address)
	sold, ok3 := out[5].(bool)
	removed, ok4 := out[6].(bool)
	if !(ok1 && ok2 && ok3 && ok4) {
		return nil, xerrors.New("unexpected items output types")
	}
	return &listing.ItemRecord{
		ItemId:  ints[0].Uint64(),
		Nft:     ethereum.ToDomain(nft),
		TokenId: ints[2],
		Price:   ints[3],
		Seller:  ethereum.ToDomain(seller),
		Sold:    sold,
		Removed: removed,
	}, nil
}

func auctionFromOutputs(out []interface{}) (*listing.AuctionRecord, error) {
	if len(out) != 12 {
		return nil, xerrors.Errorf("auctions returned %d outputs", len(out))
	}
	ints := map[int]*big.Int{}
	for _, i := range []int{0, 2, 4, 5, 6, 7, 8} {
		n, err := bigOutput(out, i)
		if err != nil {
			return nil, err
		}
		ints[i] = n
	}
	nft, ok1 := out[1].(common.Address)
	seller, ok2 := out[3].(common.Address)
	bidder, ok3 := out[9].(common.Address)
	ended, ok4 := out[10].(bool)
	openBid, ok5 := out[11].(bool)
	if !(ok1 && ok2 && ok3 && ok4 && ok5) {
		return nil, xerrors.New("unexpected auctions output types")
	}
	r := &listing.AuctionRecord{
		AuctionId:  ints[0].Uint64(),
		Nft:        ethereum.ToDomain(nft),
		TokenId:    ints[2],
		Seller:     ethereum.ToDomain(seller),
		MinBid:     ints[4],
		BasePrice:  ints[5],
		StartTime:  time.Unix(ints[6].Int64(), 0).UTC(),
		EndTime:    time.Unix(ints[7].Int64(), 0).UTC(),
		HighestBid: ints[8],
		Settled:    ended,
		OpenBid:    openBid,
	}
	if bidder != (common.Address{}) {
		r.HighestBidder = ethereum.ToDomain(bidder)
	}
	return r, nil
}
