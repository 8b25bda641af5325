package http

import (
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/xerrors"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/delivery"
	"github.com/x-xyz/collectibles/base/ptr"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/middleware"
	"github.com/x-xyz/collectibles/service/cache/provider"
)

const (
	maxAssetSize  = 32 << 20
	purchasesTTL  = 5 * time.Second
	assetFormName = "file"
)

type HandlerCfg struct {
	Coordinator listing.Coordinator
	Reconciler  listing.Reconciler
	// CacheLayers backs the account purchases cache. Nothing is cached
	// when empty.
	CacheLayers []provider.Provider
}

type handler struct {
	coordinator listing.Coordinator
	reconciler  listing.Reconciler
}

func New(e *echo.Echo, cfg *HandlerCfg) {
	h := &handler{
		coordinator: cfg.Coordinator,
		reconciler:  cfg.Reconciler,
	}

	gs := e.Group("/listings")

	gs.POST("", h.create)

	gs.GET("", h.view)

	gs.GET("/countdown", h.countdown)

	g := gs.Group("/:kind/:id")

	g.GET("", h.get)

	g.POST("/purchase", h.purchase)

	g.POST("/bids", h.placeBid)

	g.POST("/end", h.endAuction)

	g.DELETE("", h.remove)

	g.POST("/like", h.like)

	ga := e.Group("/accounts/:address", middleware.IsValidAddress("address"))

	ga.GET("/listings", h.sellerListings)

	if len(cfg.CacheLayers) > 0 {
		ga.GET("/purchases", h.purchases, middleware.CacheHttp(purchasesTTL, cfg.CacheLayers...))
	} else {
		ga.GET("/purchases", h.purchases)
	}
}

// createForm carries the non file fields of a listing upload. Amounts are
// given either in whole units (price, minBid) or in wei (priceWei, minBidWei).
type createForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Seller      string `form:"seller"`
	SaleKind    string `form:"saleKind"`
	Price       string `form:"price"`
	PriceWei    string `form:"priceWei"`
	MinBid      string `form:"minBid"`
	MinBidWei   string `form:"minBidWei"`
	Start       string `form:"start"`
	End         string `form:"end"`
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	f := &createForm{}
	if err := c.Bind(f); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	verr := &domain.ValidationError{}
	req := listing.CreateRequest{
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Seller:      domain.Address(f.Seller).ToLower(),
		SaleKind:    listing.SaleKind(f.SaleKind),
		Price:       parseAmountField(verr, "price", f.Price, f.PriceWei),
		MinBid:      parseAmountField(verr, "minBid", f.MinBid, f.MinBidWei),
		Start:       parseTimeField(verr, "start", f.Start),
		End:         parseTimeField(verr, "end", f.End),
	}

	asset, err := readAsset(c)
	if err != nil {
		verr.Add(assetFormName, err.Error())
	} else {
		req.Asset = *asset
	}

	if err := verr.OrNil(); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	state, err := h.coordinator.Create(ctx, req)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, state)
}

func readAsset(c echo.Context) (*domain.Asset, error) {
	fh, err := c.FormFile(assetFormName)
	if err != nil {
		return nil, err
	}
	if fh.Size > maxAssetSize {
		return nil, xerrors.Errorf("asset is larger than %d bytes", maxAssetSize)
	}
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAssetSize))
	if err != nil {
		return nil, err
	}
	return &domain.Asset{
		Name:        fh.Filename,
		Data:        data,
		ContentType: fh.Header.Get(echo.HeaderContentType),
	}, nil
}

func parseAmountField(verr *domain.ValidationError, field, units, wei string) *big.Int {
	var (
		v   *big.Int
		err error
	)
	switch {
	case units != "" && wei != "":
		verr.Addf(field, "give either %s or %sWei", field, field)
		return nil
	case units != "":
		v, err = listing.ParseAmount(units)
	case wei != "":
		v, err = listing.ParseWei(wei)
	default:
		return nil
	}
	if err != nil {
		verr.Addf(field, "invalid amount: %v", err)
		return nil
	}
	return v
}

func parseTimeField(verr *domain.ValidationError, field, v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		verr.Addf(field, "invalid time %q", v)
		return nil
	}
	return ptr.Time(t)
}

func (h *handler) view(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	q := listing.Query{}
	if err := c.Bind(&q); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.reconciler.View(ctx, q)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) countdown(c echo.Context) error {
	remaining := h.reconciler.Countdown()
	res := make(map[string]int64, len(remaining))
	for k, d := range remaining {
		res[k.String()] = int64(d / time.Second)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	key, err := listing.ParseKey(c.Param("kind"), c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.reconciler.Get(ctx, key)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

type actorBody struct {
	From string `json:"from"`
}

// bindActor reads the listing key and the acting address of a mutation
func bindActor(c echo.Context, body interface{}, from func() string) (listing.Key, domain.Address, error) {
	key, err := listing.ParseKey(c.Param("kind"), c.Param("id"))
	if err != nil {
		return listing.Key{}, "", err
	}
	if err := c.Bind(body); err != nil {
		return listing.Key{}, "", domain.NewError(domain.ErrValidation, err)
	}
	addr := domain.Address(from()).ToLower()
	if addr.IsEmpty() {
		verr := &domain.ValidationError{}
		verr.Add("from", "required")
		return listing.Key{}, "", verr
	}
	return key, addr, nil
}

func (h *handler) purchase(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	body := &actorBody{}
	key, buyer, err := bindActor(c, body, func() string { return body.From })
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.coordinator.Purchase(ctx, key, buyer); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, key)
}

type bidBody struct {
	From      string `json:"from"`
	Amount    string `json:"amount"`
	AmountWei string `json:"amountWei"`
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	body := &bidBody{}
	key, bidder, err := bindActor(c, body, func() string { return body.From })
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	verr := &domain.ValidationError{}
	amount := parseAmountField(verr, "amount", body.Amount, body.AmountWei)
	if amount == nil && !verr.Has("amount") {
		verr.Add("amount", "required")
	}
	if err := verr.OrNil(); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.coordinator.PlaceBid(ctx, key, amount, bidder)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

func (h *handler) endAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	body := &actorBody{}
	key, from, err := bindActor(c, body, func() string { return body.From })
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.coordinator.EndAuction(ctx, key, from); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, key)
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	body := &actorBody{}
	key, seller, err := bindActor(c, body, func() string { return body.From })
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.coordinator.Remove(ctx, key, seller); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, key)
}

func (h *handler) like(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	key, err := listing.ParseKey(c.Param("kind"), c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.reconciler.Like(ctx, key)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

func (h *handler) sellerListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	seller := domain.Address(c.Param("address")).ToLower()

	res, err := h.reconciler.SellerListings(ctx, seller)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) purchases(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	buyer := domain.Address(c.Param("address")).ToLower()

	res, err := h.reconciler.Purchases(ctx, buyer)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
