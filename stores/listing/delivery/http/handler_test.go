package http

import (
	"bytes"
	"math/big"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/domain/listing/mocks"
	"github.com/x-xyz/collectibles/service/cache/provider"
	"github.com/x-xyz/collectibles/service/cache/provider/primitive"
)

const (
	seller = "0x1111111111111111111111111111111111111111"
	bidder = "0x3333333333333333333333333333333333333333"
)

var oneUnit = big.NewInt(1000000000000000000)

type handlerTestSuite struct {
	suite.Suite

	coordinator *mocks.Coordinator
	reconciler  *mocks.Reconciler
	e           *echo.Echo
}

func (s *handlerTestSuite) SetupTest() {
	s.coordinator = &mocks.Coordinator{}
	s.reconciler = &mocks.Reconciler{}
	s.e = s.newEcho()
}

func (s *handlerTestSuite) TearDownTest() {
	s.coordinator.AssertExpectations(s.T())
	s.reconciler.AssertExpectations(s.T())
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerTestSuite))
}

func (s *handlerTestSuite) newEcho(layers ...provider.Provider) *echo.Echo {
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, &HandlerCfg{
		Coordinator: s.coordinator,
		Reconciler:  s.reconciler,
		CacheLayers: layers,
	})
	return e
}

func (s *handlerTestSuite) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func (s *handlerTestSuite) multipartRequest(fields map[string]string, file []byte) *http.Request {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		s.Require().NoError(w.WriteField(k, v))
	}
	if file != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="file"; filename="cat.png"`)
		h.Set(echo.HeaderContentType, "image/png")
		part, err := w.CreatePart(h)
		s.Require().NoError(err)
		_, err = part.Write(file)
		s.Require().NoError(err)
	}
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, "/listings", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func (s *handlerTestSuite) TestCreate() {
	png := []byte("\x89PNG\r\n\x1a\n")
	s.coordinator.On("Create", mock.Anything, mock.MatchedBy(func(req listing.CreateRequest) bool {
		return req.Name == "cat" &&
			req.Seller == domain.Address(seller) &&
			req.SaleKind == listing.SaleKindFixedPrice &&
			req.Price.Cmp(new(big.Int).Mul(big.NewInt(3), oneUnit)) == 0 &&
			req.MinBid == nil &&
			req.Asset.Name == "cat.png" &&
			req.Asset.ContentType == "image/png" &&
			bytes.Equal(req.Asset.Data, png)
	})).Return(&listing.SagaState{
		Id:  "saga",
		Key: &listing.Key{Kind: listing.KindItem, Id: 7},
	}, nil).Once()

	rec := s.do(s.multipartRequest(map[string]string{
		"name":     "cat",
		"seller":   seller,
		"saleKind": "fixedPrice",
		"price":    "3",
	}, png))
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), `"key":{"kind":"item","id":7}`)
}

func (s *handlerTestSuite) TestCreateCollectsFormErrors() {
	rec := s.do(s.multipartRequest(map[string]string{
		"name":     "cat",
		"seller":   seller,
		"saleKind": "auction",
		"minBid":   "1",
		"end":      "tomorrow",
		"price":    "1",
		"priceWei": "1000",
	}, nil))
	s.Equal(http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	s.Contains(body, `"field":"price"`)
	s.Contains(body, `"field":"end"`)
	s.Contains(body, `"field":"file"`)
}

func (s *handlerTestSuite) TestCreateReportsOrphan() {
	serr := &listing.SagaError{
		Step:            listing.SagaStepList,
		Err:             domain.NewError(domain.ErrList, xerrors.New("reverted")),
		OrphanedAssetId: big.NewInt(42),
	}
	s.coordinator.On("Create", mock.Anything, mock.Anything).Return(nil, serr).Once()

	rec := s.do(s.multipartRequest(map[string]string{
		"name":     "cat",
		"seller":   seller,
		"saleKind": "fixedPrice",
		"priceWei": "1000",
	}, []byte("\x89PNG\r\n\x1a\n")))
	s.Equal(http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	s.Contains(body, `"step":"list"`)
	s.Contains(body, `"partial":true`)
	s.Contains(body, `"orphanedAssetId":"42"`)
}

func (s *handlerTestSuite) TestView() {
	q := listing.Query{Category: "art", SaleKind: listing.SaleKindAuction, Sort: listing.SortPriceAsc}
	s.reconciler.On("View", mock.Anything, q).Return([]*listing.Listing{
		{Key: listing.AuctionKey(1), Status: listing.StatusActive},
	}, nil).Once()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/listings?category=art&saleKind=auction&sort=price_asc", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"kind":"auction"`)
}

func (s *handlerTestSuite) TestViewUnavailable() {
	s.reconciler.On("View", mock.Anything, listing.Query{}).
		Return(nil, domain.NewError(domain.ErrMarketplaceUnavailable, xerrors.New("dial tcp"))).Once()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/listings", nil))
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *handlerTestSuite) TestCountdown() {
	s.reconciler.On("Countdown").Return(map[listing.Key]time.Duration{
		listing.AuctionKey(2): 90*time.Second + 500*time.Millisecond,
	}).Once()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/listings/countdown", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"auction/2":90`)
}

func (s *handlerTestSuite) TestGetInvalidKey() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/listings/offer/0", nil))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), `"field":"kind"`)
	s.Contains(rec.Body.String(), `"field":"id"`)
}

func (s *handlerTestSuite) TestPlaceBid() {
	amount := new(big.Int).Mul(big.NewInt(2), oneUnit)
	s.coordinator.On("PlaceBid", mock.Anything, listing.AuctionKey(3), mock.MatchedBy(func(v *big.Int) bool {
		return v.Cmp(amount) == 0
	}), domain.Address(bidder)).Return(&listing.Listing{
		Key:           listing.AuctionKey(3),
		HighestBid:    amount,
		HighestBidder: bidder,
	}, nil).Once()

	rec := s.do(jsonRequest(http.MethodPost, "/listings/auction/3/bids", `{"from":"`+bidder+`","amount":"2"}`))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"highestBid":2000000000000000000`)
}

func (s *handlerTestSuite) TestPlaceBidTooLow() {
	s.coordinator.On("PlaceBid", mock.Anything, listing.AuctionKey(3), mock.Anything, domain.Address(bidder)).
		Return(nil, domain.ErrBidTooLow).Once()

	rec := s.do(jsonRequest(http.MethodPost, "/listings/auction/3/bids", `{"from":"`+bidder+`","amountWei":"5"}`))
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *handlerTestSuite) TestPlaceBidRequiresAmount() {
	rec := s.do(jsonRequest(http.MethodPost, "/listings/auction/3/bids", `{"from":"`+bidder+`"}`))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), `"field":"amount"`)
}

func (s *handlerTestSuite) TestPurchase() {
	s.coordinator.On("Purchase", mock.Anything, listing.ItemKey(4), domain.Address(bidder)).Return(nil).Once()

	rec := s.do(jsonRequest(http.MethodPost, "/listings/item/4/purchase", `{"from":"`+bidder+`"}`))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *handlerTestSuite) TestPurchaseRequiresFrom() {
	rec := s.do(jsonRequest(http.MethodPost, "/listings/item/4/purchase", `{}`))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), `"field":"from"`)
}

func (s *handlerTestSuite) TestEndAuctionTooEarly() {
	s.coordinator.On("EndAuction", mock.Anything, listing.AuctionKey(1), domain.Address(seller)).
		Return(xerrors.Errorf("auction still running: %w", domain.ErrState)).Once()

	rec := s.do(jsonRequest(http.MethodPost, "/listings/auction/1/end", `{"from":"`+seller+`"}`))
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *handlerTestSuite) TestRemove() {
	s.coordinator.On("Remove", mock.Anything, listing.ItemKey(5), domain.Address(seller)).Return(nil).Once()

	rec := s.do(jsonRequest(http.MethodDelete, "/listings/item/5", `{"from":"`+seller+`"}`))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *handlerTestSuite) TestLike() {
	s.reconciler.On("Like", mock.Anything, listing.ItemKey(6)).Return(&listing.Listing{
		Key:       listing.ItemKey(6),
		LikeCount: 1,
		LikedByMe: true,
	}, nil).Once()

	rec := s.do(httptest.NewRequest(http.MethodPost, "/listings/item/6/like", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"likedByMe":true`)
}

func (s *handlerTestSuite) TestSellerListings() {
	s.reconciler.On("SellerListings", mock.Anything, domain.Address(seller)).Return(&listing.SellerListings{
		Listed: []*listing.Listing{{Key: listing.ItemKey(1)}},
		Sold:   []*listing.Listing{},
	}, nil).Once()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/accounts/"+seller+"/listings", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"sold":[]`)
}

func (s *handlerTestSuite) TestInvalidAccount() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/accounts/0x123/listings", nil))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerTestSuite) TestPurchasesAreCached() {
	s.e = s.newEcho(primitive.NewPrimitive("listingHandlerTest", 1))
	s.reconciler.On("Purchases", mock.Anything, domain.Address(bidder)).Return([]*listing.Listing{
		{Key: listing.ItemKey(9), Status: listing.StatusSold},
	}, nil).Once()

	for i := 0; i < 2; i++ {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/accounts/"+bidder+"/purchases", nil))
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"status":"sold"`)
	}
}
