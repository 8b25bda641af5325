package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain"
	listingMocks "github.com/x-xyz/collectibles/domain/listing/mocks"
	queryMocks "github.com/x-xyz/collectibles/service/query/mocks"
	redisMocks "github.com/x-xyz/collectibles/service/redis/mocks"
)

var mockCtx = ctx.Background()

type repoTestSuite struct {
	suite.Suite

	ledger *listingMocks.LedgerRepo
	redis  *redisMocks.Service
	mongo  *queryMocks.Mongo
}

func (s *repoTestSuite) SetupTest() {
	s.ledger = &listingMocks.LedgerRepo{}
	s.redis = &redisMocks.Service{}
	s.mongo = &queryMocks.Mongo{}
}

func (s *repoTestSuite) TearDownTest() {
	s.ledger.AssertExpectations(s.T())
	s.redis.AssertExpectations(s.T())
	s.mongo.AssertExpectations(s.T())
}

func TestRepoSuite(t *testing.T) {
	suite.Run(t, new(repoTestSuite))
}

func (s *repoTestSuite) TestPingAll() {
	s.ledger.On("ItemCount", mock.Anything).Return(uint64(3), nil).Once()
	s.mongo.On("Ping", mock.Anything).Return(nil).Once()
	s.redis.On("Ping", mock.Anything).Return(nil).Once()

	im := New(&RepoCfg{Ledger: s.ledger, Redis: s.redis, Mongo: s.mongo})
	s.NoError(im.Ping(mockCtx))
}

func (s *repoTestSuite) TestLedgerOnly() {
	s.ledger.On("ItemCount", mock.Anything).Return(uint64(0), nil).Once()

	im := New(&RepoCfg{Ledger: s.ledger})
	s.NoError(im.Ping(mockCtx))
}

func (s *repoTestSuite) TestLedgerDown() {
	s.ledger.On("ItemCount", mock.Anything).Return(uint64(0), errors.New("dial tcp")).Once()

	im := New(&RepoCfg{Ledger: s.ledger, Redis: s.redis, Mongo: s.mongo})
	s.ErrorIs(im.Ping(mockCtx), domain.ErrMarketplaceUnavailable)
}

func (s *repoTestSuite) TestRedisDown() {
	down := errors.New("connection refused")
	s.ledger.On("ItemCount", mock.Anything).Return(uint64(0), nil).Once()
	s.mongo.On("Ping", mock.Anything).Return(nil).Once()
	s.redis.On("Ping", mock.Anything).Return(down).Once()

	im := New(&RepoCfg{Ledger: s.ledger, Redis: s.redis, Mongo: s.mongo})
	s.ErrorIs(im.Ping(mockCtx), down)
}
