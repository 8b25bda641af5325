package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain/annotation"
	"github.com/x-xyz/collectibles/domain/annotation/mocks"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/domain/session"
	"github.com/x-xyz/collectibles/stores/session/repository"
)

var (
	mockCtx = ctx.Background()
	key     = listing.ItemKey(1)
	errDown = errors.New("down")
)

type likeTestSuite struct {
	suite.Suite
	repo    *mocks.Repo
	session session.Store
	im      annotation.Usecase
}

func (s *likeTestSuite) SetupTest() {
	s.repo = &mocks.Repo{}
	s.session = repository.NewFileStore("", 1)
	s.im = NewLikeUseCase(&LikeUseCaseCfg{Repo: s.repo, Session: s.session})
}

func (s *likeTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func TestLikeSuite(t *testing.T) {
	suite.Run(t, new(likeTestSuite))
}

func (s *likeTestSuite) TestAnnotate() {
	s.repo.On("GetLikes", mockCtx, key).Return(int64(4), nil).Once()
	likes, liked := s.im.Annotate(mockCtx, key)
	s.Equal(int64(4), likes)
	s.False(liked)

	s.Require().NoError(s.session.Set(mockCtx, key, session.Entry{Likes: 4, Liked: true}))
	s.repo.On("GetLikes", mockCtx, key).Return(int64(0), errDown).Once()
	likes, liked = s.im.Annotate(mockCtx, key)
	s.Zero(likes)
	s.True(liked)
}

func (s *likeTestSuite) TestToggle() {
	s.repo.On("GetLikes", mockCtx, key).Return(int64(4), nil).Once()
	s.repo.On("SetLikes", mockCtx, key, int64(5)).Return(nil).Once()
	likes, liked, err := s.im.Toggle(mockCtx, key)
	s.Require().NoError(err)
	s.Equal(int64(5), likes)
	s.True(liked)

	e, ok := s.session.Get(mockCtx, key)
	s.True(ok)
	s.Equal(session.Entry{Likes: 5, Liked: true}, e)

	s.repo.On("GetLikes", mockCtx, key).Return(int64(5), nil).Once()
	s.repo.On("SetLikes", mockCtx, key, int64(4)).Return(nil).Once()
	likes, liked, err = s.im.Toggle(mockCtx, key)
	s.Require().NoError(err)
	s.Equal(int64(4), likes)
	s.False(liked)
}

func (s *likeTestSuite) TestToggleWithStoreDown() {
	s.Require().NoError(s.session.Set(mockCtx, key, session.Entry{Likes: 2}))
	s.repo.On("GetLikes", mockCtx, key).Return(int64(0), errDown).Once()
	s.repo.On("SetLikes", mockCtx, key, int64(3)).Return(errDown).Once()

	likes, liked, err := s.im.Toggle(mockCtx, key)
	s.Require().NoError(err)
	s.Equal(int64(3), likes)
	s.True(liked)
}

func (s *likeTestSuite) TestUnlikeNeverNegative() {
	s.Require().NoError(s.session.Set(mockCtx, key, session.Entry{Likes: 0, Liked: true}))
	s.repo.On("GetLikes", mockCtx, key).Return(int64(0), nil).Once()
	s.repo.On("SetLikes", mockCtx, key, int64(0)).Return(nil).Once()

	likes, liked, err := s.im.Toggle(mockCtx, key)
	s.Require().NoError(err)
	s.Zero(likes)
	s.False(liked)
}
