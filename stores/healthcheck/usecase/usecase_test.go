package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain/healthcheck/mocks"
)

func TestCheck(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	down := errors.New("down")

	repo := &mocks.HealthCheckRepo{}
	repo.On("Ping", c).Return(nil).Once()
	repo.On("Ping", c).Return(down).Once()

	im := New(repo)
	req.NoError(im.Check(c))
	req.ErrorIs(im.Check(c), down)
	repo.AssertExpectations(t)
}
