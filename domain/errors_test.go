package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestListingEndedIsStateError(t *testing.T) {
	req := require.New(t)
	req.True(errors.Is(ErrListingEnded, ErrState))
	req.False(errors.Is(ErrState, ErrListingEnded))

	wrapped := xerrors.Errorf("bid on auction/1: %w", ErrListingEnded)
	req.True(errors.Is(wrapped, ErrListingEnded))
	req.True(errors.Is(wrapped, ErrState))
}

func TestError(t *testing.T) {
	req := require.New(t)
	err := NewError(ErrMint, context.DeadlineExceeded)
	req.True(errors.Is(err, ErrMint))
	req.True(errors.Is(err, context.DeadlineExceeded))
	req.False(errors.Is(err, ErrList))
	req.Equal("mint failed: context deadline exceeded", err.Error())

	req.Equal(ErrMint, NewError(ErrMint, nil))

	err = NewError(ErrListingEnded, errors.New("reverted"))
	req.True(errors.Is(err, ErrState))
}

func TestValidationError(t *testing.T) {
	req := require.New(t)
	verr := &ValidationError{}
	req.NoError(verr.OrNil())

	verr.Add("name", "is required")
	verr.Addf("price", "must be greater than %d", 0)
	err := verr.OrNil()
	req.Error(err)
	req.True(errors.Is(err, ErrValidation))
	req.True(verr.Has("price"))
	req.False(verr.Has("minBid"))
	req.Equal("validation failed: name: is required; price: must be greater than 0", err.Error())

	var target *ValidationError
	req.True(errors.As(xerrors.Errorf("create: %w", err), &target))
	req.Len(target.Violations, 2)
}
