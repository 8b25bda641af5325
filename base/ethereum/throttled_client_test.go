package ethereum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThrottle(t *testing.T) {
	req := require.New(t)
	c := NewThrottledClient(nil, 1)

	token, err := c.before(context.Background())
	req.NoError(err)
	req.Equal(1, token)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.before(ctx)
	req.Equal(context.Canceled, err)

	c.after(token)
	token, err = c.before(context.Background())
	req.NoError(err)
	req.Equal(1, token)
}
