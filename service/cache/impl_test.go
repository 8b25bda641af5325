package cache

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/keys"
	"github.com/x-xyz/collectibles/service/cache/provider"
	"github.com/x-xyz/collectibles/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im    *impl
	cache provider.Provider
}

func (ts *testsuite) SetupTest() {
	ts.cache = primitive.NewPrimitive("test", 1)
	ts.im = New(ServiceConfig{
		Ttl:   time.Second,
		Pfx:   keys.PfxMetadata,
		Cache: ts.cache,
	}).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestGet() {
	var (
		k = "ipfs://meta"
		v = domain.Metadata{Name: "Sunset", Image: "ipfs://image"}
		c = &domain.Metadata{}
	)

	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, k, c))

	sv, err := json.Marshal(v)
	ts.NoError(err)
	ts.NoError(ts.cache.Set(mockCtx, keys.RedisKey(ts.im.pfx, k), sv, time.Second))
	ts.NoError(ts.im.Get(mockCtx, k, c))
	ts.Equal(v, *c)
}

func (ts *testsuite) TestSetExpires() {
	var (
		k = "ipfs://meta"
		v = domain.Metadata{Name: "Sunset"}
		c = &domain.Metadata{}
	)

	ts.NoError(ts.im.Set(mockCtx, k, v))

	sv, _, err := ts.cache.Get(mockCtx, keys.RedisKey(ts.im.pfx, k))
	ts.NoError(err)
	ts.NoError(json.Unmarshal(sv, c))
	ts.Equal(v, *c)

	time.Sleep(1100 * time.Millisecond)

	_, _, err = ts.cache.Get(mockCtx, keys.RedisKey(ts.im.pfx, k))
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestGetByFunc() {
	var (
		k     = "ipfs://meta"
		v     = domain.Metadata{Name: "Sunset"}
		calls = 0
	)
	getter := func() (interface{}, error) {
		calls++
		return &v, nil
	}

	c := &domain.Metadata{}
	ts.NoError(ts.im.GetByFunc(mockCtx, k, c, getter))
	ts.Equal(v, *c)

	c = &domain.Metadata{}
	ts.NoError(ts.im.GetByFunc(mockCtx, k, c, getter))
	ts.Equal(v, *c)
	ts.Equal(1, calls)
}

func (ts *testsuite) TestGetByFuncGetterFailed() {
	errBoom := errors.New("boom")
	c := &domain.Metadata{}
	err := ts.im.GetByFunc(mockCtx, "ipfs://missing", c, func() (interface{}, error) {
		return nil, errBoom
	})
	ts.Equal(errBoom, err)
	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, "ipfs://missing", c))
}
