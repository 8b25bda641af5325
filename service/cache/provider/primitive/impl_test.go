package primitive

import (
	"testing"
	"time"

	"github.com/coocood/freecache"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/service/cache/provider"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im *impl
}

func (ts *testsuite) SetupTest() {
	ts.im = NewPrimitive("", 1).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.im.cache.Clear()
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	k := "key"
	v := []byte("value")

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Second))
	r, e := ts.im.cache.Get([]byte(k))
	ts.NoError(e)
	ts.Equal(v, r)

	time.Sleep(1100 * time.Millisecond)
	_, e = ts.im.cache.Get([]byte(k))
	ts.Equal(freecache.ErrNotFound, e)
}

func (ts *testsuite) TestGet() {
	cases := []struct {
		Desc   string
		Key    string
		Val    string
		Expire int
		Ttl    time.Duration
		Err    error
	}{
		{
			Desc:   "Success",
			Key:    "key",
			Val:    "value",
			Expire: 10,
			Ttl:    10 * time.Second,
		},
		{
			Desc: "Never expires",
			Key:  "forever",
			Val:  "value",
			Ttl:  0,
		},
		{
			Desc: "Not found",
			Key:  "missing",
			Err:  provider.ErrNotFound,
		},
	}

	for _, c := range cases {
		if len(c.Val) > 0 {
			ts.NoError(ts.im.cache.Set([]byte(c.Key), []byte(c.Val), c.Expire), c.Desc)
		}

		v, ttl, e := ts.im.Get(mockCtx, c.Key)
		ts.Equal(c.Val, string(v), c.Desc)
		ts.Equal(c.Err, e, c.Desc)
		ts.InDelta(float64(c.Ttl), float64(ttl), float64(time.Second), c.Desc)
	}
}

func (ts *testsuite) TestIncr() {
	cases := []struct {
		Desc string
		Key  string
		Val  string
		Incr int
		Res  int64
		Err  error
	}{
		{
			Desc: "Success",
			Key:  "key",
			Val:  "5",
			Incr: 1,
			Res:  6,
		},
		{
			Desc: "Decrement",
			Key:  "other",
			Val:  "5",
			Incr: -1,
			Res:  4,
		},
		{
			Desc: "Not found",
			Key:  "missing",
			Err:  provider.ErrNotFound,
		},
	}

	for _, c := range cases {
		if len(c.Val) > 0 {
			ts.NoError(ts.im.cache.Set([]byte(c.Key), []byte(c.Val), 10), c.Desc)
		}

		v, _, e := ts.im.Incr(mockCtx, c.Key, c.Incr)
		ts.Equal(c.Res, v, c.Desc)
		ts.Equal(c.Err, e, c.Desc)
	}
}
