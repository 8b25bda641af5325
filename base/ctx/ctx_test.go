package ctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestWithValue() {
	bg := Background()
	ctx := WithValue(bg, "foo", "bar")
	ts.Equal("bar", ctx.Value("foo"))
}

func (ts *testsuite) TestWithValues() {
	bg := Background()
	ctx := WithValues(bg, map[string]interface{}{
		"a": "b",
		"c": "d",
	})
	ts.Equal("b", ctx.Value("a"))
	ts.Equal("d", ctx.Value("c"))
}

func (ts *testsuite) TestFrom() {
	plain := context.WithValue(context.Background(), "k", "v")
	ctx := From(plain)
	ts.Equal("v", ctx.Value("k"))

	wrapped := WithValue(Background(), "a", "b")
	ts.Equal(wrapped, From(wrapped))
}

func (ts *testsuite) TestTimeout() {
	bg := Background()
	ctx, cancel := WithTimeout(bg, 10*time.Millisecond)
	defer cancel()
	select {
	case <-ctx.Done():
	case <-time.After(100 * time.Millisecond):
		ts.Fail("deadline not reached")
	}
	ts.Equal(context.DeadlineExceeded, ctx.Err())
}

func (ts *testsuite) TestDetach() {
	parent, cancel := WithCancel(WithValue(Background(), "sagaId", "abc"))
	detached := Detach(parent)
	cancel()

	ts.Equal(context.Canceled, parent.Err())
	ts.NoError(detached.Err())
	ts.Nil(detached.Done())
	ts.Equal("abc", detached.Value("sagaId"))

	_, ok := detached.Deadline()
	ts.False(ok)
}
