package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	req := require.New(t)
	req.Nil(parseTag(nil))
	req.Equal([]string{"step:mint", "kind:item"}, parseTag([]string{"step", "mint", "kind", "item"}))
	req.Panics(func() { parseTag([]string{"odd"}) })
}

func TestBumpWithoutAgent(t *testing.T) {
	m := New("test")
	require.NotPanics(t, func() {
		m.BumpSum("counter", 1, "step", "mint")
		m.BumpAvg("gauge", 2)
		m.BumpHistogram("hist", 3)
		m.BumpTime("timer").End()
	})
}
