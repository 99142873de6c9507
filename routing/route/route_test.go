package route

import (
	"testing"

	"github.com/lightninglabs/lnroute/lnwire"
	"github.com/stretchr/testify/require"
)

func TestVertexLess(t *testing.T) {
	t.Parallel()

	var a, b Vertex
	a[32] = 1
	b[32] = 2

	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.False(t, a.Less(a))
}

func TestRouteValidate(t *testing.T) {
	t.Parallel()

	empty := &Route{}
	require.ErrorIs(t, empty.Validate(), errEmptyRoute)

	hops := make([]*Hop, maxRouteHops+1)
	for i := range hops {
		hops[i] = &Hop{}
	}
	tooLong := &Route{Hops: hops}
	require.ErrorIs(t, tooLong.Validate(), errRouteTooLong)

	ok := &Route{Hops: hops[:maxRouteHops]}
	require.NoError(t, ok.Validate())
}

func TestRouteTotalFees(t *testing.T) {
	t.Parallel()

	r := &Route{
		Hops: []*Hop{
			{FeeMsat: 10},
			{FeeMsat: 5},
			{FeeMsat: 100},
		},
	}

	// The final hop's "fee" is the amount delivered to the payee, not a
	// fee charged by an intermediary, so it is excluded.
	require.Equal(t, lnwire.MilliSatoshi(15), r.TotalFees())
}
