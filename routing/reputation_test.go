package routing

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightninglabs/lnroute/routing/route"
	"github.com/stretchr/testify/require"
)

func testVertex(t *testing.T, b byte) route.Vertex {
	t.Helper()

	priv, _ := btcec.PrivKeyFromBytes([]byte{
		b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b,
		b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b,
	})

	return route.NewVertex(priv.PubKey())
}

func TestReputationUnreportedNodeHasNoPenalty(t *testing.T) {
	t.Parallel()

	store := newReputationStore(time.Now)
	require.Zero(t, store.PenaltyFor(testVertex(t, 0x01)))
}

func TestReputationReportAppliesFullPenaltyImmediately(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	store := newReputationStore(func() time.Time { return now })

	v := testVertex(t, 0x01)
	store.ReportNode(v, false)

	require.EqualValues(t, badNodePenalty, store.PenaltyFor(v))
}

func TestReputationBlamedUpstreamHalvesPenalty(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	store := newReputationStore(func() time.Time { return now })

	v := testVertex(t, 0x01)
	store.ReportNode(v, true)

	require.EqualValues(t, badNodePenalty/blamedUpstreamDiscount, store.PenaltyFor(v))
}

func TestReputationPenaltyDecaysByHalfLife(t *testing.T) {
	t.Parallel()

	start := time.Unix(1_700_000_000, 0)
	now := start
	store := newReputationStore(func() time.Time { return now })

	v := testVertex(t, 0x01)
	store.ReportNode(v, false)

	now = start.Add(penaltyHalfLife)
	require.InDelta(t, badNodePenalty/2, store.PenaltyFor(v), 1)

	now = start.Add(2 * penaltyHalfLife)
	require.InDelta(t, badNodePenalty/4, store.PenaltyFor(v), 1)
}

func TestReputationRepeatedReportsAccumulate(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	store := newReputationStore(func() time.Time { return now })

	v := testVertex(t, 0x01)
	store.ReportNode(v, false)
	store.ReportNode(v, false)

	require.EqualValues(t, 2*badNodePenalty, store.PenaltyFor(v))
}

func TestReputationIsolatesDistinctNodes(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	store := newReputationStore(func() time.Time { return now })

	a := testVertex(t, 0x01)
	b := testVertex(t, 0x02)

	store.ReportNode(a, false)

	require.EqualValues(t, badNodePenalty, store.PenaltyFor(a))
	require.Zero(t, store.PenaltyFor(b))
}
