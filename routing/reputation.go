package routing

import (
	"sync"
	"time"

	"github.com/lightninglabs/lnroute/routing/route"
)

// badNodePenalty is the penalty applied to a node the first time it is
// reported via ReportNode.
const badNodePenalty = 1_000_000

// blamedUpstreamDiscount is the factor a reported node's penalty is divided
// by when the report blames an upstream channel rather than the node
// itself. A node cannot be trusted to accurately blame its own upstream,
// but giving it the benefit of the doubt lets it earn its way back into
// routes faster than an outright bad actor would.
const blamedUpstreamDiscount = 2

// penaltyHalfLife is the interval over which a single report's
// contribution to its node's penalty decays by half.
const penaltyHalfLife = time.Hour

// reputationStore is the mark-node-bad hook's backing store: a decaying
// penalty per node, accumulated from every report logged against it. There
// is deliberately no equivalent for channels — a node can always blame an
// upstream channel for a route failure that was really its own fault, so
// penalizing the node itself, with a discount when it names an upstream
// culprit, is the only scheme that can't be gamed by simply relaying the
// blame outward forever.
type reputationStore struct {
	mu sync.Mutex

	// now returns the current time. Supplied as a field, rather than
	// called directly, so tests can drive the decay curve deterministically.
	now func() time.Time

	nodes map[route.Vertex]*nodeEventLog
}

// newReputationStore creates an empty reputation store using now to
// timestamp and decay reports.
func newReputationStore(now func() time.Time) *reputationStore {
	return &reputationStore{
		now:   now,
		nodes: make(map[route.Vertex]*nodeEventLog),
	}
}

// ReportNode records vertex as having failed a route just now. This does
// not blacklist the node outright: PenaltyFor decays each report's weight
// back toward zero over time, so a node that was simply unlucky, or
// offline briefly, recovers on its own. Setting blamedUpstreamNode halves
// the report's initial penalty, since the node may simply be accurately
// relaying that the problem was with one of its own peers rather than with
// it.
func (r *reputationStore) ReportNode(vertex route.Vertex, blamedUpstreamNode bool) {
	kind := nodeBlamedEvent
	if blamedUpstreamNode {
		kind = nodeBlamedUpstreamEvent
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	eventLog, ok := r.nodes[vertex]
	if !ok {
		eventLog = newNodeEventLog(vertex, r.now)
		r.nodes[vertex] = eventLog
	}

	eventLog.add(kind)
}

// PenaltyFor returns vertex's current penalty: the sum of every report
// logged against it by ReportNode, each exponentially decayed by the time
// elapsed since it was recorded. It is zero for a node that has never been
// reported, or whose reports have fully decayed away.
func (r *reputationStore) PenaltyFor(vertex route.Vertex) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	eventLog, ok := r.nodes[vertex]
	if !ok {
		return 0
	}

	return eventLog.penalty()
}
