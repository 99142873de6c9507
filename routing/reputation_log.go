package routing

import (
	"math"
	"time"

	"github.com/lightninglabs/lnroute/routing/route"
)

// reportKind distinguishes the two ways ReportNode can be told about a
// route failure.
type reportKind int

const (
	// nodeBlamedEvent records a failure squarely attributed to the node
	// itself.
	nodeBlamedEvent reportKind = iota

	// nodeBlamedUpstreamEvent records a failure where the node instead
	// named one of its own upstream channels as the culprit.
	nodeBlamedUpstreamEvent
)

// String provides string representations of report events.
func (k reportKind) String() string {
	switch k {
	case nodeBlamedEvent:
		return "node_blamed"

	case nodeBlamedUpstreamEvent:
		return "node_blamed_upstream"
	}

	return "unknown"
}

// reportEvent is a single timestamped ReportNode call, observed on a per
// node basis.
type reportEvent struct {
	timestamp time.Time
	kind      reportKind
}

// nodeEventLog stores every report seen for one node over its lifetime in
// the reputation store, so PenaltyFor can weigh the node's whole recent
// history rather than only its single most recent report.
type nodeEventLog struct {
	// vertex is the node being monitored.
	vertex route.Vertex

	// events is a log of timestamped reports observed for the node.
	events []*reportEvent

	// now is expected to return the current time. It is supplied as an
	// external function to enable deterministic unit tests.
	now func() time.Time
}

// newNodeEventLog creates an empty report log for a node.
func newNodeEventLog(vertex route.Vertex, now func() time.Time) *nodeEventLog {
	return &nodeEventLog{
		vertex: vertex,
		now:    now,
	}
}

// add appends a report of the given kind at the current time.
func (e *nodeEventLog) add(kind reportKind) {
	e.events = append(e.events, &reportEvent{
		timestamp: e.now(),
		kind:      kind,
	})

	log.Debugf("Node %v recording report: %v", e.vertex, kind)
}

// penalty sums the exponentially-decayed contribution of every report in
// the log, most recent first, stopping once a report's own contribution
// has decayed below a single millisatoshi: reports older than that cannot
// move the total regardless of how many more of them there are.
func (e *nodeEventLog) penalty() int64 {
	var total int64

	now := e.now()
	for i := len(e.events) - 1; i >= 0; i-- {
		contribution := decayedPenalty(e.events[i], now)
		if contribution == 0 {
			break
		}

		total += contribution
	}

	return total
}

// decayedPenalty returns a single report's contribution to its node's
// total penalty, decayed by the time elapsed since it was recorded.
func decayedPenalty(event *reportEvent, now time.Time) int64 {
	penalty := int64(badNodePenalty)
	if event.kind == nodeBlamedUpstreamEvent {
		penalty /= blamedUpstreamDiscount
	}

	elapsed := now.Sub(event.timestamp)
	if elapsed <= 0 {
		return penalty
	}

	halfLives := float64(elapsed) / float64(penaltyHalfLife)

	return int64(float64(penalty) / math.Pow(2, halfLives))
}
