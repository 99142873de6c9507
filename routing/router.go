// Package routing computes payment routes over a gossiped channel graph.
// It builds on package graph for the graph itself and the gossip ingest
// that keeps it current; this package adds the destination-to-source
// pathfinder (pathfind.go) and the mark-node-bad reputation hook
// (reputation.go) that together back Router.
package routing

import (
	"time"

	"github.com/lightninglabs/lnroute/graph"
	"github.com/lightninglabs/lnroute/lnwire"
	"github.com/lightninglabs/lnroute/routing/route"
)

// Router is the top-level entry point: a gossip-fed graph builder paired
// with the pathfinder and reputation store that consume it. Gossip ingest
// methods (HandleNodeAnnouncement, HandleChannelAnnouncement,
// HandleChannelUpdate, HandleChannelFailHint) and graph accessors
// (OurNodeID, Snapshot) are promoted directly from the embedded
// *graph.Builder.
type Router struct {
	*graph.Builder

	reputation *reputationStore
}

// NewRouter creates a Router for a local node identified by ourNodeID, with
// an empty graph (containing only the local node, per the graph's
// lifecycle invariant) and an empty reputation store.
func NewRouter(ourNodeID route.Vertex) *Router {
	return &Router{
		Builder:    graph.NewBuilder(ourNodeID),
		reputation: newReputationStore(time.Now),
	}
}

// GetRoute computes the cheapest route from the local node to target,
// sized to deliver finalValueMsat with finalCLTV as the payee's absolute
// CLTV expiry. lastHops supplies unannounced inbound edges terminating at
// target, e.g. decoded from a BOLT11 invoice.
//
// The search runs over a consistent point-in-time snapshot of the graph:
// concurrent gossip ingest may continue, and will be reflected in the next
// call to GetRoute, but never mutates the graph a single in-flight search
// is walking.
func (r *Router) GetRoute(target route.Vertex, lastHops []*route.RouteHint,
	finalValueMsat lnwire.MilliSatoshi, finalCLTV uint32) (*route.Route, error) {

	snapshot := r.Builder.Snapshot()

	return FindRoute(snapshot, target, lastHops, finalValueMsat, finalCLTV)
}

// ReportNode records vertex as having failed a route just now, per the
// mark-node-bad hook. blamedUpstreamNode should be set when the failure
// report itself named an upstream channel, rather than vertex, as the
// culprit.
func (r *Router) ReportNode(vertex route.Vertex, blamedUpstreamNode bool) {
	r.reputation.ReportNode(vertex, blamedUpstreamNode)
}

// PenaltyFor returns vertex's current reputation penalty. It is not
// consulted by GetRoute's edge weighting; see DESIGN.md for why.
func (r *Router) PenaltyFor(vertex route.Vertex) int64 {
	return r.reputation.PenaltyFor(vertex)
}
