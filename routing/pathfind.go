package routing

import (
	"container/heap"
	"math"

	"github.com/lightninglabs/lnroute/graph"
	"github.com/lightninglabs/lnroute/lnwire"
	"github.com/lightninglabs/lnroute/routing/route"
)

// distEntry is dest-to-source Dijkstra's per-node distance label: the
// cheapest total fee found so far to route from this node onward to the
// destination, and the hop record describing the forwarding step (toward
// the destination) that achieves it.
type distEntry struct {
	fee uint64
	hop *route.Hop
}

// edgePolicy is the common shape addEntry needs from either a gossiped
// directional channel record or a payee-supplied route hint: whichever
// edge is being relaxed, only its source, fees, CLTV delta and
// htlc_minimum_msat matter to the search.
type edgePolicy struct {
	srcNodeID                 route.Vertex
	feeBaseMsat               uint32
	feeProportionalMillionths uint32
	cltvExpiryDelta           uint16
	htlcMinimumMsat           lnwire.MilliSatoshi
}

func directionalPolicy(d *graph.DirectionalChannelInfo) edgePolicy {
	return edgePolicy{
		srcNodeID:                 d.SrcNodeID,
		feeBaseMsat:               d.FeeBaseMsat,
		feeProportionalMillionths: d.FeeProportionalMillionths,
		cltvExpiryDelta:           d.CLTVExpiryDelta,
		htlcMinimumMsat:           d.HTLCMinimumMsat,
	}
}

func hintPolicy(h *route.RouteHint) edgePolicy {
	return edgePolicy{
		srcNodeID:                 h.NodeID,
		feeBaseMsat:               h.FeeBaseMsat,
		feeProportionalMillionths: h.FeeProportionalMillionths,
		cltvExpiryDelta:           h.CLTVExpiryDelta,
		htlcMinimumMsat:           h.HTLCMinimumMsat,
	}
}

// searchNode is a priority queue entry: a candidate node to expand next.
// The queue pops the entry with the lowest fee first, tie-broken by
// ascending serialized pubkey so that two runs over the same graph always
// pick the same route.
type searchNode struct {
	vertex route.Vertex
	fee    uint64
}

type nodeHeap []searchNode

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].fee != h[j].fee {
		return h[i].fee < h[j].fee
	}

	return h[i].vertex.Less(h[j].vertex)
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(searchNode)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// pathSearch holds the mutable state of one dest-to-source Dijkstra run
// over a single graph snapshot.
type pathSearch struct {
	graph          *graph.Graph
	ourNodeID      route.Vertex
	finalValueMsat lnwire.MilliSatoshi
	dist           map[route.Vertex]*distEntry
	pq             nodeHeap
}

// addEntry is the relaxation step. d describes the policy of the edge
// running from src to dest over chanID; startingFeeMsat is the total fee
// already known to be payable from dest onward to the final destination.
// If routing the payment through src, over this edge, beats src's
// currently cheapest known route to the destination, src's distance label
// is updated and pushed onto the queue.
func (s *pathSearch) addEntry(chanID uint64, destNodeID route.Vertex, d edgePolicy,
	startingFeeMsat uint64) {

	// TODO: explore simply adding fee to hit htlc_minimum_msat, rather
	// than rejecting the edge outright.
	if startingFeeMsat+uint64(s.finalValueMsat) <= uint64(d.htlcMinimumMsat) {
		return
	}

	newFee := uint64(d.feeBaseMsat) +
		(startingFeeMsat+uint64(s.finalValueMsat))*
			uint64(d.feeProportionalMillionths)/1_000_000

	totalFee := startingFeeMsat

	oldEntry, ok := s.dist[d.srcNodeID]
	if !ok {
		return
	}

	if d.srcNodeID != s.ourNodeID {
		// Ignore new_fee for a channel out of the local node: every
		// channel out of the local node is assumed to carry the same
		// effective fee, so there's nothing to compare here yet.
		totalFee += newFee

		base, prop := s.inboundFeeCacheOf(d.srcNodeID)
		totalFee += prop*(uint64(s.finalValueMsat)+totalFee)/1_000_000 + base
	}

	if oldEntry.fee > totalFee {
		oldEntry.fee = totalFee
		oldEntry.hop = &route.Hop{
			PubKeyBytes: destNodeID,
			ChannelID:   chanID,
			// Ignored on the last hop, which GetRoute patches
			// in with the real final amount regardless.
			FeeMsat:         lnwire.MilliSatoshi(newFee),
			CLTVExpiryDelta: uint32(d.cltvExpiryDelta),
		}

		heap.Push(&s.pq, searchNode{vertex: d.srcNodeID, fee: totalFee})
	}
}

// inboundFeeCacheOf returns v's cached lowest-inbound-fee aggregates, or
// the sentinel maximum if v isn't a known node.
func (s *pathSearch) inboundFeeCacheOf(v route.Vertex) (uint64, uint64) {
	node, ok := s.graph.Node(v)
	if !ok {
		return math.MaxUint32, math.MaxUint32
	}

	return uint64(node.LowestInboundFeeBaseMsat),
		uint64(node.LowestInboundFeeProportionalMillionths)
}

// addInboundEdgesOf relaxes every enabled edge leading into node, using
// feeToTargetMsat as the fee already accumulated from node onward to the
// final destination.
func (s *pathSearch) addInboundEdgesOf(node *graph.NodeInfo, nodeID route.Vertex,
	feeToTargetMsat uint64) {

	s.graph.ForEachChannelOf(node, func(ch *graph.ChannelInfo) {
		var inbound *graph.DirectionalChannelInfo
		if ch.OneToTwo.SrcNodeID == nodeID {
			inbound = ch.TwoToOne
		} else {
			inbound = ch.OneToTwo
		}

		if !inbound.Enabled {
			return
		}

		s.addEntry(
			ch.ShortChannelID, nodeID, directionalPolicy(inbound),
			feeToTargetMsat,
		)
	})
}

// FindRoute searches graph g for the cheapest route from its local node to
// target, sized to deliver finalValueMsat with finalCLTV as the payee's
// absolute CLTV expiry. lastHops supplies unannounced inbound edges
// terminating at target (e.g. decoded from a BOLT11 invoice) to consider
// alongside the gossiped graph.
//
// The search runs destination-to-source: a modified Dijkstra's ordered by
// each candidate node's cheapest known total fee to target, plus an
// A*-style heuristic of the cheapest possible per-HTLC fee to get one hop
// closer to the destination. It terminates the moment the local node is
// popped off the queue, since at that point no cheaper route remains to be
// discovered.
func FindRoute(g *graph.Graph, target route.Vertex, lastHops []*route.RouteHint,
	finalValueMsat lnwire.MilliSatoshi, finalCLTV uint32) (*route.Route, error) {

	ourNodeID := g.OurNodeID()
	if target == ourNodeID {
		return nil, route.ErrSelfRoute()
	}

	s := &pathSearch{
		graph:          g,
		ourNodeID:      ourNodeID,
		finalValueMsat: finalValueMsat,
		dist:           make(map[route.Vertex]*distEntry),
	}

	g.ForEachNode(func(n *graph.NodeInfo) {
		s.dist[n.PubKey] = &distEntry{fee: math.MaxUint64}
	})

	if targetNode, ok := g.Node(target); ok {
		s.addInboundEdgesOf(targetNode, target, 0)
	}

	for _, hint := range lastHops {
		if _, ok := g.Node(hint.NodeID); !ok {
			continue
		}

		s.addEntry(hint.ChannelID, target, hintPolicy(hint), 0)
	}

	for s.pq.Len() > 0 {
		cur := heap.Pop(&s.pq).(searchNode)

		if cur.vertex == ourNodeID {
			return s.reconstructRoute(target, finalValueMsat, finalCLTV)
		}

		node, ok := g.Node(cur.vertex)
		if !ok {
			continue
		}

		// Unwind the A* heuristic: cur.fee already includes the
		// contribution of node's own cached lowest-inbound-fee
		// aggregate, added the last time this entry was pushed. That
		// contribution must come back out before computing fees for
		// the edges one hop further still from the destination. The
		// proportional part is recomputed over an amount that still
		// includes it, so it can exceed what is left; the result is
		// clamped at zero instead of wrapping around.
		fee := cur.fee - uint64(node.LowestInboundFeeBaseMsat)
		propFee := uint64(node.LowestInboundFeeProportionalMillionths) *
			(fee + uint64(finalValueMsat)) / 1_000_000
		if propFee > fee {
			propFee = fee
		}
		fee -= propFee

		s.addInboundEdgesOf(node, cur.vertex, fee)
	}

	return nil, route.ErrNoRouteFound()
}

// reconstructRoute walks the hop chain recorded in dist forward from the
// local node to target. Each distance entry's hop records the fee and CLTV
// delta charged by the node it is keyed under; the onion instead expects
// those values on the PRECEDING hop, so each step shifts them back by one
// before appending the next hop.
func (s *pathSearch) reconstructRoute(target route.Vertex,
	finalValueMsat lnwire.MilliSatoshi, finalCLTV uint32) (*route.Route, error) {

	start, ok := s.dist[s.ourNodeID]
	if !ok || start.hop == nil {
		return nil, route.ErrNoRouteFound()
	}

	hops := []*route.Hop{start.hop}

	for hops[len(hops)-1].PubKeyBytes != target {
		next, ok := s.dist[hops[len(hops)-1].PubKeyBytes]
		if !ok || next.hop == nil {
			return nil, route.ErrNoRouteFound()
		}

		last := hops[len(hops)-1]
		last.FeeMsat = next.hop.FeeMsat
		last.CLTVExpiryDelta = next.hop.CLTVExpiryDelta

		hops = append(hops, next.hop)
	}

	final := hops[len(hops)-1]
	final.FeeMsat = finalValueMsat
	final.CLTVExpiryDelta = finalCLTV

	r := &route.Route{
		SourcePubKey: s.ourNodeID,
		Hops:         hops,
	}

	if err := r.Validate(); err != nil {
		return nil, route.ErrNoRouteFound()
	}

	return r, nil
}
