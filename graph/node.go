package graph

import (
	"math"
	"net"

	"github.com/lightninglabs/lnroute/lnwire"
	"github.com/lightninglabs/lnroute/routing/route"
)

// maxFeeMsat is the sentinel cached inbound fee value a node holds when it
// has no enabled inbound edge: the widest value its numeric width can
// express, so that any real fee always compares lower.
const maxFeeMsat = math.MaxUint32

// NodeInfo is the graph's view of a single node: the metadata carried by its
// most recent node announcement (if any), plus the cached aggregates the
// pathfinder's A*-style heuristic depends on.
//
// NodeInfo is treated as immutable once published into the graph's node
// map: every mutation replaces the map entry with a new *NodeInfo rather
// than editing this struct in place, so that a route query holding an older
// snapshot never observes a partial update.
type NodeInfo struct {
	// PubKey is this node's public key, the map key it is stored under.
	PubKey route.Vertex

	// Features is the feature vector from the node's most recent
	// announcement. Nil until one arrives.
	Features *lnwire.FeatureVector

	// LastUpdate is the timestamp of the most recently applied node
	// announcement. Zero for placeholder nodes with no announcement
	// yet.
	LastUpdate uint32

	// RGBColor is the node's preferred display color.
	RGBColor [3]byte

	// Alias is the node's human-readable alias.
	Alias [32]byte

	// Addresses is the set of network addresses the node announced.
	Addresses []net.Addr

	// Channels is the list of channel map keys this node is known to be
	// an endpoint of. It exists purely to allow enumerating a node's
	// edges without scanning the whole channel map.
	Channels []chanKey

	// LowestInboundFeeBaseMsat is the minimum fee_base_msat over all
	// enabled directional records pointing toward this node. It holds
	// maxFeeMsat when no such edge exists.
	LowestInboundFeeBaseMsat uint32

	// LowestInboundFeeProportionalMillionths is the minimum
	// fee_proportional_millionths over all enabled directional records
	// pointing toward this node. It holds maxFeeMsat when no such edge
	// exists.
	LowestInboundFeeProportionalMillionths uint32
}

// newPlaceholderNode creates the minimal node record created as a side
// effect of a channel announcement referencing a node we haven't otherwise
// heard of yet: no metadata, and inbound fee caches at their sentinel
// maximum since the node (as far as we know) has no enabled inbound edges.
func newPlaceholderNode(pub route.Vertex, key chanKey) *NodeInfo {
	return &NodeInfo{
		PubKey:                                  pub,
		Channels:                                []chanKey{key},
		LowestInboundFeeBaseMsat:                maxFeeMsat,
		LowestInboundFeeProportionalMillionths:  maxFeeMsat,
	}
}

// withChannel returns a copy of n with key appended to its channel list.
func (n *NodeInfo) withChannel(key chanKey) *NodeInfo {
	cp := *n
	cp.Channels = append(append([]chanKey{}, n.Channels...), key)

	return &cp
}

// withAnnouncement returns a copy of n with its announced metadata
// overwritten from a validated node announcement.
func (n *NodeInfo) withAnnouncement(features *lnwire.FeatureVector,
	timestamp uint32, rgb [3]byte, alias [32]byte,
	addrs []net.Addr) *NodeInfo {

	cp := *n
	cp.Features = features
	cp.LastUpdate = timestamp
	cp.RGBColor = rgb
	cp.Alias = alias
	cp.Addresses = addrs

	return &cp
}

// withInboundFees returns a copy of n with its cached inbound fee
// aggregates overwritten.
func (n *NodeInfo) withInboundFees(base, propPPM uint32) *NodeInfo {
	cp := *n
	cp.LowestInboundFeeBaseMsat = base
	cp.LowestInboundFeeProportionalMillionths = propPPM

	return &cp
}
