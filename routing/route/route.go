// Package route defines the public route and route-hop types returned by
// the pathfinder, along with the payee-supplied routing hint type. These
// are the only types the core exposes to its caller; everything about how a
// route is computed lives in package routing.
package route

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightninglabs/lnroute/lnwire"
)

// maxRouteHops is the maximum number of hops a route computed by this core
// may contain, a protocol-level ceiling imposed by the onion packet's fixed
// number of payload slots.
const maxRouteHops = 20

// Vertex is a simple alias for the serialization of a node's compressed
// public key, used as a lightweight unique identifier in graph indices and
// route hops.
type Vertex [33]byte

// NewVertex returns a Vertex corresponding to the given public key.
func NewVertex(pub *btcec.PublicKey) Vertex {
	var v Vertex
	copy(v[:], pub.SerializeCompressed())

	return v
}

// String returns the hex-encoded string representation of the public key
// the vertex represents.
func (v Vertex) String() string {
	return hex.EncodeToString(v[:])
}

// Less reports whether v sorts before other under the lexicographic order
// of their serialized compressed public keys. This is the deterministic
// tiebreak the pathfinder's priority queue uses between equally-cheap nodes.
func (v Vertex) Less(other Vertex) bool {
	for i := range v {
		if v[i] != other[i] {
			return v[i] < other[i]
		}
	}

	return false
}

// Hop is a single forwarding step of a Route: the peer the payment is
// forwarded to next, the channel used to reach it, and the fee and CLTV
// delta charged for that forwarding step.
type Hop struct {
	// PubKeyBytes is the public key of the node this hop forwards to.
	PubKeyBytes Vertex

	// ChannelID is the short channel id of the edge used to reach
	// PubKeyBytes.
	ChannelID uint64

	// FeeMsat is the fee, in millisatoshis, charged for forwarding over
	// this hop. For the final hop this equals the full payment amount
	// delivered to the payee.
	FeeMsat lnwire.MilliSatoshi

	// CLTVExpiryDelta is the CLTV delta added at this hop. For the final
	// hop this is the absolute CLTV height expected by the payee, not a
	// delta.
	CLTVExpiryDelta uint32
}

// Route is an ordered, non-empty sequence of hops from the local node to a
// destination. Hops[0] is the first edge out of the local node; the last
// hop's PubKeyBytes is the destination.
type Route struct {
	// SourcePubKey is the node the route originates from.
	SourcePubKey Vertex

	// Hops is the ordered list of forwarding steps comprising the route.
	Hops []*Hop
}

// TotalFees returns the sum of all fees charged along the route, excluding
// the amount delivered to the final hop.
func (r *Route) TotalFees() lnwire.MilliSatoshi {
	if len(r.Hops) == 0 {
		return 0
	}

	var total lnwire.MilliSatoshi
	for _, hop := range r.Hops[:len(r.Hops)-1] {
		total += hop.FeeMsat
	}

	return total
}

// Validate checks the structural invariants a Route must satisfy: it must be
// non-empty and may not exceed the maximum onion hop count.
func (r *Route) Validate() error {
	if len(r.Hops) == 0 {
		return errEmptyRoute
	}
	if len(r.Hops) > maxRouteHops {
		return errRouteTooLong
	}

	return nil
}

// RouteHint describes an ephemeral, unannounced inbound edge terminating at
// the payee, supplied out-of-band (e.g. in a BOLT11 invoice) because it
// never appears in the gossiped channel graph.
type RouteHint struct {
	// NodeID is the node on the near side of the hinted channel, i.e.
	// the node the payment traverses immediately before the payee.
	NodeID Vertex

	// ChannelID is the short channel id of the hinted channel.
	ChannelID uint64

	// FeeBaseMsat is the flat fee, in millisatoshis, NodeID charges to
	// forward over this channel.
	FeeBaseMsat uint32

	// FeeProportionalMillionths is the proportional fee NodeID charges,
	// in parts per million of the forwarded amount.
	FeeProportionalMillionths uint32

	// CLTVExpiryDelta is the CLTV delta NodeID requires for this
	// channel.
	CLTVExpiryDelta uint16

	// HTLCMinimumMsat is the smallest amount this channel will forward.
	HTLCMinimumMsat lnwire.MilliSatoshi
}
