package graph

import (
	"math"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightninglabs/lnroute/lnwire"
	"github.com/lightninglabs/lnroute/routing/route"
)

// DirectionalChannelInfo is the policy a channel's one endpoint advertises
// for traffic flowing away from it. A Channel holds two of these, one per
// direction.
//
// Like NodeInfo, a DirectionalChannelInfo already installed into a Channel
// is never mutated in place; channel updates replace it wholesale.
type DirectionalChannelInfo struct {
	// SrcNodeID is the node this directional record describes, i.e. the
	// node that would charge the fees below to forward along it.
	SrcNodeID route.Vertex

	// LastUpdate is the timestamp of the channel update that most
	// recently set this record's fields. Zero until the first update.
	LastUpdate uint32

	// Enabled reports whether SrcNodeID currently accepts forwards over
	// this direction.
	Enabled bool

	// CLTVExpiryDelta is the CLTV delta SrcNodeID requires.
	CLTVExpiryDelta uint16

	// HTLCMinimumMsat is the smallest amount SrcNodeID will forward.
	HTLCMinimumMsat lnwire.MilliSatoshi

	// FeeBaseMsat is the flat fee SrcNodeID charges.
	FeeBaseMsat uint32

	// FeeProportionalMillionths is the proportional fee SrcNodeID
	// charges, in parts per million of the forwarded amount.
	FeeProportionalMillionths uint32
}

// disabledDirection returns the sentinel initial state a directional record
// is created with: disabled, every numeric field at its sentinel maximum,
// and last_update at zero so that the very first channel update (whose
// timestamp must merely be positive) is always accepted.
func disabledDirection(src route.Vertex) *DirectionalChannelInfo {
	return &DirectionalChannelInfo{
		SrcNodeID:                 src,
		Enabled:                   false,
		CLTVExpiryDelta:           math.MaxUint16,
		HTLCMinimumMsat:           lnwire.MilliSatoshi(math.MaxUint64),
		FeeBaseMsat:               math.MaxUint32,
		FeeProportionalMillionths: math.MaxUint32,
		LastUpdate:                0,
	}
}

// ChannelInfo is the graph's view of a single channel: its two endpoints'
// directional policies, keyed by short channel id (optionally paired with a
// chain hash, per the build-time chanKey policy).
type ChannelInfo struct {
	// Features is the feature vector from the channel announcement.
	Features *lnwire.FeatureVector

	// ChainHash identifies the blockchain the channel's funding
	// transaction lives on.
	ChainHash chainhash.Hash

	// ShortChannelID locates the channel's funding transaction.
	ShortChannelID uint64

	// OneToTwo is the directional record for forwards from NodeID1 to
	// NodeID2 (flags bit 0 == 0).
	OneToTwo *DirectionalChannelInfo

	// TwoToOne is the directional record for forwards from NodeID2 to
	// NodeID1 (flags bit 0 == 1).
	TwoToOne *DirectionalChannelInfo
}

// direction returns the requested directional record: 0 selects OneToTwo,
// any other value selects TwoToOne, matching the channel update flags
// field's bit 0 encoding.
func (c *ChannelInfo) direction(bit uint16) *DirectionalChannelInfo {
	if bit == 0 {
		return c.OneToTwo
	}

	return c.TwoToOne
}

// otherEndpoint returns the node id of the endpoint not described by the
// given directional record.
func (c *ChannelInfo) otherEndpoint(d *DirectionalChannelInfo) route.Vertex {
	if d == c.OneToTwo {
		return c.TwoToOne.SrcNodeID
	}

	return c.OneToTwo.SrcNodeID
}

// withDirection returns a copy of c with the given directional slot
// replaced.
func (c *ChannelInfo) withDirection(bit uint16, d *DirectionalChannelInfo) *ChannelInfo {
	cp := *c
	if bit == 0 {
		cp.OneToTwo = d
	} else {
		cp.TwoToOne = d
	}

	return &cp
}
