package graph

import (
	"net"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightninglabs/lnroute/lnwire"
	"github.com/lightninglabs/lnroute/routing/route"
	"github.com/lightninglabs/lnroute/verify"
)

// directionBit and disabledBit are the two bits the channel update flags
// field defines. Everything above bit 1 is reserved by BOLT 7 and ignored
// here, since this core only consumes already-parsed messages.
const (
	directionBit uint16 = 1 << 0
	disabledBit  uint16 = 1 << 1
)

// NodeAnnouncement is the signed payload announcing or updating a node's
// metadata. ContentsEncoded is the canonical wire encoding of the signed
// contents, produced upstream by the (out of scope) serialization layer;
// the digest verified against Signature is its double-SHA256.
type NodeAnnouncement struct {
	ContentsEncoded []byte
	Signature       *ecdsa.Signature
	Features        *lnwire.FeatureVector
	Timestamp       uint32
	NodeID          route.Vertex
	RGBColor        [3]byte
	Alias           [32]byte
	Addresses       []net.Addr
}

// ChannelAnnouncement is the signed payload announcing a new channel and
// its two endpoints.
type ChannelAnnouncement struct {
	ContentsEncoded          []byte
	NodeSignature1           *ecdsa.Signature
	NodeSignature2           *ecdsa.Signature
	BitcoinSignature1        *ecdsa.Signature
	BitcoinSignature2        *ecdsa.Signature
	Features                 *lnwire.FeatureVector
	ChainHash                chainhash.Hash
	ShortChannelID           uint64
	NodeID1, NodeID2         route.Vertex
	BitcoinKey1, BitcoinKey2 route.Vertex
}

// ChannelUpdate is the signed payload describing one directional edge's
// current forwarding policy.
type ChannelUpdate struct {
	ContentsEncoded           []byte
	Signature                 *ecdsa.Signature
	ChainHash                 chainhash.Hash
	ShortChannelID            uint64
	Timestamp                 uint32
	Flags                     uint16
	CLTVExpiryDelta           uint16
	HTLCMinimumMsat           lnwire.MilliSatoshi
	FeeBaseMsat               uint32
	FeeProportionalMillionths uint32
}

// ChannelClosed carries the short channel id of a channel that no longer
// exists on chain.
type ChannelClosed struct {
	ShortChannelID uint64
}

// ChannelFailHint is the tagged union HTLCFailChannelUpdate describes: it
// either wraps a ChannelUpdate to apply, or carries a ChannelClosed
// notification. Exactly one of Update or Closed is non-nil.
type ChannelFailHint struct {
	Update *ChannelUpdate
	Closed *ChannelClosed
}

// verifySig checks sig over the double-SHA256 digest of contents against
// signer.
func verifySig(contents []byte, sig *ecdsa.Signature, signer route.Vertex) bool {
	pub, err := verify.ParsePubKey(signer[:])
	if err != nil {
		return false
	}

	return verify.Verify(verify.Digest(contents), sig, pub)
}

// HandleNodeAnnouncement applies a signed node announcement. The node must
// already exist in the graph (created as a side effect of some channel
// announcement); its metadata is overwritten if the announcement's
// timestamp strictly advances the node's last_update.
func (b *Builder) HandleNodeAnnouncement(msg *NodeAnnouncement) error {
	if !verifySig(msg.ContentsEncoded, msg.Signature, msg.NodeID) {
		return route.ErrInvalidSig()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	node, ok := b.nodes[msg.NodeID]
	if !ok {
		return route.ErrNodeUnknown()
	}

	if msg.Timestamp <= node.LastUpdate {
		return route.ErrStaleUpdate(node.LastUpdate, msg.Timestamp)
	}

	b.nodes[msg.NodeID] = node.withAnnouncement(
		msg.Features, msg.Timestamp, msg.RGBColor, msg.Alias,
		msg.Addresses,
	)

	return nil
}

// HandleChannelAnnouncement applies a signed channel announcement: a new
// channel and, if needed, placeholder records for its two endpoints. It
// returns true iff the announcement sets no unknown optional feature bits,
// i.e. iff it is safe to re-broadcast verbatim.
func (b *Builder) HandleChannelAnnouncement(msg *ChannelAnnouncement) (bool, error) {
	if !verifySig(msg.ContentsEncoded, msg.NodeSignature1, msg.NodeID1) ||
		!verifySig(msg.ContentsEncoded, msg.NodeSignature2, msg.NodeID2) ||
		!verifySig(msg.ContentsEncoded, msg.BitcoinSignature1, msg.BitcoinKey1) ||
		!verifySig(msg.ContentsEncoded, msg.BitcoinSignature2, msg.BitcoinKey2) {

		return false, route.ErrInvalidSig()
	}

	if msg.Features != nil && msg.Features.RequiresUnknownBits() {
		return false, route.ErrRequiredFeature()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := newChanKey(msg.ShortChannelID, msg.ChainHash)
	if _, exists := b.channels[key]; exists {
		return false, route.ErrDuplicateChannel(msg.ShortChannelID)
	}

	b.channels[key] = &ChannelInfo{
		Features:       msg.Features,
		ChainHash:      msg.ChainHash,
		ShortChannelID: msg.ShortChannelID,
		OneToTwo:       disabledDirection(msg.NodeID1),
		TwoToOne:       disabledDirection(msg.NodeID2),
	}

	b.addChannelToNode(msg.NodeID1, key)
	b.addChannelToNode(msg.NodeID2, key)

	safeToRebroadcast := msg.Features == nil || !msg.Features.SupportsUnknownBits()

	return safeToRebroadcast, nil
}

// addChannelToNode appends key to node's channel list, creating a
// placeholder node if node isn't known yet. Caller must hold b.mu.
func (b *Builder) addChannelToNode(id route.Vertex, key chanKey) {
	node, ok := b.nodes[id]
	if !ok {
		b.nodes[id] = newPlaceholderNode(id, key)

		return
	}

	b.nodes[id] = node.withChannel(key)
}

// HandleChannelUpdate applies a signed channel update to the directional
// record it targets, then recomputes the destination node's cached inbound
// fee aggregates.
func (b *Builder) HandleChannelUpdate(msg *ChannelUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := newChanKey(msg.ShortChannelID, msg.ChainHash)
	channel, ok := b.channels[key]
	if !ok {
		return route.ErrChannelUnknown(msg.ShortChannelID)
	}

	bit := msg.Flags & directionBit
	target := channel.direction(bit)

	if !verifySig(msg.ContentsEncoded, msg.Signature, target.SrcNodeID) {
		return route.ErrInvalidSig()
	}

	if msg.Timestamp <= target.LastUpdate {
		return route.ErrStaleUpdate(target.LastUpdate, msg.Timestamp)
	}

	wasEnabled := target.Enabled
	enabled := msg.Flags&disabledBit == 0

	newTarget := &DirectionalChannelInfo{
		SrcNodeID:                 target.SrcNodeID,
		LastUpdate:                msg.Timestamp,
		Enabled:                   enabled,
		CLTVExpiryDelta:           msg.CLTVExpiryDelta,
		HTLCMinimumMsat:           msg.HTLCMinimumMsat,
		FeeBaseMsat:               msg.FeeBaseMsat,
		FeeProportionalMillionths: msg.FeeProportionalMillionths,
	}

	channel = channel.withDirection(bit, newTarget)
	b.channels[key] = channel

	destID := channel.otherEndpoint(newTarget)
	dest, ok := b.nodes[destID]
	if !ok {
		return nil
	}

	switch {
	case enabled:
		base := dest.LowestInboundFeeBaseMsat
		if msg.FeeBaseMsat < base {
			base = msg.FeeBaseMsat
		}
		prop := dest.LowestInboundFeeProportionalMillionths
		if msg.FeeProportionalMillionths < prop {
			prop = msg.FeeProportionalMillionths
		}
		b.nodes[destID] = dest.withInboundFees(base, prop)

	case wasEnabled:
		base, prop := b.rescanInboundFees(dest, destID)
		b.nodes[destID] = dest.withInboundFees(base, prop)
	}

	return nil
}

// rescanInboundFees recomputes a node's cached inbound fee aggregates from
// scratch by scanning every channel it is an endpoint of. Caller must hold
// b.mu. It is only needed when an update disables a previously-enabled
// edge, since the cheap min-update used elsewhere can only lower a cached
// value, never raise it back up.
func (b *Builder) rescanInboundFees(node *NodeInfo, id route.Vertex) (uint32, uint32) {
	base := uint32(maxFeeMsat)
	prop := uint32(maxFeeMsat)

	for _, key := range node.Channels {
		ch, ok := b.channels[key]
		if !ok {
			continue
		}

		var d *DirectionalChannelInfo
		switch {
		case ch.OneToTwo.SrcNodeID != id:
			d = ch.OneToTwo
		default:
			d = ch.TwoToOne
		}

		if !d.Enabled {
			continue
		}
		if d.FeeBaseMsat < base {
			base = d.FeeBaseMsat
		}
		if d.FeeProportionalMillionths < prop {
			prop = d.FeeProportionalMillionths
		}
	}

	return base, prop
}

// HandleChannelFailHint applies an HTLC-fail-triggered channel update or
// removes a closed channel outright. Errors from an inner channel update
// are deliberately swallowed: a fail hint is best-effort gossip, not an
// authoritative signed announcement the caller should act on.
func (b *Builder) HandleChannelFailHint(msg *ChannelFailHint) error {
	if msg.Update != nil {
		_ = b.HandleChannelUpdate(msg.Update)

		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := newChanKey(msg.Closed.ShortChannelID, chainhash.Hash{})
	if ch, ok := b.channels[key]; ok {
		for _, id := range []route.Vertex{ch.OneToTwo.SrcNodeID, ch.TwoToOne.SrcNodeID} {
			if node, ok := b.nodes[id]; ok {
				cp := *node
				cp.Channels = nil
				for _, k := range node.Channels {
					if k != key {
						cp.Channels = append(cp.Channels, k)
					}
				}
				b.nodes[id] = &cp
			}
		}
	}
	delete(b.channels, key)

	return nil
}
