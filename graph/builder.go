// Package graph holds the in-memory, gossip-fed channel graph: the node and
// channel dictionaries, the exclusive-writer gossip ingest handlers that
// mutate them, and the read-snapshot view the pathfinder computes routes
// against.
package graph

import (
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightninglabs/lnroute/routing/route"
)

// Builder owns the node and channel dictionaries and enforces their
// cross-referential invariants. All mutation happens through its gossip
// handler methods, which take mu for writing; Snapshot takes mu for reading
// just long enough to copy the entries of the two maps into new maps.
type Builder struct {
	mu sync.RWMutex

	ourNodeID route.Vertex

	nodes    map[route.Vertex]*NodeInfo
	channels map[chanKey]*ChannelInfo
}

// NewBuilder creates an empty graph whose local node is ourNodeID. Per the
// data model's lifecycle invariant, the local node is present in the node
// map from construction, as a placeholder with no channels yet.
func NewBuilder(ourNodeID route.Vertex) *Builder {
	b := &Builder{
		ourNodeID: ourNodeID,
		nodes:     make(map[route.Vertex]*NodeInfo),
		channels:  make(map[chanKey]*ChannelInfo),
	}

	b.nodes[ourNodeID] = &NodeInfo{
		PubKey:                                 ourNodeID,
		LowestInboundFeeBaseMsat:               maxFeeMsat,
		LowestInboundFeeProportionalMillionths: maxFeeMsat,
	}

	return b
}

// OurNodeID returns the local node's public key.
func (b *Builder) OurNodeID() route.Vertex {
	return b.ourNodeID
}

// Graph is a read-only snapshot of the channel graph: independent map
// headers over the same (immutable, copy-on-write) node and channel
// records the builder held at the instant the snapshot was taken. Further
// gossip ingest may replace entries in the builder's own maps, or grow
// them, without the snapshot's view of previously-published records ever
// changing underneath a concurrent route query.
type Graph struct {
	ourNodeID route.Vertex
	nodes     map[route.Vertex]*NodeInfo
	channels  map[chanKey]*ChannelInfo
}

// Snapshot takes a consistent, point-in-time view of the graph for the
// pathfinder to search. It holds the builder's lock only long enough to
// copy every entry of the two maps (pointers to immutable records) into new
// maps; the CPU-bound search that follows runs without holding it.
func (b *Builder) Snapshot() *Graph {
	b.mu.RLock()
	defer b.mu.RUnlock()

	nodes := make(map[route.Vertex]*NodeInfo, len(b.nodes))
	for k, v := range b.nodes {
		nodes[k] = v
	}

	channels := make(map[chanKey]*ChannelInfo, len(b.channels))
	for k, v := range b.channels {
		channels[k] = v
	}

	return &Graph{
		ourNodeID: b.ourNodeID,
		nodes:     nodes,
		channels:  channels,
	}
}

// OurNodeID returns the local node's public key.
func (g *Graph) OurNodeID() route.Vertex {
	return g.ourNodeID
}

// Node looks up a node by public key.
func (g *Graph) Node(pub route.Vertex) (*NodeInfo, bool) {
	n, ok := g.nodes[pub]

	return n, ok
}

// Channel looks up a channel by short channel id and chain hash under this
// build's key policy, ignoring the chain hash unless the multichain build
// tag is set.
func (g *Graph) Channel(scid uint64, chain chainhash.Hash) (*ChannelInfo, bool) {
	c, ok := g.channels[newChanKey(scid, chain)]

	return c, ok
}

// ForEachNode calls fn once for every node known to the snapshot. Order is
// unspecified.
func (g *Graph) ForEachNode(fn func(*NodeInfo)) {
	for _, n := range g.nodes {
		fn(n)
	}
}

// ForEachChannelOf calls fn once for every channel in node's channel list
// that still resolves to a known channel. An entry can only fail to resolve
// if the invariant binding a node's channel list to the channel map has
// been violated elsewhere, which ForEachChannelOf treats as "skip", not
// "panic".
func (g *Graph) ForEachChannelOf(node *NodeInfo, fn func(*ChannelInfo)) {
	for _, key := range node.Channels {
		ch, ok := g.channels[key]
		if !ok {
			continue
		}
		fn(ch)
	}
}
