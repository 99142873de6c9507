package main

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/lightninglabs/lnroute/graph"
	"github.com/lightninglabs/lnroute/lnwire"
	"github.com/lightninglabs/lnroute/routing"
	"github.com/lightninglabs/lnroute/routing/route"
	"github.com/lightninglabs/lnroute/verify"
)

// fixture is the on-disk JSON shape this tool understands: a set of named
// nodes (identified by their hex-encoded secp256k1 private key, so that
// this tool can sign gossip messages on each node's behalf the way a real
// peer would), the channels between them, and a batch of routes to query
// once the graph is built.
type fixture struct {
	OurKey   string                  `json:"our_key"`
	Nodes    map[string]string       `json:"nodes"`
	Channels []fixtureChannel        `json:"channels"`
	Routes   []fixtureRouteRequest   `json:"routes"`
}

type fixtureChannel struct {
	ID    uint64               `json:"id"`
	NodeA string               `json:"node_a"`
	NodeB string               `json:"node_b"`
	AToB  fixtureDirectionInfo `json:"a_to_b"`
	BToA  fixtureDirectionInfo `json:"b_to_a"`
}

type fixtureDirectionInfo struct {
	Enabled    bool   `json:"enabled"`
	CLTVDelta  uint16 `json:"cltv"`
	HTLCMinMsat uint64 `json:"htlc_min"`
	FeeBaseMsat uint32 `json:"fee_base"`
	FeePropPPM  uint32 `json:"fee_prop"`
}

type fixtureRouteHint struct {
	Node      string `json:"node"`
	Channel   uint64 `json:"channel"`
	CLTVDelta uint16 `json:"cltv"`
	FeeBaseMsat uint32 `json:"fee_base"`
	FeePropPPM  uint32 `json:"fee_prop"`
	HTLCMinMsat uint64 `json:"htlc_min"`
}

type fixtureRouteRequest struct {
	Target         string             `json:"target"`
	FinalValueMsat uint64             `json:"final_value_msat"`
	FinalCLTV      uint32             `json:"final_cltv"`
	Hints          []fixtureRouteHint `json:"hints"`
}

// namedKey is a node as known to loadFixture: its private key (needed to
// sign the gossip this tool synthesizes on its behalf) and derived vertex.
type namedKey struct {
	priv *btcec.PrivateKey
	v    route.Vertex
}

func parseNamedKey(hexKey string) (namedKey, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return namedKey{}, fmt.Errorf("decoding key: %w", err)
	}

	priv, _ := btcec.PrivKeyFromBytes(raw)

	return namedKey{priv: priv, v: route.NewVertex(priv.PubKey())}, nil
}

func sign(k namedKey, contents []byte) *ecdsa.Signature {
	digest := verify.Digest(contents)

	return ecdsa.Sign(k.priv, digest[:])
}

// loadFixture reads a fixture file at path, builds a Router seeded with
// ourKey as the local node, and replays every channel in the fixture
// through the router's real, signature-verified gossip ingest path.
func loadFixture(path string) (*routing.Router, *fixture, map[string]namedKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading fixture: %w", err)
	}

	var f fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, nil, nil, fmt.Errorf("parsing fixture: %w", err)
	}

	ourKey, err := parseNamedKey(f.OurKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("our_key: %w", err)
	}

	keys := map[string]namedKey{"our_key": ourKey}
	for name, hexKey := range f.Nodes {
		k, err := parseNamedKey(hexKey)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("node %s: %w", name, err)
		}

		keys[name] = k
	}

	router := routing.NewRouter(ourKey.v)

	var timestamp uint32
	for _, ch := range f.Channels {
		a, ok := keys[ch.NodeA]
		if !ok {
			return nil, nil, nil, fmt.Errorf("channel %d: unknown node_a %q", ch.ID, ch.NodeA)
		}
		b, ok := keys[ch.NodeB]
		if !ok {
			return nil, nil, nil, fmt.Errorf("channel %d: unknown node_b %q", ch.ID, ch.NodeB)
		}

		if err := announceAndUpdate(
			router, ch, a, b, &timestamp,
		); err != nil {
			return nil, nil, nil, fmt.Errorf("channel %d: %w", ch.ID, err)
		}
	}

	return router, &f, keys, nil
}

func announceAndUpdate(router *routing.Router, ch fixtureChannel, a, b namedKey,
	timestamp *uint32) error {

	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, ch.ID)
	buf.Write(a.v[:])
	buf.Write(b.v[:])
	contents := buf.Bytes()

	ann := &graph.ChannelAnnouncement{
		ContentsEncoded:    contents,
		NodeSignature1:     sign(a, contents),
		NodeSignature2:     sign(b, contents),
		BitcoinSignature1:  sign(a, contents),
		BitcoinSignature2:  sign(b, contents),
		ShortChannelID:     ch.ID,
		NodeID1:            a.v,
		NodeID2:            b.v,
		BitcoinKey1:        a.v,
		BitcoinKey2:        b.v,
	}

	if _, err := router.HandleChannelAnnouncement(ann); err != nil {
		return fmt.Errorf("announcing: %w", err)
	}

	if err := applyDirection(router, ch.ID, a, 0, ch.AToB, timestamp); err != nil {
		return fmt.Errorf("a-to-b update: %w", err)
	}

	if err := applyDirection(router, ch.ID, b, 1, ch.BToA, timestamp); err != nil {
		return fmt.Errorf("b-to-a update: %w", err)
	}

	return nil
}

func applyDirection(router *routing.Router, scid uint64, signer namedKey,
	directionBit uint16, d fixtureDirectionInfo, timestamp *uint32) error {

	*timestamp++

	flags := directionBit
	if !d.Enabled {
		flags |= 1 << 1
	}

	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, scid)
	_ = binary.Write(&buf, binary.BigEndian, *timestamp)
	_ = binary.Write(&buf, binary.BigEndian, flags)
	contents := buf.Bytes()

	update := &graph.ChannelUpdate{
		ContentsEncoded:           contents,
		Signature:                 sign(signer, contents),
		ShortChannelID:            scid,
		Timestamp:                 *timestamp,
		Flags:                     flags,
		CLTVExpiryDelta:           d.CLTVDelta,
		HTLCMinimumMsat:           lnwire.MilliSatoshi(d.HTLCMinMsat),
		FeeBaseMsat:               d.FeeBaseMsat,
		FeeProportionalMillionths: d.FeePropPPM,
	}

	return router.HandleChannelUpdate(update)
}

// resolveHints turns a fixture route request's hints into route.RouteHints,
// keyed against the same named-node keys used to build the graph.
func resolveHints(keys map[string]namedKey, hints []fixtureRouteHint) ([]*route.RouteHint, error) {
	out := make([]*route.RouteHint, 0, len(hints))

	for _, h := range hints {
		k, ok := keys[h.Node]
		if !ok {
			return nil, fmt.Errorf("hint: unknown node %q", h.Node)
		}

		out = append(out, &route.RouteHint{
			NodeID:                    k.v,
			ChannelID:                 h.Channel,
			FeeBaseMsat:               h.FeeBaseMsat,
			FeeProportionalMillionths: h.FeePropPPM,
			CLTVExpiryDelta:           h.CLTVDelta,
			HTLCMinimumMsat:           lnwire.MilliSatoshi(h.HTLCMinMsat),
		})
	}

	return out, nil
}
