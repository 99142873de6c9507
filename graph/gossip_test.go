package graph

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/lightninglabs/lnroute/routing/route"
	"github.com/stretchr/testify/require"
)

func nodeAnnouncement(t *testing.T, n testNode, timestamp uint32, alias [32]byte) *NodeAnnouncement {
	t.Helper()

	var buf bytes.Buffer
	buf.Write(n.v[:])
	_ = binary.Write(&buf, binary.BigEndian, timestamp)
	contents := buf.Bytes()

	return &NodeAnnouncement{
		ContentsEncoded: contents,
		Signature:       n.sign(t, contents),
		Timestamp:       timestamp,
		NodeID:          n.v,
		Alias:           alias,
	}
}

func TestHandleNodeAnnouncementRejectsUnknownNode(t *testing.T) {
	t.Parallel()

	our := newTestNode(t, 0x01)
	stranger := newTestNode(t, 0x02)
	b := NewBuilder(our.v)

	err := b.HandleNodeAnnouncement(nodeAnnouncement(t, stranger, 1, [32]byte{}))
	require.Error(t, err)

	var rerr *route.Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, route.ErrNoKnownChannels, rerr.Code)
	require.True(t, rerr.Ignore())
}

func TestHandleNodeAnnouncementUpdatesMetadata(t *testing.T) {
	t.Parallel()

	our := newTestNode(t, 0x01)
	peer := newTestNode(t, 0x02)
	b := NewBuilder(our.v)

	_, err := announceChannel(t, b, 1, our, peer)
	require.NoError(t, err)

	alias := [32]byte{'p', 'e', 'e', 'r'}
	err = b.HandleNodeAnnouncement(nodeAnnouncement(t, peer, 10, alias))
	require.NoError(t, err)

	node, ok := b.Snapshot().Node(peer.v)
	require.True(t, ok)
	require.Equal(t, alias, node.Alias)
	require.EqualValues(t, 10, node.LastUpdate)

	// A second announcement that does not strictly advance the timestamp
	// is rejected and leaves the existing metadata untouched.
	err = b.HandleNodeAnnouncement(nodeAnnouncement(t, peer, 10, [32]byte{}))
	require.Error(t, err)

	var rerr *route.Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, route.ErrStale, rerr.Code)

	node, ok = b.Snapshot().Node(peer.v)
	require.True(t, ok)
	require.Equal(t, alias, node.Alias)
}

func TestHandleChannelFailHintAppliesUpdate(t *testing.T) {
	t.Parallel()

	our := newTestNode(t, 0x01)
	peer := newTestNode(t, 0x02)
	b := NewBuilder(our.v)

	_, err := announceChannel(t, b, 1, our, peer)
	require.NoError(t, err)
	require.NoError(t, update(t, b, 1, our, 0, 1, 1000, 1, 40))

	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint64(1))
	_ = binary.Write(&buf, binary.BigEndian, uint32(2))
	_ = binary.Write(&buf, binary.BigEndian, uint16(disabledBit))
	contents := buf.Bytes()

	hint := &ChannelFailHint{
		Update: &ChannelUpdate{
			ContentsEncoded: contents,
			Signature:       our.sign(t, contents),
			ShortChannelID:  1,
			Timestamp:       2,
			Flags:           disabledBit,
			CLTVExpiryDelta: 40,
			HTLCMinimumMsat: 1,
			FeeBaseMsat:     1000,
		},
	}

	require.NoError(t, b.HandleChannelFailHint(hint))

	ch, ok := b.Snapshot().Channel(1, [32]byte{})
	require.True(t, ok)
	require.False(t, ch.OneToTwo.Enabled)
}

func TestHandleChannelFailHintSwallowsInnerError(t *testing.T) {
	t.Parallel()

	our := newTestNode(t, 0x01)
	b := NewBuilder(our.v)

	hint := &ChannelFailHint{
		Update: &ChannelUpdate{ShortChannelID: 99, Timestamp: 1},
	}

	require.NoError(t, b.HandleChannelFailHint(hint))
}

func TestHandleChannelFailHintRemovesClosedChannel(t *testing.T) {
	t.Parallel()

	our := newTestNode(t, 0x01)
	peer := newTestNode(t, 0x02)
	b := NewBuilder(our.v)

	_, err := announceChannel(t, b, 1, our, peer)
	require.NoError(t, err)

	hint := &ChannelFailHint{Closed: &ChannelClosed{ShortChannelID: 1}}
	require.NoError(t, b.HandleChannelFailHint(hint))

	_, ok := b.Snapshot().Channel(1, [32]byte{})
	require.False(t, ok)
}
