//go:build multichain

package graph

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// chanKey is the channel map's key type. Built with the multichain tag, the
// chain hash is paired with the short channel id so that the same
// short-channel-id value announced on two different chains does not
// collide.
type chanKey = struct {
	SCID  uint64
	Chain chainhash.Hash
}

// newChanKey builds the channel map key for a given short channel id and
// chain hash, applying this build's key policy.
func newChanKey(scid uint64, chain chainhash.Hash) chanKey {
	return chanKey{SCID: scid, Chain: chain}
}
