//go:build !multichain

package graph

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// chanKey is the channel map's key type. Built without the multichain tag,
// the chain hash is ignored and channels are keyed by short channel id
// alone — the default policy, appropriate for a deployment that only ever
// routes over a single chain.
type chanKey = uint64

// newChanKey builds the channel map key for a given short channel id and
// chain hash, applying this build's key policy.
func newChanKey(scid uint64, _ chainhash.Hash) chanKey {
	return scid
}
