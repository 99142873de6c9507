// Package verify wraps the cryptographic primitives the gossip ingest layer
// treats as external collaborators: a double-SHA256 digest function and a
// secp256k1 signature oracle. Everything else about signatures (encoding,
// key derivation, wallet custody) is out of scope for this core.
package verify

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Digest computes the 32-byte double-SHA256 digest of the canonical encoding
// of a gossip message's signed contents. Every gossip handler verifies its
// signature(s) over this digest.
func Digest(canonicalEncoding []byte) chainhash.Hash {
	return chainhash.DoubleHashH(canonicalEncoding)
}

// Verify checks that sig is a valid signature over digest from the given
// public key. It is the sole gate a gossip handler uses to accept or reject
// a message's authenticity.
func Verify(digest chainhash.Hash, sig *ecdsa.Signature, pubKey *btcec.PublicKey) bool {
	if sig == nil || pubKey == nil {
		return false
	}

	return sig.Verify(digest[:], pubKey)
}

// ParsePubKey decodes a 33-byte compressed secp256k1 public key, the wire
// format node and bitcoin keys are exchanged in.
func ParsePubKey(raw []byte) (*btcec.PublicKey, error) {
	pub, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}

	return pub, nil
}
