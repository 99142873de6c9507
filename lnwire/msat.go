package lnwire

import "fmt"

// MilliSatoshi is a thousandth of a satoshi, the smallest unit of account
// the Lightning Network deals in.
type MilliSatoshi uint64

// String returns the string representation of the millisatoshi amount.
func (m MilliSatoshi) String() string {
	return fmt.Sprintf("%d mSAT", uint64(m))
}

// ToSatoshis converts the amount to satoshis, truncating any fractional
// amount.
func (m MilliSatoshi) ToSatoshis() uint64 {
	return uint64(m) / 1000
}
