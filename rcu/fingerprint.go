package rcu

import "github.com/cespare/xxhash/v2"

// Fingerprint returns a 64-bit content hash of b, useful for tagging
// which version of a Value a reader observed without comparing full
// snapshots byte-for-byte — e.g. logging "reader saw version %x" using
// a fingerprint of the version's serialized form.
func Fingerprint(b []byte) uint64 {
	return xxhash.Sum64(b)
}
