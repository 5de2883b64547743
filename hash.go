package labeltree

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// contentHash is the 32-bit hash stored with every pattern variant,
// computed over the unescaped label bytes. External matchers compare
// hashes before bytes to reject unequal variants cheaply, so the only
// requirement is that equal bytes always produce equal hashes.
func contentHash(b []byte) uint32 {
	return murmur3.Sum32(b)
}

// Fingerprint returns a 64-bit hash of the whole path. Records are
// canonical (equal paths encode to identical records), so equal paths
// always share a fingerprint; external matchers use it for cheap
// whole-path inequality rejection.
func (p *LabelPath) Fingerprint() uint64 {
	return xxhash.Sum64(p.data)
}

// Key returns a 16-byte uniformly distributed key derived from the
// path's record, suitable for external hash indexes that require
// uniform key material.
func (p *LabelPath) Key() []byte {
	h := xxh3.Hash128(p.data)
	key := make([]byte, 16)
	binary.LittleEndian.PutUint64(key[0:8], h.Lo)
	binary.LittleEndian.PutUint64(key[8:16], h.Hi)
	return key
}
