package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

// String returns the hex form of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d is unset.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// jobDigest keys a job by everything that changes its pattern: the schema,
// the dialect, the BMP flag, the verify flag and the canonical text of both
// sets. The name is deliberately left out so renamed sets still hit.
func jobDigest(j Job, members, dontCare string) Digest {
	h := sha256.New()
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], diskCacheSchemaVersion)
	_, _ = h.Write(buf[:])
	writeField(h, j.Dialect)
	writeField(h, boolField(j.OnlyBMP))
	writeField(h, boolField(j.Verify))
	writeField(h, members)
	writeField(h, dontCare)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// writeField writes a length-prefixed field so adjacent fields cannot run
// into each other.
func writeField(h interface{ Write([]byte) (int, error) }, s string) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(s)))
	_, _ = h.Write(n[:])
	_, _ = h.Write([]byte(s))
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
