// Package cache memoizes layout computation by content fingerprint. It is
// an optimization only: any store failure degrades to recomputation.
package cache

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/zeebo/blake3"

	"bylaws/document"
	"bylaws/layout"
)

// Key is fingerprint of a snapshot together with metrics it was laid out with.
type Key [32]byte

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// fingerprintKey separates layout fingerprints from any other use of BLAKE3.
var fingerprintKey = [32]byte{
	'b', 'y', 'l', 'a', 'w', 's', '.', 'l', 'a', 'y', 'o', 'u', 't', '.', 'f', 'i',
	'n', 'g', 'e', 'r', 'p', 'r', 'i', 'n', 't', '.', 'v', '1', 0, 0, 0, 0,
}

// Fingerprint hashes ordered snapshot and metrics. Any change which could
// affect layout changes the key, field boundaries are length prefixed so
// that moving text between fields does too.
func Fingerprint(src *document.Source, m layout.Metrics) Key {
	h, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		panic("cache: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	var buf [binary.MaxVarintLen64]byte
	field := func(s string) {
		h.Write(buf[:binary.PutUvarint(buf[:], uint64(len(s)))])
		h.Write([]byte(s))
	}
	number := func(v float64) {
		h.Write(binary.BigEndian.AppendUint64(buf[:0], math.Float64bits(v)))
	}

	metrics, err := Marshal(m)
	if err != nil {
		panic("cache: unable to encode metrics: " + err.Error())
	}
	field(string(metrics))
	field(src.Title)
	number(float64(len(src.Sections)))
	for i := range src.Sections {
		s := &src.Sections[i]
		field(s.ID)
		field(s.Type.String())
		field(s.ParentID)
		if s.HasOrder() {
			h.Write([]byte{1})
			number(*s.Order)
		} else {
			h.Write([]byte{0})
		}
		field(s.Title)
		field(s.Content)
	}

	var k Key
	copy(k[:], h.Sum(nil))
	return k
}
