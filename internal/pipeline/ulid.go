package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job IDs are ULIDs: 26-character Crockford Base32 strings with a leading
// timestamp, sortable by creation time. Generated locally so no external
// dependency is needed.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func newJobID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// 48-bit big-endian timestamp in the first 6 bytes.
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	// Random in the remaining 10, with a sequence counter in bytes 6-7 so
	// IDs minted within the same millisecond stay unique.
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeBase32(b)
}

// encodeBase32 packs 128 bits into 26 Crockford Base32 characters, reading
// the byte array as one big-endian bit stream (the top two bits of the
// first character are zero-padding).
func encodeBase32(b [16]byte) string {
	var out [26]byte
	// Walk the 130-bit output space back to front, 5 bits per character.
	bits := uint(0)
	var acc uint64
	pos := len(b)
	for i := len(out) - 1; i >= 0; i-- {
		if bits < 5 && pos > 0 {
			pos--
			acc |= uint64(b[pos]) << bits
			bits += 8
		}
		out[i] = crockford[acc&31]
		acc >>= 5
		bits -= 5
	}
	return string(out[:])
}
