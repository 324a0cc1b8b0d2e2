package cluster

import (
	"encoding/binary"
	"time"
)

// EncodeInt32s packs ints as little-endian int32 payload bytes. Row values,
// document indices, and negotiated sizes all travel in this form.
func EncodeInt32s(vals []int) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(int32(v)))
	}
	return buf
}

// DecodeInt32s unpacks a little-endian int32 payload.
func DecodeInt32s(buf []byte) []int {
	vals := make([]int, len(buf)/4)
	for i := range vals {
		vals[i] = int(int32(binary.LittleEndian.Uint32(buf[4*i:])))
	}
	return vals
}

func encodeDuration(d time.Duration) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(d.Nanoseconds()))
	return buf
}

func decodeDuration(buf []byte) time.Duration {
	return time.Duration(binary.LittleEndian.Uint64(buf))
}
