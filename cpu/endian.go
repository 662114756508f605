package cpu

import (
	"encoding/binary"
)

// Word combines a low and a high byte into a little-endian 16-bit word.
func Word(lo, hi byte) uint16 {
	return binary.LittleEndian.Uint16([]byte{lo, hi})
}

// WordBytes splits a 16-bit word into its little-endian byte pair.
func WordBytes(w uint16) []byte {
	out := make([]byte, 2)
	binary.LittleEndian.PutUint16(out, w)
	return out
}

// SignExtend widens an 8-bit displacement to 16 bits.
func SignExtend(b byte) int16 {
	return int16(int8(b))
}
