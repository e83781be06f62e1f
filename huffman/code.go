package huffman

import (
	"fmt"
	"strings"
)

// Code is a bit string of up to 32 bits, read most significant bit first.
type Code struct {
	// Size is the length of the bit string.
	Size byte

	// Bits holds the bit string in its Size low bits.
	Bits uint32
}

// MakeCode returns the Code of the given length and bits.
func MakeCode(size byte, bits uint32) Code {
	return Code{Size: size, Bits: bits}
}

// Bit returns bit i of the code, where bit 0 is the first to be sent.
func (hc Code) Bit(i byte) int {
	return int(hc.Bits>>(hc.Size-1-i)) & 1
}

// String returns the bits as a quoted string of '0' and '1', first bit
// leftmost.
func (hc Code) String() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size) + 2)
	sb.WriteByte('"')
	for i := byte(0); i < hc.Size; i++ {
		sb.WriteByte('0' + byte(hc.Bit(i)))
	}
	sb.WriteByte('"')
	return sb.String()
}

var _ fmt.Stringer = Code{}
