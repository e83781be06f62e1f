package huffman

import (
	mathbits "math/bits"
)

// bitWidth returns the number of binary digits in x; 0 has none.
func bitWidth(x uint32) int {
	return 32 - mathbits.LeadingZeros32(x)
}

// firstLongest returns the lowest symbol with the greatest size.
func firstLongest(codes []Code) Symbol {
	guard := InvalidSymbol
	var maxSize byte
	for symbol, hc := range codes {
		if hc.Size > maxSize {
			guard, maxSize = Symbol(symbol), hc.Size
		}
	}
	return guard
}
