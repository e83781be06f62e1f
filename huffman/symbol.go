package huffman

// Symbol represents a symbol in an arbitrary alphabet.  Negative symbols are
// not valid.
type Symbol int32

// NumSymbols is the size of the byte alphabet used by Encode and Decode.
const NumSymbols = 256

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// maxBitsPerCode is the longest code length that can be written or read.
const maxBitsPerCode = 31

// maxTableBits is the longest code length accepted by the SingleTable
// decoder.
const maxTableBits = 24
