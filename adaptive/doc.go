// Package adaptive implements a single-pass adaptive Huffman codec (the FGK
// algorithm) over bytes.
//
// Encoder and decoder start from the same empty tree and update it the same
// way after every symbol, so no code table is transmitted.  A symbol seen for
// the first time is sent as the path to the NYT ("not yet transmitted") leaf
// followed by its value in 9 bits; after that it is sent as the path to its
// own leaf, 0 for left and 1 for right.  The stream ends with the value EOC
// sent as a new symbol.
//
// Debug events are logged through github.com/op/go-logging under the module
// name "bitpress/adaptive".  Until the program installs a backend of its own,
// only warnings and above are printed.
//
package adaptive

// NumSymbols is the size of the alphabet: the 256 byte values, one unused
// value, and EOC.
const NumSymbols = 258

// EOC is the end-of-compression symbol.
const EOC = 257

// literalBits is the width of a first-seen symbol.
const literalBits = 9
