// Package huffman implements a static, two-pass canonical Huffman codec over
// bytes.
//
// Encode counts the input, builds a Huffman tree, derives canonical codes from
// the code lengths alone, and writes a compact header followed by the coded
// input.  The longest-coded symbol doubles as the end marker ("guard"): the
// header records how often it occurs in the data, so its next occurrence ends
// the stream.
//
// Decode rebuilds the code from the header and decodes with one of three
// interchangeable strategies, selected by Method: a bit-by-bit trie walk, a
// single lookup table indexed by the longest code length, or a two-level table
// split at half that length.
//
// Canonical codes are numbered from the deepest level upward, so at every
// level the prefixes of longer codes take the smallest values.  This is not
// the DEFLATE numbering.
//
// Debug events are logged through github.com/op/go-logging under the module
// name "bitpress/huffman".  Until the program installs a backend of its own,
// only warnings and above are printed.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package huffman
