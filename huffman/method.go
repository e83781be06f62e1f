package huffman

import (
	"fmt"
	"strings"
)

// Method selects the decoding strategy used by Decode.  All methods accept
// the same streams and produce the same output.
type Method byte

const (
	// BitByBit walks the code trie one bit at a time.
	BitByBit Method = iota

	// SingleTable resolves each symbol with one lookup in a table of
	// 2^MaxSize entries.  Codes longer than 24 bits are rejected with
	// ErrTableTooLarge.
	SingleTable

	// TwoLevel splits the maximum code size in half: one table resolves
	// the short codes and one small table per long-code prefix resolves
	// the rest.
	TwoLevel
)

var methodNames = [...]string{
	BitByBit:    "bitbybit",
	SingleTable: "table",
	TwoLevel:    "twolevel",
}

// Methods lists every Method.
func Methods() []Method {
	return []Method{BitByBit, SingleTable, TwoLevel}
}

// String returns the name of the method, as accepted by ParseMethod.
func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", byte(m))
}

// ParseMethod returns the Method named by str.  Matching ignores case.
func ParseMethod(str string) (Method, error) {
	for m, name := range methodNames {
		if strings.EqualFold(str, name) {
			return Method(m), nil
		}
	}
	return 0, fmt.Errorf("huffman: unknown decoding method %q", str)
}

var _ fmt.Stringer = Method(0)
