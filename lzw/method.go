package lzw

import (
	"fmt"
	"strings"
)

// Method selects how the dictionary is kept.  All methods read and write the
// same streams.
type Method byte

const (
	// Trie keys the encoder dictionary by (code, byte) pairs and decodes
	// by walking parent links onto a stack.
	Trie Method = iota

	// Strings keys both dictionaries by the full byte strings.
	Strings
)

var methodNames = [...]string{
	Trie:    "trie",
	Strings: "strings",
}

// Methods lists every Method.
func Methods() []Method {
	return []Method{Trie, Strings}
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
	return 0, fmt.Errorf("lzw: unknown method %q", str)
}

var _ fmt.Stringer = Method(0)
