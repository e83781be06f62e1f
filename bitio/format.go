package bitio

import (
	"fmt"
	"strings"
)

// BitString renders b as groups of eight '0' and '1' characters, one group
// per byte, separated by spaces.
func BitString(b []byte) string {
	var sb strings.Builder
	sb.Grow(9 * len(b))
	for i, x := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%08b", x)
	}
	return sb.String()
}
