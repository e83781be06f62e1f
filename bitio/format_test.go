package bitio

import (
	"testing"
)

func TestBitString(t *testing.T) {
	type testRow struct {
		Input  []byte
		Output string
	}

	testData := [...]testRow{
		{nil, ""},
		{[]byte{0x00}, "00000000"},
		{[]byte{0xa5, 0x01}, "10100101 00000001"},
		{[]byte{0xff, 0x80, 0x7f}, "11111111 10000000 01111111"},
	}

	for _, row := range testData {
		if got := BitString(row.Input); got != row.Output {
			t.Errorf("BitString(% x): expected %q, got %q", row.Input, row.Output, got)
		}
	}
}
