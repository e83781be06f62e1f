package huffman

import (
	"bufio"
	"io"
	"math"
)

// FrequencyTable counts the occurrences of each byte value.
type FrequencyTable [NumSymbols]uint32

// CountFrequencies reads r to the end and counts its bytes.  It returns the
// table and the number of bytes read.
func CountFrequencies(r io.Reader) (FrequencyTable, int64, error) {
	var ft FrequencyTable
	var total int64
	br := bufio.NewReader(r)
	var buf [4096]byte
	for {
		n, err := br.Read(buf[:])
		ft.Add(buf[:n])
		total += int64(n)
		if err == io.EOF {
			return ft, total, nil
		}
		if err != nil {
			return ft, total, err
		}
	}
}

// Add counts every byte of p.  Counts saturate at math.MaxUint32.
func (ft *FrequencyTable) Add(p []byte) {
	for _, b := range p {
		if ft[b] != math.MaxUint32 {
			ft[b]++
		}
	}
}

// Distinct returns the number of byte values with a non-zero count.
func (ft *FrequencyTable) Distinct() int {
	var n int
	for _, freq := range ft {
		if freq != 0 {
			n++
		}
	}
	return n
}

// weights returns the tree weights for ft.  If fewer than two byte values
// occur, the lowest unused values are added with weight 1 so that a tree can
// still be built; those phantom symbols never appear in the coded data.
func (ft *FrequencyTable) weights() []uint32 {
	out := make([]uint32, NumSymbols)
	copy(out, ft[:])
	missing := 2 - ft.Distinct()
	for symbol := 0; missing > 0; symbol++ {
		if out[symbol] == 0 {
			out[symbol] = 1
			missing--
		}
	}
	return out
}
