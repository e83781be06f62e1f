package main

import (
	"fmt"
	"io"
	"time"

	"github.com/chronos-tachyon/bitpress"
)

type stats struct {
	plain  int64
	packed int64
	zstd   int64

	elapsed time.Duration
}

// ratio returns n as a percentage of the plain size.
func (st stats) ratio(n int64) float64 {
	if st.plain == 0 {
		return 0
	}
	return 100 * float64(n) / float64(st.plain)
}

func (st stats) summary(codec bitpress.Codec) string {
	return fmt.Sprintf("%v: %d plain bytes, %d packed bytes (%.1f%%) in %v",
		codec, st.plain, st.packed, st.ratio(st.packed), st.elapsed.Round(time.Millisecond))
}

func (st stats) report(codec bitpress.Codec, compare bool) {
	log.Info(st.summary(codec))
	if compare {
		log.Infof("zstd: %d packed bytes (%.1f%%)", st.zstd, st.ratio(st.zstd))
	}
}

// countingWriter counts the bytes written through it.  A nil w discards
// them.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.w == nil {
		cw.n += int64(len(p))
		return len(p), nil
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

var _ io.Writer = (*countingWriter)(nil)
var _ io.Reader = (*countingReader)(nil)
