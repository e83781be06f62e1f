package adaptive

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/chronos-tachyon/bitpress/bitio"
)

func TestEncodeBytes_Golden(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		expect string
	}

	testData := [...]testRow{
		{"empty", "", "8080"},
		{"single", "a", "30a020"},
		{"abracadabra", "abracadabra", "308c41c90c6c32364404"},
		{"letters", "EDEAEEFECDAFDB", "22889083823508695f04284040"},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			out, err := EncodeBytes([]byte(row.input))
			if err != nil {
				t.Fatalf("EncodeBytes failed: %v", err)
			}
			if actual := hex.EncodeToString(out); actual != row.expect {
				t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	type testRow struct {
		name  string
		input []byte
	}

	all := make([]byte, 0, 1024)
	for i := 0; i < 4; i++ {
		for b := 0; b < 256; b++ {
			all = append(all, byte(b))
		}
	}
	skewed := make([]byte, 20000)
	for i := range skewed {
		x := rng.Intn(64)
		skewed[i] = byte(x * x / 64)
	}
	random := make([]byte, 5000)
	rng.Read(random)

	testData := []testRow{
		{"empty", nil},
		{"zero", []byte{0}},
		{"repeat", bytes.Repeat([]byte("z"), 1000)},
		{"text", []byte("the quick brown fox jumps over the lazy dog")},
		{"all-bytes", all},
		{"skewed", skewed},
		{"random", random},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			out, err := EncodeBytes(row.input)
			if err != nil {
				t.Fatalf("EncodeBytes failed: %v", err)
			}
			actual, err := DecodeBytes(out)
			if err != nil {
				t.Fatalf("DecodeBytes failed: %v", err)
			}
			if !bytes.Equal(actual, row.input) {
				t.Errorf("round trip mismatch: %d bytes in, %d bytes out", len(row.input), len(actual))
			}
		})
	}
}

func TestCodec_TreesStayInStep(t *testing.T) {
	input := []byte("EDEAEEFECDAFDB")

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	e := NewEncoder(w)
	for _, c := range input {
		if err := e.WriteSymbol(int(c)); err != nil {
			t.Fatalf("WriteSymbol failed: %v", err)
		}
	}
	_ = e.Close()
	_ = w.Close()

	d := NewDecoder(bitio.FromBytes(buf.Bytes()))
	for i, c := range input {
		symbol, err := d.ReadSymbol()
		if err != nil {
			t.Fatalf("ReadSymbol failed: %v", err)
		}
		if symbol != int(c) {
			t.Fatalf("symbol %d: expected %c, got %d", i, c, symbol)
		}
		if err := d.Tree().CheckSiblingProperty(); err != nil {
			t.Fatalf("symbol %d: %v", i, err)
		}
	}
	if _, err := d.ReadSymbol(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}

	var expect, actual bytes.Buffer
	_, _ = e.Tree().Dump(&expect)
	_, _ = d.Tree().Dump(&actual)
	if expect.String() != actual.String() {
		t.Errorf("trees differ:\n\texpect: %s\n\tactual: %s", expect.String(), actual.String())
	}
}

func TestEncoder_SymbolRange(t *testing.T) {
	e := NewEncoder(bitio.NewWriter(&bytes.Buffer{}))
	for _, symbol := range []int{-1, EOC, NumSymbols} {
		if err := e.WriteSymbol(symbol); err == nil {
			t.Errorf("expected an error for symbol %d", symbol)
		}
	}
}

func TestDecode_Corrupt(t *testing.T) {
	out, err := EncodeBytes([]byte("abracadabra"))
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}

	if _, err := DecodeBytes(out[:len(out)-2]); !errors.Is(err, ErrCorrupt) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected truncation error, got %v", err)
	}
	if _, err := DecodeBytes(nil); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected truncation error, got %v", err)
	}

	// literal 256 is not a byte; literal 300 is outside the alphabet
	for _, literal := range []uint32{256, 300} {
		var buf bytes.Buffer
		w := bitio.NewWriter(&buf)
		_ = w.WriteBits(literal, literalBits)
		_ = w.Close()
		if _, err := DecodeBytes(buf.Bytes()); !errors.Is(err, ErrCorrupt) {
			t.Errorf("literal %d: expected ErrCorrupt, got %v", literal, err)
		}
	}

	// "a" as a literal twice
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	_ = w.WriteBits('a', literalBits)
	_ = w.WriteBit(0)
	_ = w.WriteBits('a', literalBits)
	_ = w.Close()
	if _, err := DecodeBytes(buf.Bytes()); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt for a repeated literal, got %v", err)
	}
}
