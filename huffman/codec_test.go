package huffman

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"math/rand"
	"testing"
)

func TestEncodeBytes_Golden(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		expect string
	}

	testData := [...]testRow{
		{
			name:   "empty",
			input:  "",
			expect: "3e000000000000000000000000000000000000000000000000000000000000000000",
		},
		{
			name:   "single",
			input:  "aaaa",
			expect: "3800000000000000000000000600000000000000000000000000000000000000003c",
		},
		{
			name:   "abracadabra",
			input:  "abracadabra",
			expect: "4000000000000000000000000bff0007000000000000000000000000000000000000a87350e0",
		},
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

func TestCodec_Text(t *testing.T) {
	input := []byte("ABBCCCDDDDDEEEEEEEEFFFFFFFFFFFFFGGGGGGGGGGGGGGGGGGGGG")

	out, err := EncodeBytes(input)
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}
	if len(out) >= len(input) {
		t.Errorf("expected fewer than %d bytes, got %d", len(input), len(out))
	}

	for _, m := range Methods() {
		t.Run(m.String(), func(t *testing.T) {
			actual, err := DecodeBytes(out, m)
			if err != nil {
				t.Fatalf("DecodeBytes failed: %v", err)
			}
			if !bytes.Equal(actual, input) {
				t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", input, actual)
			}
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	type testRow struct {
		name  string
		input []byte
	}

	testData := []testRow{
		{"empty", nil},
		{"zero", []byte{0}},
		{"zeros", bytes.Repeat([]byte{0}, 100)},
		{"high", bytes.Repeat([]byte{255}, 3)},
		{"pair", []byte("ab")},
		{"guard-heavy", []byte("zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzza")},
		{"all-bytes", allBytes(3)},
		{"random", randomBytes(rng, 10000, 256)},
		{"skewed", randomBytes(rng, 10000, 5)},
		{"fibonacci", fibonacciBytes(20)},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			out, err := EncodeBytes(row.input)
			if err != nil {
				t.Fatalf("EncodeBytes failed: %v", err)
			}
			for _, m := range Methods() {
				actual, err := DecodeBytes(out, m)
				if err != nil {
					t.Fatalf("%v: DecodeBytes failed: %v", m, err)
				}
				if !bytes.Equal(actual, row.input) {
					t.Errorf("%v: round trip mismatch: %d bytes in, %d bytes out", m, len(row.input), len(actual))
				}
			}
		})
	}
}

func TestDecode_LongCodes(t *testing.T) {
	input := fibonacciBytes(26)

	out, err := EncodeBytes(input)
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}

	if _, err := DecodeBytes(out, SingleTable); !errors.Is(err, ErrTableTooLarge) {
		t.Errorf("expected ErrTableTooLarge, got %v", err)
	}
	for _, m := range []Method{BitByBit, TwoLevel} {
		actual, err := DecodeBytes(out, m)
		if err != nil {
			t.Fatalf("%v: DecodeBytes failed: %v", m, err)
		}
		if !bytes.Equal(actual, input) {
			t.Errorf("%v: round trip mismatch", m)
		}
	}
}

func TestDecode_Truncated(t *testing.T) {
	out, err := EncodeBytes([]byte("abracadabra"))
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}

	for _, n := range []int{0, 1, 20, len(out) - 3} {
		for _, m := range Methods() {
			_, err := DecodeBytes(out[:n], m)
			if !errors.Is(err, ErrCorrupt) || !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("%d bytes, %v: expected truncation error, got %v", n, m, err)
			}
		}
	}
}

func TestDecode_TrailingData(t *testing.T) {
	input := []byte("mississippi")
	out, err := EncodeBytes(input)
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}
	out = append(out, 0xff, 0x00, 0x55)

	for _, m := range Methods() {
		actual, err := DecodeBytes(out, m)
		if err != nil {
			t.Fatalf("%v: DecodeBytes failed: %v", m, err)
		}
		if !bytes.Equal(actual, input) {
			t.Errorf("%v: expected %q, got %q", m, input, actual)
		}
	}
}

func TestEncode_SeeksBack(t *testing.T) {
	src := bytes.NewReader([]byte("xxhello, world"))
	if _, err := src.Seek(2, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, src); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	actual, err := DecodeBytes(buf.Bytes(), BitByBit)
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if string(actual) != "hello, world" {
		t.Errorf("expected %q, got %q", "hello, world", actual)
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods() {
		actual, err := ParseMethod(m.String())
		if err != nil || actual != m {
			t.Errorf("ParseMethod(%q) = %v, %v", m.String(), actual, err)
		}
	}
	if _, err := ParseMethod("fastest"); err == nil {
		t.Errorf("expected an error for an unknown method")
	}
}

func allBytes(repeat int) []byte {
	out := make([]byte, 0, 256*repeat)
	for i := 0; i < repeat; i++ {
		for b := 0; b < 256; b++ {
			out = append(out, byte(b))
		}
	}
	return out
}

func randomBytes(rng *rand.Rand, n int, alphabet int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(rng.Intn(alphabet))
	}
	return out
}

// fibonacciBytes returns byte i repeated fib(i) times for the first n
// Fibonacci numbers, which yields codes n-1 bits long.
func fibonacciBytes(n int) []byte {
	var out []byte
	for i, f := range fibonacci(n) {
		out = append(out, bytes.Repeat([]byte{byte('a' + i)}, int(f))...)
	}
	return out
}
