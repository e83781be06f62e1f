package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/op/go-logging"

	"github.com/chronos-tachyon/bitpress"
)

func TestParseFlags(t *testing.T) {
	type testRow struct {
		name   string
		args   []string
		expect Config
	}

	testData := [...]testRow{
		{
			name:   "defaults",
			args:   nil,
			expect: Config{Method: "huffman", BufferSize: 65536, Input: "-", Output: "-"},
		},
		{
			name:   "decompress",
			args:   []string{"-d", "-m", "lzw", "-decoder", "strings", "in.lzw"},
			expect: Config{Decompress: true, Method: "lzw", Variant: "strings", BufferSize: 65536, Input: "in.lzw", Output: "-"},
		},
		{
			name:   "both-files",
			args:   []string{"-compare", "-debug", "-buffer", "10", "a", "b"},
			expect: Config{Method: "huffman", Compare: true, Debug: true, BufferSize: 10, Input: "a", Output: "b"},
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			cfg, err := parseFlags(row.args)
			if err != nil {
				t.Fatalf("parseFlags failed: %v", err)
			}
			if *cfg != row.expect {
				t.Errorf("wrong config:\n\texpect: %+v\n\tactual: %+v", row.expect, *cfg)
			}
		})
	}

	for _, args := range [][]string{{"a", "b", "c"}, {"-buffer", "0"}, {"-nope"}} {
		if _, err := parseFlags(args); err == nil {
			t.Errorf("parseFlags(%q): expected an error", args)
		}
	}
}

func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := bytes.Repeat([]byte("how much wood would a woodchuck chuck\n"), 50)
	plainPath := filepath.Join(dir, "plain")
	if err := os.WriteFile(plainPath, input, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	for _, c := range bitpress.Codecs() {
		t.Run(c.String(), func(t *testing.T) {
			packedPath := filepath.Join(dir, "packed")
			outPath := filepath.Join(dir, "out")

			cfg := DefaultConfig()
			cfg.Compare = true
			cfg.Input, cfg.Output = plainPath, packedPath
			if err := run(cfg, c); err != nil {
				t.Fatalf("compress failed: %v", err)
			}

			cfg = DefaultConfig()
			cfg.Decompress = true
			cfg.Compare = true
			cfg.Input, cfg.Output = packedPath, outPath
			if err := run(cfg, c); err != nil {
				t.Fatalf("decompress failed: %v", err)
			}

			actual, err := os.ReadFile(outPath)
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}
			if !bytes.Equal(actual, input) {
				t.Errorf("round trip mismatch: %d bytes in, %d bytes out", len(input), len(actual))
			}
		})
	}
}

func TestStats_Summary(t *testing.T) {
	st := stats{plain: 200, packed: 50, elapsed: 1500*time.Millisecond + 300*time.Microsecond}
	codec := bitpress.Codec{Method: bitpress.Adaptive}

	expect := "adaptive: 200 plain bytes, 50 packed bytes (25.0%) in 1.5s"
	if actual := st.summary(codec); actual != expect {
		t.Errorf("wrong summary:\n\texpect: %q\n\tactual: %q", expect, actual)
	}
}

func TestStartLogging(t *testing.T) {
	startLogging()
	if lvl := logging.GetLevel("bitpress/lzw"); lvl != logging.INFO {
		t.Errorf("expected INFO for bitpress/lzw, got %v", lvl)
	}
	leveledLogBackend.SetLevel(logging.DEBUG, "")
	defer leveledLogBackend.SetLevel(logging.INFO, "")
	for _, module := range []string{"bitpress/huffman", "bitpress/adaptive", "bitpress/lzw"} {
		if lvl := logging.GetLevel(module); lvl != logging.DEBUG {
			t.Errorf("expected DEBUG for %s with -debug, got %v", module, lvl)
		}
	}
}
