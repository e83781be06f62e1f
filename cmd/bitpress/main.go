package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/op/go-logging"

	"github.com/chronos-tachyon/bitpress"
)

var log = logging.MustGetLogger("bitpress/cmd")

const progName = "bitpress"
const usageMessageRaw = `
Usage: bitpress [OPTIONS] [IN [OUT]]

Compresses IN to OUT, or decompresses with -d.  IN and OUT default to
standard input and standard output; "-" names them explicitly.

Options:
  -d
	Decompress instead of compress.
  -m METHOD
	Use METHOD (default huffman).
  -decoder VARIANT
	Use VARIANT of the method.  Any variant decodes what any other
	variant of the same method wrote.
  -compare
	Also report the size of the plain data under zstd.
  -buffer N
	Buffer N bytes of output (default 65536).
  -debug
	Log every codec's internals to standard error.

Methods and variants:$methods
`

// Config is the command line, parsed.
type Config struct {
	Decompress bool
	Method     string
	Variant    string
	Compare    bool
	Debug      bool
	BufferSize int
	Input      string
	Output     string
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() *Config {
	return &Config{
		Method:     "huffman",
		BufferSize: 65536,
		Input:      "-",
		Output:     "-",
	}
}

func methodsReadable() string {
	result := ""
	for _, c := range bitpress.Codecs() {
		result += "\n  " + strings.Replace(c.String(), "/", " ", 1)
	}
	return result
}

func usageMessage() string {
	template := strings.TrimLeft(usageMessageRaw, "\n")
	return strings.NewReplacer("$methods", methodsReadable()).Replace(template)
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(64)
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

var leveledLogBackend logging.Leveled

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{level:8s} %{module:-20s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

type nullWriter struct{}

func (*nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

// parseFlags fills a Config from args.
func parseFlags(args []string) (*Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet(progName, flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(&nullWriter{})
	fs.BoolVar(&cfg.Decompress, "d", cfg.Decompress, "")
	fs.StringVar(&cfg.Method, "m", cfg.Method, "")
	fs.StringVar(&cfg.Variant, "decoder", cfg.Variant, "")
	fs.BoolVar(&cfg.Compare, "compare", cfg.Compare, "")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "")
	fs.IntVar(&cfg.BufferSize, "buffer", cfg.BufferSize, "")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 2:
		cfg.Output = fs.Arg(1)
		fallthrough
	case 1:
		cfg.Input = fs.Arg(0)
	case 0:
	default:
		return nil, fmt.Errorf("too many arguments at %q", fs.Arg(2))
	}
	if cfg.BufferSize <= 0 {
		return nil, fmt.Errorf("-buffer must be positive, got %d", cfg.BufferSize)
	}
	return cfg, nil
}

func main() {
	startLogging()

	cfg, err := parseFlags(os.Args[1:])
	if err == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if err != nil {
		usageErrorf("%s", err.Error())
	}

	if cfg.Debug {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	codec, err := bitpress.ParseCodec(cfg.Method, cfg.Variant)
	if err != nil {
		usageErrorf("%s", err.Error())
	}

	if err := run(cfg, codec); err != nil {
		exitError(err)
	}
}

func run(cfg *Config, codec bitpress.Codec) (err error) {
	in, err := openInput(cfg.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := createOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil && out != os.Stdout {
			os.Remove(cfg.Output)
		}
	}()

	counted := &countingWriter{w: out}
	bw := bufio.NewWriterSize(counted, cfg.BufferSize)

	start := time.Now()
	var st stats
	if cfg.Decompress {
		st, err = decompress(cfg, codec, bw, in)
	} else {
		st, err = compress(cfg, codec, bw, in)
	}
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	st.elapsed = time.Since(start)

	if cfg.Decompress {
		st.plain = counted.n
	} else {
		st.packed = counted.n
	}
	st.report(codec, cfg.Compare)
	return nil
}

// compress encodes in to out.  The codec may need to seek in its input, so
// an input that cannot seek is read into memory first.
func compress(cfg *Config, codec bitpress.Codec, out io.Writer, in *os.File) (stats, error) {
	var st stats

	src, size, err := seekable(in)
	if err != nil {
		return st, err
	}
	st.plain = size

	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return st, err
	}
	if err := codec.Encode(out, src); err != nil {
		return st, err
	}

	if cfg.Compare {
		if _, err := src.Seek(start, io.SeekStart); err != nil {
			return st, err
		}
		var zw countingWriter
		enc, err := zstd.NewWriter(&zw)
		if err != nil {
			return st, err
		}
		if _, err := io.Copy(enc, src); err != nil {
			enc.Close()
			return st, err
		}
		if err := enc.Close(); err != nil {
			return st, err
		}
		st.zstd = zw.n
	}
	return st, nil
}

// decompress decodes in to out.
func decompress(cfg *Config, codec bitpress.Codec, out io.Writer, in *os.File) (stats, error) {
	var st stats

	src := &countingReader{r: in}
	if !cfg.Compare {
		err := codec.Decode(out, src)
		st.packed = src.n
		return st, err
	}

	var zw countingWriter
	enc, err := zstd.NewWriter(&zw)
	if err != nil {
		return st, err
	}
	if err := codec.Decode(io.MultiWriter(out, enc), src); err != nil {
		enc.Close()
		return st, err
	}
	if err := enc.Close(); err != nil {
		return st, err
	}
	st.packed = src.n
	st.zstd = zw.n
	return st, nil
}

// seekable returns in itself if it is a regular file, or its contents in
// memory if not, along with its size.
func seekable(in *os.File) (io.ReadSeeker, int64, error) {
	if fi, err := in.Stat(); err == nil && fi.Mode().IsRegular() {
		pos, err := in.Seek(0, io.SeekCurrent)
		if err == nil {
			return in, fi.Size() - pos, nil
		}
	}

	log.Debugf("reading %s into memory", in.Name())
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, 0, err
	}
	return bytes.NewReader(data), int64(len(data)), nil
}

func openInput(name string) (*os.File, error) {
	if name == "-" {
		return os.Stdin, nil
	}
	return os.Open(name)
}

func createOutput(name string) (*os.File, error) {
	if name == "-" {
		return os.Stdout, nil
	}
	return os.Create(name)
}
