package archive

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/treepack/treepack/internal/output"
)

// Compressor turns an uncompressed tar stream into the final output.
type Compressor interface {
	// Extension returns the output file extension without a dot, e.g. "gz".
	Extension() string
	// Compress reads the tar stream from r and writes the compressed
	// result to w.
	Compress(r io.Reader, w io.Writer) error
}

// NewCompressor returns the compressor for the configured type. A
// negative level selects the compressor's default. gzip and zstd run
// in-process; extra options force the external binary path, and any
// other type names the binary to pipe through.
func NewCompressor(compType string, level int, opts []string) (Compressor, error) {
	switch {
	case compType == "":
		return nil, output.NewUserError("no compressor type configured")
	case (compType == "gzip" || compType == "gz") && len(opts) == 0:
		return gzipCompressor{level: level}, nil
	case compType == "zstd" && len(opts) == 0:
		return zstdCompressor{level: level}, nil
	default:
		return externalCompressor{name: compType, level: level, opts: opts}, nil
	}
}

// gzipCompressor compresses in-process.
type gzipCompressor struct {
	level int
}

func (c gzipCompressor) Extension() string { return "gz" }

func (c gzipCompressor) Compress(r io.Reader, w io.Writer) error {
	level := c.level
	if level < 0 {
		level = gzip.DefaultCompression
	}
	zw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return fmt.Errorf("gzip level %d: %w", level, err)
	}
	if _, err := io.Copy(zw, r); err != nil {
		_ = zw.Close()
		return fmt.Errorf("gzip: %w", err)
	}
	return zw.Close()
}

// zstdCompressor compresses in-process.
type zstdCompressor struct {
	level int
}

func (c zstdCompressor) Extension() string { return "zst" }

func (c zstdCompressor) Compress(r io.Reader, w io.Writer) error {
	var encOpts []zstd.EOption
	if c.level >= 0 {
		encOpts = append(encOpts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(c.level)))
	}
	zw, err := zstd.NewWriter(w, encOpts...)
	if err != nil {
		return fmt.Errorf("zstd: %w", err)
	}
	if _, err := io.Copy(zw, r); err != nil {
		_ = zw.Close()
		return fmt.Errorf("zstd: %w", err)
	}
	return zw.Close()
}

// externalCompressor pipes the tar stream through a compressor binary
// with a numeric level flag and free-form extra options.
type externalCompressor struct {
	name  string
	level int
	opts  []string
}

func (c externalCompressor) Extension() string {
	switch c.name {
	case "gzip":
		return "gz"
	case "bzip2":
		return "bz2"
	case "zstd":
		return "zst"
	default:
		return c.name
	}
}

func (c externalCompressor) Compress(r io.Reader, w io.Writer) error {
	args := []string{"-c"}
	if c.level >= 0 {
		args = append(args, fmt.Sprintf("-%d", c.level))
	}
	args = append(args, c.opts...)

	cmd := exec.Command(c.name, args...)
	cmd.Stdin = r
	cmd.Stdout = w

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return fmt.Errorf("%s failed: %s", c.name, errMsg)
	}
	return nil
}
