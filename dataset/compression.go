package dataset

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the stream compression wrapped around an encoded
// dataset.
type Compression int

const (
	// CompressionNone stores the encoding as is.
	CompressionNone Compression = iota
	// CompressionZSTD uses a zstd stream (better ratio, slower to write).
	CompressionZSTD
	// CompressionLZ4 uses an LZ4 frame (fast, good for repeated local runs).
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Ext returns the file suffix for c, including the dot.
func (c Compression) Ext() string {
	switch c {
	case CompressionZSTD:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompression maps a compression name to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZSTD, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("dataset: unknown compression %q", name)
	}
}

// DetectEncoding infers format and compression from a blob name such as
// "sift.fvecs.zst" or "glove.txt". Names without a known suffix are text.
func DetectEncoding(name string) (Format, Compression) {
	c := CompressionNone
	switch path.Ext(name) {
	case ".zst":
		c = CompressionZSTD
		name = strings.TrimSuffix(name, ".zst")
	case ".lz4":
		c = CompressionLZ4
		name = strings.TrimSuffix(name, ".lz4")
	}

	if path.Ext(name) == ".fvecs" {
		return FormatFvecs, c
	}
	return FormatText, c
}

// NewDecompressor wraps r so reads return decompressed bytes.
func NewDecompressor(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("dataset: unsupported compression %v", c)
	}
}

// NewCompressor wraps w so writes are compressed. Close flushes the stream
// but does not close w.
func NewCompressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZSTD:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("dataset: unsupported compression %v", c)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
