package idx

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the container wrapped around an IDX stream.
type Compression uint8

const (
	// CompressionNone is a plain IDX stream.
	CompressionNone Compression = iota
	// CompressionGzip is the format the MNIST files are distributed in.
	CompressionGzip
	// CompressionZstd is a zstd frame.
	CompressionZstd
	// CompressionLZ4 is an lz4 frame.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// NewReader sniffs the first bytes of r and returns a reader that yields the
// decompressed IDX stream. Plain streams are passed through. IDX magic
// numbers start with two zero bytes, so they never collide with the
// compressed signatures.
func NewReader(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, CompressionNone, err
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, CompressionGzip, fmt.Errorf("gzip: %w", err)
		}
		return zr, CompressionGzip, nil
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, CompressionZstd, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), CompressionZstd, nil
	case bytes.HasPrefix(head, lz4Magic):
		return io.NopCloser(lz4.NewReader(br)), CompressionLZ4, nil
	default:
		return io.NopCloser(br), CompressionNone, nil
	}
}

// NewWriter wraps w so that everything written is compressed with c.
// The returned writer must be closed to flush the trailing frame.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("idx: unsupported compression %v", c)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
