package idx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"
	"os"
)

const (
	// ImageMagic identifies an IDX file of unsigned byte 3-D tensors (images).
	ImageMagic uint32 = 2051
	// LabelMagic identifies an IDX file of unsigned byte 1-D tensors (labels).
	LabelMagic uint32 = 2049

	// ImageHeaderSize is the size of the image file header in bytes.
	ImageHeaderSize = 16
	// LabelHeaderSize is the size of the label file header in bytes.
	LabelHeaderSize = 8
)

// Images is a parsed IDX image file.
type Images struct {
	Count int
	Rows  int
	Cols  int
	// Data holds Count images of Rows*Cols bytes each, in file order.
	Data [][]byte
}

// Dim returns the number of pixels per image.
func (im *Images) Dim() int {
	return im.Rows * im.Cols
}

// ParseImages opens path and reads an IDX image file from it.
// Compressed files are decompressed transparently.
func ParseImages(path string) (*Images, error) {
	var images *Images
	err := withFile(path, func(r io.Reader) error {
		var err error
		images, err = ReadImages(r, path)
		return err
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// ParseLabels opens path and reads an IDX label file from it.
// Compressed files are decompressed transparently.
func ParseLabels(path string) ([]uint8, error) {
	var labels []uint8
	err := withFile(path, func(r io.Reader) error {
		var err error
		labels, err = ReadLabels(r, path)
		return err
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func withFile(path string, fn func(r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &FileOpenError{Path: path, Err: err}
	}
	defer f.Close()

	rc, _, err := NewReader(f)
	if err != nil {
		return fmt.Errorf("idx: %s: %w", path, err)
	}
	defer rc.Close()

	return fn(rc)
}

// ReadImages reads an IDX image stream. name is only used in diagnostics.
func ReadImages(r io.Reader, name string) (*Images, error) {
	hdr, err := readHeader(r, name, ImageMagic, ImageHeaderSize)
	if err != nil {
		return nil, err
	}

	count, rows, cols := hdr[0], hdr[1], hdr[2]

	dim, ok := mulUint64(uint64(rows), uint64(cols))
	if !ok {
		return nil, &TruncatedDataError{Path: name, Section: "payload", Expected: math.MaxUint64}
	}
	total, ok := mulUint64(uint64(count), dim)
	if !ok {
		return nil, &TruncatedDataError{Path: name, Section: "payload", Expected: math.MaxUint64}
	}

	payload, err := readPayload(r, name, total)
	if err != nil {
		return nil, err
	}

	d := int(dim)
	data := make([][]byte, int(count))
	for i := range data {
		lo, hi := i*d, (i+1)*d
		data[i] = payload[lo:hi:hi]
	}

	return &Images{
		Count: int(count),
		Rows:  int(rows),
		Cols:  int(cols),
		Data:  data,
	}, nil
}

// ReadLabels reads an IDX label stream. name is only used in diagnostics.
func ReadLabels(r io.Reader, name string) ([]uint8, error) {
	hdr, err := readHeader(r, name, LabelMagic, LabelHeaderSize)
	if err != nil {
		return nil, err
	}
	return readPayload(r, name, uint64(hdr[0]))
}

// readHeader reads the magic number followed by the remaining size fields
// of a header of size bytes. The magic is checked before the rest of the
// header is required, so a short file of the wrong kind reports the magic.
func readHeader(r io.Reader, name string, magic uint32, size int) ([]uint32, error) {
	var buf [ImageHeaderSize]byte

	n, err := io.ReadFull(r, buf[:4])
	if err != nil {
		return nil, headerError(name, err, uint64(size), uint64(n))
	}
	if found := binary.BigEndian.Uint32(buf[:4]); found != magic {
		return nil, &InvalidMagicNumberError{Path: name, Expected: magic, Found: found}
	}

	m, err := io.ReadFull(r, buf[4:size])
	if err != nil {
		return nil, headerError(name, err, uint64(size), uint64(4+m))
	}

	fields := make([]uint32, 0, size/4-1)
	for off := 4; off < size; off += 4 {
		fields = append(fields, binary.BigEndian.Uint32(buf[off:off+4]))
	}
	return fields, nil
}

func headerError(name string, err error, expected, found uint64) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &TruncatedDataError{Path: name, Section: "header", Expected: expected, Found: found}
	}
	return fmt.Errorf("idx: %s: read header: %w", name, err)
}

// readPayload reads exactly n bytes. The buffer grows with the data actually
// read, so a bogus header cannot force a huge allocation up front.
func readPayload(r io.Reader, name string, n uint64) ([]byte, error) {
	if n > math.MaxInt64 {
		return nil, &TruncatedDataError{Path: name, Section: "payload", Expected: n}
	}

	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, r, int64(n))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &TruncatedDataError{Path: name, Section: "payload", Expected: n, Found: uint64(copied)}
		}
		return nil, fmt.Errorf("idx: %s: read payload: %w", name, err)
	}
	return buf.Bytes(), nil
}

func mulUint64(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return lo, true
}
