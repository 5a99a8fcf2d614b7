package query

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/digitknn/idx"
)

// ReadRaw reads exactly rows*cols bytes from r. name is only used in
// diagnostics. Trailing bytes are ignored.
func ReadRaw(r io.Reader, name string, rows, cols int) ([]byte, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("query: invalid dimensions %dx%d", rows, cols)
	}

	pixels := make([]byte, rows*cols)
	n, err := io.ReadFull(r, pixels)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &idx.TruncatedDataError{
				Path:     name,
				Section:  "payload",
				Expected: uint64(len(pixels)),
				Found:    uint64(n),
			}
		}
		return nil, fmt.Errorf("query: %s: %w", name, err)
	}
	return pixels, nil
}

// LoadRaw opens path and reads a rows x cols raw image from it.
func LoadRaw(path string, rows, cols int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &idx.FileOpenError{Path: path, Err: err}
	}
	defer f.Close()

	return ReadRaw(f, path, rows, cols)
}

// Invert returns a copy of pixels with every value p replaced by 255-p.
// Applying it twice yields the original image.
func Invert(pixels []byte) []byte {
	out := make([]byte, len(pixels))
	for i, p := range pixels {
		out[i] = 255 - p
	}
	return out
}
