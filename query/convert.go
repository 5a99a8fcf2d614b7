package query

import (
	"fmt"
	"image"
	"io"
	"os"

	// Register decoders for image.Decode.
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Convert decodes a JPEG or PNG image, scales it to cols x rows and returns
// its 8-bit grayscale pixels, row-major. The result has the same polarity
// as the source; use Invert for dark-on-light scans.
func Convert(r io.Reader, rows, cols int) ([]byte, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("query: invalid dimensions %dx%d", rows, cols)
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("query: decode image: %w", err)
	}

	dst := image.NewGray(image.Rect(0, 0, cols, rows))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := make([]byte, 0, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			out = append(out, dst.GrayAt(x, y).Y)
		}
	}
	return out, nil
}

// ConvertFile converts the image at src and writes the raw pixels to dst.
func ConvertFile(src, dst string, rows, cols int) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	pixels, err := Convert(in, rows, cols)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, pixels, 0o644)
}
