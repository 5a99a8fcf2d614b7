package idx

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/digitknn/internal/conv"
)

// WriteImages writes images as an IDX image stream.
// Every image must hold exactly rows*cols bytes.
func WriteImages(w io.Writer, rows, cols int, images [][]byte) error {
	count, err := conv.IntToUint32(len(images))
	if err != nil {
		return err
	}
	r, err := conv.IntToUint32(rows)
	if err != nil {
		return err
	}
	c, err := conv.IntToUint32(cols)
	if err != nil {
		return err
	}

	var hdr [ImageHeaderSize]byte
	binary.BigEndian.PutUint32(hdr[0:], ImageMagic)
	binary.BigEndian.PutUint32(hdr[4:], count)
	binary.BigEndian.PutUint32(hdr[8:], r)
	binary.BigEndian.PutUint32(hdr[12:], c)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	dim := rows * cols
	for i, img := range images {
		if len(img) != dim {
			return fmt.Errorf("idx: image %d has %d bytes, want %d", i, len(img), dim)
		}
		if _, err := w.Write(img); err != nil {
			return err
		}
	}
	return nil
}

// WriteLabels writes labels as an IDX label stream.
func WriteLabels(w io.Writer, labels []uint8) error {
	count, err := conv.IntToUint32(len(labels))
	if err != nil {
		return err
	}

	var hdr [LabelHeaderSize]byte
	binary.BigEndian.PutUint32(hdr[0:], LabelMagic)
	binary.BigEndian.PutUint32(hdr[4:], count)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err = w.Write(labels)
	return err
}
