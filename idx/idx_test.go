package idx

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageHeader(magic, count, rows, cols uint32) []byte {
	b := make([]byte, ImageHeaderSize)
	binary.BigEndian.PutUint32(b[0:], magic)
	binary.BigEndian.PutUint32(b[4:], count)
	binary.BigEndian.PutUint32(b[8:], rows)
	binary.BigEndian.PutUint32(b[12:], cols)
	return b
}

func labelHeader(magic, count uint32) []byte {
	b := make([]byte, LabelHeaderSize)
	binary.BigEndian.PutUint32(b[0:], magic)
	binary.BigEndian.PutUint32(b[4:], count)
	return b
}

func TestReadImages(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		payload := []byte{0, 1, 2, 3, 10, 20, 30, 40, 252, 253, 254, 255}
		data := append(imageHeader(ImageMagic, 3, 2, 2), payload...)

		images, err := ReadImages(bytes.NewReader(data), "mem")
		require.NoError(t, err)

		assert.Equal(t, 3, images.Count)
		assert.Equal(t, 2, images.Rows)
		assert.Equal(t, 2, images.Cols)
		assert.Equal(t, 4, images.Dim())
		require.Len(t, images.Data, 3)
		assert.Equal(t, []byte{0, 1, 2, 3}, images.Data[0])
		assert.Equal(t, []byte{10, 20, 30, 40}, images.Data[1])
		assert.Equal(t, []byte{252, 253, 254, 255}, images.Data[2])
		for _, img := range images.Data {
			assert.Len(t, img, images.Rows*images.Cols)
		}
	})

	t.Run("ImagesDoNotAlias", func(t *testing.T) {
		data := append(imageHeader(ImageMagic, 2, 1, 2), 1, 2, 3, 4)
		images, err := ReadImages(bytes.NewReader(data), "mem")
		require.NoError(t, err)

		images.Data[0] = append(images.Data[0], 99)
		assert.Equal(t, []byte{3, 4}, images.Data[1])
	})

	t.Run("Empty", func(t *testing.T) {
		images, err := ReadImages(bytes.NewReader(imageHeader(ImageMagic, 0, 28, 28)), "mem")
		require.NoError(t, err)
		assert.Equal(t, 0, images.Count)
		assert.Empty(t, images.Data)
	})

	t.Run("InvalidMagic", func(t *testing.T) {
		for _, magic := range []uint32{0, LabelMagic, 2052, 0x03080000} {
			data := append(imageHeader(magic, 1, 1, 1), 0)
			_, err := ReadImages(bytes.NewReader(data), "train-images")

			var im *InvalidMagicNumberError
			require.ErrorAs(t, err, &im)
			assert.Equal(t, ImageMagic, im.Expected)
			assert.Equal(t, magic, im.Found)
			assert.Equal(t, "train-images", im.Path)
			assert.Equal(t, KindInvalidMagicNumber, KindOf(err))
		}
	})

	t.Run("TruncatedPayload", func(t *testing.T) {
		data := append(imageHeader(ImageMagic, 3, 2, 2), make([]byte, 11)...)
		_, err := ReadImages(bytes.NewReader(data), "mem")

		var td *TruncatedDataError
		require.ErrorAs(t, err, &td)
		assert.Equal(t, "payload", td.Section)
		assert.Equal(t, uint64(12), td.Expected)
		assert.Equal(t, uint64(11), td.Found)
		assert.Equal(t, KindTruncatedData, KindOf(err))
	})

	t.Run("TruncatedHeader", func(t *testing.T) {
		data := imageHeader(ImageMagic, 3, 2, 2)[:10]
		_, err := ReadImages(bytes.NewReader(data), "mem")

		var td *TruncatedDataError
		require.ErrorAs(t, err, &td)
		assert.Equal(t, "header", td.Section)
		assert.Equal(t, uint64(ImageHeaderSize), td.Expected)
		assert.Equal(t, uint64(10), td.Found)
	})

	t.Run("EmptyStream", func(t *testing.T) {
		_, err := ReadImages(bytes.NewReader(nil), "mem")
		assert.Equal(t, KindTruncatedData, KindOf(err))
	})

	t.Run("HugeDeclaredSize", func(t *testing.T) {
		data := imageHeader(ImageMagic, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF)
		_, err := ReadImages(bytes.NewReader(data), "mem")
		assert.Equal(t, KindTruncatedData, KindOf(err))
	})

	t.Run("ZeroSizedImages", func(t *testing.T) {
		images, err := ReadImages(bytes.NewReader(imageHeader(ImageMagic, 3, 0, 28)), "mem")
		require.NoError(t, err)
		assert.Equal(t, 3, images.Count)
		assert.Equal(t, 0, images.Dim())
		require.Len(t, images.Data, 3)
		for _, img := range images.Data {
			assert.Empty(t, img)
		}

		images, err = ReadImages(bytes.NewReader(imageHeader(ImageMagic, 0, 0, 0)), "mem")
		require.NoError(t, err)
		assert.Empty(t, images.Data)
	})

	t.Run("LargeDeclaredCountSmallFile", func(t *testing.T) {
		data := append(imageHeader(ImageMagic, 1<<20, 28, 28), make([]byte, 784)...)
		_, err := ReadImages(bytes.NewReader(data), "mem")

		var td *TruncatedDataError
		require.ErrorAs(t, err, &td)
		assert.Equal(t, uint64(1<<20)*784, td.Expected)
		assert.Equal(t, uint64(784), td.Found)
	})
}

func TestReadLabels(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		data := append(labelHeader(LabelMagic, 4), 7, 2, 1, 0)
		labels, err := ReadLabels(bytes.NewReader(data), "mem")
		require.NoError(t, err)
		assert.Equal(t, []uint8{7, 2, 1, 0}, labels)
	})

	t.Run("InvalidMagic", func(t *testing.T) {
		data := append(labelHeader(ImageMagic, 1), 0)
		_, err := ReadLabels(bytes.NewReader(data), "labels")

		var im *InvalidMagicNumberError
		require.ErrorAs(t, err, &im)
		assert.Equal(t, LabelMagic, im.Expected)
		assert.Equal(t, ImageMagic, im.Found)
	})

	t.Run("Truncated", func(t *testing.T) {
		data := append(labelHeader(LabelMagic, 5), 1, 2)
		_, err := ReadLabels(bytes.NewReader(data), "mem")

		var td *TruncatedDataError
		require.ErrorAs(t, err, &td)
		assert.Equal(t, uint64(5), td.Expected)
		assert.Equal(t, uint64(2), td.Found)
	})

	t.Run("ShortMagic", func(t *testing.T) {
		_, err := ReadLabels(bytes.NewReader([]byte{0, 0}), "mem")

		var td *TruncatedDataError
		require.ErrorAs(t, err, &td)
		assert.Equal(t, "header", td.Section)
		assert.Equal(t, uint64(2), td.Found)
	})
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		_, err := ParseImages(filepath.Join(dir, "nope"))

		var fo *FileOpenError
		require.ErrorAs(t, err, &fo)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, KindFileOpen, KindOf(err))

		_, err = ParseLabels(filepath.Join(dir, "nope"))
		assert.Equal(t, KindFileOpen, KindOf(err))
	})

	t.Run("ImagesAndLabels", func(t *testing.T) {
		imgPath := filepath.Join(dir, "images.idx3-ubyte")
		lblPath := filepath.Join(dir, "labels.idx1-ubyte")

		var buf bytes.Buffer
		require.NoError(t, WriteImages(&buf, 2, 2, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}))
		require.NoError(t, os.WriteFile(imgPath, buf.Bytes(), 0o600))

		buf.Reset()
		require.NoError(t, WriteLabels(&buf, []uint8{3, 9}))
		require.NoError(t, os.WriteFile(lblPath, buf.Bytes(), 0o600))

		images, err := ParseImages(imgPath)
		require.NoError(t, err)
		assert.Equal(t, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}, images.Data)

		labels, err := ParseLabels(lblPath)
		require.NoError(t, err)
		assert.Equal(t, []uint8{3, 9}, labels)

		// Swapped files are rejected by magic.
		_, err = ParseImages(lblPath)
		assert.Equal(t, KindInvalidMagicNumber, KindOf(err))
		_, err = ParseLabels(imgPath)
		assert.Equal(t, KindInvalidMagicNumber, KindOf(err))
	})
}

func TestWriteImages_SizeMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := WriteImages(&buf, 2, 2, [][]byte{{1, 2, 3}})
	assert.Error(t, err)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(os.ErrClosed))
	assert.Equal(t, "FileOpenError", KindFileOpen.String())
	assert.Equal(t, "InvalidMagicNumberError", KindInvalidMagicNumber.String())
	assert.Equal(t, "TruncatedDataError", KindTruncatedData.String())
	assert.Equal(t, "Unknown", KindUnknown.String())
}
