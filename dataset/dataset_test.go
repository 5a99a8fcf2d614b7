package dataset

import (
	"bytes"
	"context"
	"testing"

	"github.com/hupe1980/digitknn/blobstore"
	"github.com/hupe1980/digitknn/idx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		ds, err := New(1, 2, [][]byte{{1, 2}, {3, 4}, {5, 6}}, []uint8{0, 9, 0})
		require.NoError(t, err)

		assert.Equal(t, 3, ds.Len())
		assert.Equal(t, 1, ds.Rows())
		assert.Equal(t, 2, ds.Cols())
		assert.Equal(t, 2, ds.Dim())
		assert.Equal(t, []byte{3, 4}, ds.Image(1))
		assert.Equal(t, uint8(9), ds.Label(1))
		assert.Equal(t, [NumClasses]int{0: 2, 9: 1}, ds.LabelCounts())
	})

	t.Run("Empty", func(t *testing.T) {
		ds, err := New(28, 28, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := New(1, 1, [][]byte{{1}}, []uint8{1, 2})

		var lm *ErrLengthMismatch
		require.ErrorAs(t, err, &lm)
		assert.Equal(t, 1, lm.Images)
		assert.Equal(t, 2, lm.Labels)
	})

	t.Run("InvalidLabel", func(t *testing.T) {
		_, err := New(1, 1, [][]byte{{1}, {2}}, []uint8{3, 10})

		var il *ErrInvalidLabel
		require.ErrorAs(t, err, &il)
		assert.Equal(t, 1, il.Index)
		assert.Equal(t, uint8(10), il.Label)
	})

	t.Run("ImageSize", func(t *testing.T) {
		_, err := New(2, 2, [][]byte{{1, 2, 3, 4}, {1, 2, 3}}, []uint8{0, 0})

		var is *ErrImageSize
		require.ErrorAs(t, err, &is)
		assert.Equal(t, 1, is.Index)
		assert.Equal(t, 4, is.Expected)
		assert.Equal(t, 3, is.Actual)
	})

	t.Run("NegativeDimensions", func(t *testing.T) {
		_, err := New(-1, 2, nil, nil)
		assert.Error(t, err)
	})
}

func putIDX(t *testing.T, store *blobstore.MemoryStore, images [][]byte, labels []uint8, c idx.Compression) {
	t.Helper()
	ctx := context.Background()

	var buf bytes.Buffer
	w, err := idx.NewWriter(&buf, c)
	require.NoError(t, err)
	require.NoError(t, idx.WriteImages(w, 2, 2, images))
	require.NoError(t, w.Close())
	require.NoError(t, store.Put(ctx, "images", buf.Bytes()))

	buf = bytes.Buffer{}
	w, err = idx.NewWriter(&buf, c)
	require.NoError(t, err)
	require.NoError(t, idx.WriteLabels(w, labels))
	require.NoError(t, w.Close())
	require.NoError(t, store.Put(ctx, "labels", buf.Bytes()))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	images := [][]byte{{0, 0, 0, 0}, {255, 255, 255, 255}, {1, 2, 3, 4}}
	labels := []uint8{1, 7, 3}

	for _, c := range []idx.Compression{idx.CompressionNone, idx.CompressionGzip, idx.CompressionZstd} {
		t.Run(c.String(), func(t *testing.T) {
			store := blobstore.NewMemoryStore()
			putIDX(t, store, images, labels, c)

			ds, err := Load(ctx, store, "images", "labels")
			require.NoError(t, err)

			assert.Equal(t, 3, ds.Len())
			assert.Equal(t, 4, ds.Dim())
			for i := range images {
				assert.Equal(t, images[i], ds.Image(i))
				assert.Equal(t, labels[i], ds.Label(i))
			}
		})
	}

	t.Run("MissingLabels", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putIDX(t, store, images, labels, idx.CompressionNone)

		_, err := Load(ctx, store, "images", "nope")

		var fo *idx.FileOpenError
		require.ErrorAs(t, err, &fo)
		assert.Equal(t, "nope", fo.Path)
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("SwappedFiles", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putIDX(t, store, images, labels, idx.CompressionNone)

		_, err := Load(ctx, store, "labels", "images")
		assert.Equal(t, idx.KindInvalidMagicNumber, idx.KindOf(err))
	})

	t.Run("CountMismatch", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putIDX(t, store, images, labels[:2], idx.CompressionNone)

		_, err := Load(ctx, store, "images", "labels")

		var lm *ErrLengthMismatch
		assert.ErrorAs(t, err, &lm)
	})

	t.Run("Truncated", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putIDX(t, store, images, labels, idx.CompressionNone)

		blob, err := store.Open(ctx, "images")
		require.NoError(t, err)
		full := make([]byte, blob.Size())
		_, err = blob.ReadAt(ctx, full, 0)
		require.NoError(t, err)
		require.NoError(t, store.Put(ctx, "images", full[:len(full)-1]))

		_, err = Load(ctx, store, "images", "labels")
		assert.Equal(t, idx.KindTruncatedData, idx.KindOf(err))
	})
}
