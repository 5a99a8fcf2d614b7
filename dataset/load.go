package dataset

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/digitknn/blobstore"
	"github.com/hupe1980/digitknn/idx"
	"golang.org/x/sync/errgroup"
)

// Load reads an IDX image blob and an IDX label blob from store and
// returns the validated dataset. Both blobs are fetched concurrently; the
// first failure cancels the other fetch and no partial dataset is returned.
func Load(ctx context.Context, store blobstore.BlobStore, imageName, labelName string) (*Dataset, error) {
	var (
		images *idx.Images
		labels []uint8
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return readBlob(gctx, store, imageName, func(r io.Reader) error {
			var err error
			images, err = idx.ReadImages(r, imageName)
			return err
		})
	})

	g.Go(func() error {
		return readBlob(gctx, store, labelName, func(r io.Reader) error {
			var err error
			labels, err = idx.ReadLabels(r, labelName)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return New(images.Rows, images.Cols, images.Data, labels)
}

// readBlob opens name, wraps it in a decompressing reader and hands it to
// fn. The blob is closed on every path.
func readBlob(ctx context.Context, store blobstore.BlobStore, name string, fn func(r io.Reader) error) error {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return &idx.FileOpenError{Path: name, Err: err}
	}
	defer blob.Close()

	rc, _, err := idx.NewReader(blobstore.NewReader(ctx, blob))
	if err != nil {
		return fmt.Errorf("dataset: %s: %w", name, err)
	}
	defer rc.Close()

	return fn(rc)
}
