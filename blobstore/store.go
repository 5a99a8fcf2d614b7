package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for accessing immutable data blobs.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.Closer
	// ReadAt reads len(p) bytes starting at off. It returns io.EOF when
	// fewer bytes are available.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the size of the blob in bytes.
	Size() int64
}

// NewReader returns a sequential reader over b starting at offset zero.
// The caller still owns b and must close it.
func NewReader(ctx context.Context, b Blob) io.Reader {
	return &blobReader{ctx: ctx, blob: b}
}

type blobReader struct {
	ctx  context.Context
	blob Blob
	off  int64
}

func (r *blobReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.off >= r.blob.Size() {
		return 0, io.EOF
	}
	if remaining := r.blob.Size() - r.off; int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := r.blob.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

// bytesBlob is a Blob backed by a byte slice.
type bytesBlob struct {
	data []byte
}

// NewBytesBlob returns a Blob that serves data from memory.
// The slice is not copied.
func NewBytesBlob(data []byte) Blob {
	return &bytesBlob{data: data}
}

func (b *bytesBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if off < 0 || off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *bytesBlob) Close() error {
	return nil
}

func (b *bytesBlob) Size() int64 {
	return int64(len(b.data))
}
