package blobstore

import (
	"context"
	"io"
	"path/filepath"

	"github.com/hupe1980/digitknn/internal/mmap"
)

// LocalStore implements BlobStore using the local file system.
// Names are resolved relative to root; absolute names are used as is.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
// An empty root resolves names against the working directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) path(name string) string {
	if filepath.IsAbs(name) || s.root == "" {
		return name
	}
	return filepath.Join(s.root, name)
}

// Open opens a blob for reading.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	m, err := mmap.Open(s.path(name))
	if err != nil {
		return nil, err
	}
	// Blobs are consumed front to back by the IDX reader.
	_ = m.Advise(mmap.AccessSequential)

	return &localBlob{m: m}, nil
}

type localBlob struct {
	m *mmap.File
}

func (b *localBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := b.m.ReadAt(p, off)
	if err == mmap.ErrInvalidOffset {
		return 0, io.EOF
	}
	return n, err
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

func (b *localBlob) Size() int64 {
	return int64(b.m.Size())
}
