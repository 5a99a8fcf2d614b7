package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// ThrottledStore wraps a BlobStore and limits the read throughput of every
// blob it opens. The limit is shared by all blobs of the store.
type ThrottledStore struct {
	inner   BlobStore
	limiter *rate.Limiter
}

// NewThrottledStore limits reads from inner to bytesPerSec.
// If bytesPerSec <= 0, inner is returned unchanged.
func NewThrottledStore(inner BlobStore, bytesPerSec int) BlobStore {
	if bytesPerSec <= 0 {
		return inner
	}
	return &ThrottledStore{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec),
	}
}

// Open opens a blob for reading.
func (s *ThrottledStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &throttledBlob{Blob: b, limiter: s.limiter}, nil
}

type throttledBlob struct {
	Blob
	limiter *rate.Limiter
}

func (b *throttledBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	// WaitN rejects requests above the burst size, so large reads are
	// split into burst-sized chunks.
	burst := b.limiter.Burst()
	total := 0
	for total < len(p) {
		chunk := min(len(p)-total, burst)
		if err := b.limiter.WaitN(ctx, chunk); err != nil {
			return total, err
		}
		n, err := b.Blob.ReadAt(ctx, p[total:total+chunk], off+int64(total))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
