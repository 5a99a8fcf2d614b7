package s3

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/digitknn/blobstore"
)

// Client is the subset of the S3 API the store uses.
// *s3.Client satisfies it.
type Client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client      Client
	bucket      string
	prefix      string
	concurrency int
}

// NewStore creates a new S3 blob store.
// rootPrefix is prepended to all keys (e.g. "mnist/").
func NewStore(client Client, bucket, rootPrefix string) *Store {
	return &Store{
		client:      client,
		bucket:      bucket,
		prefix:      rootPrefix,
		concurrency: manager.DefaultDownloadConcurrency,
	}
}

// NewFromConfig creates a Store using the default AWS credential chain.
// If endpoint is set, requests go to that S3-compatible endpoint with
// path-style addressing.
func NewFromConfig(ctx context.Context, bucket, rootPrefix, region, endpoint string) (*Store, error) {
	var optFns []func(*config.LoadOptions) error
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return NewStore(client, bucket, rootPrefix), nil
}

// WithConcurrency sets the number of parallel part downloads per blob.
func (s *Store) WithConcurrency(n int) *Store {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open downloads the object stored under name.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	size := aws.ToInt64(head.ContentLength)
	buf := manager.NewWriteAtBuffer(make([]byte, 0, size))

	downloader := manager.NewDownloader(s.client, func(d *manager.Downloader) {
		d.Concurrency = s.concurrency
	})

	n, err := downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, fmt.Errorf("s3: download %s: %w", key, err)
	}

	return blobstore.NewBytesBlob(buf.Bytes()[:n]), nil
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	return errors.As(err, &nsk)
}
