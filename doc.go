// Package digitknn classifies a handwritten digit by brute-force
// K-nearest-neighbor search in raw pixel space.
//
// A run loads a labeled training set stored in the IDX format, loads one
// headerless query image of the same size and reports the three best
// ranked digits for each K in a configured range.
//
// # Quick Start
//
//	cfg := digitknn.DefaultConfig()
//	report, err := digitknn.Run(ctx, cfg, digitknn.WithLogLevel(slog.LevelDebug))
//	if err != nil {
//	    return err
//	}
//	for _, r := range report.Results {
//	    fmt.Println(r.K, r.Result.Primary)
//	}
//
// # Sources
//
// Training files and the query are read through a blobstore.BlobStore. The
// Source section of the Config selects a local directory (memory-mapped),
// an S3 bucket or a MinIO bucket. IDX files may be gzip, zstd or lz4
// compressed; the format is detected from the stream.
//
// # Errors
//
// Load failures are reported as *idx.FileOpenError,
// *idx.InvalidMagicNumberError or *idx.TruncatedDataError and abort the
// run. Classification itself never fails: degenerate K values produce
// knn.None labels.
package digitknn
