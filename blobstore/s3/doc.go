// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// Dataset files are read once from start to end, so Open downloads the
// whole object with the SDK's multipart downloader and serves it from
// memory.
package s3
