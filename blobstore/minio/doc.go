// Package minio provides a MinIO implementation of blobstore.BlobStore.
package minio
