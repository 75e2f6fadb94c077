package storage

import "context"

// ObjectInfo represents metadata for a stored object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the S3-compatible operations invoice ingestion
// needs: durable upload of the original scan and retrieval for review.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key, contentType string, data []byte) error
	DownloadObject(ctx context.Context, key string) ([]byte, error)
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
