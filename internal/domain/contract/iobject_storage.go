package contract

import (
	"context"
	"io"
	"time"
)

// IObjectStorage is the binary media store (videos, thumbnails, audio).
type IObjectStorage interface {
	GenerateUploadURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
	GenerateDownloadURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
	PutObject(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error
	DeleteObject(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
}
