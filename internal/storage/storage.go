package storage

import (
	"context"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Service stores listing creative assets in remote object storage. Clients
// upload directly through presigned URLs; the API never proxies asset bytes.
type Service interface {
	PresignUpload(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	ObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	DeletePrefix(ctx context.Context, bucket, prefix string) error
}
