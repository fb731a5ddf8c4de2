package port

import (
	"context"
	"time"
)

// Cache stores the rendered catalog listing and its ETag.
// A miss is reported as nil data (or an empty etag) with a nil error.
//
// CatalogVersion is read before the catalog is loaded and handed back to
// SetCatalog, which skips the write when DeleteCatalog ran in between.
type Cache interface {
	GetCatalog(ctx context.Context) ([]byte, error)
	GetEtagCatalog(ctx context.Context) (string, error)
	CatalogVersion(ctx context.Context) (int64, error)
	SetCatalog(ctx context.Context, version int64, data []byte, etag string, ttl time.Duration)
	DeleteCatalog(ctx context.Context) error
}
