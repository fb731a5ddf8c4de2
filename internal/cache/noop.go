package cache

import (
	"context"
	"time"

	"github.com/fhuszti/event-medias-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetCatalog(ctx context.Context) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagCatalog(ctx context.Context) (string, error) {
	return "", nil
}

func (n *NoopCache) CatalogVersion(ctx context.Context) (int64, error) { return 0, nil }

func (n *NoopCache) SetCatalog(ctx context.Context, version int64, data []byte, etag string, ttl time.Duration) {
}

func (n *NoopCache) DeleteCatalog(ctx context.Context) error { return nil }
