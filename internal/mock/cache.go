package mock

import (
	"context"
	"time"
)

// Cache implements port.Cache for tests.
type Cache struct {
	// stored values
	CatalogOut []byte

	// etag values
	EtagCatalog string

	// invalidation counter, bumped by DeleteCatalog
	Version int64

	// captured inputs
	TTL        time.Duration
	GotVersion int64

	// errors
	GetCatalogErr     error
	GetEtagCatalogErr error
	DelCatalogErr     error

	// call flags
	GetCatalogCalled     bool
	GetEtagCatalogCalled bool
	SetCatalogCalled     bool
	DelCatalogCalled     bool
}

func (c *Cache) GetCatalog(ctx context.Context) ([]byte, error) {
	c.GetCatalogCalled = true
	if c.GetCatalogErr != nil {
		return nil, c.GetCatalogErr
	}
	return c.CatalogOut, nil
}

func (c *Cache) GetEtagCatalog(ctx context.Context) (string, error) {
	c.GetEtagCatalogCalled = true
	if c.GetEtagCatalogErr != nil {
		return "", c.GetEtagCatalogErr
	}
	return c.EtagCatalog, nil
}

func (c *Cache) CatalogVersion(ctx context.Context) (int64, error) {
	return c.Version, nil
}

// SetCatalog records the call and, like the redis cache, only stores when
// version is still current.
func (c *Cache) SetCatalog(ctx context.Context, version int64, data []byte, etag string, ttl time.Duration) {
	c.SetCatalogCalled = true
	c.GotVersion = version
	c.TTL = ttl
	if version != c.Version {
		return
	}
	c.CatalogOut = data
	c.EtagCatalog = etag
}

func (c *Cache) DeleteCatalog(ctx context.Context) error {
	c.DelCatalogCalled = true
	if c.DelCatalogErr != nil {
		return c.DelCatalogErr
	}
	c.Version++
	c.CatalogOut, c.EtagCatalog = nil, ""
	return nil
}
