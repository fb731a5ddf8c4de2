package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/fhuszti/event-medias-go/internal/port"
)

type httpRenderer struct {
	cache port.Cache
	ttl   time.Duration
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a renderer that keeps the catalog listing cached for ttl.
func NewHTTPRenderer(cache port.Cache, ttl time.Duration) port.HTTPRenderer {
	return &httpRenderer{cache: cache, ttl: ttl}
}

// RenderListAssets returns the cached listing and its ETag when both are
// present, otherwise it runs the lister and caches the JSON it produced.
func (r *httpRenderer) RenderListAssets(ctx context.Context, lister port.AssetLister) ([]byte, string, error) {
	raw, err := r.cache.GetCatalog(ctx)
	etag, errEtag := r.cache.GetEtagCatalog(ctx)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	// read before the listing so an invalidation racing with us wins
	version, vErr := r.cache.CatalogVersion(ctx)

	assets, err := lister.ListAssets(ctx)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(assets)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	if vErr == nil {
		r.cache.SetCatalog(ctx, version, raw, etag, r.ttl)
	}

	return raw, etag, nil
}
