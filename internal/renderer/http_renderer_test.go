package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"testing"
	"time"

	"github.com/fhuszti/event-medias-go/internal/mock"
	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/uuid"
)

func TestRenderListAssets_Cases(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		c := &mock.Cache{CatalogOut: []byte(`[]`), EtagCatalog: "\"1234\""}
		r := NewHTTPRenderer(c, time.Minute)
		lister := &mock.AssetLister{}

		out, etag, err := r.RenderListAssets(ctx, lister)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != "[]" {
			t.Errorf("raw mismatch: got %s want []", out)
		}
		if etag != c.EtagCatalog {
			t.Errorf("etag mismatch: got %s want %s", etag, c.EtagCatalog)
		}
		if lister.Called {
			t.Error("lister should not be called on cache hit")
		}
		if c.SetCatalogCalled {
			t.Error("cache should not be set on hit")
		}
	})

	t.Run("cache miss", func(t *testing.T) {
		c := &mock.Cache{}
		now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		assets := []*model.MediaAsset{
			{ID: uuid.NewUUID(), Name: "b", URL: "https://cdn/b", CreatedAt: now, UpdatedAt: now},
			{ID: uuid.NewUUID(), Name: "a", URL: "https://cdn/a", CreatedAt: now.Add(-time.Hour), UpdatedAt: now},
		}
		lister := &mock.AssetLister{Out: assets}
		r := NewHTTPRenderer(c, 5*time.Minute)

		out, etag, err := r.RenderListAssets(ctx, lister)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected, _ := json.Marshal(assets)
		if string(out) != string(expected) {
			t.Errorf("raw mismatch: got %s want %s", out, expected)
		}
		expEtag := fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(expected))
		if etag != expEtag {
			t.Errorf("etag mismatch: got %s want %s", etag, expEtag)
		}
		if !c.SetCatalogCalled {
			t.Error("cache should be written on miss")
		}
		if c.TTL != 5*time.Minute {
			t.Errorf("cache ttl = %v; want 5m", c.TTL)
		}
		if c.EtagCatalog != expEtag {
			t.Errorf("cached etag mismatch: got %s want %s", c.EtagCatalog, expEtag)
		}
	})

	t.Run("etag missing forces refresh", func(t *testing.T) {
		c := &mock.Cache{CatalogOut: []byte(`[{"stale":true}]`)}
		lister := &mock.AssetLister{Out: []*model.MediaAsset{}}

		out, _, err := NewHTTPRenderer(c, time.Minute).RenderListAssets(ctx, lister)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !lister.Called {
			t.Error("lister should be called when etag is missing")
		}
		if string(out) != "[]" {
			t.Errorf("out = %s; want []", out)
		}
	})

	t.Run("lister error", func(t *testing.T) {
		c := &mock.Cache{}
		l := &mock.AssetLister{Err: errors.New("fail")}

		_, _, err := NewHTTPRenderer(c, time.Minute).RenderListAssets(ctx, l)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if c.SetCatalogCalled {
			t.Error("cache should not be written on error")
		}
	})

	t.Run("cache error", func(t *testing.T) {
		c := &mock.Cache{GetCatalogErr: errors.New("boom")}
		l := &mock.AssetLister{Out: []*model.MediaAsset{}}

		if _, _, err := NewHTTPRenderer(c, time.Minute).RenderListAssets(ctx, l); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !l.Called {
			t.Error("lister should be called when cache returns error")
		}
		if !c.SetCatalogCalled {
			t.Error("cache should be written when missing due to error")
		}
	})

	t.Run("invalidated while loading", func(t *testing.T) {
		c := &mock.Cache{}
		l := invalidatingLister{cache: c}

		out, _, err := NewHTTPRenderer(c, time.Minute).RenderListAssets(ctx, l)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != "[]" {
			t.Errorf("out = %s; want []", out)
		}
		if c.GotVersion != 0 || c.Version != 1 {
			t.Errorf("version read = %d, current = %d; want 0, 1", c.GotVersion, c.Version)
		}
		if c.CatalogOut != nil || c.EtagCatalog != "" {
			t.Errorf("stale listing cached: %s %q", c.CatalogOut, c.EtagCatalog)
		}
	})
}

// invalidatingLister simulates a register landing between the version read
// and the cache write.
type invalidatingLister struct {
	cache *mock.Cache
}

func (l invalidatingLister) ListAssets(ctx context.Context) ([]*model.MediaAsset, error) {
	_ = l.cache.DeleteCatalog(ctx)
	return []*model.MediaAsset{}, nil
}
