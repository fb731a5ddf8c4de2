package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func makeTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	// spin up in-memory Redis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return &Cache{client: rdb}, mr
}

func TestGetSetDeleteCatalog(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	// miss
	data, err := c.GetCatalog(ctx)
	if err != nil || data != nil {
		t.Fatalf("GetCatalog on empty cache = %q, %v; want nil, nil", data, err)
	}
	etag, err := c.GetEtagCatalog(ctx)
	if err != nil || etag != "" {
		t.Fatalf("GetEtagCatalog on empty cache = %q, %v; want \"\", nil", etag, err)
	}

	raw := []byte(`[{"name":"a"}]`)
	c.SetCatalog(ctx, 0, raw, `"0000abcd"`, time.Minute)

	data, err = c.GetCatalog(ctx)
	if err != nil || string(data) != string(raw) {
		t.Fatalf("GetCatalog = %q, %v; want %q", data, err, raw)
	}
	etag, err = c.GetEtagCatalog(ctx)
	if err != nil || etag != `"0000abcd"` {
		t.Fatalf("GetEtagCatalog = %q, %v", etag, err)
	}

	if ttl := mr.TTL(catalogKey); ttl != time.Minute {
		t.Errorf("TTL(%s) = %v; want 1m", catalogKey, ttl)
	}

	if err := c.DeleteCatalog(ctx); err != nil {
		t.Fatalf("DeleteCatalog: %v", err)
	}
	if mr.Exists(catalogKey) || mr.Exists(catalogEtagKey) {
		t.Error("catalog keys still present after DeleteCatalog")
	}
	if v, err := c.CatalogVersion(ctx); err != nil || v != 1 {
		t.Errorf("CatalogVersion after DeleteCatalog = %d, %v; want 1", v, err)
	}
}

func TestSetCatalog_SkipsAfterInvalidation(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	v, err := c.CatalogVersion(ctx)
	if err != nil || v != 0 {
		t.Fatalf("CatalogVersion on empty cache = %d, %v; want 0", v, err)
	}

	// a register lands after the listing was read from the database
	if err := c.DeleteCatalog(ctx); err != nil {
		t.Fatalf("DeleteCatalog: %v", err)
	}
	c.SetCatalog(ctx, v, []byte(`[]`), `"stale"`, time.Minute)

	if mr.Exists(catalogKey) || mr.Exists(catalogEtagKey) {
		t.Error("listing read before the invalidation was cached")
	}

	// a fresh read at the new version is cached
	v, _ = c.CatalogVersion(ctx)
	c.SetCatalog(ctx, v, []byte(`[{"name":"a"}]`), `"fresh"`, time.Minute)
	if etag, _ := c.GetEtagCatalog(ctx); etag != `"fresh"` {
		t.Errorf("etag = %q; want \"fresh\"", etag)
	}
}

func TestCatalogExpires(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	c.SetCatalog(ctx, 0, []byte("[]"), `"x"`, 10*time.Second)
	mr.FastForward(11 * time.Second)

	data, err := c.GetCatalog(ctx)
	if err != nil || data != nil {
		t.Errorf("GetCatalog after expiry = %q, %v; want miss", data, err)
	}
}

func TestGetCatalog_RedisDown(t *testing.T) {
	c, mr := makeTestCache(t)
	mr.Close()

	if _, err := c.GetCatalog(context.Background()); err == nil {
		t.Error("expected error when redis is unreachable")
	}
	if err := c.DeleteCatalog(context.Background()); err == nil {
		t.Error("expected error from DeleteCatalog when redis is unreachable")
	}
}

func TestNoopCache(t *testing.T) {
	n := NewNoop()
	ctx := context.Background()
	n.SetCatalog(ctx, 0, []byte("[]"), "x", time.Minute)

	if data, err := n.GetCatalog(ctx); data != nil || err != nil {
		t.Errorf("GetCatalog = %q, %v", data, err)
	}
	if etag, err := n.GetEtagCatalog(ctx); etag != "" || err != nil {
		t.Errorf("GetEtagCatalog = %q, %v", etag, err)
	}
	if err := n.DeleteCatalog(ctx); err != nil {
		t.Errorf("DeleteCatalog: %v", err)
	}
}
