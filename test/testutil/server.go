package testutil

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fhuszti/event-medias-go/internal/cache"
	"github.com/fhuszti/event-medias-go/internal/fetcher"
	"github.com/fhuszti/event-medias-go/internal/handler/api"
	"github.com/fhuszti/event-medias-go/internal/metrics"
	cMiddleware "github.com/fhuszti/event-medias-go/internal/middleware"
	"github.com/fhuszti/event-medias-go/internal/optimiser"
	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/fhuszti/event-medias-go/internal/renderer"
	"github.com/fhuszti/event-medias-go/internal/repository/sqlstore"
	"github.com/fhuszti/event-medias-go/internal/storage"
	mediaSvc "github.com/fhuszti/event-medias-go/internal/usecase/media"
	msuuid "github.com/fhuszti/event-medias-go/internal/uuid"
	"github.com/go-chi/chi/v5"
)

// ServerDeps overrides the defaults of NewTestServer.
type ServerDeps struct {
	Cache     port.Cache
	JWTSecret string
}

// NewMinioStorage builds a storage client on endpoint whose public URLs are
// rooted at cdnBase, and makes sure the bucket exists.
func NewMinioStorage(t *testing.T, endpoint, bucket, cdnBase string) *storage.MinioStorage {
	t.Helper()
	strg, err := storage.NewMinioStorage(endpoint, MinioUser, MinioPassword, bucket, cdnBase, false)
	if err != nil {
		t.Fatalf("minio client: %v", err)
	}
	if err := strg.InitBucket(context.Background()); err != nil {
		t.Fatalf("init bucket: %v", err)
	}
	return strg
}

// NewTestServer wires the /media routes the same way cmd/api does.
func NewTestServer(t *testing.T, db *sql.DB, strg port.Storage, cdnBase string, deps ServerDeps) *httptest.Server {
	t.Helper()
	ca := deps.Cache
	if ca == nil {
		ca = cache.NewNoop()
	}

	repo := sqlstore.NewAssetRepository(db)
	remote := fetcher.NewHTTPFetcher(10 * time.Second)
	registerSvc := mediaSvc.NewAssetRegistrar(repo, ca, msuuid.NewUUID)
	listSvc := mediaSvc.NewAssetLister(repo)
	deleteSvc := mediaSvc.NewAssetDeleter(repo, ca)
	ingestSvc := mediaSvc.NewIngester(optimiser.NewOptimiser(optimiser.NewWebPEncoder(), 80), strg, registerSvc, metrics.Noop{}, msuuid.NewUUID)
	importSvc := mediaSvc.NewRemoteImporter(remote, ingestSvc, cdnBase)

	r := chi.NewRouter()
	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())
	r.Route("/media", func(r chi.Router) {
		r.Get("/proxy-image", api.ProxyHandler(remote))
		r.Get("/proxy-video", api.ProxyHandler(remote))
		r.Get("/catalog", api.ListAssetsHandler(renderer.NewHTTPRenderer(ca, time.Minute), listSvc))

		r.Group(func(r chi.Router) {
			r.Use(cMiddleware.WithJWTAuth(deps.JWTSecret))
			r.Post("/images", api.UploadImageHandler(ingestSvc))
			r.Post("/videos", api.UploadVideoHandler(ingestSvc))
			r.Post("/imports", api.ImportMediaHandler(importSvc))
			r.Post("/catalog", api.RegisterAssetHandler(registerSvc))
			r.With(cMiddleware.WithAssetID()).
				Delete("/catalog/{id}", api.DeleteAssetHandler(deleteSvc))
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}
