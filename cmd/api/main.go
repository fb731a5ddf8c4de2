package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/event-medias-go/internal/cache"
	"github.com/fhuszti/event-medias-go/internal/config"
	"github.com/fhuszti/event-medias-go/internal/db"
	"github.com/fhuszti/event-medias-go/internal/fetcher"
	"github.com/fhuszti/event-medias-go/internal/handler/api"
	"github.com/fhuszti/event-medias-go/internal/logger"
	"github.com/fhuszti/event-medias-go/internal/metrics"
	cMiddleware "github.com/fhuszti/event-medias-go/internal/middleware"
	"github.com/fhuszti/event-medias-go/internal/migration"
	"github.com/fhuszti/event-medias-go/internal/optimiser"
	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/fhuszti/event-medias-go/internal/renderer"
	"github.com/fhuszti/event-medias-go/internal/repository/sqlstore"
	"github.com/fhuszti/event-medias-go/internal/storage"
	mediaSvc "github.com/fhuszti/event-medias-go/internal/usecase/media"
	msuuid "github.com/fhuszti/event-medias-go/internal/uuid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx)

	strg := initStorage(ctx, cfg)
	ca := initCache(ctx, cfg)
	observer := initMetrics(ctx, r, cfg.MetricsEnabled)

	assetRepo := sqlstore.NewAssetRepository(database.DB)
	normaliser := optimiser.NewOptimiser(optimiser.NewWebPEncoder(), cfg.ImageQuality)
	remote := fetcher.NewHTTPFetcher(cfg.ProxyTimeout)

	registerSvc := mediaSvc.NewAssetRegistrar(assetRepo, ca, msuuid.NewUUID)
	listSvc := mediaSvc.NewAssetLister(assetRepo)
	deleteSvc := mediaSvc.NewAssetDeleter(assetRepo, ca)
	ingestSvc := mediaSvc.NewIngester(normaliser, strg, registerSvc, observer, msuuid.NewUUID)
	importSvc := mediaSvc.NewRemoteImporter(remote, ingestSvc, cfg.CDNBaseURL)
	rendererSvc := renderer.NewHTTPRenderer(ca, cfg.CatalogCacheTTL)

	r.Route("/media", func(r chi.Router) {
		// public: consumed by the landing page
		r.Get("/proxy-image", api.ProxyHandler(remote))
		r.Get("/proxy-video", api.ProxyHandler(remote))
		r.Get("/catalog", api.ListAssetsHandler(rendererSvc, listSvc))

		r.Group(func(r chi.Router) {
			r.Use(cMiddleware.WithJWTAuth(cfg.JWTSecret))

			r.Post("/images", api.UploadImageHandler(ingestSvc))
			r.Post("/videos", api.UploadVideoHandler(ingestSvc))
			r.Post("/imports", api.ImportMediaHandler(importSvc))
			r.Post("/catalog", api.RegisterAssetHandler(registerSvc))
			r.With(cMiddleware.WithAssetID()).
				Delete("/catalog/{id}", api.DeleteAssetHandler(deleteSvc))
		})
	})

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.DBDriver, cfg.DBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	// an embedded SQLite file has no separate migrate step to rely on
	if database.Driver == config.DBDriverSQLite {
		if err := migration.MigrateUp(database.DB, database.Driver); err != nil {
			logger.Errorf(ctx, "❌  Migration up failed: %v", err)
			os.Exit(1)
		}
	}

	return database
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	if !cfg.StorageConfigured() {
		logger.Warn(ctx, "⚠️  Storage credentials are not configured, uploads will fail")
	}

	switch cfg.StorageDriver {
	case config.StorageDriverMinio:
		strg, err := storage.NewMinioStorage(
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageAPIKey,
			cfg.StorageZone,
			cfg.CDNBaseURL,
			cfg.StorageUseSSL,
		)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
			os.Exit(1)
		}
		if cfg.StorageConfigured() {
			if err := strg.InitBucket(ctx); err != nil {
				logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.StorageZone, err)
				os.Exit(1)
			}
		}
		return strg

	default:
		client := &http.Client{Timeout: 5 * time.Minute}
		return storage.NewBunnyStorage(client, cfg.StorageEndpoint, cfg.StorageZone, cfg.StorageAPIKey, cfg.CDNBaseURL)
	}
}

func initCache(ctx context.Context, cfg *config.Settings) port.Cache {
	if cfg.RedisAddr == "" {
		logger.Warn(ctx, "⚠️  Redis not configured, catalog caching is disabled")
		return cache.NewNoop()
	}

	c := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	if err := c.Ping(ctx); err != nil {
		logger.Warnf(ctx, "⚠️  Redis ping failed, catalog cache may be unavailable: %v", err)
	} else {
		logger.Info(ctx, "✅  Redis cache enabled")
	}
	return c
}

func initMetrics(ctx context.Context, r *chi.Mux, enabled bool) port.IngestObserver {
	if !enabled {
		return metrics.Noop{}
	}

	observer, err := metrics.NewIngestionObserver(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to register metrics: %v", err)
		os.Exit(1)
	}
	r.Handle("/metrics", promhttp.Handler())
	return observer
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
