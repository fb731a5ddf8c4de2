package media

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/fhuszti/event-medias-go/internal/logger"
	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/fhuszti/event-medias-go/internal/uuid"
)

type registerAssetSrv struct {
	repo  port.AssetRepository
	cache port.Cache
	genID port.UUIDGen
	now   func() time.Time
}

// compile-time check: *registerAssetSrv must satisfy port.AssetRegistrar
var _ port.AssetRegistrar = (*registerAssetSrv)(nil)

func NewAssetRegistrar(repo port.AssetRepository, cache port.Cache, genID port.UUIDGen) port.AssetRegistrar {
	return &registerAssetSrv{repo: repo, cache: cache, genID: genID, now: time.Now}
}

// RegisterAsset records an already-stored file. Both fields are required and
// the URL must be absolute.
func (s *registerAssetSrv) RegisterAsset(ctx context.Context, in port.RegisterAssetInput) (*model.MediaAsset, error) {
	name := strings.TrimSpace(in.Name)
	rawURL := strings.TrimSpace(in.URL)
	if name == "" || rawURL == "" {
		return nil, BadRequest("name and url are required")
	}
	if u, err := url.Parse(rawURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, BadRequest("url must be absolute")
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	asset := &model.MediaAsset{
		ID:        s.genID(),
		Name:      name,
		URL:       rawURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, asset); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return asset, nil
}

func (s *registerAssetSrv) invalidate(ctx context.Context) {
	if err := s.cache.DeleteCatalog(ctx); err != nil {
		logger.Warnf(ctx, "failed invalidating catalog cache: %v", err)
	}
}

type listAssetsSrv struct {
	repo port.AssetRepository
}

// compile-time check: *listAssetsSrv must satisfy port.AssetLister
var _ port.AssetLister = (*listAssetsSrv)(nil)

func NewAssetLister(repo port.AssetRepository) port.AssetLister {
	return &listAssetsSrv{repo: repo}
}

func (s *listAssetsSrv) ListAssets(ctx context.Context) ([]*model.MediaAsset, error) {
	assets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []*model.MediaAsset{}
	}
	return assets, nil
}

type deleteAssetSrv struct {
	repo  port.AssetRepository
	cache port.Cache
}

// compile-time check: *deleteAssetSrv must satisfy port.AssetDeleter
var _ port.AssetDeleter = (*deleteAssetSrv)(nil)

func NewAssetDeleter(repo port.AssetRepository, cache port.Cache) port.AssetDeleter {
	return &deleteAssetSrv{repo: repo, cache: cache}
}

// DeleteAsset removes the catalog row only; the stored object stays on the CDN.
func (s *deleteAssetSrv) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, asset.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.cache.DeleteCatalog(ctx); err != nil {
		logger.Warnf(ctx, "failed invalidating catalog cache: %v", err)
	}
	logger.Infof(ctx, "catalog entry removed, %s left in storage", asset.URL)
	return nil
}
