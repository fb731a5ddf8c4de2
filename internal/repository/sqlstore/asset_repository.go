package sqlstore

import (
	"context"
	"database/sql"
	"log"

	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/fhuszti/event-medias-go/internal/uuid"
)

// AssetRepository persists catalog entries. Queries only use portable SQL so
// the same code serves MySQL/MariaDB and SQLite.
type AssetRepository struct {
	db *sql.DB
}

// compile-time check: *AssetRepository must satisfy port.AssetRepository
var _ port.AssetRepository = (*AssetRepository)(nil)

func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(ctx context.Context, asset *model.MediaAsset) error {
	log.Printf("creating catalog entry #%s for %q...", asset.ID, asset.URL)

	const query = `
      INSERT INTO media_assets
        (id, name, url, created_at, updated_at)
      VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		asset.ID, asset.Name, asset.URL, asset.CreatedAt, asset.UpdatedAt,
	)
	return err
}

func (r *AssetRepository) GetByID(ctx context.Context, ID uuid.UUID) (*model.MediaAsset, error) {
	log.Printf("fetching catalog entry #%s from the database...", ID)

	const query = `
      SELECT id, name, url, created_at, updated_at
      FROM media_assets
      WHERE id = ?
    `
	var asset model.MediaAsset
	if err := r.db.QueryRowContext(ctx, query, ID).Scan(
		&asset.ID, &asset.Name, &asset.URL, &asset.CreatedAt, &asset.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *AssetRepository) List(ctx context.Context) ([]*model.MediaAsset, error) {
	const query = `
      SELECT id, name, url, created_at, updated_at
      FROM media_assets
      ORDER BY created_at DESC, id DESC
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cErr := rows.Close(); cErr != nil {
			log.Printf("failed to close rows: %v", cErr)
		}
	}()

	assets := []*model.MediaAsset{}
	for rows.Next() {
		var a model.MediaAsset
		if err := rows.Scan(&a.ID, &a.Name, &a.URL, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

// Delete returns sql.ErrNoRows when nothing matched.
func (r *AssetRepository) Delete(ctx context.Context, ID uuid.UUID) error {
	log.Printf("deleting catalog entry #%s...", ID)

	const query = `DELETE FROM media_assets WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
