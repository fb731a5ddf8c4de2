package port

import (
	"context"

	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/uuid"
)

// AssetRepository defines persistence operations for catalog entries.
type AssetRepository interface {
	Create(ctx context.Context, asset *model.MediaAsset) error
	GetByID(ctx context.Context, ID uuid.UUID) (*model.MediaAsset, error)
	// List returns every entry, most recently created first.
	List(ctx context.Context) ([]*model.MediaAsset, error)
	Delete(ctx context.Context, ID uuid.UUID) error
}
