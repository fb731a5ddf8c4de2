package port

import (
	"context"
	"io"

	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

// IngestOutcome tags the result of an ingestion.
type IngestOutcome string

const (
	OutcomeSucceeded      IngestOutcome = "succeeded"
	OutcomePartialFailure IngestOutcome = "partial_failure"
	OutcomeRejected       IngestOutcome = "rejected"
)

// Ingester takes one file from the client to a public URL, and optionally into the catalog.
type Ingester interface {
	Ingest(ctx context.Context, in IngestInput) (IngestResult, error)
}
type IngestInput struct {
	Kind        model.AssetKind
	Filename    string
	ContentType string
	Body        io.Reader
	// SizeBytes may be -1 when unknown.
	SizeBytes    int64
	Register     bool
	UniqueNaming bool
	// DisplayName defaults to Filename when empty.
	DisplayName string
}
type IngestResult struct {
	Outcome     IngestOutcome     `json:"outcome"`
	URL         string            `json:"url,omitempty"`
	ObjectKey   string            `json:"-"`
	SizeBytes   int64             `json:"-"`
	Asset       *model.MediaAsset `json:"asset,omitempty"`
	RegisterErr error             `json:"-"`
}

// RemoteImporter fetches a third-party file and ingests it as if it had been uploaded.
type RemoteImporter interface {
	ImportFromURL(ctx context.Context, in ImportInput) (IngestResult, error)
}
type ImportInput struct {
	URL          string
	Kind         model.AssetKind
	Register     bool
	UniqueNaming bool
	DisplayName  string
}

// AssetRegistrar records an already-hosted file in the catalog.
type AssetRegistrar interface {
	RegisterAsset(ctx context.Context, in RegisterAssetInput) (*model.MediaAsset, error)
}
type RegisterAssetInput struct {
	Name string
	URL  string
}

// AssetLister returns every catalog entry, newest first.
type AssetLister interface {
	ListAssets(ctx context.Context) ([]*model.MediaAsset, error)
}

// AssetDeleter removes a catalog entry. The stored object is left untouched.
type AssetDeleter interface {
	DeleteAsset(ctx context.Context, id uuid.UUID) error
}
