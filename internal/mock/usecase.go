package mock

import (
	"context"
	"io"

	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/fhuszti/event-medias-go/internal/uuid"
)

// Ingester implements port.Ingester for tests.
// The received body is read fully so handlers see a realistic consumer.
type Ingester struct {
	Out port.IngestResult
	Err error

	Called   bool
	GotInput port.IngestInput
	GotBody  []byte
}

func (m *Ingester) Ingest(ctx context.Context, in port.IngestInput) (port.IngestResult, error) {
	m.Called = true
	m.GotInput = in
	if in.Body != nil {
		m.GotBody, _ = io.ReadAll(in.Body)
	}
	return m.Out, m.Err
}

// RemoteImporter implements port.RemoteImporter for tests.
type RemoteImporter struct {
	Out port.IngestResult
	Err error

	Called   bool
	GotInput port.ImportInput
}

func (m *RemoteImporter) ImportFromURL(ctx context.Context, in port.ImportInput) (port.IngestResult, error) {
	m.Called = true
	m.GotInput = in
	return m.Out, m.Err
}

// AssetRegistrar implements port.AssetRegistrar for tests.
type AssetRegistrar struct {
	Out *model.MediaAsset
	Err error

	Called   bool
	GotInput port.RegisterAssetInput
}

func (m *AssetRegistrar) RegisterAsset(ctx context.Context, in port.RegisterAssetInput) (*model.MediaAsset, error) {
	m.Called = true
	m.GotInput = in
	return m.Out, m.Err
}

// AssetLister implements port.AssetLister for tests.
type AssetLister struct {
	Out []*model.MediaAsset
	Err error

	Called bool
}

func (m *AssetLister) ListAssets(ctx context.Context) ([]*model.MediaAsset, error) {
	m.Called = true
	return m.Out, m.Err
}

// AssetDeleter implements port.AssetDeleter for tests.
type AssetDeleter struct {
	Err error

	Called bool
	GotID  uuid.UUID
}

func (m *AssetDeleter) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.GotID = id
	return m.Err
}
