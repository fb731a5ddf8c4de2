package mock

import (
	"context"

	"github.com/fhuszti/event-medias-go/internal/port"
)

// HTTPRenderer implements port.HTTPRenderer for tests.
type HTTPRenderer struct {
	// stored values
	CatalogOut []byte

	// etag values
	EtagCatalog string

	// captured inputs
	GotLister port.AssetLister

	// errors
	ListErr error

	// call flags
	ListCalled bool
}

func (m *HTTPRenderer) RenderListAssets(ctx context.Context, lister port.AssetLister) ([]byte, string, error) {
	m.ListCalled = true
	m.GotLister = lister
	return m.CatalogOut, m.EtagCatalog, m.ListErr
}
