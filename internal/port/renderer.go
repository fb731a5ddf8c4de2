package port

import "context"

// HTTPRenderer mediates between HTTP handlers and the catalog lister.
// It returns the JSON listing together with an ETag derived from it.
type HTTPRenderer interface {
	RenderListAssets(ctx context.Context, lister AssetLister) ([]byte, string, error)
}
