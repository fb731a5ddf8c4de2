package port

import (
	"context"
	"io"
)

// Storage writes objects to the public CDN zone.
// SaveFile has PUT semantics: an existing object under the same key is replaced.
type Storage interface {
	SaveFile(ctx context.Context, objectKey string, reader io.Reader, fileSize int64, contentType string) error
	PublicURL(objectKey string) string
}
