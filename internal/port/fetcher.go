package port

import (
	"context"
	"io"
)

// RemoteFile is a successful upstream response. Callers must close Body.
type RemoteFile struct {
	Body        io.ReadCloser
	ContentType string
	// SizeBytes is -1 when the upstream did not announce a length.
	SizeBytes int64
}

// RemoteFetcher performs a single unauthenticated GET against a third-party URL.
type RemoteFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*RemoteFile, error)
}
