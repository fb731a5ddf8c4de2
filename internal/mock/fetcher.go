package mock

import (
	"context"
	"io"
	"strings"

	"github.com/fhuszti/event-medias-go/internal/port"
)

// RemoteFetcher implements port.RemoteFetcher for tests.
type RemoteFetcher struct {
	Body        string
	ContentType string
	Err         error

	Called bool
	GotURL string
}

func (m *RemoteFetcher) Fetch(ctx context.Context, rawURL string) (*port.RemoteFile, error) {
	m.Called = true
	m.GotURL = rawURL
	if m.Err != nil {
		return nil, m.Err
	}
	return &port.RemoteFile{
		Body:        io.NopCloser(strings.NewReader(m.Body)),
		ContentType: m.ContentType,
		SizeBytes:   int64(len(m.Body)),
	}, nil
}
