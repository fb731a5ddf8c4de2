package fetcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/fhuszti/event-medias-go/internal/usecase/media"
)

const userAgent = "event-medias/1.0"

// HTTPFetcher issues one GET per call. No caching, no retries, no size limit.
type HTTPFetcher struct {
	client *http.Client
}

// compile-time check: *HTTPFetcher must satisfy port.RemoteFetcher
var _ port.RemoteFetcher = (*HTTPFetcher)(nil)

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch returns the upstream body on 2xx. Any other status becomes an
// *media.UpstreamError carrying that status; transport failures wrap media.ErrFetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*port.RemoteFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, media.BadRequest(fmt.Sprintf("invalid url: %v", err))
	}
	if (req.URL.Scheme != "http" && req.URL.Scheme != "https") || req.URL.Host == "" {
		return nil, media.BadRequest("url must be an absolute http(s) URL")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", media.ErrFetch, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		if cErr := resp.Body.Close(); cErr != nil {
			log.Printf("failed to close upstream body: %v", cErr)
		}
		return nil, &media.UpstreamError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &port.RemoteFile{
		Body:        resp.Body,
		ContentType: ct,
		SizeBytes:   resp.ContentLength,
	}, nil
}
