package media

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fhuszti/event-medias-go/internal/logger"
	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/port"
)

type importSrv struct {
	fetcher    port.RemoteFetcher
	ingester   port.Ingester
	cdnBaseURL string
	now        func() time.Time
}

// compile-time check: *importSrv must satisfy port.RemoteImporter
var _ port.RemoteImporter = (*importSrv)(nil)

func NewRemoteImporter(fetcher port.RemoteFetcher, ingester port.Ingester, cdnBaseURL string) port.RemoteImporter {
	return &importSrv{
		fetcher:    fetcher,
		ingester:   ingester,
		cdnBaseURL: strings.TrimRight(cdnBaseURL, "/"),
		now:        time.Now,
	}
}

// ImportFromURL re-hosts a third-party file under this service's own storage.
func (s *importSrv) ImportFromURL(ctx context.Context, in port.ImportInput) (port.IngestResult, error) {
	if !in.Kind.Valid() {
		return rejected(BadRequest(fmt.Sprintf("unsupported asset kind %q", in.Kind)))
	}

	raw := strings.TrimSpace(in.URL)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return rejected(BadRequest("url must be an absolute http(s) URL"))
	}
	if s.cdnBaseURL != "" && strings.HasPrefix(raw, s.cdnBaseURL+"/") {
		return rejected(BadRequest("url is already hosted on this CDN"))
	}

	logger.Infof(ctx, "importing %s from %s...", in.Kind, raw)
	remote, err := s.fetcher.Fetch(ctx, raw)
	if err != nil {
		return rejected(err)
	}
	defer func() {
		if cErr := remote.Body.Close(); cErr != nil {
			logger.Warnf(ctx, "failed closing upstream body: %v", cErr)
		}
	}()

	return s.ingester.Ingest(ctx, port.IngestInput{
		Kind:         in.Kind,
		Filename:     s.filenameFromURL(u, in.Kind),
		ContentType:  remote.ContentType,
		Body:         remote.Body,
		SizeBytes:    remote.SizeBytes,
		Register:     in.Register,
		UniqueNaming: in.UniqueNaming,
		DisplayName:  in.DisplayName,
	})
}

// filenameFromURL takes the last path segment, ignoring the query string.
func (s *importSrv) filenameFromURL(u *url.URL, kind model.AssetKind) string {
	name := path.Base(u.Path)
	if name != "" && name != "." && name != "/" {
		return name
	}
	ts := s.now().UnixMilli()
	if kind == model.AssetKindVideo {
		return fmt.Sprintf("video-%d.mp4", ts)
	}
	return fmt.Sprintf("image-%d", ts)
}
