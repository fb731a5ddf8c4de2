package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/fhuszti/event-medias-go/internal/logger"
	"github.com/fhuszti/event-medias-go/internal/port"
)

// ProxyHandler relays the bytes of a third-party URL given in the "url" query
// parameter. The same handler serves images and videos.
func ProxyHandler(fetcher port.RemoteFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Query().Get("url")
		if target == "" {
			WriteError(w, r, http.StatusBadRequest, "url query parameter is required", nil)
			return
		}

		file, err := fetcher.Fetch(r.Context(), target)
		if err != nil {
			WriteServiceError(w, r, err, "Could not fetch the remote file")
			return
		}
		defer func() {
			if cErr := file.Body.Close(); cErr != nil {
				logger.Warnf(r.Context(), "failed to close upstream body: %v", cErr)
			}
		}()

		w.Header().Set("Content-Type", file.ContentType)
		if file.SizeBytes >= 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(file.SizeBytes, 10))
		}
		w.WriteHeader(http.StatusOK)

		n, err := io.Copy(w, file.Body)
		if err != nil {
			logger.Warnf(r.Context(), "⚠️  Proxy copy from %s aborted after %d bytes: %v", target, n, err)
			return
		}
		logger.Debugf(r.Context(), "proxied %d bytes from %s", n, target)
	}
}
