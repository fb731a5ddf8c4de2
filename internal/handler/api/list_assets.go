package api

import (
	"net/http"

	"github.com/fhuszti/event-medias-go/internal/logger"
	"github.com/fhuszti/event-medias-go/internal/port"
)

func ListAssetsHandler(renderer port.HTTPRenderer, svc port.AssetLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, etag, err := renderer.RenderListAssets(r.Context(), svc)
		if err != nil {
			WriteServiceError(w, r, err, "Could not list catalog assets")
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Debug(r.Context(), "✅  Catalog unchanged, returning 304")
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
	}
}
