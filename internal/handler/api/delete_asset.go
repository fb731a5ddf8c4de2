package api

import (
	"net/http"

	"github.com/fhuszti/event-medias-go/internal/api_context"
	"github.com/fhuszti/event-medias-go/internal/logger"
	"github.com/fhuszti/event-medias-go/internal/port"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// DeleteAssetHandler removes a catalog entry by ID. The stored file stays online.
func DeleteAssetHandler(svc port.AssetDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, r, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.DeleteAsset(r.Context(), id); err != nil {
			WriteServiceError(w, r, err, "Failed to delete asset")
			return
		}

		RespondJSON(w, http.StatusOK, MessageResponse{Message: "asset deleted"})
		logger.Infof(r.Context(), "✅  Successfully deleted catalog asset #%s", id)
	}
}
