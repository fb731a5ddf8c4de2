package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fhuszti/event-medias-go/internal/api_context"
	"github.com/fhuszti/event-medias-go/internal/handler/api"
	msuuid "github.com/fhuszti/event-medias-go/internal/uuid"
	"github.com/go-chi/chi/v5"
	guuid "github.com/google/uuid"
)

// WithAssetID parses the {id} route parameter. An id that is not a UUID cannot
// name a catalog entry, so it is answered with 404.
func WithAssetID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id == "" {
				api.WriteError(w, r, http.StatusBadRequest, "ID is required", nil)
				return
			}
			parsedID, err := guuid.Parse(id)
			if err != nil {
				api.WriteError(w, r, http.StatusNotFound, fmt.Sprintf("asset %q not found", id), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), api_context.IDKey, msuuid.UUID(parsedID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
