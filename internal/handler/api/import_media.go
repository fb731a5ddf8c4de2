package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fhuszti/event-medias-go/internal/logger"
	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/fhuszti/event-medias-go/internal/validation"
)

type ImportMediaRequest struct {
	URL     string `json:"url" validate:"required,url,max=2048"`
	Kind    string `json:"kind" validate:"required,assetkind"`
	Gallery bool   `json:"gallery"`
	Unique  bool   `json:"unique"`
	Name    string `json:"name" validate:"max=255"`
}

func ImportMediaHandler(svc port.RemoteImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ImportMediaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, http.StatusBadRequest, "invalid JSON body", err)
			return
		}
		if errs := validation.ValidateStruct(req); errs != nil {
			writeValidationErrors(w, r, errs)
			return
		}

		kind := model.AssetKind(req.Kind)
		res, err := svc.ImportFromURL(r.Context(), port.ImportInput{
			URL:          req.URL,
			Kind:         kind,
			Register:     req.Gallery,
			UniqueNaming: req.Unique,
			DisplayName:  strings.TrimSpace(req.Name),
		})
		if err != nil {
			WriteServiceError(w, r, err, "Could not import the remote file")
			return
		}

		RespondJSON(w, http.StatusOK, ingestResponse(kind, res))
		logger.Infof(r.Context(), "✅  Imported %s from %s to %s", kind, req.URL, res.URL)
	}
}
