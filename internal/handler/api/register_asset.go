package api

import (
	"encoding/json"
	"net/http"

	"github.com/fhuszti/event-medias-go/internal/logger"
	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/fhuszti/event-medias-go/internal/validation"
)

type RegisterAssetRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	URL  string `json:"url" validate:"required,url,max=1024"`
}

type RegisterAssetResponse struct {
	Message string            `json:"message"`
	Image   *model.MediaAsset `json:"image"`
}

func RegisterAssetHandler(svc port.AssetRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterAssetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, http.StatusBadRequest, "invalid JSON body", err)
			return
		}
		if errs := validation.ValidateStruct(req); errs != nil {
			writeValidationErrors(w, r, errs)
			return
		}

		asset, err := svc.RegisterAsset(r.Context(), port.RegisterAssetInput{Name: req.Name, URL: req.URL})
		if err != nil {
			WriteServiceError(w, r, err, "Could not save the asset")
			return
		}

		RespondJSON(w, http.StatusCreated, RegisterAssetResponse{Message: "asset saved", Image: asset})
		logger.Infof(r.Context(), "✅  Registered catalog asset #%s", asset.ID)
	}
}
