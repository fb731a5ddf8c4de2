package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fhuszti/event-medias-go/internal/logger"
	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/port"
)

const (
	maxMultipartMemory = 32 << 20
	partialFailureMsg  = "file uploaded but not saved to the gallery"
)

type IngestResponse struct {
	Message string             `json:"message"`
	URL     string             `json:"url"`
	Outcome port.IngestOutcome `json:"outcome"`
	Asset   *model.MediaAsset  `json:"asset,omitempty"`
}

func UploadImageHandler(svc port.Ingester) http.HandlerFunc {
	return uploadHandler(svc, model.AssetKindImage)
}

func UploadVideoHandler(svc port.Ingester) http.HandlerFunc {
	return uploadHandler(svc, model.AssetKindVideo)
}

// uploadHandler reads the multipart field "file" plus the optional
// "gallery", "unique" and "name" fields.
func uploadHandler(svc port.Ingester, kind model.AssetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			WriteError(w, r, http.StatusBadRequest, "no file was provided", err)
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		file, header, err := r.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				WriteError(w, r, http.StatusBadRequest, "no file was provided", nil)
				return
			}
			WriteError(w, r, http.StatusBadRequest, "could not read the uploaded file", err)
			return
		}
		defer func() { _ = file.Close() }()

		gallery, err := formBool(r, "gallery")
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
		unique, err := formBool(r, "unique")
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}

		res, err := svc.Ingest(r.Context(), port.IngestInput{
			Kind:         kind,
			Filename:     header.Filename,
			ContentType:  header.Header.Get("Content-Type"),
			Body:         file,
			SizeBytes:    header.Size,
			Register:     gallery,
			UniqueNaming: unique,
			DisplayName:  strings.TrimSpace(r.FormValue("name")),
		})
		if err != nil {
			WriteServiceError(w, r, err, fmt.Sprintf("Could not upload %s", kind))
			return
		}

		RespondJSON(w, http.StatusOK, ingestResponse(kind, res))
		logger.Infof(r.Context(), "✅  Successfully uploaded %s to %s", kind, res.URL)
	}
}

func ingestResponse(kind model.AssetKind, res port.IngestResult) IngestResponse {
	msg := fmt.Sprintf("%s uploaded successfully", kind)
	if res.Outcome == port.OutcomePartialFailure {
		msg = partialFailureMsg
	}
	return IngestResponse{Message: msg, URL: res.URL, Outcome: res.Outcome, Asset: res.Asset}
}

func formBool(r *http.Request, field string) (bool, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", field)
	}
	return v, nil
}
