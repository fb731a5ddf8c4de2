package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fhuszti/event-medias-go/internal/logger"
	"github.com/fhuszti/event-medias-go/internal/usecase/media"
	"github.com/fhuszti/event-medias-go/internal/validation"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// WriteError answers with a JSON error body. Client errors are logged as
// warnings, everything else as errors, with the request's subject attached.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	ctx := r.Context()
	log := logger.Errorf
	if status < http.StatusInternalServerError {
		log = logger.Warnf
	}
	if err != nil {
		log(ctx, "❌  %s: %v", msg, err)
	} else {
		log(ctx, "❌  %s", msg)
	}

	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg, Kind: errorKind(status, err)})
}

// WriteServiceError translates a use-case error into its HTTP status.
// fallback is shown to the client when the error carries no safe message.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var upErr *media.UpstreamError
	switch {
	case errors.Is(err, media.ErrBadRequest):
		WriteError(w, r, http.StatusBadRequest, badRequestMessage(err), nil)
	case errors.Is(err, media.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "Asset not found", err)
	case errors.As(err, &upErr):
		WriteError(w, r, upstreamStatus(upErr.StatusCode), fmt.Sprintf("Upstream responded with status %d", upErr.StatusCode), err)
	case errors.Is(err, media.ErrDecode):
		WriteError(w, r, http.StatusInternalServerError, "Could not decode image", err)
	case errors.Is(err, media.ErrStorageNotConfigured):
		WriteError(w, r, http.StatusInternalServerError, "Storage credentials are not configured", err)
	case errors.Is(err, media.ErrUpload):
		WriteError(w, r, http.StatusInternalServerError, "Upload failed: "+err.Error(), err)
	case errors.Is(err, media.ErrFetch):
		WriteError(w, r, http.StatusInternalServerError, "Could not reach the remote host", err)
	default:
		WriteError(w, r, http.StatusInternalServerError, fallback, err)
	}
}

// upstreamStatus passes client and server errors through. Anything else
// (1xx, 3xx) cannot carry our JSON body and becomes 502.
func upstreamStatus(code int) int {
	if code >= http.StatusBadRequest && code <= 599 {
		return code
	}
	return http.StatusBadGateway
}

// writeValidationErrors answers 400 with the {"<field>": "<tag>"} map.
func writeValidationErrors(w http.ResponseWriter, r *http.Request, errs error) {
	errsJSON, err := validation.ErrorsToJson(errs)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", err))
		return
	}

	RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
	logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
}

func badRequestMessage(err error) string {
	return strings.TrimPrefix(err.Error(), media.ErrBadRequest.Error()+": ")
}

func errorKind(status int, err error) string {
	if err != nil {
		if k := media.KindOf(err); k != "internal_error" || status >= http.StatusInternalServerError {
			return k
		}
	}
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	}
	if status >= http.StatusInternalServerError {
		return "internal_error"
	}
	return ""
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}
