package media

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest           = errors.New("media: bad request")
	ErrDecode               = errors.New("media: image could not be decoded")
	ErrUpload               = errors.New("storage: upload failed")
	ErrStorageNotConfigured = fmt.Errorf("%w: storage credentials are not configured", ErrUpload)
	ErrNotFound             = errors.New("catalog: asset not found")
	ErrFetch                = errors.New("fetch: remote request failed")
	ErrUpstream             = errors.New("fetch: upstream returned an error status")
)

// UpstreamError carries the status code a third-party host answered with.
type UpstreamError struct {
	StatusCode int
	URL        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("fetch: upstream %s answered %d", e.URL, e.StatusCode)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// BadRequest wraps ErrBadRequest with a message that is safe to show to the client.
func BadRequest(msg string) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, msg)
}

// KindOf maps an error onto the machine-readable kind used in error payloads.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	case errors.Is(err, ErrDecode):
		return "decode_error"
	case errors.Is(err, ErrUpload):
		return "upload_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUpstream):
		return "upstream_error"
	default:
		return "internal_error"
	}
}
