package media

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"bad request", BadRequest("no file"), "bad_request"},
		{"decode", fmt.Errorf("optimiser: %w", ErrDecode), "decode_error"},
		{"upload", fmt.Errorf("%w: status 401", ErrUpload), "upload_error"},
		{"storage not configured", ErrStorageNotConfigured, "upload_error"},
		{"not found", ErrNotFound, "not_found"},
		{"upstream", &UpstreamError{StatusCode: 404, URL: "https://x"}, "upstream_error"},
		{"fetch", fmt.Errorf("%w: dial tcp", ErrFetch), "internal_error"},
		{"other", errors.New("boom"), "internal_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("KindOf(%v) = %q; want %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestUpstreamErrorAs(t *testing.T) {
	err := fmt.Errorf("import: %w", &UpstreamError{StatusCode: 403, URL: "https://x/y.jpg"})

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatal("errors.As(*UpstreamError) = false")
	}
	if upErr.StatusCode != 403 {
		t.Errorf("StatusCode = %d; want 403", upErr.StatusCode)
	}
	if !errors.Is(err, ErrUpstream) {
		t.Error("errors.Is(ErrUpstream) = false")
	}
}
