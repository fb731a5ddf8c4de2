package storage

import (
	"fmt"
	"strings"

	"github.com/fhuszti/event-medias-go/internal/usecase/media"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	if resp.Code == "" {
		return fmt.Errorf("%w: %v", media.ErrUpload, err)
	}
	return fmt.Errorf("%w: %s: %s", media.ErrUpload, resp.Code, resp.Message)
}

// publicURL joins the CDN base and an object key with exactly one slash.
func publicURL(base, objectKey string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(objectKey, "/")
}
