package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/fhuszti/event-medias-go/internal/usecase/media"
)

const maxErrorBody = 4 << 10

// BunnyStorage writes objects to a Bunny.net storage zone through its HTTP API.
type BunnyStorage struct {
	client     httpDoer
	endpoint   string
	zone       string
	apiKey     string
	cdnBaseURL string
}

// compile-time check: *BunnyStorage must satisfy port.Storage
var _ port.Storage = (*BunnyStorage)(nil)

func NewBunnyStorage(client httpDoer, endpoint, zone, apiKey, cdnBaseURL string) *BunnyStorage {
	log.Println("initialising bunny storage client...")
	if client == nil {
		client = http.DefaultClient
	}
	return &BunnyStorage{
		client:     client,
		endpoint:   strings.TrimRight(endpoint, "/"),
		zone:       zone,
		apiKey:     apiKey,
		cdnBaseURL: cdnBaseURL,
	}
}

func (s *BunnyStorage) configured() bool {
	return s.endpoint != "" && s.zone != "" && s.apiKey != "" && s.cdnBaseURL != ""
}

// SaveFile PUTs the object, replacing whatever was stored under the same key.
func (s *BunnyStorage) SaveFile(ctx context.Context, objectKey string, reader io.Reader, fileSize int64, contentType string) error {
	if !s.configured() {
		return media.ErrStorageNotConfigured
	}
	log.Printf("saving file %q into storage zone %q...", objectKey, s.zone)

	target := s.endpoint + "/" + s.zone + "/" + strings.TrimLeft(objectKey, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", media.ErrUpload, err)
	}
	if fileSize >= 0 {
		req.ContentLength = fileSize
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("AccessKey", s.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", media.ErrUpload, err)
	}
	defer func() {
		if cErr := resp.Body.Close(); cErr != nil {
			log.Printf("failed to close storage response body: %v", cErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: status %d: %s", media.ErrUpload, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (s *BunnyStorage) PublicURL(objectKey string) string {
	return publicURL(s.cdnBaseURL, objectKey)
}
