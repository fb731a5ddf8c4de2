package storage

import (
	"context"
	"io"
	"log"

	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/fhuszti/event-medias-go/internal/usecase/media"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage writes objects to an S3-compatible bucket named after the storage zone.
type MinioStorage struct {
	client     minioClient
	bucketName string
	secretKey  string
	cdnBaseURL string
}

// compile-time check: *MinioStorage must satisfy port.Storage
var _ port.Storage = (*MinioStorage)(nil)

func NewMinioStorage(endpoint, accessKey, secretKey, bucket, cdnBaseURL string, useSSL bool) (*MinioStorage, error) {
	log.Println("initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &MinioStorage{client: client, bucketName: bucket, secretKey: secretKey, cdnBaseURL: cdnBaseURL}, nil
}

// configured mirrors BunnyStorage: a bucket, a secret and a CDN base are all
// needed before anything is written.
func (s *MinioStorage) configured() bool {
	return s.bucketName != "" && s.secretKey != "" && s.cdnBaseURL != ""
}

// InitBucket creates the bucket when it does not exist yet.
func (s *MinioStorage) InitBucket(ctx context.Context) error {
	if !s.configured() {
		return media.ErrStorageNotConfigured
	}
	ok, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		log.Printf("bucket %q does not exist, creating it...", s.bucketName)
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

func (s *MinioStorage) SaveFile(ctx context.Context, objectKey string, reader io.Reader, fileSize int64, contentType string) error {
	if !s.configured() {
		return media.ErrStorageNotConfigured
	}
	log.Printf("saving file %q into bucket %q...", objectKey, s.bucketName)

	putOpts := minio.PutObjectOptions{ContentType: contentType}
	if putOpts.ContentType == "" {
		putOpts.ContentType = "application/octet-stream"
	}

	if _, err := s.client.PutObject(ctx, s.bucketName, objectKey, reader, fileSize, putOpts); err != nil {
		return mapMinioErr(err)
	}
	return nil
}

// PublicURL roots objectKey at the CDN base.
func (s *MinioStorage) PublicURL(objectKey string) string {
	return publicURL(s.cdnBaseURL, objectKey)
}
