package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageBucket holds garment item photos.
const ImageBucket = "garment-item-images"

type ImageStorageService interface {
	UploadItemImage(ctx context.Context, itemID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error)
	PresignedImageURL(objectKey string, expiry time.Duration) (string, error)
	DeleteItemImage(ctx context.Context, objectKey string) error
	EnsureBucketExists(ctx context.Context) error
}

type minioImageStorage struct {
	client *minio.Client
}

func NewImageStorageService(endpoint, accessKey, secretKey string, useSSL bool) (ImageStorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioImageStorage{client: client}, nil
}

// UploadItemImage stores a photo under a generated key and returns the
// key for persistence alongside the item.
func (m *minioImageStorage) UploadItemImage(ctx context.Context, itemID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectKey := fmt.Sprintf("items/%s/%s", itemID.String(), uuid.New().String())
	_, err := m.client.PutObject(ctx, ImageBucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (m *minioImageStorage) PresignedImageURL(objectKey string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(context.Background(), ImageBucket, objectKey, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioImageStorage) DeleteItemImage(ctx context.Context, objectKey string) error {
	return m.client.RemoveObject(ctx, ImageBucket, objectKey, minio.RemoveObjectOptions{})
}

func (m *minioImageStorage) EnsureBucketExists(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, ImageBucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, ImageBucket, minio.MakeBucketOptions{})
	}
	return nil
}
