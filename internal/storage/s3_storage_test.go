package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/ikkim/shop-backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, baseURL string) *S3Storage {
	t.Helper()
	s, err := NewS3Storage(context.Background(), &config.S3Config{
		Region:          "eu-central-1",
		Bucket:          "shop-images",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		BaseURL:         baseURL,
	})
	require.NoError(t, err)
	return s
}

func TestS3Storage_PresignUpload(t *testing.T) {
	s := newTestStorage(t, "")

	upload, err := s.PresignUpload(context.Background(), "products/7", "Cake.PNG", "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.Key, "products/7/"))
	assert.True(t, strings.HasSuffix(upload.Key, ".png"))
	assert.Contains(t, upload.UploadURL, "shop-images")
	assert.Contains(t, upload.UploadURL, "X-Amz-Signature")
	assert.Equal(t, "https://shop-images.s3.eu-central-1.amazonaws.com/"+upload.Key, upload.FileURL)
}

func TestS3Storage_BaseURL(t *testing.T) {
	s := newTestStorage(t, "https://cdn.example.com/")

	upload, err := s.PresignUpload(context.Background(), "products/1", "a.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+upload.Key, upload.FileURL)
}

func TestS3Storage_RejectsContentType(t *testing.T) {
	s := newTestStorage(t, "")

	_, err := s.PresignUpload(context.Background(), "products/1", "a.svg", "image/svg+xml")
	assert.Error(t, err)
}
