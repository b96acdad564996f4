package supabase

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"

	"claynova-backend/internal/models"
)

const (
	// Product images live under a fixed prefix inside the bucket.
	productPrefix = "products"

	maxImageSize = 5 * 1024 * 1024 // 5 MiB
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, publishableKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", publishableKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// ValidateImage checks the declared content type and size before any
// network I/O. A rejected file never reaches the bucket.
func ValidateImage(filename, contentType string, size int64) error {
	if _, ok := allowedImageTypes[contentType]; !ok {
		return &models.ValidationError{
			Field:   "image",
			Message: "Invalid file type. Please upload a JPEG, PNG, or WebP image.",
		}
	}
	if size > maxImageSize {
		return &models.ValidationError{
			Field:   "image",
			Message: "File size too large. Please upload an image smaller than 5MB.",
		}
	}
	return nil
}

// UploadProductImage stores an image under products/ with a random
// UUID filename and returns the storage path plus the public URL.
// Upsert is disabled: a path collision is an upload failure, never a
// silent overwrite.
func (s *StorageClient) UploadProductImage(filename, contentType string, data []byte) (*models.ImageUpload, error) {
	if err := ValidateImage(filename, contentType, int64(len(data))); err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = allowedImageTypes[contentType]
	}
	storagePath := fmt.Sprintf("%s/%s%s", productPrefix, uuid.New().String(), ext)

	upsert := false
	cacheControl := "3600"
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	})
	if err != nil {
		return nil, &models.StorageError{Op: "upload", Err: err}
	}

	return &models.ImageUpload{
		URL:  s.GetPublicURL(storagePath),
		Path: storagePath,
	}, nil
}

// RemoveProductImage deletes a stored object, best effort. Callers
// use it as a non-critical cleanup step, so failure is reported as a
// bool instead of an error.
func (s *StorageClient) RemoveProductImage(storagePath string) bool {
	_, err := s.client.RemoveFile(s.bucket, []string{storagePath})
	return err == nil
}

// DownloadProductImage fetches the stored bytes, used when AI
// regeneration is requested without a replacement image.
func (s *StorageClient) DownloadProductImage(storagePath string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, storagePath)
	if err != nil {
		return nil, &models.StorageError{Op: "download", Err: err}
	}
	return data, nil
}

// GetPublicURL derives the public URL for a storage path. Pure, no
// I/O.
func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, storagePath)
}

// PathFromPublicURL is the inverse of GetPublicURL. It returns ""
// when the URL does not point into this client's bucket, e.g. for
// seeded products whose images live elsewhere.
func (s *StorageClient) PathFromPublicURL(publicURL string) string {
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", s.baseURL, s.bucket)
	if !strings.HasPrefix(publicURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(publicURL, prefix)
}
