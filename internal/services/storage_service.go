package services

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	storage_go "github.com/supabase-community/storage-go"
)

var ErrStorageTimeout = errors.New("storage operation timed out")

// StorageService mirrors local artifacts to an object-storage bucket.
// Uploads are best-effort: the local filesystem stays the source of truth,
// so a storage failure degrades URLs but never fails the pipeline.
type StorageService interface {
	// Upload writes an object and returns its public URL.
	Upload(objectPath string, data io.Reader) (string, error)
	// Remove deletes objects; missing objects are not an error.
	Remove(objectPaths []string) error
	PublicURL(objectPath string) string
}

type storageService struct {
	client  *storage_go.Client
	baseURL string
	bucket  string
	timeout time.Duration
	logger  *logrus.Logger
}

// NewStorageService creates a Supabase-backed StorageService. Returns nil
// when no Supabase URL is configured; callers treat a nil service as
// "storage disabled".
func NewStorageService(supabaseURL, serviceKey, bucket string, logger *logrus.Logger) StorageService {
	if supabaseURL == "" {
		return nil
	}
	client := storage_go.NewClient(supabaseURL+"/storage/v1", serviceKey, nil)
	return &storageService{
		client:  client,
		baseURL: strings.TrimRight(supabaseURL, "/"),
		bucket:  bucket,
		timeout: 10 * time.Second,
		logger:  logger,
	}
}

// Upload writes an object, racing the call against a timer. On timeout the
// object may still land eventually; the caller just loses the URL.
func (s *storageService) Upload(objectPath string, data io.Reader) (string, error) {
	errCh := make(chan error, 1)
	go func() {
		_, err := s.client.UploadFile(s.bucket, objectPath, data)
		errCh <- err
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"bucket": s.bucket,
				"object": objectPath,
			}).WithError(err).Warn("storage upload failed")
			return "", fmt.Errorf("upload %s: %w", objectPath, err)
		}
		return s.PublicURL(objectPath), nil
	case <-time.After(s.timeout):
		s.logger.WithFields(logrus.Fields{
			"bucket": s.bucket,
			"object": objectPath,
		}).Warn("storage upload timed out")
		return "", ErrStorageTimeout
	}
}

// Remove deletes objects from the bucket.
func (s *storageService) Remove(objectPaths []string) error {
	if len(objectPaths) == 0 {
		return nil
	}
	errCh := make(chan error, 1)
	go func() {
		_, err := s.client.RemoveFile(s.bucket, objectPaths)
		errCh <- err
	}()

	select {
	case err := <-errCh:
		return err
	case <-time.After(s.timeout):
		return ErrStorageTimeout
	}
}

// PublicURL builds the public object URL the way the storage API exposes it.
func (s *storageService) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath)
}
