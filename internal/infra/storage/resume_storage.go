package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"talentgate/config"
	domainerrors "talentgate/internal/domain/errors"
	"talentgate/internal/domain/service"

	"github.com/google/uuid"
	"gocloud.dev/blob"
)

// resumeStorage is a concrete implementation of the ResumeStorage interface
// backed by a gocloud.dev blob bucket.
type resumeStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// NewResumeStorage is the constructor for resumeStorage.
func NewResumeStorage(bucket *blob.Bucket, cfg *config.Config, logger *slog.Logger) service.ResumeStorage {
	publicBaseURL := ""
	if cfg.Storage != nil {
		publicBaseURL = strings.TrimRight(cfg.Storage.PublicBaseURL, "/")
	}

	return &resumeStorage{
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// Upload writes the in-memory buffer to the bucket as a single object and
// returns its durable URL. The write inherits the request context, so a
// client disconnect aborts the upload before anything is persisted.
func (s *resumeStorage) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", domainerrors.ErrMissingResume.WrapMessage("empty resume buffer")
	}

	key := storageKey()

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", domainerrors.ErrUploadFailed.WrapMessage("failed to open bucket writer")
	}

	if _, err := writer.Write(data); err != nil {
		// Close discards the partial object once the write has failed.
		_ = writer.Close()

		return "", domainerrors.ErrUploadFailed.WrapMessage("failed to write resume object")
	}

	// The object only becomes visible once Close succeeds.
	if err := writer.Close(); err != nil {
		return "", domainerrors.ErrUploadFailed.WrapMessage("failed to commit resume object")
	}

	s.logger.Debug("Resume uploaded", slog.String("key", key), slog.Int("size", len(data)))

	return s.publicBaseURL + "/" + key, nil
}

// storageKey builds a date-partitioned, collision-free object key.
func storageKey() string {
	now := time.Now()

	return fmt.Sprintf("resumes/%d/%d/%d/%s", now.Year(), now.Month(), now.Day(), uuid.New())
}
