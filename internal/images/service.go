package images

import (
	"context"
	"fmt"

	"github.com/mk-cardoso198/engajapro-digital-hub/internal/storage"
)

type Service struct {
	uploader  storage.Uploader
	maxSizeMB int
}

func NewService(uploader storage.Uploader, maxSizeMB int) *Service {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &Service{
		uploader:  uploader,
		maxSizeMB: maxSizeMB,
	}
}

// MaxSizeBytes is the upload size gate; handlers use it to bound the
// request body before buffering.
func (s *Service) MaxSizeBytes() int64 {
	return int64(s.maxSizeMB) << 20
}

// Upload runs the pipeline and writes the result to the bucket. The size
// gate fires before any processing or network call.
func (s *Service) Upload(ctx context.Context, bucket string, data []byte, contentType string, upsert bool) (string, error) {
	if len(data) > s.maxSizeMB*1024*1024 {
		return "", fmt.Errorf("%w: max %dMB", ErrFileTooLarge, s.maxSizeMB)
	}

	result, err := Process(data, contentType)
	if err != nil {
		return "", err
	}

	name := Filename(result.Ext)
	if err := s.uploader.Upload(ctx, bucket, name, result.Data, result.ContentType, upsert); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	return s.uploader.PublicURL(bucket, name), nil
}
