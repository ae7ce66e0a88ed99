package impl

import (
	"context"
	"errors"
	"net/http"

	"github.com/sidereusnuntius/goposter/internal/domain"
)

func (s *serviceImpl) ListUploads(ctx context.Context) ([]domain.Upload, error) {
	return s.store.ListUploads(ctx)
}

func (s *serviceImpl) StageUpload(ctx context.Context, filename, contentType string, body []byte) (domain.Upload, error) {
	if len(body) == 0 {
		return domain.Upload{}, invalid(errors.New("empty file"))
	}
	if filename == "" {
		filename = "upload"
	}
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	upload := domain.Upload{
		Filename:    filename,
		ContentType: contentType,
		Body:        body,
	}
	id, err := s.store.InsertUpload(ctx, upload)
	if err != nil {
		return domain.Upload{}, err
	}
	upload.ID = id
	return upload, nil
}

func (s *serviceImpl) DeleteUpload(ctx context.Context, id int64) error {
	return s.store.DeleteUpload(ctx, id)
}
