package db

import (
	"context"

	"github.com/sidereusnuntius/goposter/internal/domain"
)

// Uploads is the staging buffer for media attached to the next post. Rows are
// listed in insertion order and cleared en masse after a publish attempt. The
// table is persisted, so a crash between staging and publishing leaves
// orphaned rows behind; they are harmless and swept by the next publish.
type Uploads interface {
	ListUploads(ctx context.Context) ([]domain.Upload, error)
	InsertUpload(ctx context.Context, upload domain.Upload) (id int64, err error)
	// DeleteUpload returns ErrNotFound when no row with the id exists.
	DeleteUpload(ctx context.Context, id int64) error
	ClearUploads(ctx context.Context) error
}
