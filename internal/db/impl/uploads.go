package impl

import (
	"context"
	"fmt"

	"github.com/sidereusnuntius/goposter/internal/db"
	"github.com/sidereusnuntius/goposter/internal/domain"
)

func (d *dbImpl) ListUploads(ctx context.Context) ([]domain.Upload, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, filename, content_type, body, created_at
		FROM uploads
		ORDER BY id;
	`)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	var uploads []domain.Upload
	for rows.Next() {
		var u domain.Upload
		err = rows.Scan(&u.ID, &u.Filename, &u.ContentType, &u.Body, &u.CreatedAt)
		if err != nil {
			return nil, d.HandleError(err)
		}
		uploads = append(uploads, u)
	}
	return uploads, d.HandleError(rows.Err())
}

func (d *dbImpl) InsertUpload(ctx context.Context, upload domain.Upload) (int64, error) {
	res, err := d.db.ExecContext(ctx, `
		INSERT INTO uploads (filename, content_type, body, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP);
	`, upload.Filename, upload.ContentType, upload.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to stage upload %q: %w", upload.Filename, d.HandleError(err))
	}
	return res.LastInsertId()
}

func (d *dbImpl) DeleteUpload(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM uploads WHERE id = ?;`, id)
	if err != nil {
		return d.HandleError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return d.HandleError(err)
	}
	if affected == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (d *dbImpl) ClearUploads(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM uploads;`)
	return d.HandleError(err)
}
