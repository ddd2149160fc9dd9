package sqlite

import (
	"context"
	"database/sql"

	"github.com/oatfile/filedrop/internal/filedrop/domain"
)

type filesRepo struct {
	db *sql.DB
}

func (r *filesRepo) CreateFileRecord(ctx context.Context, rec domain.FileRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO files (id, filename, uploaded_by, size, uploaded_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Filename, rec.UploadedBy, rec.Size, rec.UploadedAt.UTC(),
	)
	return mapConflict(err)
}

func (r *filesRepo) GetFileRecord(ctx context.Context, id string) (domain.FileRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, filename, uploaded_by, size, uploaded_at
		FROM files WHERE id = ?`, id)

	var rec domain.FileRecord
	if err := row.Scan(&rec.ID, &rec.Filename, &rec.UploadedBy, &rec.Size, &rec.UploadedAt); err != nil {
		return domain.FileRecord{}, mapNotFound(err)
	}
	return rec, nil
}

// ListFileRecords returns all records in insertion order. rowid preserves
// insert order for an append-only table.
func (r *filesRepo) ListFileRecords(ctx context.Context) ([]domain.FileRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, filename, uploaded_by, size, uploaded_at
		FROM files ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FileRecord
	for rows.Next() {
		var rec domain.FileRecord
		if err := rows.Scan(&rec.ID, &rec.Filename, &rec.UploadedBy, &rec.Size, &rec.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
