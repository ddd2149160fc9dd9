package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oatfile/filedrop/internal/filedrop/blob"
	"github.com/oatfile/filedrop/internal/filedrop/domain"
	"github.com/oatfile/filedrop/internal/filedrop/store"
	"github.com/oatfile/filedrop/pkg/slogx"
)

var (
	ErrFileNotFound = errors.New("file_not_found")
	ErrConflict     = errors.New("storage_conflict")
)

type FileService struct {
	Blobs   *blob.Store
	Catalog store.Catalog
}

// Save streams the upload into blob storage under a freshly generated id and
// records it in the catalog. The id is random per call; two uploads of the
// same filename never collide. If the catalog insert fails after the blob
// was written, the blob is removed best-effort so storage does not
// accumulate unreferenced content.
func (s *FileService) Save(ctx context.Context, r io.Reader, filename, uploadedBy string) (domain.FileRecord, error) {
	l := slogx.FromContext(ctx)

	id := uuid.NewString()
	name := sanitizeFilename(filename)

	size, err := s.Blobs.Create(id, r)
	if err != nil {
		if errors.Is(err, blob.ErrConflict) {
			return domain.FileRecord{}, ErrConflict
		}
		return domain.FileRecord{}, err
	}

	rec := domain.FileRecord{
		ID:         id,
		Filename:   name,
		UploadedBy: uploadedBy,
		Size:       size,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.Catalog.Files().CreateFileRecord(ctx, rec); err != nil {
		if removeErr := s.Blobs.Remove(id); removeErr != nil {
			l.Warn("failed to remove blob after catalog error",
				slog.String("file_id", id),
				slog.String("error", removeErr.Error()))
		}
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.FileRecord{}, ErrConflict
		}
		return domain.FileRecord{}, err
	}

	l.Info("file uploaded",
		slog.String("file_id", id),
		slog.String("filename", name),
		slog.String("uploaded_by", uploadedBy),
		slog.Int64("size", size))

	return rec, nil
}

// List returns every catalog record in upload order.
func (s *FileService) List(ctx context.Context) ([]domain.FileRecord, error) {
	return s.Catalog.Files().ListFileRecords(ctx)
}

// Open looks up a file by id and returns its record together with a reader
// over the stored bytes. The caller closes the reader.
func (s *FileService) Open(ctx context.Context, id string) (domain.FileRecord, io.ReadCloser, error) {
	rec, err := s.Catalog.Files().GetFileRecord(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.FileRecord{}, nil, ErrFileNotFound
		}
		return domain.FileRecord{}, nil, err
	}

	f, err := s.Blobs.Open(id)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return domain.FileRecord{}, nil, ErrFileNotFound
		}
		return domain.FileRecord{}, nil, err
	}

	return rec, f, nil
}

// sanitizeFilename reduces a client-supplied filename to a bare base name.
// The result is display metadata only and never used to build storage paths.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return "upload"
	}
	return name
}
