package domain

import "time"

// FileRecord is the metadata for one uploaded file. The catalog owns the
// record; the blob store owns the bytes addressed by ID. Records are
// append-only: never mutated or deleted.
type FileRecord struct {
	ID         string // generated identifier, never derived from the filename
	Filename   string // original client filename, metadata only
	UploadedBy string
	Size       int64
	UploadedAt time.Time
}
