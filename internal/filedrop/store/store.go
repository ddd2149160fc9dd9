package store

import (
	"context"
	"errors"

	"github.com/oatfile/filedrop/internal/filedrop/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Users is the read-only credential store. The seed implementation loads a
// fixed user list at startup; the interface is kept so the store can grow
// mutable backends later without touching the services.
type Users interface {
	// GetUserByUsername looks up a user by exact, case-sensitive username.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
}

// Catalog is the root data access interface for file metadata. Concrete
// drivers (sqlite) implement this.
type Catalog interface {
	Files() Files

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Files interface {
	// CreateFileRecord inserts one record. Call it only after the blob
	// write succeeded, so a record never references a missing blob.
	CreateFileRecord(ctx context.Context, rec domain.FileRecord) error

	// GetFileRecord returns the record for a file id.
	GetFileRecord(ctx context.Context, id string) (domain.FileRecord, error)

	// ListFileRecords returns every record in insertion order. There is no
	// pagination; the catalog is expected to stay demo-sized.
	ListFileRecords(ctx context.Context) ([]domain.FileRecord, error)
}
