package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded files land. Only a local filesystem
// backend exists today; the interface keeps handlers independent of it.
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader) error
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	// URL returns the public URL for a stored path.
	URL(path string) string
}

type Config struct {
	BasePath string
	BaseURL  string
}

// NewStorage builds the configured backend.
func NewStorage(cfg Config) (Storage, error) {
	return NewLocalStorage(cfg)
}
