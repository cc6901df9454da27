package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/phrazzld/scroll-api/internal/domain"
)

// Document is the persisted layout of the whole store.
type Document struct {
	Users     []*domain.User     `json:"users"`
	Studysets []*domain.Studyset `json:"studysets"`
}

// Persister reads and writes the raw snapshot document.
type Persister interface {
	// Load returns the last saved snapshot, or nil data if none exists yet.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the snapshot with data.
	Save(ctx context.Context, data []byte) error

	// Target names the snapshot location for logs.
	Target() string
}

// FileSnapshot persists the snapshot as a JSON file on local disk.
type FileSnapshot struct {
	path string
}

// NewFileSnapshot returns a persister writing to path.
func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{path: path}
}

// Load implements Persister.
func (f *FileSnapshot) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", f.path, err)
	}
	return data, nil
}

// Save implements Persister.
func (f *FileSnapshot) Save(_ context.Context, data []byte) error {
	return writeFileAtomic(f.path, data)
}

// Target implements Persister.
func (f *FileSnapshot) Target() string {
	return f.path
}
