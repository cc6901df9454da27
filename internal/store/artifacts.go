package store

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ArtifactStore writes binary render artifacts (images, downloaded videos)
// into a directory next to the snapshot. Items reference artifacts by the
// returned path.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore returns an artifact store rooted at dir.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: dir}
}

// Dir returns the artifact root directory.
func (a *ArtifactStore) Dir() string {
	return a.dir
}

// Write stores data under name and returns the artifact path.
func (a *ArtifactStore) Write(name string, data []byte) (string, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: empty artifact name", ErrInvalidEntity)
	}

	path := filepath.Join(a.dir, name)
	if err := writeFileAtomic(path, data); err != nil {
		return "", NewStoreError("artifact", "write", name, err)
	}
	return path, nil
}
