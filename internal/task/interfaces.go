package task

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/scroll-api/internal/domain"
)

// StudysetStore is the subset of the durable store the tasks need. All
// writes go through Mutate so concurrent tasks never interleave partial
// updates of one studyset.
type StudysetStore interface {
	Get(id uuid.UUID) (*domain.Studyset, error)
	Mutate(ctx context.Context, id uuid.UUID, fn func(st *domain.Studyset) error) (*domain.Studyset, error)
}

// PendingRenderLister lists studysets that still have reels awaiting a
// terminal render status.
type PendingRenderLister interface {
	PendingRenderIDs() []uuid.UUID
}

// ArtifactWriter stores rendered binaries and returns the path recorded on
// the owning item.
type ArtifactWriter interface {
	Write(name string, data []byte) (string, error)
}

// Releaser gives up a registry entry.
type Releaser interface {
	Release(id uuid.UUID)
}
