package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/scroll-api/internal/domain"
)

// SnapshotValidator checks a raw snapshot before it is decoded.
type SnapshotValidator interface {
	ValidateSnapshot(data []byte) error
}

// Store owns all users and studysets. Every read returns a copy and every
// write goes through the single mutex, so concurrent generation and poll
// tasks never observe or produce partial updates.
type Store struct {
	mu sync.Mutex

	users     map[string]*domain.User
	userOrder []string

	studysets map[uuid.UUID]*domain.Studyset
	order     []uuid.UUID

	persister Persister
	logger    *slog.Logger
}

// New loads the snapshot from persister and returns a ready store. A missing
// snapshot yields an empty store; a snapshot that cannot be decoded or fails
// validation is an error. validator may be nil.
func New(
	ctx context.Context,
	persister Persister,
	validator SnapshotValidator,
	logger *slog.Logger,
) (*Store, error) {
	if persister == nil {
		return nil, fmt.Errorf("persister cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		users:     make(map[string]*domain.User),
		studysets: make(map[uuid.UUID]*domain.Studyset),
		persister: persister,
		logger:    logger.With("component", "store", "target", persister.Target()),
	}

	data, err := persister.Load(ctx)
	if err != nil {
		return nil, NewStoreError("snapshot", "load", persister.Target(), err)
	}
	if len(data) == 0 {
		s.logger.Info("no snapshot found, starting empty")
		return s, nil
	}

	if validator != nil {
		if err := validator.ValidateSnapshot(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	for _, u := range doc.Users {
		if u == nil || u.Name == "" {
			continue
		}
		if _, exists := s.users[u.Name]; !exists {
			s.userOrder = append(s.userOrder, u.Name)
		}
		s.users[u.Name] = u
	}
	for _, st := range doc.Studysets {
		if st == nil {
			continue
		}
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("%w: studyset %s: %v", ErrCorruptSnapshot, st.ID, err)
		}
		if _, exists := s.studysets[st.ID]; !exists {
			s.order = append(s.order, st.ID)
		}
		s.studysets[st.ID] = st
	}

	s.logger.Info("snapshot loaded",
		"users", len(s.users),
		"studysets", len(s.studysets))

	return s, nil
}

// Get returns a copy of the studyset with the given ID.
func (s *Store) Get(id uuid.UUID) (*domain.Studyset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.studysets[id]
	if !ok {
		return nil, ErrStudysetNotFound
	}
	return st.Clone(), nil
}

// CreateStudyset records a new pending studyset and persists the snapshot.
func (s *Store) CreateStudyset(ctx context.Context, prompt string) (*domain.Studyset, error) {
	st, err := domain.NewStudyset(prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.studysets[st.ID] = st
	s.order = append(s.order, st.ID)
	s.persistLocked(ctx)

	return st.Clone(), nil
}

// Mutate applies fn to a copy of the studyset under the store lock. When fn
// returns nil the copy replaces the stored studyset and the snapshot is
// persisted before Mutate returns; when fn returns an error nothing changes.
// The returned studyset is a copy of the committed state.
func (s *Store) Mutate(
	ctx context.Context,
	id uuid.UUID,
	fn func(st *domain.Studyset) error,
) (*domain.Studyset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.studysets[id]
	if !ok {
		return nil, ErrStudysetNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if err := next.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}
	next.ID = current.ID
	next.Touch()

	s.studysets[id] = next
	s.persistLocked(ctx)

	return next.Clone(), nil
}

// List returns copies of all studysets in creation order.
func (s *Store) List() []*domain.Studyset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Studyset, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.studysets[id].Clone())
	}
	return out
}

// PendingRenderIDs returns the IDs of studysets with at least one reel whose
// render job has not reached a terminal state, in creation order.
func (s *Store) PendingRenderIDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []uuid.UUID
	for _, id := range s.order {
		if s.studysets[id].HasPendingRenders() {
			ids = append(ids, id)
		}
	}
	return ids
}

// GetUser returns a copy of the named user.
func (s *Store) GetUser(name string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[strings.TrimSpace(name)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u.Clone(), nil
}

// GetOrCreateUser returns the named user, creating and persisting it on
// first reference.
func (s *Store) GetOrCreateUser(ctx context.Context, name string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.userLocked(ctx, name)
	if err != nil {
		return nil, err
	}
	return u.Clone(), nil
}

// UpdateUserProgress merges progress into the named user, creating it if
// needed, and persists the snapshot.
func (s *Store) UpdateUserProgress(
	ctx context.Context,
	name string,
	progress map[string]any,
) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.userLocked(ctx, name)
	if err != nil {
		return nil, err
	}
	u.MergeProgress(progress)
	s.persistLocked(ctx)

	return u.Clone(), nil
}

func (s *Store) userLocked(ctx context.Context, name string) (*domain.User, error) {
	if u, ok := s.users[strings.TrimSpace(name)]; ok {
		return u, nil
	}

	u, err := domain.NewUser(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}
	s.users[u.Name] = u
	s.userOrder = append(s.userOrder, u.Name)
	s.persistLocked(ctx)

	return u, nil
}

// Document returns a copy of the full store state in persisted layout.
func (s *Store) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.documentLocked()
	for i, u := range doc.Users {
		doc.Users[i] = u.Clone()
	}
	for i, st := range doc.Studysets {
		doc.Studysets[i] = st.Clone()
	}
	return doc
}

func (s *Store) documentLocked() Document {
	doc := Document{
		Users:     make([]*domain.User, 0, len(s.userOrder)),
		Studysets: make([]*domain.Studyset, 0, len(s.order)),
	}
	for _, name := range s.userOrder {
		doc.Users = append(doc.Users, s.users[name])
	}
	for _, id := range s.order {
		doc.Studysets = append(doc.Studysets, s.studysets[id])
	}
	return doc
}

// persistLocked writes the whole snapshot. Failures are logged and never
// roll back the in-memory mutation. The caller's cancellation does not abort
// a write that has already started.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.MarshalIndent(s.documentLocked(), "", "  ")
	if err != nil {
		s.logger.Error("failed to encode snapshot", "error", err)
		return
	}

	if err := s.persister.Save(context.WithoutCancel(ctx), data); err != nil {
		s.logger.Error("failed to persist snapshot",
			"error", err,
			"bytes", len(data))
	}
}
