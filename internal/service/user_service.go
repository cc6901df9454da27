package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/scroll-api/internal/domain"
)

// UserStore is the store surface the user service uses.
type UserStore interface {
	GetOrCreateUser(ctx context.Context, name string) (*domain.User, error)
	UpdateUserProgress(ctx context.Context, name string, progress map[string]any) (*domain.User, error)
}

// UserService provides user operations
type UserService interface {
	// GetOrCreateUser returns the named user, creating it on first reference.
	GetOrCreateUser(ctx context.Context, name string) (*domain.User, error)

	// UpdateProgress shallow-merges progress into the user's progress map.
	UpdateProgress(ctx context.Context, name string, progress map[string]any) (*domain.User, error)
}

type userServiceImpl struct {
	store  UserStore
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(store UserStore, logger *slog.Logger) (UserService, error) {
	if store == nil {
		return nil, &ServiceError{Service: "user", Operation: "create_service", Message: "store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userServiceImpl{
		store:  store,
		logger: logger.With("component", "user_service"),
	}, nil
}

func (s *userServiceImpl) GetOrCreateUser(ctx context.Context, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidUserName
	}

	user, err := s.store.GetOrCreateUser(ctx, name)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user", name)
		return nil, NewServiceError("user", "get_user", "failed to get or create user", err)
	}
	return user, nil
}

func (s *userServiceImpl) UpdateProgress(
	ctx context.Context,
	name string,
	progress map[string]any,
) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidUserName
	}

	user, err := s.store.UpdateUserProgress(ctx, name, progress)
	if err != nil {
		s.logger.Error("failed to update user progress", "error", err, "user", name)
		return nil, NewServiceError("user", "update_progress", "failed to update progress", err)
	}

	s.logger.Info("user progress updated", "user", name, "keys", len(progress))
	return user, nil
}
