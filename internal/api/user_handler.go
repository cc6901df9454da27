package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scroll-api/internal/api/shared"
	"github.com/phrazzld/scroll-api/internal/platform/logger"
	"github.com/phrazzld/scroll-api/internal/service"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// GetUser handles GET /api/users/{name} requests. Unknown users are created
// on first reference.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	name, ok := handlePathName(w, r, "name")
	if !ok {
		return
	}

	user, err := h.userService.GetOrCreateUser(r.Context(), name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateProgress handles PUT /api/users/{name}/progress requests.
func (h *UserHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	name, ok := handlePathName(w, r, "name")
	if !ok {
		return
	}

	var req UpdateProgressRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	user, err := h.userService.UpdateProgress(r.Context(), name, req.Progress)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("progress updated", slog.String("user", name), slog.Int("keys", len(req.Progress)))
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}
