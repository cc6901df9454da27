package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scroll-api/internal/api/shared"
	"github.com/phrazzld/scroll-api/internal/platform/logger"
	"github.com/phrazzld/scroll-api/internal/service"
)

// StudysetHandler handles studyset-related HTTP requests
type StudysetHandler struct {
	studysetService service.StudysetService
	validator       *validator.Validate
	logger          *slog.Logger
}

// NewStudysetHandler creates a new StudysetHandler
func NewStudysetHandler(studysetService service.StudysetService, logger *slog.Logger) *StudysetHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudysetHandler")
	}

	return &StudysetHandler{
		studysetService: studysetService,
		validator:       validator.New(),
		logger:          logger.With(slog.String("component", "studyset_handler")),
	}
}

// CreateStudyset handles POST /api/studysets requests.
// It records a pending studyset and returns its ID without waiting for
// generation.
func (h *StudysetHandler) CreateStudyset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateStudysetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	st, err := h.studysetService.CreateStudysetAndEnqueue(r.Context(), service.CreateStudysetInput{
		Prompt:       req.Prompt,
		RenderReels:  req.RenderReels,
		RenderImages: req.RenderImages,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("studyset accepted",
		slog.String("studyset_id", st.ID.String()),
		slog.Bool("render_reels", req.RenderReels),
		slog.Bool("render_images", req.RenderImages))

	// 202 Accepted since generation happens asynchronously
	shared.RespondWithJSON(w, r, http.StatusAccepted, CreateStudysetResponse{
		ID:     st.ID,
		Status: st.Status,
	})
}

// GetStudyset handles GET /api/studysets/{id} requests.
func (h *StudysetHandler) GetStudyset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	view, err := h.studysetService.GetStudyset(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, studysetToResponse(view))
}

// ListStudysets handles GET /api/studysets requests.
func (h *StudysetHandler) ListStudysets(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.studysetService.ListStudysets(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list studysets")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summariesToResponse(summaries))
}
