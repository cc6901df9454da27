package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scroll-api/internal/domain"
	"github.com/phrazzld/scroll-api/internal/service"
)

// CreateStudysetRequest defines the payload for creating a studyset.
type CreateStudysetRequest struct {
	Prompt       string `json:"prompt"        validate:"required,max=4000"`
	RenderReels  bool   `json:"render_reels"`
	RenderImages bool   `json:"render_images"`
}

// CreateStudysetResponse is returned immediately after the studyset is
// recorded; generation continues in the background.
type CreateStudysetResponse struct {
	ID     uuid.UUID             `json:"id"`
	Status domain.StudysetStatus `json:"status"`
}

// StudysetResponse is a studyset plus its flattened, ordered feed.
type StudysetResponse struct {
	*domain.Studyset
	Feed []domain.FeedEntry `json:"feed"`
}

// StudysetSummaryResponse is one entry of the studyset list.
type StudysetSummaryResponse struct {
	ID             uuid.UUID             `json:"id"`
	Status         domain.StudysetStatus `json:"status"`
	Title          string                `json:"title,omitempty"`
	Prompt         string                `json:"prompt"`
	Error          string                `json:"error,omitempty"`
	PendingRenders int                   `json:"pending_renders"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ListStudysetsResponse wraps the studyset summaries.
type ListStudysetsResponse struct {
	Studysets []StudysetSummaryResponse `json:"studysets"`
}

// UpdateProgressRequest is an opaque progress object merged into the user's
// existing progress.
type UpdateProgressRequest struct {
	Progress map[string]any `json:"progress" validate:"required"`
}

func studysetToResponse(view *service.StudysetView) StudysetResponse {
	feed := view.Feed
	if feed == nil {
		feed = []domain.FeedEntry{}
	}
	return StudysetResponse{Studyset: view.Studyset, Feed: feed}
}

func summariesToResponse(in []service.StudysetSummary) ListStudysetsResponse {
	out := make([]StudysetSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, StudysetSummaryResponse{
			ID:             s.ID,
			Status:         s.Status,
			Title:          s.Title,
			Prompt:         s.Prompt,
			Error:          s.Error,
			PendingRenders: s.PendingRenders,
			CreatedAt:      s.CreatedAt,
			UpdatedAt:      s.UpdatedAt,
		})
	}
	return ListStudysetsResponse{Studysets: out}
}
