package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StudysetStatus represents the lifecycle state of a studyset
type StudysetStatus string

// Possible studyset status values
const (
	StudysetStatusPending StudysetStatus = "pending"
	StudysetStatusReady   StudysetStatus = "ready"
	StudysetStatusError   StudysetStatus = "error"
)

// IsTerminal reports whether the studyset has finished generation.
func (s StudysetStatus) IsTerminal() bool {
	return s == StudysetStatusReady || s == StudysetStatusError
}

// Topic is one entry of the studyset outline. Items reference a topic and a
// section by index.
type Topic struct {
	Title    string   `json:"title"`
	Sections []string `json:"sections"`
}

// Studyset is one generation job and the feed content it produced.
// It starts pending, transitions exactly once to ready or error, and is then
// only touched by render reconciliation of its reels and images.
type Studyset struct {
	ID        uuid.UUID      `json:"id"`
	Status    StudysetStatus `json:"status"`
	Prompt    string         `json:"prompt"`
	Error     string         `json:"error,omitempty"`
	Title     string         `json:"title,omitempty"`
	Topics    []Topic        `json:"topics"`
	Questions []Question     `json:"questions"`
	Posts     []Post         `json:"posts"`
	Images    []Image        `json:"images"`
	Reels     []Reel         `json:"reels"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewStudyset creates a pending studyset for the given prompt with a fresh ID.
// Returns an error if validation fails.
func NewStudyset(prompt string) (*Studyset, error) {
	now := time.Now().UTC()
	s := &Studyset{
		ID:        uuid.New(),
		Status:    StudysetStatusPending,
		Prompt:    strings.TrimSpace(prompt),
		Topics:    []Topic{},
		Questions: []Question{},
		Posts:     []Post{},
		Images:    []Image{},
		Reels:     []Reel{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks if the Studyset has valid data.
func (s *Studyset) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyStudysetID
	}

	if strings.TrimSpace(s.Prompt) == "" {
		return ErrEmptyPrompt
	}

	switch s.Status {
	case StudysetStatusPending, StudysetStatusReady, StudysetStatusError:
	default:
		return ErrInvalidStudysetStatus
	}

	return nil
}

// ApplyContent overwrites the content collections with the generated payload
// and marks the studyset ready. Render sub-state arriving with the payload is
// discarded; only the generation task may submit renders.
func (s *Studyset) ApplyContent(content *GeneratedContent) error {
	if s.Status != StudysetStatusPending {
		return ErrStudysetNotPending
	}
	if content == nil {
		return ErrEmptyContent
	}

	c := content.Clone()
	for i := range c.Reels {
		c.Reels[i].RenderID = ""
		c.Reels[i].RenderStatus = ""
		c.Reels[i].RenderError = ""
		c.Reels[i].RenderFile = ""
	}
	for i := range c.Images {
		c.Images[i].ImageFile = ""
		c.Images[i].ImageError = ""
	}

	s.Title = c.Title
	s.Topics = c.Topics
	s.Questions = c.Questions
	s.Posts = c.Posts
	s.Images = c.Images
	s.Reels = c.Reels
	s.Error = ""
	s.Status = StudysetStatusReady
	s.Touch()
	return nil
}

// Fail marks a pending studyset as failed with a diagnostic.
func (s *Studyset) Fail(msg string) error {
	if s.Status != StudysetStatusPending {
		return ErrStudysetNotPending
	}
	s.Status = StudysetStatusError
	s.Error = msg
	s.Touch()
	return nil
}

// Touch bumps UpdatedAt.
func (s *Studyset) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// ReelByID returns a pointer into the reel slice, or nil.
func (s *Studyset) ReelByID(id int) *Reel {
	for i := range s.Reels {
		if s.Reels[i].ID == id {
			return &s.Reels[i]
		}
	}
	return nil
}

// ImageByID returns a pointer into the image slice, or nil.
func (s *Studyset) ImageByID(id int) *Image {
	for i := range s.Images {
		if s.Images[i].ID == id {
			return &s.Images[i]
		}
	}
	return nil
}

// PendingReelCount counts reels with a render job that is not terminal.
func (s *Studyset) PendingReelCount() int {
	n := 0
	for i := range s.Reels {
		if s.Reels[i].IsPendingRender() {
			n++
		}
	}
	return n
}

// HasPendingRenders reports whether a poller is needed for this studyset.
func (s *Studyset) HasPendingRenders() bool {
	return s.PendingReelCount() > 0
}

// Clone returns a deep copy so callers never share nested slices with the
// owner of the original.
func (s *Studyset) Clone() *Studyset {
	if s == nil {
		return nil
	}
	c := *s
	c.Topics = cloneTopics(s.Topics)
	c.Questions = cloneQuestions(s.Questions)
	c.Posts = clonePosts(s.Posts)
	c.Images = cloneImages(s.Images)
	c.Reels = cloneReels(s.Reels)
	return &c
}

func cloneTopics(in []Topic) []Topic {
	if in == nil {
		return nil
	}
	out := make([]Topic, len(in))
	for i, t := range in {
		t.Sections = slices.Clone(t.Sections)
		out[i] = t
	}
	return out
}

func cloneQuestions(in []Question) []Question {
	if in == nil {
		return nil
	}
	out := make([]Question, len(in))
	for i, q := range in {
		q.FeedItem = q.FeedItem.clone()
		q.Choices = slices.Clone(q.Choices)
		out[i] = q
	}
	return out
}

func clonePosts(in []Post) []Post {
	if in == nil {
		return nil
	}
	out := make([]Post, len(in))
	for i, p := range in {
		p.FeedItem = p.FeedItem.clone()
		p.Slides = slices.Clone(p.Slides)
		out[i] = p
	}
	return out
}

func cloneImages(in []Image) []Image {
	if in == nil {
		return nil
	}
	out := make([]Image, len(in))
	for i, img := range in {
		img.FeedItem = img.FeedItem.clone()
		out[i] = img
	}
	return out
}

func cloneReels(in []Reel) []Reel {
	if in == nil {
		return nil
	}
	out := make([]Reel, len(in))
	for i, r := range in {
		r.FeedItem = r.FeedItem.clone()
		out[i] = r
	}
	return out
}
