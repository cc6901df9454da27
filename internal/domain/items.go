package domain

import "slices"

// Comment is a single comment attached to a feed item.
type Comment struct {
	ID       int    `json:"id"`
	Author   string `json:"author"`
	PfpEmoji string `json:"pfp_emoji"`
	Likes    int    `json:"likes"`
	Content  string `json:"content"`
}

// FeedItem holds the fields shared by every item variant. Topic and Section
// index into the studyset's topic outline and are the feed ordering keys.
type FeedItem struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Topic      int       `json:"topic"`
	Section    int       `json:"section"`
	Likes      int       `json:"likes"`
	Background string    `json:"background"`
	Comments   []Comment `json:"comments"`
}

func (f FeedItem) clone() FeedItem {
	f.Comments = slices.Clone(f.Comments)
	return f
}

// Question is a multiple choice quiz item.
type Question struct {
	FeedItem
	Icon       string   `json:"icon"`
	Question   string   `json:"question"`
	Choices    []string `json:"choices"`
	CorrectIdx int      `json:"correct_idx"`
}

// Slide is one page of a post.
type Slide struct {
	Icon    string `json:"icon"`
	Content string `json:"content"`
}

// Post is a multi-slide text item.
type Post struct {
	FeedItem
	Slides []Slide `json:"slides"`
}

// Image is an item rendered from a prompt by the image collaborator.
// ImageFile is set once the artifact has been written; ImageError records a
// failed render.
type Image struct {
	FeedItem
	ImagePrompt string `json:"image_prompt"`
	ImageFile   string `json:"image_file,omitempty"`
	ImageError  string `json:"image_error,omitempty"`
}

// MarkRendered records the written artifact path.
func (i *Image) MarkRendered(file string) {
	i.ImageFile = file
	i.ImageError = ""
}

// MarkFailed records a render failure for this image only.
func (i *Image) MarkFailed(msg string) {
	i.ImageFile = ""
	i.ImageError = msg
}

// Reel is a short video item. The render fields are only populated when
// rendering was requested for the studyset.
type Reel struct {
	FeedItem
	VideoPrompt  string       `json:"video_prompt"`
	RenderID     string       `json:"render_id,omitempty"`
	RenderStatus RenderStatus `json:"render_status,omitempty"`
	RenderError  string       `json:"render_error,omitempty"`
	RenderFile   string       `json:"render_file,omitempty"`
}

// RenderStatus is the render sub-state of a reel. Values other than the two
// terminal ones are passed through verbatim from the rendering collaborator.
type RenderStatus string

// Terminal render states.
const (
	RenderStatusSuccess RenderStatus = "success"
	RenderStatusFailed  RenderStatus = "failed"
)

// IsTerminal reports whether no further transitions are allowed.
func (s RenderStatus) IsTerminal() bool {
	return s == RenderStatusSuccess || s == RenderStatusFailed
}

// IsPendingRender reports whether the reel has an external render job that
// has not reached a terminal state. A reel without a render ID is never pending.
func (r *Reel) IsPendingRender() bool {
	return r.RenderID != "" && !r.RenderStatus.IsTerminal()
}

// MarkRenderSubmitted records the external job handle and its initial status.
func (r *Reel) MarkRenderSubmitted(renderID string, status RenderStatus) {
	r.RenderID = renderID
	r.RenderStatus = status
	r.RenderError = ""
	r.RenderFile = ""
}

// SetRenderStatus stores an intermediate status. It is a no-op once the reel
// is terminal, which keeps repeated poll observations idempotent.
func (r *Reel) SetRenderStatus(status RenderStatus) {
	if r.RenderStatus.IsTerminal() {
		return
	}
	r.RenderStatus = status
}

// MarkRenderFailed moves the reel to failed with a diagnostic.
func (r *Reel) MarkRenderFailed(msg string) {
	if r.RenderStatus.IsTerminal() {
		return
	}
	r.RenderStatus = RenderStatusFailed
	r.RenderError = msg
}

// MarkRenderSucceeded moves the reel to success with the local artifact path.
func (r *Reel) MarkRenderSucceeded(file string) {
	if r.RenderStatus.IsTerminal() {
		return
	}
	r.RenderStatus = RenderStatusSuccess
	r.RenderFile = file
	r.RenderError = ""
}
