package domain

// GeneratedContent is the structured payload returned by the content
// synthesis collaborator for one prompt.
type GeneratedContent struct {
	Title     string     `json:"title"`
	Topics    []Topic    `json:"topics"`
	Questions []Question `json:"questions"`
	Posts     []Post     `json:"posts"`
	Images    []Image    `json:"images"`
	Reels     []Reel     `json:"reels"`
}

// IsEmpty reports whether the payload carries no feed items at all.
func (c *GeneratedContent) IsEmpty() bool {
	return len(c.Questions) == 0 && len(c.Posts) == 0 && len(c.Images) == 0 && len(c.Reels) == 0
}

// Normalize replaces nil collections with empty ones so the merged studyset
// always serializes arrays.
func (c *GeneratedContent) Normalize() {
	if c.Topics == nil {
		c.Topics = []Topic{}
	}
	if c.Questions == nil {
		c.Questions = []Question{}
	}
	if c.Posts == nil {
		c.Posts = []Post{}
	}
	if c.Images == nil {
		c.Images = []Image{}
	}
	if c.Reels == nil {
		c.Reels = []Reel{}
	}
}

// Clone returns a deep copy of the payload.
func (c *GeneratedContent) Clone() *GeneratedContent {
	if c == nil {
		return nil
	}
	out := &GeneratedContent{
		Title:     c.Title,
		Topics:    cloneTopics(c.Topics),
		Questions: cloneQuestions(c.Questions),
		Posts:     clonePosts(c.Posts),
		Images:    cloneImages(c.Images),
		Reels:     cloneReels(c.Reels),
	}
	out.Normalize()
	return out
}
