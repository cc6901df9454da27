package gemini

import "google.golang.org/genai"

// systemPrompt instructs the model to produce a complete scrollable feed for
// the learner's request.
const systemPrompt = `You build short-form educational feeds that feel like a social media app.

First outline the subject the user asks about as topics, each with a few sections.
Topic and section titles are short labels such as "Data types" or "Strings".
Cover the material itself, not study techniques.

Then fill the feed with items. Every item references its position in the outline
with zero-based "topic" and "section" indexes and carries an invented author handle
(letters, digits and underscores), a title, a like count, a CSS "background" value
(a distinctive gradient such as "linear-gradient(135deg, #667eea 0%, #764ba2 100%)")
and a list of comments. Comments are casual and point out common misconceptions;
each comment has an author, a single emoji in "pfp_emoji", likes and content.

Item kinds:
- posts: most of the teaching happens here. Each post is a few slides, each slide
  an emoji icon plus one brief point.
- questions: quiz the learner. Provide an emoji icon, the question text ending in a
  question mark, exactly four choices and the zero-based index of the correct one.
- images: an optional illustration with a detailed "image_prompt".
- reels: use sparingly, at most five and only for major topics. "video_prompt" must
  fully describe a short, funny, surprising vertical video including the spoken
  outline, quick visuals of the content, the reel title and the author handle.

Number all item ids sequentially starting at 1 across the whole feed.`

func itemProperties(extra map[string]*genai.Schema) map[string]*genai.Schema {
	props := map[string]*genai.Schema{
		"id":         {Type: genai.TypeInteger},
		"title":      {Type: genai.TypeString},
		"author":     {Type: genai.TypeString},
		"topic":      {Type: genai.TypeInteger},
		"section":    {Type: genai.TypeInteger},
		"likes":      {Type: genai.TypeInteger},
		"background": {Type: genai.TypeString},
		"comments": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id":        {Type: genai.TypeInteger},
					"author":    {Type: genai.TypeString},
					"pfp_emoji": {Type: genai.TypeString},
					"likes":     {Type: genai.TypeInteger},
					"content":   {Type: genai.TypeString},
				},
				Required: []string{"id", "author", "pfp_emoji", "likes", "content"},
			},
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

var itemRequired = []string{"id", "title", "author", "topic", "section", "likes", "background", "comments"}

func itemArray(extra map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: itemProperties(extra),
			Required:   append(append([]string{}, itemRequired...), required...),
		},
	}
}

// responseSchema constrains the model output to the GeneratedContent shape.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {Type: genai.TypeString},
			"topics": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":    {Type: genai.TypeString},
						"sections": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					},
					Required: []string{"title", "sections"},
				},
			},
			"questions": itemArray(map[string]*genai.Schema{
				"icon":        {Type: genai.TypeString},
				"question":    {Type: genai.TypeString},
				"choices":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"correct_idx": {Type: genai.TypeInteger},
			}, "icon", "question", "choices", "correct_idx"),
			"posts": itemArray(map[string]*genai.Schema{
				"slides": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"icon":    {Type: genai.TypeString},
							"content": {Type: genai.TypeString},
						},
						Required: []string{"icon", "content"},
					},
				},
			}, "slides"),
			"images": itemArray(map[string]*genai.Schema{
				"image_prompt": {Type: genai.TypeString},
			}, "image_prompt"),
			"reels": itemArray(map[string]*genai.Schema{
				"video_prompt": {Type: genai.TypeString},
			}, "video_prompt"),
		},
		Required:         []string{"title", "topics", "questions", "posts", "images", "reels"},
		PropertyOrdering: []string{"title", "topics", "posts", "questions", "images", "reels"},
	}
}
