package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGeneratedContent(t *testing.T) {
	t.Parallel()

	v, err := NewValidator()
	require.NoError(t, err)

	valid := `{
		"title": "Ions",
		"topics": [{"title": "Charges", "sections": ["Anions"]}],
		"questions": [{"id": 1, "title": "q", "topic": 0, "section": 0,
			"question": "Charge of sulfate?", "choices": ["-1","-2","+1","+2"], "correct_idx": 1}],
		"posts": [{"id": 2, "title": "p", "topic": 0, "section": 0, "slides": [{"icon": "x", "content": "y"}]}],
		"reels": [{"id": 3, "title": "r", "topic": 0, "section": 0, "video_prompt": "go"}]
	}`

	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"valid payload", valid, false},
		{"missing reels", `{"title": "Ions", "topics": [], "questions": [], "posts": []}`, true},
		{"negative topic", `{"title": "Ions", "topics": [], "questions": [], "posts": [],
			"reels": [{"id": 1, "title": "r", "topic": -1, "section": 0}]}`, true},
		{"not json", `{"title":`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := v.ValidateGeneratedContent([]byte(tc.doc))
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
			assert.NotEmpty(t, vErr.Errors)
			assert.Contains(t, vErr.Error(), GeneratedContentSchema)
		})
	}
}

func TestValidateSnapshot(t *testing.T) {
	t.Parallel()

	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.ValidateSnapshot([]byte(`{"users": [], "studysets": []}`)))
	assert.NoError(t, v.ValidateSnapshot([]byte(`{"users": [{"name": "ada", "progress": {}}],
		"studysets": [{"id": "5f0c7a5e-8d4b-4b7e-9a39-3e1f2c1d0a11", "status": "pending", "prompt": "x",
		"reels": [{"id": 1, "render_id": "v1", "render_status": "in_progress"}]}]}`)))

	err = v.ValidateSnapshot([]byte(`{"users": [], "studysets": [{"id": "x", "status": "weird", "prompt": "x"}]}`))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.GreaterOrEqual(t, len(vErr.Errors), 2)
}
