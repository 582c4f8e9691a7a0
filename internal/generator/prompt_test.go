package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLengthGuidance(t *testing.T) {
	tests := []struct {
		length string
		want   string
	}{
		{"short", "about one sentence"},
		{"medium", "two to three sentences"},
		{"long", "four to five sentences"},
		{"", "two to three sentences"},
		{"epic", "two to three sentences"},
	}
	for _, tt := range tests {
		t.Run(tt.length, func(t *testing.T) {
			assert.Equal(t, tt.want, LengthGuidance(tt.length))
		})
	}
}

func TestBuildCommentPrompt(t *testing.T) {
	p := BuildCommentPrompt(CommentSpec{
		Tone:        "Casual",
		Length:      "short",
		PostContent: "  We just shipped v2!  ",
		Samples:     []string{"first sample", "", "second sample", "third sample", "fourth sample"},
	})

	assert.NotEmpty(t, p.System)
	assert.Contains(t, p.User, "Tone: Casual")
	assert.Contains(t, p.User, "about one sentence")
	assert.Contains(t, p.User, "1. first sample")
	assert.Contains(t, p.User, "2. second sample")
	assert.NotContains(t, p.User, "third sample", "only the first samples are quoted")
	assert.NotContains(t, p.User, "fourth sample")
	assert.True(t, strings.HasSuffix(p.User, "Post:\nWe just shipped v2!\n"))
}

func TestBuildCommentPromptWithoutSamples(t *testing.T) {
	p := BuildCommentPrompt(CommentSpec{PostContent: "hello"})

	assert.Contains(t, p.User, "Tone: Professional")
	assert.NotContains(t, p.User, "samples")
}

func TestCleanCompletion(t *testing.T) {
	assert.Equal(t, "Great point!", cleanCompletion("  \"Great point!\"\n"))
	assert.Equal(t, "Nice", cleanCompletion("```\nNice\n```"))
	assert.Equal(t, `He said "hi" to me`, cleanCompletion(`He said "hi" to me`))
}
