package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthkit/linkedin-assistant/internal/settings"
)

func TestMockGenerateCommentEchoesToneAndPost(t *testing.T) {
	m := NewMock(0)

	c, err := m.GenerateComment(context.Background(), CommentRequest{PostID: "p1", Tone: "Casual"})
	require.NoError(t, err)

	assert.Equal(t, "Casual", c.Tone)
	assert.Equal(t, "p1", c.PostID)
	assert.Equal(t, settings.CommentPending, c.Status)
	assert.NotEmpty(t, c.ID)
	assert.Contains(t, c.Text, "Casual")
	assert.Contains(t, c.Text, "0 writing samples")
}

func TestMockGenerateCommentCountsSamples(t *testing.T) {
	m := NewMock(0)
	samples := []settings.WritingSample{{ID: "a"}, {ID: "b"}}

	c, err := m.GenerateComment(context.Background(), CommentRequest{PostID: "p", Tone: "Witty", Samples: samples})
	require.NoError(t, err)
	assert.Contains(t, c.Text, "2 writing samples")

	other, err := m.GenerateComment(context.Background(), CommentRequest{PostID: "p", Tone: "Witty"})
	require.NoError(t, err)
	assert.NotEqual(t, c.ID, other.ID)
}

func TestMockFetchPosts(t *testing.T) {
	m := NewMock(0)

	posts, err := m.FetchPosts(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, posts, len(cannedPosts))
	for _, p := range posts {
		assert.NotEmpty(t, p.ID)
		assert.GreaterOrEqual(t, p.EngagementScore, 0.0)
		assert.LessOrEqual(t, p.EngagementScore, 10.0)
	}

	posts, err = m.FetchPosts(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestMockPostAndSchedule(t *testing.T) {
	m := NewMock(0)

	ok, err := m.PostComment(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.ScheduleComment(context.Background(), "c1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMockDelay(t *testing.T) {
	m := NewMock(30 * time.Millisecond)

	start := time.Now()
	_, err := m.PostComment(context.Background(), "c1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestMockCancellation(t *testing.T) {
	m := NewMock(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := m.GenerateComment(ctx, CommentRequest{PostID: "p", Tone: "Casual"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
