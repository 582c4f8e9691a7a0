package backend

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/growthkit/linkedin-assistant/internal/settings"
)

// DefaultMockDelay is the latency of every mock call.
const DefaultMockDelay = time.Second

var cannedPosts = []FeedPost{
	{
		ID:      "post-1",
		Author:  "Sarah Chen",
		Content: "Just wrapped up our Q3 planning. The biggest lesson: alignment beats speed when the team is growing this fast.",
		URL:     "https://www.linkedin.com/feed/update/post-1",
	},
	{
		ID:      "post-2",
		Author:  "Marcus Johnson",
		Content: "Hiring is a product problem. Treat your candidates like customers and watch your acceptance rate climb.",
		URL:     "https://www.linkedin.com/feed/update/post-2",
	},
	{
		ID:      "post-3",
		Author:  "Priya Patel",
		Content: "We cut our cloud bill by 40% without touching a single feature. Thread on what actually moved the needle.",
		URL:     "https://www.linkedin.com/feed/update/post-3",
	},
	{
		ID:      "post-4",
		Author:  "David Kim",
		Content: "Leadership is mostly about removing obstacles you did not know existed until someone trusted you enough to mention them.",
		URL:     "https://www.linkedin.com/feed/update/post-4",
	},
	{
		ID:      "post-5",
		Author:  "Elena Rossi",
		Content: "Five years of remote work taught me that writing is the real management skill.",
		URL:     "https://www.linkedin.com/feed/update/post-5",
	},
}

// Mock returns canned data after a delay. It never fails unless the context ends.
type Mock struct {
	delay time.Duration
	now   func() time.Time
}

var _ Backend = (*Mock)(nil)

// NewMock creates a mock backend. A negative delay is treated as zero.
func NewMock(delay time.Duration) *Mock {
	if delay < 0 {
		delay = 0
	}
	return &Mock{delay: delay, now: time.Now}
}

func (m *Mock) wait(ctx context.Context) error {
	if m.delay == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FetchPosts returns up to limit canned posts with random engagement scores.
// A non-positive limit returns every post.
func (m *Mock) FetchPosts(ctx context.Context, limit int) ([]FeedPost, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	n := len(cannedPosts)
	if limit > 0 && limit < n {
		n = limit
	}
	now := m.now()
	posts := make([]FeedPost, n)
	for i := 0; i < n; i++ {
		p := cannedPosts[i]
		p.PublishedAt = now.Add(-time.Duration(i+1) * 3 * time.Hour)
		p.EngagementScore = math.Round(rand.Float64()*100) / 10
		posts[i] = p
	}
	return posts, nil
}

// GenerateComment returns a literal comment naming the tone and sample count.
func (m *Mock) GenerateComment(ctx context.Context, req CommentRequest) (settings.GeneratedComment, error) {
	if err := m.wait(ctx); err != nil {
		return settings.GeneratedComment{}, err
	}

	return settings.GeneratedComment{
		ID:        uuid.NewString(),
		PostID:    req.PostID,
		Text:      fmt.Sprintf("This is a %s comment generated using %d writing samples. Great insights on this topic!", req.Tone, len(req.Samples)),
		Tone:      req.Tone,
		Status:    settings.CommentPending,
		Timestamp: m.now(),
	}, nil
}

func (m *Mock) PostComment(ctx context.Context, id string) (bool, error) {
	if err := m.wait(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Mock) ScheduleComment(ctx context.Context, id string, at time.Time) (bool, error) {
	if err := m.wait(ctx); err != nil {
		return false, err
	}
	return true, nil
}
