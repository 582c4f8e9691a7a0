package assistant

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthkit/linkedin-assistant/internal/backend"
	"github.com/growthkit/linkedin-assistant/internal/learning"
	"github.com/growthkit/linkedin-assistant/internal/search"
	"github.com/growthkit/linkedin-assistant/internal/settings"
	"github.com/growthkit/linkedin-assistant/internal/storage"
)

// recordingBackend wraps the mock and remembers requests.
type recordingBackend struct {
	*backend.Mock
	mu       sync.Mutex
	requests []backend.CommentRequest
	failOn   string
	postOK   bool
}

func (r *recordingBackend) GenerateComment(ctx context.Context, req backend.CommentRequest) (settings.GeneratedComment, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()
	if req.PostID == r.failOn {
		return settings.GeneratedComment{}, errors.New("generation failed")
	}
	return r.Mock.GenerateComment(ctx, req)
}

func (r *recordingBackend) PostComment(ctx context.Context, id string) (bool, error) {
	if !r.postOK {
		return false, nil
	}
	return r.Mock.PostComment(ctx, id)
}

func (r *recordingBackend) lastRequest() backend.CommentRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1]
}

type fixture struct {
	svc     *Service
	store   *settings.Store
	backend *recordingBackend
	history *storage.SQLiteStore
}

func newFixture(t *testing.T, withLearning bool) *fixture {
	t.Helper()
	dir := t.TempDir()

	kv, err := storage.NewFileStore(filepath.Join(dir, "storage.json"))
	require.NoError(t, err)
	store, err := settings.Open(context.Background(), kv)
	require.NoError(t, err)

	index, err := search.NewIndexer(nil)
	require.NoError(t, err)

	be := &recordingBackend{Mock: backend.NewMock(0), postOK: true}
	deps := Deps{Store: store, Backend: be, Index: index, Bandit: learning.NewEpsilonGreedyWithSeed(1)}

	f := &fixture{store: store, backend: be}
	if withLearning {
		f.history = storage.NewSQLiteStore(filepath.Join(dir, "history.db"), nil)
		deps.Tracker = learning.NewTracker(f.history, nil)
		deps.History = f.history
	}

	svc, err := New(deps)
	require.NoError(t, err)
	f.svc = svc
	t.Cleanup(func() {
		svc.Close()
		if f.history != nil {
			f.history.Close()
		}
	})
	return f
}

func TestNewRequiresDeps(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)
}

func TestGenerateCommentExplicitTone(t *testing.T) {
	f := newFixture(t, false)

	c, err := f.svc.GenerateComment(context.Background(), "p1", "Casual")
	require.NoError(t, err)
	assert.Equal(t, "Casual", c.Tone)
	assert.Equal(t, "p1", c.PostID)
	assert.Equal(t, settings.CommentPending, c.Status)

	got, ok := f.svc.Comment(c.ID)
	require.True(t, ok)
	assert.Equal(t, c, got)
}

func TestGenerateCommentDefaultsToPreferredTone(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	require.NoError(t, f.svc.SaveSettings(ctx, settings.AISettings{PreferredTone: "Witty", PreferredLength: "long"}))

	c, err := f.svc.GenerateComment(ctx, "p1", "")
	require.NoError(t, err)
	assert.Equal(t, "Witty", c.Tone)
	assert.Equal(t, "long", f.backend.lastRequest().Length)
}

func TestGenerateCommentLearningPicksKnownTone(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.svc.SaveSettings(ctx, settings.AISettings{EnableLearning: true, PreferredTone: "Professional", PreferredLength: "medium"}))

	c, err := f.svc.GenerateComment(ctx, "p1", "")
	require.NoError(t, err)
	assert.Contains(t, learning.KnownTones, c.Tone)
}

func TestGenerateCommentUsesRelevantSamples(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	_, err := f.svc.AddSample(ctx, "Leadership means listening first.")
	require.NoError(t, err)
	_, err = f.svc.AddSample(ctx, "Kubernetes upgrades are never boring.")
	require.NoError(t, err)

	posts, err := f.svc.FetchPosts(ctx, 0)
	require.NoError(t, err)

	// post-4 talks about leadership
	_, err = f.svc.GenerateComment(ctx, "post-4", "Thoughtful")
	require.NoError(t, err)

	req := f.backend.lastRequest()
	assert.NotEmpty(t, req.PostContent)
	assert.Equal(t, posts[3].Content, req.PostContent)
	require.NotEmpty(t, req.Samples)
	assert.Equal(t, "Leadership means listening first.", req.Samples[0].Content)
}

func TestGenerateCommentFallsBackToRecentSamples(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	for _, content := range []string{"one", "two", "three", "four"} {
		_, err := f.svc.AddSample(ctx, content)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	// Unknown post: no text to search with
	_, err := f.svc.GenerateComment(ctx, "unknown-post", "Casual")
	require.NoError(t, err)

	req := f.backend.lastRequest()
	require.Len(t, req.Samples, 3)
	assert.Equal(t, "four", req.Samples[0].Content)
	assert.Equal(t, "two", req.Samples[2].Content)
}

func TestGenerateCommentsKeepsOrder(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	posts, err := f.svc.FetchPosts(ctx, 0)
	require.NoError(t, err)

	comments, err := f.svc.GenerateComments(ctx, posts, "Enthusiastic")
	require.NoError(t, err)
	require.Len(t, comments, len(posts))
	for i, c := range comments {
		assert.Equal(t, posts[i].ID, c.PostID)
		assert.Equal(t, "Enthusiastic", c.Tone)
	}
	assert.Len(t, f.svc.Comments(), len(posts))
}

func TestGenerateCommentsSamePostResolvesIndependently(t *testing.T) {
	f := newFixture(t, false)
	post := backend.FeedPost{ID: "dup", Content: "same post"}

	comments, err := f.svc.GenerateComments(context.Background(), []backend.FeedPost{post, post}, "Casual")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.NotEqual(t, comments[0].ID, comments[1].ID)
}

func TestGenerateCommentsError(t *testing.T) {
	f := newFixture(t, false)
	f.backend.failOn = "bad"

	_, err := f.svc.GenerateComments(context.Background(), []backend.FeedPost{{ID: "ok"}, {ID: "bad"}}, "Casual")
	assert.Error(t, err)
}

func TestPostAndScheduleUpdateSession(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	a, err := f.svc.GenerateComment(ctx, "p1", "Casual")
	require.NoError(t, err)
	b, err := f.svc.GenerateComment(ctx, "p2", "Casual")
	require.NoError(t, err)

	ok, err := f.svc.PostComment(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, _ := f.svc.Comment(a.ID)
	assert.Equal(t, settings.CommentPosted, got.Status)

	at := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	ok, err = f.svc.ScheduleComment(ctx, b.ID, at)
	require.NoError(t, err)
	assert.True(t, ok)
	got, _ = f.svc.Comment(b.ID)
	assert.Equal(t, settings.CommentScheduled, got.Status)
	require.NotNil(t, got.ScheduledTime)
	assert.True(t, at.Equal(*got.ScheduledTime))

	// Ids outside the session still reach the backend.
	ok, err = f.svc.PostComment(ctx, "remote-only")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPostCommentRejectedKeepsStatus(t *testing.T) {
	f := newFixture(t, false)
	f.backend.postOK = false
	ctx := context.Background()

	c, err := f.svc.GenerateComment(ctx, "p1", "Casual")
	require.NoError(t, err)

	ok, err := f.svc.PostComment(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	got, _ := f.svc.Comment(c.ID)
	assert.Equal(t, settings.CommentPending, got.Status)
}

func TestLearningTracksActivity(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.svc.SaveSettings(ctx, settings.AISettings{EnableLearning: true, PreferredTone: "Professional"}))

	c, err := f.svc.GenerateComment(ctx, "p1", "Witty")
	require.NoError(t, err)
	_, err = f.svc.PostComment(ctx, c.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Close())

	events, err := f.history.GetActivityHistory("Witty", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, events, 2)

	ranking := f.svc.ToneRanking()
	require.NotEmpty(t, ranking)
	assert.Equal(t, "Witty", ranking[0].Tone)
}

func TestLearningDisabledSkipsTracking(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.svc.GenerateComment(ctx, "p1", "Casual")
	require.NoError(t, err)
	require.NoError(t, f.svc.Close())

	events, err := f.history.GetActivityHistory("Casual", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSaveSettingsTogglesTracker(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	assert.False(t, f.svc.tracker.IsEnabled(), "learning is off by default")

	require.NoError(t, f.svc.SaveSettings(ctx, settings.AISettings{EnableLearning: true}))
	assert.True(t, f.svc.tracker.IsEnabled())

	require.NoError(t, f.svc.SaveSettings(ctx, settings.AISettings{EnableLearning: false}))
	assert.False(t, f.svc.tracker.IsEnabled())

	// A disabled tracker drops events even when called directly.
	f.svc.tracker.Track(learning.NewEvent(storage.ActionGenerated, "Witty", "p1", "text"))
	assert.Zero(t, f.svc.tracker.QueueLen())
}

func TestNextTonesRanksByHistory(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.svc.bandit.SetEpsilon(0)
	require.NoError(t, f.svc.SaveSettings(ctx, settings.AISettings{EnableLearning: true}))

	_, err := f.svc.GenerateComment(ctx, "p1", "Thoughtful")
	require.NoError(t, err)
	require.NoError(t, f.svc.Close())

	next := f.svc.NextTones()
	assert.ElementsMatch(t, learning.KnownTones, next)
	assert.Equal(t, "Thoughtful", next[0])
}

func TestNextTonesWithoutHistory(t *testing.T) {
	f := newFixture(t, false)
	assert.ElementsMatch(t, learning.KnownTones, f.svc.NextTones())
}

func TestSamplesStayIndexed(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	s, err := f.svc.AddSample(ctx, "Remote teams thrive on written rituals.")
	require.NoError(t, err)

	hits, err := f.svc.SearchSamples("rituals", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, s.ID, hits[0].SampleID)

	removed, err := f.svc.DeleteSample(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	hits, err = f.svc.SearchSamples("rituals", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	removed, err = f.svc.DeleteSample(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestExistingSamplesIndexedOnStart(t *testing.T) {
	dir := t.TempDir()
	kv, err := storage.NewFileStore(filepath.Join(dir, "storage.json"))
	require.NoError(t, err)
	store, err := settings.Open(context.Background(), kv)
	require.NoError(t, err)
	_, err = store.AddWritingSample(context.Background(), "Pricing pages deserve more love.")
	require.NoError(t, err)

	index, err := search.NewIndexer(nil)
	require.NoError(t, err)
	svc, err := New(Deps{Store: store, Backend: backend.NewMock(0), Index: index})
	require.NoError(t, err)
	defer svc.Close()

	hits, err := svc.SearchSamples("pricing", 5)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestPassThroughs(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	require.NoError(t, f.svc.SetAPIKey(ctx, "k"))
	assert.True(t, f.svc.HasAPIKey())
	assert.Equal(t, "k", f.svc.APIKey())

	post, err := f.svc.AddScheduledPost(ctx, settings.ScheduledPostInput{Content: "hi", ScheduledTime: time.Now()})
	require.NoError(t, err)
	ok, err := f.svc.UpdateScheduledPostStatus(ctx, post.ID, settings.PostFailed)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, settings.PostFailed, f.svc.ScheduledPosts()[0].Status)
	ok, err = f.svc.DeleteScheduledPost(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
