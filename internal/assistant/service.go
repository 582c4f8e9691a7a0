/*
Package assistant composes the settings store, the backend, the sample index
and the learning tracker into the operations the CLI and the HTTP API expose.

Generated comments live only in the service's session; they are never written
to the settings store.
*/
package assistant

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/growthkit/linkedin-assistant/internal/backend"
	"github.com/growthkit/linkedin-assistant/internal/learning"
	"github.com/growthkit/linkedin-assistant/internal/metrics"
	"github.com/growthkit/linkedin-assistant/internal/search"
	"github.com/growthkit/linkedin-assistant/internal/settings"
	"github.com/growthkit/linkedin-assistant/internal/storage"
)

const (
	// promptSamples is how many writing samples accompany one comment request.
	promptSamples = 3

	// generateConcurrency bounds GenerateComments fan-out.
	generateConcurrency = 4
)

// Deps are the collaborators of a Service. Store and Backend are required.
type Deps struct {
	Store   *settings.Store
	Backend backend.Backend

	// Index selects relevant samples; without it the most recent are used.
	Index *search.Indexer

	// Tracker and History enable learning. Either may be nil.
	Tracker *learning.Tracker
	History learning.HistoryReader
	Bandit  *learning.EpsilonGreedy

	Logger *zap.Logger
}

// Service is safe for concurrent use.
type Service struct {
	store   *settings.Store
	backend backend.Backend
	index   *search.Indexer
	tracker *learning.Tracker
	history learning.HistoryReader
	bandit  *learning.EpsilonGreedy
	logger  *zap.Logger

	mu       sync.RWMutex
	comments map[string]settings.GeneratedComment
	order    []string
	posts    map[string]backend.FeedPost
}

// New builds a service and indexes the stored writing samples.
func New(d Deps) (*Service, error) {
	if d.Store == nil {
		return nil, errors.New("assistant: settings store is required")
	}
	if d.Backend == nil {
		return nil, errors.New("assistant: backend is required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Bandit == nil {
		d.Bandit = learning.NewEpsilonGreedy()
	}

	s := &Service{
		store:    d.Store,
		backend:  d.Backend,
		index:    d.Index,
		tracker:  d.Tracker,
		history:  d.History,
		bandit:   d.Bandit,
		logger:   d.Logger,
		comments: make(map[string]settings.GeneratedComment),
		posts:    make(map[string]backend.FeedPost),
	}

	s.syncTracker(s.store.GetSetting().EnableLearning)

	samples := s.store.GetWritingSamples()
	if s.index != nil {
		if err := s.index.IndexSamples(samples); err != nil {
			return nil, err
		}
	}
	metrics.SetWritingSamples(len(samples))

	return s, nil
}

// Close stops the tracker and releases the index.
func (s *Service) Close() error {
	if s.tracker != nil {
		s.tracker.Stop()
	}
	if s.index != nil {
		return s.index.Close()
	}
	return nil
}

// Settings returns the current AI settings.
func (s *Service) Settings() settings.AISettings {
	return s.store.GetSetting()
}

// SaveSettings replaces the AI settings.
func (s *Service) SaveSettings(ctx context.Context, v settings.AISettings) error {
	if err := s.store.SaveSetting(ctx, v); err != nil {
		return err
	}
	s.syncTracker(v.EnableLearning)
	return nil
}

// syncTracker keeps the tracker's switch in line with EnableLearning.
func (s *Service) syncTracker(enabled bool) {
	if s.tracker == nil {
		return
	}
	if enabled {
		s.tracker.Enable()
	} else {
		s.tracker.Disable()
	}
}

// APIKey returns the stored API key.
func (s *Service) APIKey() string {
	return s.store.APIKey()
}

// HasAPIKey reports whether an API key is stored.
func (s *Service) HasAPIKey() bool {
	return s.store.HasAPIKey()
}

// SetAPIKey stores or, when key is empty, clears the API key.
func (s *Service) SetAPIKey(ctx context.Context, key string) error {
	return s.store.SetAPIKey(ctx, key)
}

// Samples returns the writing samples in insertion order.
func (s *Service) Samples() []settings.WritingSample {
	return s.store.GetWritingSamples()
}

// AddSample stores a writing sample and indexes it.
func (s *Service) AddSample(ctx context.Context, content string) (settings.WritingSample, error) {
	sample, err := s.store.AddWritingSample(ctx, content)
	if err != nil {
		return settings.WritingSample{}, err
	}
	if s.index != nil {
		if err := s.index.Add(sample); err != nil {
			s.logger.Warn("failed to index writing sample", zap.String("id", sample.ID), zap.Error(err))
		}
	}
	metrics.SetWritingSamples(len(s.store.GetWritingSamples()))
	return sample, nil
}

// DeleteSample removes a writing sample, reporting whether it existed.
func (s *Service) DeleteSample(ctx context.Context, id string) (bool, error) {
	removed, err := s.store.DeleteWritingSample(ctx, id)
	if err != nil || !removed {
		return removed, err
	}
	if s.index != nil {
		if err := s.index.Remove(id); err != nil {
			s.logger.Warn("failed to unindex writing sample", zap.String("id", id), zap.Error(err))
		}
	}
	metrics.SetWritingSamples(len(s.store.GetWritingSamples()))
	return true, nil
}

// SearchSamples runs a full-text search over writing samples.
func (s *Service) SearchSamples(query string, limit int) ([]search.Result, error) {
	if s.index == nil {
		return []search.Result{}, nil
	}
	return s.index.Search(query, limit)
}

// ScheduledPosts returns the scheduled posts.
func (s *Service) ScheduledPosts() []settings.ScheduledPost {
	return s.store.GetScheduledPosts()
}

// AddScheduledPost queues a post.
func (s *Service) AddScheduledPost(ctx context.Context, in settings.ScheduledPostInput) (settings.ScheduledPost, error) {
	return s.store.AddScheduledPost(ctx, in)
}

// UpdateScheduledPostStatus sets a scheduled post's status.
func (s *Service) UpdateScheduledPostStatus(ctx context.Context, id, status string) (bool, error) {
	return s.store.UpdateScheduledPostStatus(ctx, id, status)
}

// DeleteScheduledPost removes a scheduled post.
func (s *Service) DeleteScheduledPost(ctx context.Context, id string) (bool, error) {
	return s.store.DeleteScheduledPost(ctx, id)
}

// FetchPosts loads the feed and remembers the posts so comments can be
// generated for them by id.
func (s *Service) FetchPosts(ctx context.Context, limit int) ([]backend.FeedPost, error) {
	start := time.Now()
	posts, err := s.backend.FetchPosts(ctx, limit)
	metrics.RecordBackend("fetch_posts", err, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for _, p := range posts {
		s.posts[p.ID] = p
	}
	s.mu.Unlock()

	return posts, nil
}

// GenerateComment writes a comment for a post by id. The post text is known
// only if the post came from an earlier FetchPosts.
func (s *Service) GenerateComment(ctx context.Context, postID, tone string) (settings.GeneratedComment, error) {
	s.mu.RLock()
	post, ok := s.posts[postID]
	s.mu.RUnlock()
	if !ok {
		post = backend.FeedPost{ID: postID}
	}
	return s.GenerateCommentFor(ctx, post, tone)
}

// GenerateCommentFor writes a comment for post. An empty tone is chosen by
// the bandit when learning is on, and is the preferred tone otherwise.
func (s *Service) GenerateCommentFor(ctx context.Context, post backend.FeedPost, tone string) (settings.GeneratedComment, error) {
	prefs := s.store.GetSetting()
	tone = s.resolveTone(tone, prefs)

	req := backend.CommentRequest{
		PostID:      post.ID,
		PostContent: post.Content,
		Tone:        tone,
		Length:      prefs.PreferredLength,
		Samples:     s.selectSamples(post.Content),
	}

	start := time.Now()
	comment, err := s.backend.GenerateComment(ctx, req)
	metrics.RecordBackend("generate_comment", err, time.Since(start).Seconds())
	if err != nil {
		return settings.GeneratedComment{}, err
	}

	s.remember(comment)
	s.track(prefs, storage.ActionGenerated, comment.Tone, post.ID, post.Content)
	return comment, nil
}

// GenerateComments writes one comment per post concurrently. Results keep the
// order of posts. The first failure cancels the remaining generations.
func (s *Service) GenerateComments(ctx context.Context, posts []backend.FeedPost, tone string) ([]settings.GeneratedComment, error) {
	results := make([]settings.GeneratedComment, len(posts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(generateConcurrency)

	for i, post := range posts {
		g.Go(func() error {
			c, err := s.GenerateCommentFor(gctx, post, tone)
			if err != nil {
				return err
			}
			results[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// PostComment publishes a comment. On success the session copy, if any,
// moves to posted.
func (s *Service) PostComment(ctx context.Context, id string) (bool, error) {
	start := time.Now()
	ok, err := s.backend.PostComment(ctx, id)
	metrics.RecordBackend("post_comment", err, time.Since(start).Seconds())
	if err != nil || !ok {
		return ok, err
	}

	if c, found := s.setStatus(id, settings.CommentPosted, nil); found {
		s.track(s.store.GetSetting(), storage.ActionPosted, c.Tone, c.PostID, s.postContent(c.PostID))
	}
	return true, nil
}

// ScheduleComment schedules a comment for at. On success the session copy,
// if any, moves to scheduled.
func (s *Service) ScheduleComment(ctx context.Context, id string, at time.Time) (bool, error) {
	start := time.Now()
	ok, err := s.backend.ScheduleComment(ctx, id, at)
	metrics.RecordBackend("schedule_comment", err, time.Since(start).Seconds())
	if err != nil || !ok {
		return ok, err
	}

	if c, found := s.setStatus(id, settings.CommentScheduled, &at); found {
		s.track(s.store.GetSetting(), storage.ActionScheduled, c.Tone, c.PostID, s.postContent(c.PostID))
	}
	return true, nil
}

// Comments returns the session's comments in generation order.
func (s *Service) Comments() []settings.GeneratedComment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]settings.GeneratedComment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.comments[id])
	}
	return out
}

// Comment returns one session comment.
func (s *Service) Comment(id string) (settings.GeneratedComment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	return c, ok
}

// ToneRanking scores the known tones (plus the preferred one) from the
// activity history. It is empty when learning history is unavailable.
func (s *Service) ToneRanking() []learning.ToneScore {
	if s.history == nil {
		return []learning.ToneScore{}
	}
	return learning.RankTones(s.candidateTones(s.store.GetSetting()), s.history)
}

// NextTones returns the candidate tones in the order the bandit would try
// them next. Without history the candidates come back unranked.
func (s *Service) NextTones() []string {
	tones := s.candidateTones(s.store.GetSetting())
	if s.history == nil {
		return tones
	}
	return s.bandit.SelectRankedTones(tones, s.history)
}

func (s *Service) resolveTone(tone string, prefs settings.AISettings) string {
	if tone != "" {
		return tone
	}
	if prefs.EnableLearning && s.history != nil {
		if picked := s.bandit.SelectTone(s.candidateTones(prefs), s.history); picked != "" {
			return picked
		}
	}
	return prefs.PreferredTone
}

func (s *Service) candidateTones(prefs settings.AISettings) []string {
	tones := append([]string(nil), learning.KnownTones...)
	if prefs.PreferredTone == "" {
		return tones
	}
	for _, t := range tones {
		if t == prefs.PreferredTone {
			return tones
		}
	}
	return append(tones, prefs.PreferredTone)
}

// selectSamples returns the samples most relevant to content, falling back
// to the most recent ones.
func (s *Service) selectSamples(content string) []settings.WritingSample {
	all := s.store.GetWritingSamples()
	if len(all) == 0 {
		return nil
	}

	if s.index != nil && content != "" {
		hits, err := s.index.Search(content, promptSamples)
		if err != nil {
			s.logger.Warn("sample search failed", zap.Error(err))
		}
		if len(hits) > 0 {
			byID := make(map[string]settings.WritingSample, len(all))
			for _, sample := range all {
				byID[sample.ID] = sample
			}
			picked := make([]settings.WritingSample, 0, len(hits))
			for _, h := range hits {
				if sample, ok := byID[h.SampleID]; ok {
					picked = append(picked, sample)
				}
			}
			if len(picked) > 0 {
				return picked
			}
		}
	}

	recent := append([]settings.WritingSample(nil), all...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > promptSamples {
		recent = recent[:promptSamples]
	}
	return recent
}

func (s *Service) remember(c settings.GeneratedComment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.comments[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.comments[c.ID] = c
}

func (s *Service) setStatus(id, status string, at *time.Time) (settings.GeneratedComment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return settings.GeneratedComment{}, false
	}
	c.Status = status
	if at != nil {
		t := *at
		c.ScheduledTime = &t
	}
	s.comments[id] = c
	return c, true
}

func (s *Service) postContent(postID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts[postID].Content
}

func (s *Service) track(prefs settings.AISettings, action, tone, postID, content string) {
	metrics.RecordComment(action, tone)
	if s.tracker == nil || !prefs.EnableLearning {
		return
	}
	s.tracker.Track(learning.NewEvent(action, tone, postID, content))
}
