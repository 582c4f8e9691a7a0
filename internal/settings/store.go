/*
Package settings holds the user's persistent preferences: the API key, AI
settings, writing samples and the scheduled-post list.

A Store is built once at start-up over a storage.KV medium and passed to every
surface that needs it. Reads are served from memory. Every mutation writes the
new whole value to the medium first and only then replaces the in-memory copy,
so a failed write leaves the store unchanged.
*/
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/growthkit/linkedin-assistant/internal/storage"
	"go.uber.org/zap"
)

// Store is safe for concurrent use.
type Store struct {
	kv     storage.KV
	logger *zap.Logger
	now    func() time.Time

	mu        sync.RWMutex
	apiKey    string
	settings  AISettings
	samples   []WritingSample
	scheduled []ScheduledPost
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source for new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open loads every persisted key from kv. Missing keys fall back to defaults;
// a key holding malformed JSON is logged and treated as missing.
func Open(ctx context.Context, kv storage.KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:        kv,
		logger:    zap.NewNop(),
		now:       time.Now,
		settings:  DefaultAISettings(),
		samples:   []WritingSample{},
		scheduled: []ScheduledPost{},
	}
	for _, opt := range opts {
		opt(s)
	}

	key, err := kv.Get(ctx, KeyAPIKey)
	switch {
	case err == nil:
		s.apiKey = key
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to load %s: %w", KeyAPIKey, err)
	}

	settings := DefaultAISettings()
	if ok, err := s.loadJSON(ctx, KeyAISettings, &settings); err != nil {
		return nil, err
	} else if ok {
		s.settings = settings
	}

	var samples []WritingSample
	if ok, err := s.loadJSON(ctx, KeyWritingSamples, &samples); err != nil {
		return nil, err
	} else if ok && samples != nil {
		s.samples = samples
	}

	var scheduled []ScheduledPost
	if ok, err := s.loadJSON(ctx, KeyScheduledPosts, &scheduled); err != nil {
		return nil, err
	} else if ok && scheduled != nil {
		s.scheduled = scheduled
	}

	return s, nil
}

func (s *Store) loadJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn("ignoring malformed stored value", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *Store) persist(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// GetSetting returns the current AI settings, or the defaults if none were saved.
func (s *Store) GetSetting() AISettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SaveSetting replaces the AI settings wholesale. Values are not validated here.
func (s *Store) SaveSetting(ctx context.Context, settings AISettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, KeyAISettings, settings); err != nil {
		return err
	}
	s.settings = settings
	return nil
}

// APIKey returns the stored API key, or "" when none is set.
func (s *Store) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey
}

// HasAPIKey reports whether an API key is stored.
func (s *Store) HasAPIKey() bool {
	return s.APIKey() != ""
}

// SetAPIKey stores key as a raw string. An empty key removes the entry.
func (s *Store) SetAPIKey(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if key == "" {
		err = s.kv.Delete(ctx, KeyAPIKey)
	} else {
		err = s.kv.Set(ctx, KeyAPIKey, key)
	}
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyAPIKey, err)
	}
	s.apiKey = key
	return nil
}

// AddWritingSample appends a sample with a fresh id and the current time.
func (s *Store) AddWritingSample(ctx context.Context, content string) (WritingSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sample := WritingSample{
		ID:        uuid.NewString(),
		Content:   content,
		CreatedAt: s.now(),
	}

	next := make([]WritingSample, len(s.samples), len(s.samples)+1)
	copy(next, s.samples)
	next = append(next, sample)

	if err := s.persist(ctx, KeyWritingSamples, next); err != nil {
		return WritingSample{}, err
	}
	s.samples = next
	return sample, nil
}

// GetWritingSamples returns a copy of the samples in insertion order.
func (s *Store) GetWritingSamples() []WritingSample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]WritingSample, len(s.samples))
	copy(out, s.samples)
	return out
}

// DeleteWritingSample removes the sample with id. It returns false, and
// touches nothing, when no such sample exists.
func (s *Store) DeleteWritingSample(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, sample := range s.samples {
		if sample.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	next := make([]WritingSample, 0, len(s.samples)-1)
	next = append(next, s.samples[:idx]...)
	next = append(next, s.samples[idx+1:]...)

	if err := s.persist(ctx, KeyWritingSamples, next); err != nil {
		return false, err
	}
	s.samples = next
	return true, nil
}

// GetScheduledPosts returns a copy of the scheduled posts.
func (s *Store) GetScheduledPosts() []ScheduledPost {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ScheduledPost, len(s.scheduled))
	for i, p := range s.scheduled {
		p.Prediction = clonePrediction(p.Prediction)
		out[i] = p
	}
	return out
}

func clonePrediction(p *Prediction) *Prediction {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// AddScheduledPost appends a post in the scheduled state.
func (s *Store) AddScheduledPost(ctx context.Context, in ScheduledPostInput) (ScheduledPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := ScheduledPost{
		ID:            uuid.NewString(),
		Content:       in.Content,
		ScheduledTime: in.ScheduledTime.UTC().Format(time.RFC3339),
		Status:        PostScheduled,
	}
	post.Prediction = clonePrediction(in.Prediction)

	next := make([]ScheduledPost, len(s.scheduled), len(s.scheduled)+1)
	copy(next, s.scheduled)
	next = append(next, post)

	if err := s.persist(ctx, KeyScheduledPosts, next); err != nil {
		return ScheduledPost{}, err
	}
	s.scheduled = next
	post.Prediction = clonePrediction(post.Prediction)
	return post, nil
}

// UpdateScheduledPostStatus sets the status of the post with id. Transitions
// are not checked.
func (s *Store) UpdateScheduledPostStatus(ctx context.Context, id, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.scheduledIndex(id)
	if idx < 0 {
		return false, nil
	}

	next := make([]ScheduledPost, len(s.scheduled))
	copy(next, s.scheduled)
	next[idx].Status = status

	if err := s.persist(ctx, KeyScheduledPosts, next); err != nil {
		return false, err
	}
	s.scheduled = next
	return true, nil
}

// DeleteScheduledPost removes the post with id, returning whether it existed.
func (s *Store) DeleteScheduledPost(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.scheduledIndex(id)
	if idx < 0 {
		return false, nil
	}

	next := make([]ScheduledPost, 0, len(s.scheduled)-1)
	next = append(next, s.scheduled[:idx]...)
	next = append(next, s.scheduled[idx+1:]...)

	if err := s.persist(ctx, KeyScheduledPosts, next); err != nil {
		return false, err
	}
	s.scheduled = next
	return true, nil
}

// scheduledIndex must be called with mu held.
func (s *Store) scheduledIndex(id string) int {
	for i, p := range s.scheduled {
		if p.ID == id {
			return i
		}
	}
	return -1
}
