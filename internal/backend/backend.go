/*
Package backend provides the post and comment operations behind the assistant.

Two interchangeable variants exist, selected by backend.mode in the config:
a mock that returns canned data after an artificial delay, and an HTTP client
for the real REST endpoint.
*/
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/growthkit/linkedin-assistant/internal/config"
	"github.com/growthkit/linkedin-assistant/internal/generator"
	"github.com/growthkit/linkedin-assistant/internal/settings"
)

// ErrMissingAPIKey is returned by the http backend when no API key is stored.
var ErrMissingAPIKey = errors.New("linkedin api key is not configured")

// APIError is a non-2xx response from the remote endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Body)
}

// FeedPost is a post from the user's feed.
type FeedPost struct {
	ID              string    `json:"id"`
	Author          string    `json:"author"`
	Content         string    `json:"content"`
	URL             string    `json:"url,omitempty"`
	PublishedAt     time.Time `json:"publishedAt"`
	EngagementScore float64   `json:"engagementScore"`
}

// CommentRequest is everything needed to write one comment.
type CommentRequest struct {
	PostID      string
	PostContent string
	Tone        string
	Length      string
	Samples     []settings.WritingSample
}

// Backend is the capability set shared by both variants.
type Backend interface {
	FetchPosts(ctx context.Context, limit int) ([]FeedPost, error)
	GenerateComment(ctx context.Context, req CommentRequest) (settings.GeneratedComment, error)
	PostComment(ctx context.Context, id string) (bool, error)
	ScheduleComment(ctx context.Context, id string, at time.Time) (bool, error)
}

// New builds the backend selected by cfg.Mode. apiKey is consulted on every
// http request so a key saved at runtime takes effect immediately. gen may be nil.
func New(cfg config.BackendConfig, apiKey func() string, gen generator.Generator, logger *zap.Logger) (Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Mode {
	case config.BackendMock:
		return NewMock(time.Duration(cfg.MockDelayMillis) * time.Millisecond), nil
	case config.BackendHTTP:
		return NewHTTP(cfg, apiKey, gen, logger)
	default:
		return nil, fmt.Errorf("unknown backend mode %q", cfg.Mode)
	}
}

func sampleContents(samples []settings.WritingSample) []string {
	out := make([]string, 0, len(samples))
	for _, s := range samples {
		out = append(out, s.Content)
	}
	return out
}
