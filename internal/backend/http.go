package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/growthkit/linkedin-assistant/internal/config"
	"github.com/growthkit/linkedin-assistant/internal/generator"
	"github.com/growthkit/linkedin-assistant/internal/settings"
	"github.com/growthkit/linkedin-assistant/internal/version"
)

// maxErrorBody caps how much of an error response is kept in APIError.
const maxErrorBody = 4 << 10

// HTTP talks to the remote REST endpoint.
type HTTP struct {
	baseURL   string
	client    *http.Client
	limiter   *rate.Limiter
	apiKey    func() string
	generator generator.Generator
	logger    *zap.Logger
	now       func() time.Time
}

var _ Backend = (*HTTP)(nil)

// NewHTTP builds an http backend from cfg.
func NewHTTP(cfg config.BackendConfig, apiKey func() string, gen generator.Generator, logger *zap.Logger) (*HTTP, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid backend baseURL %q: %w", cfg.BaseURL, err)
	}
	if apiKey == nil {
		apiKey = func() string { return "" }
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &HTTP{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(limit, 1),
		apiKey:    apiKey,
		generator: gen,
		logger:    logger,
		now:       time.Now,
	}, nil
}

type postsResponse struct {
	Posts []FeedPost `json:"posts"`
}

type generateRequest struct {
	PostID      string   `json:"postId"`
	PostContent string   `json:"postContent,omitempty"`
	Tone        string   `json:"tone"`
	Length      string   `json:"length,omitempty"`
	Samples     []string `json:"samples"`
}

type scheduleRequest struct {
	ScheduledTime string `json:"scheduledTime"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (h *HTTP) FetchPosts(ctx context.Context, limit int) ([]FeedPost, error) {
	path := "/posts"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp postsResponse
	if err := h.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Posts == nil {
		resp.Posts = []FeedPost{}
	}
	return resp.Posts, nil
}

// GenerateComment writes the comment with the local generator when one is
// configured, otherwise the remote endpoint writes it.
func (h *HTTP) GenerateComment(ctx context.Context, req CommentRequest) (settings.GeneratedComment, error) {
	if h.apiKey() == "" {
		return settings.GeneratedComment{}, ErrMissingAPIKey
	}

	if h.generator != nil {
		prompt := generator.BuildCommentPrompt(generator.CommentSpec{
			Tone:        req.Tone,
			Length:      req.Length,
			PostContent: req.PostContent,
			Samples:     sampleContents(req.Samples),
		})
		text, err := h.generator.Complete(ctx, prompt)
		if err != nil {
			return settings.GeneratedComment{}, err
		}
		return h.fill(settings.GeneratedComment{Text: text}, req), nil
	}

	body := generateRequest{
		PostID:      req.PostID,
		PostContent: req.PostContent,
		Tone:        req.Tone,
		Length:      req.Length,
		Samples:     sampleContents(req.Samples),
	}
	var c settings.GeneratedComment
	if err := h.do(ctx, http.MethodPost, "/comments/generate", body, &c); err != nil {
		return settings.GeneratedComment{}, err
	}
	return h.fill(c, req), nil
}

// fill supplies fields the endpoint may leave out.
func (h *HTTP) fill(c settings.GeneratedComment, req CommentRequest) settings.GeneratedComment {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.PostID == "" {
		c.PostID = req.PostID
	}
	if c.Tone == "" {
		c.Tone = req.Tone
	}
	if c.Status == "" {
		c.Status = settings.CommentPending
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = h.now()
	}
	return c
}

func (h *HTTP) PostComment(ctx context.Context, id string) (bool, error) {
	var resp successResponse
	if err := h.do(ctx, http.MethodPost, "/comments/"+url.PathEscape(id)+"/post", struct{}{}, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (h *HTTP) ScheduleComment(ctx context.Context, id string, at time.Time) (bool, error) {
	var resp successResponse
	body := scheduleRequest{ScheduledTime: at.UTC().Format(time.RFC3339)}
	if err := h.do(ctx, http.MethodPost, "/comments/"+url.PathEscape(id)+"/schedule", body, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (h *HTTP) do(ctx context.Context, method, path string, in, out any) error {
	key := h.apiKey()
	if key == "" {
		return ErrMissingAPIKey
	}
	if err := h.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	h.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
