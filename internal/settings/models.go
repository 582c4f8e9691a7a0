package settings

import "time"

// Durable keys. The names match what the browser build wrote to localStorage
// so exported data stays interchangeable.
const (
	KeyAPIKey         = "linkedin_api_key"
	KeyWritingSamples = "linkedin_writing_samples"
	KeyAISettings     = "linkedin_ai_settings"
	KeyScheduledPosts = "linkedin_scheduled_posts"
)

// Comment lengths accepted by AISettings.PreferredLength.
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// GeneratedComment statuses.
const (
	CommentPending   = "pending"
	CommentPosted    = "posted"
	CommentScheduled = "scheduled"
)

// ScheduledPost statuses.
const (
	PostScheduled = "scheduled"
	PostPosted    = "posted"
	PostFailed    = "failed"
)

// WritingSample is a user-supplied text fragment used as a style reference.
type WritingSample struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// AISettings is the single live AI preference record.
type AISettings struct {
	EnableLearning  bool   `json:"enableLearning"`
	PreferredTone   string `json:"preferredTone"`
	PreferredLength string `json:"preferredLength"`
}

// DefaultAISettings returns the settings used until the user saves their own.
func DefaultAISettings() AISettings {
	return AISettings{
		EnableLearning:  false,
		PreferredTone:   "Professional",
		PreferredLength: LengthMedium,
	}
}

// GeneratedComment is a comment draft. It is never persisted.
type GeneratedComment struct {
	ID            string     `json:"id"`
	PostID        string     `json:"postId"`
	Text          string     `json:"text"`
	Tone          string     `json:"tone"`
	Status        string     `json:"status"`
	Timestamp     time.Time  `json:"timestamp"`
	ScheduledTime *time.Time `json:"scheduledTime,omitempty"`
}

// Prediction is an illustrative engagement estimate attached to a scheduled post.
type Prediction struct {
	EngagementScore float64 `json:"engagementScore"`
	EstimatedReach  int     `json:"estimatedReach"`
	BestTime        string  `json:"bestTime,omitempty"`
}

// ScheduledPost is a post queued for later publication.
type ScheduledPost struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	// ScheduledTime is an RFC 3339 timestamp.
	ScheduledTime string      `json:"scheduledTime"`
	Status        string      `json:"status"`
	Prediction    *Prediction `json:"prediction,omitempty"`
}

// ScheduledPostInput carries the caller-supplied fields of a new scheduled post.
type ScheduledPostInput struct {
	Content       string
	ScheduledTime time.Time
	Prediction    *Prediction
}
