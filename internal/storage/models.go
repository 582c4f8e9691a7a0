/*
Package storage provides data models for the activity history.
*/
package storage

import "time"

// Activity actions recorded by the learning tracker.
const (
	ActionGenerated = "generated"
	ActionPosted    = "posted"
	ActionScheduled = "scheduled"
)

// ActivityEvent represents one comment lifecycle event.
type ActivityEvent struct {
	// Action is generated, posted or scheduled.
	Action string `json:"action"`

	// Tone is the tone the comment was written in.
	Tone string `json:"tone"`

	// PostID is the LinkedIn post the comment belongs to.
	PostID string `json:"post_id"`

	// ContextHash is the SHA256 hash of the post text.
	ContextHash string `json:"context_hash"`

	Timestamp time.Time `json:"timestamp"`

	// Rating is the user's feedback rating (1-5), or 0 if not rated.
	Rating int `json:"rating"`
}
