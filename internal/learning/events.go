/*
Package learning tracks comment activity and ranks tones with an ε-greedy bandit.

Activity (generated, posted and scheduled comments) is recorded in the
background. Tones are scored by frequency, recency and rating, and the bandit
picks the tone for a comment when the caller does not name one.
*/
package learning

import (
	"time"

	"github.com/growthkit/linkedin-assistant/internal/storage"
)

// KnownTones are the tones the bandit chooses between.
var KnownTones = []string{"Professional", "Casual", "Enthusiastic", "Thoughtful", "Witty"}

// Event is one comment lifecycle event.
type Event struct {
	// Action is storage.ActionGenerated, ActionPosted or ActionScheduled.
	Action string

	Tone   string
	PostID string

	// ContextHash is the SHA256 hash of the post text for privacy.
	ContextHash string

	Timestamp time.Time

	// Rating is the user's feedback rating (1-5), or 0 if not rated.
	Rating int
}

// NewEvent creates an event stamped with the current time.
func NewEvent(action, tone, postID, postContent string) Event {
	return Event{
		Action:      action,
		Tone:        tone,
		PostID:      postID,
		ContextHash: storage.HashContext(postContent),
		Timestamp:   time.Now(),
	}
}

// ToStorage converts a learning event to the storage model.
func (e Event) ToStorage() storage.ActivityEvent {
	return storage.ActivityEvent{
		Action:      e.Action,
		Tone:        e.Tone,
		PostID:      e.PostID,
		ContextHash: e.ContextHash,
		Timestamp:   e.Timestamp,
		Rating:      e.Rating,
	}
}
