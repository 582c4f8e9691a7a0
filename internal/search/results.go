/*
Package search indexes writing samples for full-text retrieval.

The index is in-memory and rebuilt from the settings store at start-up. The
assistant uses it to pick the samples closest to a post's wording as style
references for a generated comment.
*/
package search

// Result is a single sample hit with its relevance score.
type Result struct {
	SampleID string  `json:"id"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
}
