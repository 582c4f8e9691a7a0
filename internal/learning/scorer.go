package learning

import (
	"math"
	"sort"
	"time"

	"github.com/growthkit/linkedin-assistant/internal/storage"
)

const (
	// frequencyWeight is the weight for frequency in the score (0.6 = 60%).
	frequencyWeight = 0.6

	// recencyWeight is the weight for recency in the score (0.3 = 30%).
	recencyWeight = 0.3

	// ratingWeight is the weight for rating in the score (0.1 = 10%).
	ratingWeight = 0.1

	// FrequencyWindow is the time window considered for frequency (7 days).
	FrequencyWindow = 7 * 24 * time.Hour

	// recencyHalfLife is the half-life for exponential decay (24 hours).
	recencyHalfLife = 24 * time.Hour

	// frequencyCap is the event count treated as maximal frequency.
	frequencyCap = 100.0

	// maxRating is the maximum possible rating (for normalization).
	maxRating = 5.0
)

// HistoryReader is the part of the activity store the scorer reads.
type HistoryReader interface {
	GetActivityHistory(tone string, since time.Time) ([]storage.ActivityEvent, error)
}

// Score calculates a tone's score from its activity history.
// Formula: 0.6*frequency + 0.3*recency + 0.1*rating
func Score(tone string, history []storage.ActivityEvent) float64 {
	if len(history) == 0 {
		return 0.0
	}

	freq := calculateFrequency(tone, history)
	recency := calculateRecency(history)
	rating := calculateRating(history)

	return frequencyWeight*freq + recencyWeight*recency + ratingWeight*rating
}

// calculateFrequency counts the tone's events in the last 7 days, normalized
// against frequencyCap and capped at 1.
func calculateFrequency(tone string, history []storage.ActivityEvent) float64 {
	count := 0
	windowStart := time.Now().Add(-FrequencyWindow)

	for _, event := range history {
		if event.Tone == tone && event.Timestamp.After(windowStart) {
			count++
		}
	}

	return math.Min(float64(count)/frequencyCap, 1.0)
}

// calculateRecency averages an exponential decay over event ages (normalized 0-1).
func calculateRecency(history []storage.ActivityEvent) float64 {
	if len(history) == 0 {
		return 0.0
	}

	now := time.Now()
	weightedSum := 0.0

	for _, event := range history {
		hoursSince := now.Sub(event.Timestamp).Hours()

		// weight = e^(-ln(2) * t / half_life): 0.5 after 24h, 0.25 after 48h
		weightedSum += math.Exp(-math.Ln2 * hoursSince / recencyHalfLife.Hours())
	}

	return math.Min(weightedSum/float64(len(history)), 1.0)
}

// calculateRating averages user ratings (normalized 0-1).
// Only considers rated events (rating > 0).
func calculateRating(history []storage.ActivityEvent) float64 {
	sum := 0
	count := 0

	for _, event := range history {
		if event.Rating > 0 {
			sum += event.Rating
			count++
		}
	}

	if count == 0 {
		// No ratings, neutral
		return 0.5
	}

	return float64(sum) / float64(count) / maxRating
}

// ToneScore is a tone with its score for ranking.
type ToneScore struct {
	Tone   string  `json:"tone"`
	Score  float64 `json:"score"`
	Events int     `json:"events"`
}

// RankTones scores tones over the last 7 days and sorts them by score,
// descending. Ties keep the input order. Tones whose history cannot be read
// are left out.
func RankTones(tones []string, history HistoryReader) []ToneScore {
	scores := make([]ToneScore, 0, len(tones))
	since := time.Now().Add(-FrequencyWindow)

	for _, tone := range tones {
		events, err := history.GetActivityHistory(tone, since)
		if err != nil {
			continue
		}

		scores = append(scores, ToneScore{
			Tone:   tone,
			Score:  Score(tone, events),
			Events: len(events),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores
}
