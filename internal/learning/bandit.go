package learning

import (
	"math/rand"
	"sync"
	"time"
)

const (
	// epsilon is the exploration rate (0.1 = 10% explore, 90% exploit).
	epsilon = 0.1
)

// EpsilonGreedy implements an ε-greedy multi-armed bandit for tone selection.
type EpsilonGreedy struct {
	epsilon float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEpsilonGreedy creates a bandit with the default exploration rate.
func NewEpsilonGreedy() *EpsilonGreedy {
	return NewEpsilonGreedyWithSeed(time.Now().UnixNano())
}

// NewEpsilonGreedyWithSeed creates a bandit with reproducible randomness.
func NewEpsilonGreedyWithSeed(seed int64) *EpsilonGreedy {
	return &EpsilonGreedy{
		epsilon: epsilon,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (e *EpsilonGreedy) float64() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()
}

func (e *EpsilonGreedy) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

// SelectTone selects a tone using the ε-greedy strategy.
// With probability ε, explore (random selection).
// With probability 1-ε, exploit (highest score).
func (e *EpsilonGreedy) SelectTone(tones []string, history HistoryReader) string {
	if len(tones) == 0 {
		return ""
	}

	if len(tones) == 1 {
		return tones[0]
	}

	if e.float64() < e.Epsilon() {
		return tones[e.intn(len(tones))]
	}

	scores := RankTones(tones, history)
	if len(scores) == 0 {
		return tones[e.intn(len(tones))]
	}

	return scores[0].Tone
}

// SelectRankedTones returns every tone, ranked by score when exploiting and
// shuffled when exploring.
func (e *EpsilonGreedy) SelectRankedTones(tones []string, history HistoryReader) []string {
	if len(tones) <= 1 {
		out := make([]string, len(tones))
		copy(out, tones)
		return out
	}

	if e.float64() < e.Epsilon() {
		shuffled := make([]string, len(tones))
		copy(shuffled, tones)

		// Fisher-Yates shuffle
		for i := len(shuffled) - 1; i > 0; i-- {
			j := e.intn(i + 1)
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		}

		return shuffled
	}

	scores := RankTones(tones, history)
	result := make([]string, len(scores))
	for i, score := range scores {
		result[i] = score.Tone
	}

	return result
}

// SetEpsilon updates the exploration rate. Values outside [0, 1] are ignored.
func (e *EpsilonGreedy) SetEpsilon(eps float64) {
	if eps < 0 || eps > 1 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.epsilon = eps
}

// Epsilon returns the current exploration rate.
func (e *EpsilonGreedy) Epsilon() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.epsilon
}
