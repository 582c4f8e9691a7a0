package learning

import (
	"testing"
	"time"

	"github.com/growthkit/linkedin-assistant/internal/storage"
)

func TestNewEpsilonGreedy(t *testing.T) {
	bandit := NewEpsilonGreedy()

	if bandit == nil {
		t.Fatal("NewEpsilonGreedy returned nil")
	}
	if bandit.Epsilon() != epsilon {
		t.Errorf("expected Epsilon=%f, got %f", epsilon, bandit.Epsilon())
	}
}

func TestSelectTone_SingleTone(t *testing.T) {
	bandit := NewEpsilonGreedy()
	bandit.SetEpsilon(1.0)

	if result := bandit.SelectTone([]string{"Casual"}, newMockStore()); result != "Casual" {
		t.Errorf("expected 'Casual', got '%s'", result)
	}
}

func TestSelectTone_EmptyList(t *testing.T) {
	if result := NewEpsilonGreedy().SelectTone(nil, newMockStore()); result != "" {
		t.Errorf("expected empty string, got '%s'", result)
	}
}

func TestSelectTone_Exploitation(t *testing.T) {
	bandit := NewEpsilonGreedyWithSeed(42)
	bandit.SetEpsilon(0.0)

	store := newMockStore()
	now := time.Now()
	store.RecordActivity(storage.ActivityEvent{Tone: "Thoughtful", Timestamp: now.Add(-1 * time.Hour)})
	store.RecordActivity(storage.ActivityEvent{Tone: "Casual", Timestamp: now.Add(-24 * time.Hour)})

	// Thoughtful has the higher recency score
	for i := 0; i < 20; i++ {
		if result := bandit.SelectTone([]string{"Casual", "Thoughtful"}, store); result != "Thoughtful" {
			t.Fatalf("expected 'Thoughtful', got '%s'", result)
		}
	}
}

func TestSelectTone_Exploration(t *testing.T) {
	bandit := NewEpsilonGreedyWithSeed(7)
	bandit.SetEpsilon(1.0)

	selections := make(map[string]int)
	for i := 0; i < 200; i++ {
		selections[bandit.SelectTone(KnownTones, newMockStore())]++
	}

	for _, tone := range KnownTones {
		if selections[tone] == 0 {
			t.Errorf("tone '%s' was never selected (exploration failed)", tone)
		}
	}
}

func TestSelectRankedTones(t *testing.T) {
	bandit := NewEpsilonGreedyWithSeed(1)
	bandit.SetEpsilon(0.0)

	store := newMockStore()
	now := time.Now()
	store.RecordActivity(storage.ActivityEvent{Tone: "Witty", Timestamp: now, Rating: 5})
	store.RecordActivity(storage.ActivityEvent{Tone: "Witty", Timestamp: now, Rating: 5})
	store.RecordActivity(storage.ActivityEvent{Tone: "Casual", Timestamp: now.Add(-24 * time.Hour), Rating: 3})

	result := bandit.SelectRankedTones([]string{"Casual", "Witty"}, store)
	if len(result) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result))
	}
	if result[0] != "Witty" {
		t.Errorf("expected 'Witty' first, got '%s'", result[0])
	}
}

func TestSelectRankedTones_ExplorationKeepsAll(t *testing.T) {
	bandit := NewEpsilonGreedyWithSeed(3)
	bandit.SetEpsilon(1.0)

	result := bandit.SelectRankedTones(KnownTones, newMockStore())
	if len(result) != len(KnownTones) {
		t.Fatalf("expected %d tones, got %d", len(KnownTones), len(result))
	}
	seen := map[string]bool{}
	for _, tone := range result {
		seen[tone] = true
	}
	for _, tone := range KnownTones {
		if !seen[tone] {
			t.Errorf("shuffle lost tone %s", tone)
		}
	}
}

func TestSetEpsilon(t *testing.T) {
	bandit := NewEpsilonGreedy()

	bandit.SetEpsilon(0.3)
	if bandit.Epsilon() != 0.3 {
		t.Errorf("expected 0.3, got %f", bandit.Epsilon())
	}

	bandit.SetEpsilon(1.5)
	bandit.SetEpsilon(-0.1)
	if bandit.Epsilon() != 0.3 {
		t.Errorf("out of range values must be ignored, got %f", bandit.Epsilon())
	}
}
