package search

import (
	"testing"
	"time"

	"github.com/growthkit/linkedin-assistant/internal/settings"
)

func testSamples() []settings.WritingSample {
	now := time.Now()
	return []settings.WritingSample{
		{ID: "s1", Content: "Leadership is about listening before you speak.", CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "s2", Content: "Our cloud costs dropped once we measured them weekly.", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "s3", Content: "Hiring great engineers starts with a clear job description.", CreatedAt: now.Add(-1 * time.Hour)},
	}
}

func newTestIndexer(t *testing.T) *Indexer {
	t.Helper()
	indexer, err := NewIndexer(nil)
	if err != nil {
		t.Fatalf("failed to create indexer: %v", err)
	}
	t.Cleanup(func() { indexer.Close() })
	return indexer
}

func TestNewIndexer(t *testing.T) {
	indexer := newTestIndexer(t)

	count, err := indexer.Count()
	if err != nil {
		t.Fatalf("failed to get count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty index, got %d", count)
	}
}

func TestIndexSamples(t *testing.T) {
	indexer := newTestIndexer(t)

	if err := indexer.IndexSamples(testSamples()); err != nil {
		t.Fatalf("failed to index samples: %v", err)
	}

	count, err := indexer.Count()
	if err != nil {
		t.Fatalf("failed to get count: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 indexed samples, got %d", count)
	}

	// Reindexing replaces rather than appends
	if err := indexer.IndexSamples(testSamples()[:1]); err != nil {
		t.Fatalf("failed to reindex: %v", err)
	}
	count, _ = indexer.Count()
	if count != 1 {
		t.Errorf("expected 1 sample after reindex, got %d", count)
	}
}

func TestSearch(t *testing.T) {
	indexer := newTestIndexer(t)
	if err := indexer.IndexSamples(testSamples()); err != nil {
		t.Fatalf("failed to index samples: %v", err)
	}

	results, err := indexer.Search("what makes good leadership", 5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results for leadership query")
	}
	if results[0].SampleID != "s1" {
		t.Errorf("expected s1 as top result, got %s", results[0].SampleID)
	}
	if results[0].Content != testSamples()[0].Content {
		t.Errorf("expected stored content, got %q", results[0].Content)
	}
	if results[0].Score <= 0 {
		t.Errorf("expected positive score, got %f", results[0].Score)
	}
}

func TestSearchStemming(t *testing.T) {
	indexer := newTestIndexer(t)
	if err := indexer.IndexSamples(testSamples()); err != nil {
		t.Fatalf("failed to index samples: %v", err)
	}

	results, err := indexer.Search("hire engineer", 5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) == 0 || results[0].SampleID != "s3" {
		t.Errorf("expected stemmed match on s3, got %+v", results)
	}
}

func TestSearchBlankQuery(t *testing.T) {
	indexer := newTestIndexer(t)
	if err := indexer.IndexSamples(testSamples()); err != nil {
		t.Fatalf("failed to index samples: %v", err)
	}

	results, err := indexer.Search("   ", 5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestAddAndRemove(t *testing.T) {
	indexer := newTestIndexer(t)

	sample := settings.WritingSample{ID: "new", Content: "Remote teams need written rituals.", CreatedAt: time.Now()}
	if err := indexer.Add(sample); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	results, _ := indexer.Search("remote rituals", 5)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if err := indexer.Remove("new"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := indexer.Remove("never-indexed"); err != nil {
		t.Errorf("removing unknown id should not fail: %v", err)
	}

	results, _ = indexer.Search("remote rituals", 5)
	if len(results) != 0 {
		t.Errorf("expected no results after remove, got %d", len(results))
	}
}

func TestSearchLimit(t *testing.T) {
	indexer := newTestIndexer(t)
	samples := []settings.WritingSample{
		{ID: "a", Content: "growth growth"},
		{ID: "b", Content: "growth mindset"},
		{ID: "c", Content: "growth hacking"},
	}
	if err := indexer.IndexSamples(samples); err != nil {
		t.Fatalf("failed to index samples: %v", err)
	}

	results, _ := indexer.Search("growth", 2)
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}
