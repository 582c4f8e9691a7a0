package search

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"go.uber.org/zap"

	"github.com/growthkit/linkedin-assistant/internal/settings"
)

// Indexer manages the search index for writing samples.
type Indexer struct {
	bleveIndex bleve.Index
	mu         sync.RWMutex
	logger     *zap.Logger
}

// NewIndexer creates a new search indexer with an in-memory Bleve index.
func NewIndexer(logger *zap.Logger) (*Indexer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	return &Indexer{bleveIndex: index, logger: logger}, nil
}

// buildIndexMapping creates the Bleve index mapping.
func buildIndexMapping() mapping.IndexMapping {
	sampleMapping := bleve.NewDocumentMapping()

	// Content: English analyzer so plurals and verb forms match
	contentFieldMapping := bleve.NewTextFieldMapping()
	contentFieldMapping.Analyzer = en.AnalyzerName
	sampleMapping.AddFieldMappingsAt("content", contentFieldMapping)

	// CreatedAt: stored for ordering, not searched
	createdMapping := bleve.NewDateTimeFieldMapping()
	createdMapping.IncludeInAll = false
	sampleMapping.AddFieldMappingsAt("createdAt", createdMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName
	indexMapping.AddDocumentMapping("_default", sampleMapping)

	return indexMapping
}

func sampleDoc(s settings.WritingSample) map[string]interface{} {
	return map[string]interface{}{
		"content":   s.Content,
		"createdAt": s.CreatedAt,
	}
}

// IndexSamples replaces the index contents with samples.
func (i *Indexer) IndexSamples(samples []settings.WritingSample) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.bleveIndex.NewBatch()

	existing, err := i.allIDs()
	if err != nil {
		return err
	}
	for _, id := range existing {
		batch.Delete(id)
	}

	for _, s := range samples {
		if err := batch.Index(s.ID, sampleDoc(s)); err != nil {
			i.logger.Warn("failed to index sample", zap.String("id", s.ID), zap.Error(err))
		}
	}

	if err := i.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index samples: %w", err)
	}

	return nil
}

// Add indexes one sample, replacing any document with the same id.
func (i *Indexer) Add(s settings.WritingSample) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.bleveIndex.Index(s.ID, sampleDoc(s)); err != nil {
		return fmt.Errorf("failed to index sample %s: %w", s.ID, err)
	}
	return nil
}

// Remove deletes a sample from the index. Unknown ids are ignored.
func (i *Indexer) Remove(id string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.bleveIndex.Delete(id); err != nil {
		return fmt.Errorf("failed to remove sample %s: %w", id, err)
	}
	return nil
}

// allIDs must be called with mu held.
func (i *Indexer) allIDs() ([]string, error) {
	count, err := i.bleveIndex.DocCount()
	if err != nil {
		return nil, fmt.Errorf("failed to get doc count: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(count), 0, false)
	results, err := i.bleveIndex.Search(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list samples: %w", err)
	}

	ids := make([]string, 0, len(results.Hits))
	for _, hit := range results.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// Count returns the total number of indexed samples.
func (i *Indexer) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	docCount, err := i.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}

	return docCount, nil
}

// Close closes the index and releases resources.
func (i *Indexer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.bleveIndex != nil {
		return i.bleveIndex.Close()
	}

	return nil
}

// buildMatchQuery creates a match query on sample content.
func (i *Indexer) buildMatchQuery(searchText string) query.Query {
	q := bleve.NewMatchQuery(searchText)
	q.SetField("content")
	return q
}
