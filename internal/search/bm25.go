package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
)

// DefaultLimit applies when Search is called with a non-positive limit.
const DefaultLimit = 10

// Search performs BM25 keyword search over sample content. A blank query
// returns no results.
func (i *Indexer) Search(text string, limit int) ([]Result, error) {
	if strings.TrimSpace(text) == "" {
		return []Result{}, nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultLimit
	}

	searchRequest := bleve.NewSearchRequestOptions(i.buildMatchQuery(text), limit, 0, false)
	searchRequest.Fields = []string{"content"}

	results, err := i.bleveIndex.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	return convertBleveResults(results), nil
}

// convertBleveResults converts Bleve hits to Results.
func convertBleveResults(results *bleve.SearchResult) []Result {
	out := make([]Result, 0, len(results.Hits))

	for _, hit := range results.Hits {
		content, _ := hit.Fields["content"].(string)
		out = append(out, Result{
			SampleID: hit.ID,
			Content:  content,
			Score:    hit.Score,
		})
	}

	return out
}
