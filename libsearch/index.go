package libsearch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"github.com/kzk-maeda/mcp-book-search/calil"
)

// DefaultLimit caps result counts when the caller does not say otherwise.
const DefaultLimit = 10

// document is the indexed projection of one library record.
type document struct {
	Formal  string `json:"formal"`
	Short   string `json:"short"`
	Address string `json:"address"`
}

// Index ranks one area's library records by relevance to a free-text query.
// Records are indexed by directory position; the Index never mutates after
// construction and is safe for concurrent searches.
type Index struct {
	idx       bleve.Index
	libraries []calil.Library
}

// New indexes the given records in memory.
func New(libraries []calil.Library) (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}

	batch := idx.NewBatch()
	for i, lib := range libraries {
		doc := document{Formal: lib.Formal, Short: lib.Short, Address: lib.Address}
		if err := batch.Index(strconv.Itoa(i), doc); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("indexing record %d: %w", i, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("writing batch: %w", err)
	}

	return &Index{idx: idx, libraries: libraries}, nil
}

// Search returns up to limit records ranked by relevance to query. An empty
// query returns the records in directory order instead of ranking them.
func (x *Index) Search(query string, limit int) ([]calil.Library, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if strings.TrimSpace(query) == "" {
		if limit > len(x.libraries) {
			limit = len(x.libraries)
		}
		out := make([]calil.Library, limit)
		copy(out, x.libraries[:limit])
		return out, nil
	}

	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = limit
	res, err := x.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	out := make([]calil.Library, 0, len(res.Hits))
	for _, hit := range res.Hits {
		i, err := strconv.Atoi(hit.ID)
		if err != nil || i < 0 || i >= len(x.libraries) {
			continue
		}
		out = append(out, x.libraries[i])
	}
	return out, nil
}

// Len returns the number of indexed records.
func (x *Index) Len() int { return len(x.libraries) }

// Close releases the underlying index.
func (x *Index) Close() error { return x.idx.Close() }
