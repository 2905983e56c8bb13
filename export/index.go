package export

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
)

// indexedPage is the document shape stored in the bleve index.
type indexedPage struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Hit is one local search result.
type Hit struct {
	PageID string  `json:"pageId"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
}

// Index is a full-text index over exported pages.
type Index struct {
	idx bleve.Index
}

// OpenIndex opens (or creates) an on-disk index at path.
func OpenIndex(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, bleve.NewIndexMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("export: open index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// NewMemIndex creates an in-memory index, used in tests and one-shot
// exports.
func NewMemIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("export: open index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// Add indexes one page's title and Markdown text under its page ID.
func (i *Index) Add(pageID, title, text string) error {
	return i.idx.Index(pageID, indexedPage{Title: title, Text: text})
}

// Search returns up to limit pages matching the query, best first.
func (i *Index) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, false)
	req.Fields = []string{"title"}

	res, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("export: search index: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{PageID: h.ID, Score: h.Score}
		if title, ok := h.Fields["title"].(string); ok {
			hit.Title = title
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// Close releases the underlying index.
func (i *Index) Close() error {
	return i.idx.Close()
}
