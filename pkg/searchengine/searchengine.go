// Package searchengine owns a read-only full-text index and answers search
// requests against it (spec.md §4.5): compile the query, run the top-K
// search, materialize stored fields, and build a snippet per hit. Grounded
// directly on the teacher's BleveEngine in pkg/repo/search/bleve.go -- same
// open/close lifecycle, same bleve.NewSearchRequestOptions call shape, same
// stored-field extraction loop -- generalized from the teacher's document
// schema to this one's line/book/category fields and from the teacher's
// hybrid match/prefix/fuzzy query to the compiled query from pkg/query.
package searchengine

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"

	"github.com/gwngdwl/otzindex/pkg/core"
	"github.com/gwngdwl/otzindex/pkg/query"
	"github.com/gwngdwl/otzindex/pkg/snippet"
)

// storedFields lists every field the engine reads back out of a hit, in
// addition to score and Bleve's internal id.
var storedFields = []string{
	core.FieldLineID,
	core.FieldBookID,
	core.FieldLineIndex,
	core.FieldBookTitle,
	core.FieldCategoryPath,
	core.FieldHeRef,
	core.FieldContent,
}

// Engine is a read-only handle on a built index (spec.md §4.5 lifecycle: the
// builder owns exclusive write access; the engine never writes).
type Engine struct {
	index bleve.Index
}

// Open opens the index directory at path read-only, returning an error
// wrapping core.ErrNotFound if the directory does not exist (spec.md §4.5,
// §7 NotFound).
func Open(path string) (*Engine, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, path)
	}

	idx, err := bleve.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index at %s: %w", path, err)
	}

	return &Engine{index: idx}, nil
}

// Close releases the index. Per spec.md §4.5 this is the only place readers
// and the analyzer are released; both live inside the Bleve index handle, so
// a single Close covers both.
func (e *Engine) Close() error {
	if err := e.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}

	return nil
}

// DocCount reports the number of documents in the index.
func (e *Engine) DocCount() (uint64, error) {
	count, err := e.index.DocCount()
	if err != nil {
		return 0, fmt.Errorf("doc count: %w", err)
	}

	return count, nil
}

// Search answers req against the index (spec.md §4.5). A blank query
// short-circuits to an empty, successful result without consulting the
// index or the query compiler (spec.md §4.4, §8).
func (e *Engine) Search(ctx context.Context, req core.SearchRequest) (*core.SearchResults, error) {
	if req.IsBlank() {
		return &core.SearchResults{Hits: []core.Hit{}}, nil
	}

	q, err := query.Compile(req)
	if err != nil {
		return nil, err
	}

	sreq := bleve.NewSearchRequestOptions(q, req.NormalizedLimit(), 0, false)
	sreq.Fields = storedFields
	sreq.Highlight = bleve.NewHighlight()
	sreq.Highlight.Fields = []string{core.FieldContent}

	result, err := e.index.SearchInContext(ctx, sreq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrParseError, err)
	}

	hits := make([]core.Hit, 0, len(result.Hits))

	for i, hit := range result.Hits {
		content := fieldString(hit.Fields, core.FieldContent)

		hits = append(hits, core.Hit{
			Rank:         i + 1,
			Score:        hit.Score,
			LineID:       fieldInt64(hit.Fields, core.FieldLineID),
			BookID:       fieldInt64(hit.Fields, core.FieldBookID),
			LineIndex:    int32(fieldInt64(hit.Fields, core.FieldLineIndex)),
			BookTitle:    fieldString(hit.Fields, core.FieldBookTitle),
			CategoryPath: fieldString(hit.Fields, core.FieldCategoryPath),
			HeRef:        fieldString(hit.Fields, core.FieldHeRef),
			Snippet:      snippet.Build(content, hit.Fragments[core.FieldContent]),
		})
	}

	return &core.SearchResults{
		Hits:    hits,
		Total:   result.Total,
		Elapsed: result.Took,
	}, nil
}

func fieldString(fields map[string]interface{}, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}

	return ""
}

// fieldInt64 recovers an int64 stored field. Bleve returns numeric stored
// fields as float64 when surfaced through hit.Fields.
func fieldInt64(fields map[string]interface{}, name string) int64 {
	switch v := fields[name].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}
