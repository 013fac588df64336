// Package builder streams rows from the relational source, denormalizes them
// into indexed documents, and writes them to a full-text index writer
// (spec.md §4.3). It never leaves a partial index readable: the orchestration
// layer in writer.go builds into a scratch directory and only publishes it at
// the target path once the whole stream has succeeded (see BuildIndex).
package builder

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gwngdwl/otzindex/pkg/core"
	"github.com/gwngdwl/otzindex/pkg/sourcedb"
	"github.com/gwngdwl/otzindex/pkg/textnorm"
)

// Writer is the subset of the full-text index writer the builder depends on.
// It is satisfied by the batching Bleve writer in writer.go, and can be
// stubbed in tests.
type Writer interface {
	Index(id string, rec core.IndexRecord) error
	Flush() error
}

// Result summarizes a completed build (spec.md §4.3 step 6).
type Result struct {
	BuildID  string
	DocCount int
	Elapsed  time.Duration
}

// Build loads the book and category tables from src and precomputes every
// category path, returning a collector that turns content lines into indexed
// documents. It does not stream lines or write anything; Run does that.
func Build(ctx context.Context, src *sourcedb.Source) (*collector, error) {
	books, err := src.LoadBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load books: %w", core.ErrSourceError, err)
	}

	categories, err := src.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load categories: %w", core.ErrSourceError, err)
	}

	paths := buildCategoryPaths(categories)

	return &collector{books: books, categoryPaths: paths}, nil
}

// collector turns a raw ContentLine into an indexed Document using the
// books/category-path maps resolved once at the start of the build.
type collector struct {
	books         map[int64]core.Book
	categoryPaths map[int64]string
}

// toDocument builds the indexed document for line, or returns ok=false when
// the line's content is blank after trimming (spec.md §3 invariant: a
// document exists iff its source content is non-blank after trimming).
func (c *collector) toDocument(line core.ContentLine) (core.Document, bool) {
	if strings.TrimSpace(line.Content) == "" {
		return core.Document{}, false
	}

	doc := core.Document{
		LineID:    line.ID,
		BookID:    line.BookID,
		LineIndex: line.LineIndex,
		HeRef:     textnorm.StripMarkup(line.HeRef),
		Content:   textnorm.StripMarkup(line.Content),
	}

	book, ok := c.books[line.BookID]
	if !ok {
		// spec.md §4.3 step 5: default to empty strings when the book is
		// missing from the source.
		return doc, true
	}

	doc.BookTitle = textnorm.StripMarkup(book.Title)

	if book.HasCategory {
		doc.CategoryPath = c.categoryPaths[book.CategoryID]
	}

	return doc, true
}

// documentID returns the stable document identifier used as the index
// writer's key, per spec.md's invariant that line_id is the stable id.
func documentID(lineID int64) string {
	return strconv.FormatInt(lineID, 10)
}

// Run streams lines from src through the collector and into writer, writing
// one document per non-empty line and returning the number of documents
// written. It does not flush or publish the writer -- the caller (BuildIndex)
// owns that so it alone decides whether to discard a failed build.
func Run(ctx context.Context, src *sourcedb.Source, writer Writer) (int, error) {
	c, err := Build(ctx, src)
	if err != nil {
		return 0, err
	}

	var count int

	err = src.StreamLines(ctx, func(line core.ContentLine) error {
		doc, ok := c.toDocument(line)
		if !ok {
			return nil
		}

		if err := writer.Index(documentID(doc.LineID), core.NewIndexRecord(doc)); err != nil {
			return fmt.Errorf("index document %d: %w", doc.LineID, err)
		}

		count++

		return nil
	})
	if err != nil {
		return count, fmt.Errorf("%w: stream lines: %w", core.ErrSourceError, err)
	}

	return count, nil
}
