// Package sourcedb provides a read-only reader over the relational source
// schema the index builder consumes (spec.md §6): book, category, and line
// tables in a SQLite database.
package sourcedb

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/gwngdwl/otzindex/pkg/core"
)

// Source is a read-only handle on the relational source database.
type Source struct {
	db *sql.DB
}

// Open opens the SQLite database at path. It returns a wrapped
// core.ErrSourceError when the file is missing or unreadable.
func Open(path string) (*Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: source database not found: %w", core.ErrSourceError, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open source database: %w", core.ErrSourceError, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: source database unreachable: %w", core.ErrSourceError, err)
	}

	return &Source{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Source) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close source database: %w", err)
	}

	return nil
}

// LoadBooks loads every row of the book table into a map keyed by book_id,
// per spec.md §4.3 step 2.
func (s *Source) LoadBooks(ctx context.Context) (map[int64]core.Book, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, categoryId FROM book`)
	if err != nil {
		return nil, fmt.Errorf("%w: query books: %w", core.ErrSourceError, err)
	}
	defer rows.Close()

	books := make(map[int64]core.Book)

	for rows.Next() {
		var (
			id         int64
			title      string
			categoryID sql.NullInt64
		)

		if err := rows.Scan(&id, &title, &categoryID); err != nil {
			return nil, fmt.Errorf("%w: scan book row: %w", core.ErrSourceError, err)
		}

		books[id] = core.Book{
			ID:          id,
			Title:       title,
			CategoryID:  categoryID.Int64,
			HasCategory: categoryID.Valid,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate books: %w", core.ErrSourceError, err)
	}

	return books, nil
}

// LoadCategories loads every row of the category table into a map keyed by
// category_id, per spec.md §4.3 step 3.
func (s *Source) LoadCategories(ctx context.Context) (map[int64]core.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, parentId FROM category`)
	if err != nil {
		return nil, fmt.Errorf("%w: query categories: %w", core.ErrSourceError, err)
	}
	defer rows.Close()

	categories := make(map[int64]core.Category)

	for rows.Next() {
		var (
			id       int64
			title    string
			parentID sql.NullInt64
		)

		if err := rows.Scan(&id, &title, &parentID); err != nil {
			return nil, fmt.Errorf("%w: scan category row: %w", core.ErrSourceError, err)
		}

		categories[id] = core.Category{
			ID:        id,
			Title:     title,
			ParentID:  parentID.Int64,
			HasParent: parentID.Valid,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate categories: %w", core.ErrSourceError, err)
	}

	return categories, nil
}

// LineHandler is invoked once per content line row, in (book_id, line_index)
// order. Returning an error aborts the stream.
type LineHandler func(core.ContentLine) error

// StreamLines streams the line table ordered by (bookId, lineIndex), per
// spec.md §4.3 step 5, invoking handle for each row without buffering the
// whole table in memory.
func (s *Source) StreamLines(ctx context.Context, handle LineHandler) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, bookId, lineIndex, content, heRef FROM line ORDER BY bookId, lineIndex`)
	if err != nil {
		return fmt.Errorf("%w: query lines: %w", core.ErrSourceError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line    core.ContentLine
			content sql.NullString
			heRef   sql.NullString
		)

		if err := rows.Scan(&line.ID, &line.BookID, &line.LineIndex, &content, &heRef); err != nil {
			return fmt.Errorf("%w: scan line row: %w", core.ErrSourceError, err)
		}

		line.Content = content.String
		line.HeRef = heRef.String

		if err := handle(line); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: iterate lines: %w", core.ErrSourceError, err)
	}

	return nil
}
