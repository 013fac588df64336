package builder

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwngdwl/otzindex/pkg/core"
	"github.com/gwngdwl/otzindex/pkg/sourcedb"
)

// fakeWriter records indexed documents in memory, for testing Run without a
// real Bleve index.
type fakeWriter struct {
	records map[string]core.IndexRecord
	failOn  string
	flushes int
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{records: make(map[string]core.IndexRecord)}
}

func (w *fakeWriter) Index(id string, rec core.IndexRecord) error {
	if id == w.failOn {
		return errors.New("boom")
	}

	w.records[id] = rec

	return nil
}

func (w *fakeWriter) Flush() error {
	w.flushes++
	return nil
}

func newTestSourceAt(t *testing.T, path string) *sourcedb.Source {
	t.Helper()

	setup, err := sql.Open("sqlite", path)
	require.NoError(t, err)

	_, err = setup.Exec(`
		CREATE TABLE book (id INTEGER, title TEXT, categoryId INTEGER);
		CREATE TABLE category (id INTEGER, title TEXT, parentId INTEGER);
		CREATE TABLE line (id INTEGER, bookId INTEGER, lineIndex INTEGER, content TEXT, heRef TEXT);

		INSERT INTO category (id, title, parentId) VALUES (1, 'תנ״ך', NULL);
		INSERT INTO category (id, title, parentId) VALUES (2, 'תורה', 1);

		INSERT INTO book (id, title, categoryId) VALUES (10, 'בראשית', 2);

		INSERT INTO line (id, bookId, lineIndex, content, heRef)
			VALUES (100, 10, 0, '<i>בראשית</i> ברא אלהים', 'בראשית א:א');
		INSERT INTO line (id, bookId, lineIndex, content, heRef)
			VALUES (101, 10, 1, '   ', '');
		INSERT INTO line (id, bookId, lineIndex, content, heRef)
			VALUES (102, 99, 0, 'ספר לא ידוע', '');
	`)
	require.NoError(t, err)
	require.NoError(t, setup.Close())

	src, err := sourcedb.Open(path)
	require.NoError(t, err)

	t.Cleanup(func() { _ = src.Close() })

	return src
}

func TestRunSkipsBlankLinesAndDefaultsMissingBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.sqlite")
	src := newTestSourceAt(t, path)

	writer := newFakeWriter()

	count, err := Run(context.Background(), src, writer)
	require.NoError(t, err)
	assert.Equal(t, 2, count) // line 101 is blank and skipped
	assert.Len(t, writer.records, 2)

	doc100 := writer.records["100"]
	assert.Equal(t, " בראשית  ברא אלהים", doc100.Content) // tags replaced by spaces
	assert.Equal(t, "בראשית", doc100.BookTitle)
	assert.Equal(t, "תנ״ך/תורה", doc100.CategoryPath)

	doc102 := writer.records["102"]
	assert.Equal(t, "", doc102.BookTitle)
	assert.Equal(t, "", doc102.CategoryPath)
}

func TestRunPropagatesWriterError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.sqlite")
	src := newTestSourceAt(t, path)

	writer := newFakeWriter()
	writer.failOn = "100"

	_, err := Run(context.Background(), src, writer)
	require.Error(t, err)
}

func TestBuildIndexEndToEnd(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "source.sqlite")
	outPath := filepath.Join(dir, "index.bleve")

	newTestSourceAt(t, dbPath)

	result, err := BuildIndex(context.Background(), dbPath, outPath)
	require.NoError(t, err)
	assert.Equal(t, 2, result.DocCount)
	assert.NotEmpty(t, result.BuildID)
}
