package cmd

import (
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/stretchr/testify/require"
)

func writeFixtureDB(t *testing.T, path string) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)

	_, err = db.Exec(`
		CREATE TABLE book (id INTEGER, title TEXT, categoryId INTEGER);
		CREATE TABLE category (id INTEGER, title TEXT, parentId INTEGER);
		CREATE TABLE line (id INTEGER, bookId INTEGER, lineIndex INTEGER, content TEXT, heRef TEXT);

		INSERT INTO category (id, title, parentId) VALUES (1, 'תנ״ך', NULL);
		INSERT INTO book (id, title, categoryId) VALUES (10, 'בראשית', 1);
		INSERT INTO line (id, bookId, lineIndex, content, heRef)
			VALUES (100, 10, 0, 'בְּרֵאשִׁית בָּרָא אֱלֹהִים', 'בראשית א:א');
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

// captureStdout temporarily redirects os.Stdout and returns what was
// written to it while fn ran.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())

	os.Stdout = orig

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestBuildThenSearchEndToEnd(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "source.sqlite")
	outPath := filepath.Join(dir, "index.bleve")

	writeFixtureDB(t, dbPath)

	flags := &cmdFlags{LogLevel: "error", TextFormat: true}

	buildCmd := newBuildCmd(flags)
	buildCmd.SetArgs([]string{"--db", dbPath, "--out", outPath})
	buildCmd.SetContext(context.Background())
	require.NoError(t, buildCmd.Execute())

	_, statErr := os.Stat(outPath)
	require.NoError(t, statErr)

	searchCmd := newSearchCmd(flags)
	searchCmd.SetArgs([]string{"--index", outPath, "--query", "ברא"})
	searchCmd.SetContext(context.Background())

	output := captureStdout(t, func() {
		require.NoError(t, searchCmd.Execute())
	})

	require.Contains(t, output, `"status":"success"`)
	require.Contains(t, output, "בראשית")
}
