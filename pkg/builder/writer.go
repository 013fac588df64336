package builder

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/google/uuid"

	"github.com/gwngdwl/otzindex/pkg/analyzer"
	"github.com/gwngdwl/otzindex/pkg/core"
	"github.com/gwngdwl/otzindex/pkg/sourcedb"
)

// defaultBatchSize bounds how many documents accumulate in memory between
// Bleve batch executions. It realizes spec.md §4.3's "in-memory buffer sized
// to hundreds of MB" resource policy without holding the entire multi-million
// line corpus in memory at once.
const defaultBatchSize = 2000

// bleveWriter adapts a Bleve index to the builder.Writer interface, batching
// writes for throughput.
type bleveWriter struct {
	index     bleve.Index
	batch     *bleve.Batch
	batchSize int
	pending   int
}

func newBleveWriter(index bleve.Index, batchSize int) *bleveWriter {
	return &bleveWriter{
		index:     index,
		batch:     index.NewBatch(),
		batchSize: batchSize,
	}
}

// Index stages a document in the current batch, flushing when the batch
// reaches batchSize.
func (w *bleveWriter) Index(id string, rec core.IndexRecord) error {
	if err := w.batch.Index(id, rec); err != nil {
		return fmt.Errorf("stage document %s: %w", id, err)
	}

	w.pending++

	if w.pending >= w.batchSize {
		return w.Flush()
	}

	return nil
}

// Flush executes any staged batch against the index.
func (w *bleveWriter) Flush() error {
	if w.pending == 0 {
		return nil
	}

	if err := w.index.Batch(w.batch); err != nil {
		return fmt.Errorf("execute batch: %w", err)
	}

	w.batch.Reset()
	w.pending = 0

	return nil
}

// BuildIndex runs a full, single-shot build of the corpus into a fresh index
// directory at outputPath (spec.md §4.3). It never leaves a partial index
// readable at outputPath: the index is built in a scratch directory beside
// it and only published (via truncate-then-rename) once the whole build has
// succeeded. On any failure, the scratch directory is removed and outputPath
// is left untouched.
func BuildIndex(ctx context.Context, dbPath, outputPath string) (Result, error) {
	start := time.Now()
	buildID := uuid.NewString()

	src, err := sourcedb.Open(dbPath)
	if err != nil {
		return Result{}, err
	}
	defer src.Close()

	scratchPath := outputPath + ".building-" + buildID

	if err := os.RemoveAll(scratchPath); err != nil {
		return Result{}, fmt.Errorf("%w: clear scratch directory: %w", core.ErrSourceError, err)
	}

	idx, err := bleve.New(scratchPath, analyzer.BuildMapping())
	if err != nil {
		return Result{}, fmt.Errorf("%w: create index: %w", core.ErrSourceError, err)
	}

	writer := newBleveWriter(idx, defaultBatchSize)

	count, runErr := Run(ctx, src, writer)
	if runErr == nil {
		runErr = writer.Flush()
	}

	closeErr := idx.Close()

	if runErr != nil || closeErr != nil {
		_ = os.RemoveAll(scratchPath)

		if runErr != nil {
			return Result{}, runErr
		}

		return Result{}, fmt.Errorf("%w: close index: %w", core.ErrSourceError, closeErr)
	}

	if err := os.RemoveAll(outputPath); err != nil {
		_ = os.RemoveAll(scratchPath)
		return Result{}, fmt.Errorf("%w: truncate output directory: %w", core.ErrSourceError, err)
	}

	if err := os.Rename(scratchPath, outputPath); err != nil {
		_ = os.RemoveAll(scratchPath)
		return Result{}, fmt.Errorf("%w: publish index: %w", core.ErrSourceError, err)
	}

	return Result{
		BuildID:  buildID,
		DocCount: count,
		Elapsed:  time.Since(start),
	}, nil
}
