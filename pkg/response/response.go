// Package response encodes a completed search (or its failure) into the
// Search Response JSON schema of spec.md §6. Grounded on the teacher's JSON
// handler style in pkg/api/handlers_ingest.go (Content-Type header,
// json.NewEncoder(w).Encode(...)), adapted into a plain encoder function
// since this module's process interface is the CLI, not an HTTP server
// (spec.md §6's "process interface from the CLI collaborator").
package response

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gwngdwl/otzindex/pkg/core"
)

// Hit is the wire shape of one returned hit (spec.md §6).
type Hit struct {
	BookTitle    string  `json:"book_title"`
	CategoryPath string  `json:"category_path"`
	HeRef        string  `json:"he_ref"`
	Snippet      string  `json:"snippet"`
	LineID       int64   `json:"line_id"`
	BookID       int64   `json:"book_id"`
	LineIndex    int32   `json:"line_index"`
	Rank         int     `json:"rank"`
	Score        float64 `json:"score"`
}

// ErrorResponse is the wire shape returned when a search could not be
// answered (spec.md §6, §7): only status and message are present.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SuccessResponse is the wire shape returned for a completed search: no
// message field, and results is always present (possibly empty) rather than
// omitted, so a blank-query response still reads as `{"results": []}` per
// spec.md §8.
type SuccessResponse struct {
	Status    string `json:"status"`
	Query     string `json:"query"`
	Results   []Hit  `json:"results"`
	TotalHits int    `json:"total_hits"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// Encode writes the Search Response for req to w: an ErrorResponse if err is
// non-nil, otherwise a SuccessResponse built from results. err is expected to
// be one of the sentinel-wrapped errors from pkg/core (InvalidRequest,
// NotFound, ParseError, SourceError) -- its Error() text is already a
// human-readable message, carried verbatim with no stack trace (spec.md §7
// policy).
func Encode(w io.Writer, req core.SearchRequest, results *core.SearchResults, err error) error {
	var payload any

	if err != nil {
		payload = ErrorResponse{Status: "error", Message: err.Error()}
	} else {
		payload = SuccessResponse{
			Status:    "success",
			Query:     req.Query,
			Results:   toHits(results.Hits),
			TotalHits: int(results.Total),
			ElapsedMS: results.Elapsed.Milliseconds(),
		}
	}

	if encErr := json.NewEncoder(w).Encode(payload); encErr != nil {
		return fmt.Errorf("encode search response: %w", encErr)
	}

	return nil
}

func toHits(hits []core.Hit) []Hit {
	out := make([]Hit, 0, len(hits))

	for _, h := range hits {
		out = append(out, Hit{
			Rank:         h.Rank,
			LineID:       h.LineID,
			BookID:       h.BookID,
			LineIndex:    h.LineIndex,
			BookTitle:    h.BookTitle,
			CategoryPath: h.CategoryPath,
			HeRef:        h.HeRef,
			Snippet:      h.Snippet,
			Score:        h.Score,
		})
	}

	return out
}
