package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gwngdwl/otzindex/pkg/core"
	"github.com/gwngdwl/otzindex/pkg/response"
	"github.com/gwngdwl/otzindex/pkg/searchengine"
)

// newSearchCmd drives the Search Engine with one Search Request and writes
// the Search Response as a single JSON document to stdout (spec.md §6).
// A query error is still reported as a well-formed JSON error response; the
// process exit code is what signals failure to scripts.
func newSearchCmd(flags *cmdFlags) *cobra.Command {
	var (
		indexPath      string
		queryText      string
		bookFilter     string
		categoryFilter string
		limit          int
		wildcard       bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a search against a built index and print the response as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := initLogger(flags); err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if indexPath == "" {
				indexPath = cfg.Index.Path
			}

			req := core.SearchRequest{
				Query:          queryText,
				BookFilter:     bookFilter,
				CategoryFilter: categoryFilter,
				Limit:          limit,
				WildcardMode:   wildcard,
			}

			if req.Limit <= 0 && cfg.Search.DefaultLimit > 0 {
				req.Limit = cfg.Search.DefaultLimit
			}

			engine, openErr := searchengine.Open(indexPath)
			if openErr != nil {
				return writeAndFail(cmd, req, nil, openErr)
			}

			defer engine.Close()

			results, searchErr := engine.Search(cmd.Context(), req)

			return writeAndFail(cmd, req, results, searchErr)
		},
	}

	cmd.Flags().StringVar(&indexPath, "index", "", "path to the built index directory (overrides config)")
	cmd.Flags().StringVar(&queryText, "query", "", "search query text")
	cmd.Flags().StringVar(&bookFilter, "book", "", "restrict results to this exact book title")
	cmd.Flags().StringVar(&categoryFilter, "category", "", "restrict results to category paths containing this substring")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of hits to return (0 uses the configured default)")
	cmd.Flags().BoolVar(&wildcard, "wildcard", false, "interpret query as a wildcard pattern instead of plain terms")

	return cmd
}

// writeAndFail encodes the Search Response (success or error) to stdout and
// returns a non-nil error only when the response itself represents a
// failure, so cobra's own exit-code handling matches spec.md §6's convention.
func writeAndFail(cmd *cobra.Command, req core.SearchRequest, results *core.SearchResults, err error) error {
	if encErr := response.Encode(os.Stdout, req, results, err); encErr != nil {
		return encErr
	}

	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return nil
}
