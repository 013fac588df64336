package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gwngdwl/otzindex/pkg/builder"
)

// newBuildCmd drives the Index Builder end to end: reads the relational
// source database and writes a committed Bleve index directory (spec.md
// §4.3). When archive.bucket is configured it also uploads the freshly
// built index as an S3 snapshot keyed by the build's ID.
func newBuildCmd(flags *cmdFlags) *cobra.Command {
	var dbPath, outPath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a search index from the source database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := initLogger(flags); err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if dbPath == "" {
				dbPath = cfg.Source.DBPath
			}

			if outPath == "" {
				outPath = cfg.Index.Path
			}

			ctx := cmd.Context()

			result, err := builder.BuildIndex(ctx, dbPath, outPath)
			if err != nil {
				return fmt.Errorf("build index: %w", err)
			}

			slog.InfoContext(ctx, "index built",
				slog.String("build_id", result.BuildID),
				slog.Int("doc_count", result.DocCount),
				slog.Duration("elapsed", result.Elapsed))

			if cfg.Archive.Bucket == "" {
				return nil
			}

			archiver, err := newArchiver(ctx, cfg.Archive)
			if err != nil {
				return fmt.Errorf("init archiver: %w", err)
			}

			if err := archiver.Upload(ctx, outPath, result.BuildID); err != nil {
				return fmt.Errorf("archive index snapshot: %w", err)
			}

			slog.InfoContext(ctx, "index snapshot archived",
				slog.String("build_id", result.BuildID), slog.String("bucket", cfg.Archive.Bucket))

			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the source relational database (overrides config)")
	cmd.Flags().StringVar(&outPath, "out", "", "output path for the built index directory (overrides config)")

	return cmd
}
