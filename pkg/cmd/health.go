package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gwngdwl/otzindex/pkg/searchengine"
)

// newHealthCmd checks that an index directory exists and is openable, the
// local-process analogue of the teacher's HTTP /livez check -- otzindex has
// no long-running server to probe, so "healthy" means "the index this
// process would open is actually there."
func newHealthCmd(flags *cmdFlags) *cobra.Command {
	var indexPath string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that a built index is present and openable",
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

			engine, err := searchengine.Open(indexPath)
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			defer engine.Close()

			count, err := engine.DocCount()
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			fmt.Printf("ok (%d documents)\n", count) //nolint:forbidigo // CLI output is intentional

			return nil
		},
	}

	cmd.Flags().StringVar(&indexPath, "index", "", "path to the built index directory (overrides config)")

	return cmd
}
