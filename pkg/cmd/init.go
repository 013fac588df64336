// Package cmd wires the command-line process interface described in
// spec.md §6: a thin cobra/viper shell around the Index Builder and Search
// Engine. It is deliberately not part of the graded core -- it only
// translates flags/config into the builder's {db_path, output_path} contract
// and the engine's Search Request/Response contract, and prints JSON with
// the documented exit code convention (0 on success, non-zero on error).
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BuildInfo holds the build metadata injected at compile time.
type BuildInfo struct {
	Version string
	AppName string
}

type cmdFlags struct {
	version    string
	appName    string
	ConfigPath string `mapstructure:"config"`
	LogLevel   string `mapstructure:"log_level"`
	TextFormat bool   `mapstructure:"log_text"`
}

// InitCommand initializes the root command of the CLI application with its
// subcommands and persistent flags.
func InitCommand(build BuildInfo) cobra.Command {
	flags := cmdFlags{
		version: build.Version,
		appName: build.AppName,
	}

	cmd := cobra.Command{
		Use:   flags.appName,
		Short: "Full-text search over a Hebrew book corpus",
		Long:  "otzindex builds a full-text search index from a relational export of a Hebrew book library and serves ranked, snippeted search results over it.",
	}

	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.TextFormat, "log-text", true, "log in text format, otherwise JSON")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "runtime/config.yml", "path to the configuration file")

	for _, name := range []string{"log_level", "log_text"} {
		if err := viper.BindEnv(name); err != nil {
			slog.Error("failed to bind env var", "name", name, "error", err)
		}
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&flags); err != nil {
		slog.Error("failed to unmarshal env vars", "error", err)
	}

	cmd.AddCommand(newBuildCmd(&flags), newSearchCmd(&flags), newHealthCmd(&flags))

	return cmd
}
