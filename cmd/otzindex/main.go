// Command otzindex is the process entry point: it wires build metadata into
// the cobra command tree and runs it, exiting non-zero on error per spec.md
// §6's CLI exit code convention.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gwngdwl/otzindex/pkg/cmd"
)

// version and appName are overridden at build time via -ldflags.
var (
	version = "dev"
	appName = "otzindex"
)

func main() {
	build := cmd.BuildInfo{Version: version, AppName: appName}

	root := cmd.InitCommand(build)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
