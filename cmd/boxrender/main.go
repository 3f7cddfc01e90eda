// Command boxrender replays selection box edits without a window.
package main

import (
	"os"

	"selection-canvas/internal/cli"
	"selection-canvas/internal/version"
)

func main() {
	if err := cli.NewRootCmd(version.Version, version.GitCommit, version.BuildTime).Execute(); err != nil {
		os.Exit(1)
	}
}
