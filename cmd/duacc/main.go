// Command duacc walks one or more directory trees in parallel and reports,
// per directory, the cumulative number of files (subdirectory entries
// included) and bytes beneath it, optionally split by owning user.
package main

import (
	"os"

	"duacc/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.New(version).Execute(os.Args[1:]))
}
