package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"duacc/internal/duacc"
	"duacc/internal/users"
)

// logicConfig carries the display-only flags that don't belong on
// duacc.Options (which is the engine's own contract, not a CLI concern).
type logicConfig struct {
	quiet         bool
	humanReadable bool
}

func stderrIsTTY() bool {
	return isatty.IsTerminal(os.Stderr.Fd())
}

func logic(opts duacc.Options, cfg logicConfig) int {
	result, err := duacc.Run(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)

		return exitFatal
	}

	names := users.NewTable()
	printReport(os.Stdout, result.Rows, opts.PerUser, cfg.humanReadable, cfg.quiet, names)

	return exitOK
}
