package cli

import (
	"fmt"
	"regexp"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/pflag"

	"duacc/internal/duacc"
	"duacc/internal/integration"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

func help(fs *pflag.FlagSet) {
	//nolint:forbidigo // Help output to console
	fmt.Println(heredoc.Doc(`
		duacc walks one or more directory trees in parallel and reports, per
		directory, the cumulative number of files (subdirectory entries
		included) and bytes beneath it.

		Usage:

			duacc [flags] [path...]

		Positional Arguments:
		  path...                One or more root directories. Defaults to the
		                          current directory.

		The '-I' flag prints a zsh widget that pipes duacc's report through
		fzf for interactive drill-down; eval it from your shell rc file.

		Flags:
	`))
	fs.PrintDefaults()
}

// Exit codes.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// Execute runs the CLI against args (normally os.Args[1:]) and returns the
// process exit code.
func (c CLI) Execute(args []string) int {
	fs := pflag.NewFlagSet("duacc", pflag.ContinueOnError)
	fs.Usage = func() { help(fs) }

	var (
		maxDepth        int
		fileLimitStr    string
		sizeLimitStr    string
		excludePattern  string
		includePattern  string
		excludeSubdirs  bool
		quiet           bool
		perUser         bool
		humanReadable   bool
		statusSeconds   float64
		workers         int
		showVersion     bool
		showIntegration bool
		integrationBind string
	)

	fs.IntVarP(&maxDepth, "max-depth", "d", 1<<30, "Inclusive depth cap on output")
	fs.StringVarP(&fileLimitStr, "file-limit", "n", "0", "Minimum file count to emit (accepts unit suffix)")
	fs.StringVarP(&sizeLimitStr, "size-limit", "k", "0", "Minimum byte count to emit (accepts unit suffix)")
	fs.StringVar(&excludePattern, "exclude", "", "Regex matching paths to skip entirely, anchored to end-of-path")
	fs.StringVar(&includePattern, "include", "", "Regex files must match to be credited, anchored to end-of-path")
	fs.BoolVar(&excludeSubdirs, "exclude-subdirs", false, "Report direct counts only; no subtree roll-up")
	fs.BoolVarP(&quiet, "quiet", "q", false, "Suppress column header")
	fs.BoolVarP(&perUser, "user", "u", false, "Split output by owning UID")
	fs.BoolVarP(&humanReadable, "human-readable", "h", false, "Render sizes with unit suffixes")
	fs.Float64VarP(&statusSeconds, "status", "s", 0, "Seconds between stderr progress reports (0 disables)")
	fs.IntVarP(&workers, "workers", "w", 8, "Worker count, lower-bounded at 1")
	fs.BoolVarP(&showVersion, "version", "V", false, "Show version and exit")
	fs.BoolVarP(&showIntegration, "integration", "I", false, "Print the zsh+fzf integration script and exit")
	fs.StringVar(&integrationBind, "integration-bind", "", "Keybinding for the integration widget (default "+integration.DefaultBind+")")

	fs.SortFlags = false

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(fs.Output(), err)

		return exitUsage
	}

	if showVersion {
		fmt.Println(c.version) //nolint:forbidigo // Version output to console

		return exitOK
	}

	if showIntegration {
		rendered, err := integration.Render(integrationBind)
		if err != nil {
			fmt.Fprintln(fs.Output(), fmt.Errorf("rendering integration script: %w", err))

			return exitFatal
		}

		fmt.Println(rendered) //nolint:forbidigo // Integration script output to console

		return exitOK
	}

	opts := duacc.DefaultOptions()
	opts.Roots = fs.Args()
	opts.MaxDepth = maxDepth
	opts.ExcludeSubdirs = excludeSubdirs
	opts.PerUser = perUser
	opts.StatusInterval = statusSeconds
	opts.Workers = workers
	opts.StatusIsTTY = stderrIsTTY()

	var err error

	opts.FileLimit, err = parseSize(fileLimitStr)
	if err != nil {
		fmt.Fprintln(fs.Output(), fmt.Errorf("invalid --file-limit: %w", err))

		return exitUsage
	}

	opts.SizeLimit, err = parseSize(sizeLimitStr)
	if err != nil {
		fmt.Fprintln(fs.Output(), fmt.Errorf("invalid --size-limit: %w", err))

		return exitUsage
	}

	if excludePattern != "" {
		opts.Exclude, err = compileAnchored(excludePattern)
		if err != nil {
			fmt.Fprintln(fs.Output(), fmt.Errorf("compiling --exclude: %w", err))

			return exitFatal
		}
	}

	if includePattern != "" {
		opts.Include, err = compileAnchored(includePattern)
		if err != nil {
			fmt.Fprintln(fs.Output(), fmt.Errorf("compiling --include: %w", err))

			return exitFatal
		}
	}

	return logic(opts, logicConfig{quiet: quiet, humanReadable: humanReadable})
}

// compileAnchored compiles pattern with an implicit end-of-string anchor:
// both include and exclude patterns match against the end of a path.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?:" + pattern + ")$")
}
