package duacc

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// Result is the full outcome of a traversal: the rolled-up, filtered rows
// ready for printing, and the count of directories that could not be
// accounted for (EACCES/ENOENT warnings).
type Result struct {
	Rows     []Row
	ErrCount int
}

// Run resolves and de-duplicates opts.Roots, launches the worker pool and
// coordinator, drains results until the Coordinator reports quiescence,
// and returns the aggregated report.
func Run(opts Options) (*Result, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	roots, err := resolveRoots(opts.Roots)
	if err != nil {
		return nil, err
	}

	rootItems := make([]WorkItem, 0, len(roots))

	for _, r := range roots {
		var st unix.Stat_t
		if err := unix.Lstat(r.abs, &st); err != nil {
			return nil, fmt.Errorf("accessing root %q: %w", r.display, err)
		}

		rootItems = append(rootItems, WorkItem{
			Name:        r.display,
			ParentInode: 0,
			Inode:       st.Ino,
			AbsPath:     r.abs,
		})
	}

	statusInterval := time.Duration(opts.StatusInterval * float64(time.Second))
	coord := newCoordinator(opts.Workers, statusInterval, opts.StatusIsTTY)

	go coord.run(len(rootItems))

	resultCh := make(chan any, 4096)
	fatal := &firstError{}
	p := newPool(opts.Workers)

	for _, item := range rootItems {
		p.submit(item, opts, coord, resultCh, fatal)
	}

	store := NewResultStore()

	var errCount int

	totalWork := -1
	received := 0

	for totalWork < 0 || received < totalWork {
		select {
		case msg := <-resultCh:
			received++

			switch m := msg.(type) {
			case DirResult:
				store.Add(m)
			case ErrResult:
				errCount++
			}
		case total := <-coord.doneCh:
			totalWork = total
		}
	}

	p.stopWait()

	if err := fatal.get(); err != nil {
		return nil, err
	}

	rows := Aggregate(store, opts)

	return &Result{Rows: rows, ErrCount: errCount}, nil
}

type resolvedRoot struct {
	display string
	abs     string
}

// resolveRoots cleans and de-duplicates the requested roots by prefix:
// multiple roots are de-duplicated by prefix before traversal begins. A
// root is dropped if another surviving root's absolute path is a prefix of
// it at a path-separator boundary.
func resolveRoots(args []string) ([]resolvedRoot, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	roots := make([]resolvedRoot, 0, len(args))

	for _, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			return nil, fmt.Errorf("resolving root %q: %w", a, err)
		}

		roots = append(roots, resolvedRoot{display: filepath.Clean(a), abs: trimTrailingSlash(abs)})
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].abs < roots[j].abs })

	var out []resolvedRoot

	for _, r := range roots {
		covered := false

		for _, kept := range out {
			if r.abs == kept.abs || strings.HasPrefix(r.abs, kept.abs+"/") {
				covered = true

				break
			}
		}

		if !covered {
			out = append(out, r)
		}
	}

	return out, nil
}
