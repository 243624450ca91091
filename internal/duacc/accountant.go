package duacc

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
)

// accountDir lists item's directory, stats its entries, credits file counts
// and byte totals by UID, deduplicates hard links against hl, and returns
// both this directory's direct DirResult and the list of child WorkItems
// discovered. A subdirectory that fails the include filter is still
// returned as a child WorkItem (so it is traversed) but is not credited in
// this directory's tally; entries matching exclude are dropped entirely and
// are neither credited nor returned.
//
// onEntry is invoked every progressTick entries processed, for progress
// reporting; it may be nil.
func accountDir(
	item WorkItem,
	opts Options,
	hl *hardLinkSet,
	onEntry func(count int64, size int64, path string),
) (DirResult, []WorkItem, error) {
	dirPath := item.Path()

	result := DirResult{
		Name:        item.Name,
		ParentInode: item.ParentInode,
		Inode:       item.Inode,
		FilesByUID:  make(map[uint32]int64),
		SizeByUID:   make(map[uint32]int64),
	}

	var (
		dirNames  []string
		fileNames []string
		processed int64
	)

	err := readDirStream(dirPath, func(e dirEntry) error {
		full := filepath.Join(dirPath, e.name)
		if opts.Exclude != nil && opts.Exclude.MatchString(full) {
			return nil
		}

		if e.kind == dirKindDir {
			dirNames = append(dirNames, e.name)
		} else {
			fileNames = append(fileNames, e.name)
		}

		return nil
	})
	if err != nil {
		return DirResult{}, nil, err
	}

	// Step 2: stat non-dirs (files_maybe), rescuing misclassified dirs.
	recs, _ := statBatch(dirPath, fileNames, opts.StatBatchThreshold, opts.StatShards)

	for _, rec := range recs {
		if rec.IsDir() {
			dirNames = append(dirNames, rec.Name)

			continue
		}

		full := filepath.Join(dirPath, rec.Name)
		if !matchInclude(opts.Include, full) {
			continue
		}

		creditEntry(result, hl, rec)

		processed++
		if opts.ProgressTick > 0 && processed%int64(opts.ProgressTick) == 0 && onEntry != nil {
			onEntry(processed, result.totalSize(), dirPath)
		}
	}

	// Step 3: stat dirs, submit children, credit the directory-inode entry
	// in the parent subject to the include filter (but always submit).
	dirRecs, _ := statBatch(dirPath, dirNames, opts.StatBatchThreshold, opts.StatShards)

	children := make([]WorkItem, 0, len(dirRecs))

	for _, rec := range dirRecs {
		full := filepath.Join(dirPath, rec.Name)

		child := WorkItem{
			ParentPath:  dirPath,
			Name:        rec.Name,
			ParentInode: item.Inode,
			Inode:       rec.Inode,
		}

		if matchInclude(opts.Include, full) {
			creditEntry(result, hl, rec)
		}

		children = append(children, child)
	}

	if onEntry != nil {
		onEntry(processed, result.totalSize(), dirPath)
	}

	return result, children, nil
}

func matchInclude(include *regexp.Regexp, path string) bool {
	if include == nil {
		return true
	}

	return include.MatchString(path)
}

func creditEntry(result DirResult, hl *hardLinkSet, rec StatRecord) {
	result.FilesByUID[rec.UID]++

	if hl.creditSize(rec.Inode, rec.Nlink) {
		result.SizeByUID[rec.UID] += rec.Size
	}
}

func (d DirResult) totalSize() int64 {
	var total int64
	for _, v := range d.SizeByUID {
		total += v
	}

	return total
}

// classifyDispatchError maps an open/enumerate failure on a WorkItem's
// directory into a warning or a fatal error: EACCES and ENOENT are warnings
// (logged, traversal continues via an ErrResult), any other errno is fatal
// for the worker.
func classifyDispatchError(path string, err error) (warn bool, msg string, fatal error) {
	switch {
	case errors.Is(err, syscall.EACCES):
		return true, "# access denied to directory " + path, nil
	case errors.Is(err, syscall.ENOENT):
		return true, "# could not access dir,file or file in dir " + path, nil
	default:
		return false, "", err
	}
}

// trimTrailingSlash is a small helper kept for path hygiene when joining
// roots; filepath.Join already does this but callers that build paths by
// concatenation (WorkItem.Path) benefit from a defensive normalize.
func trimTrailingSlash(p string) string {
	return strings.TrimRight(p, "/")
}
