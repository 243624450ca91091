package duacc

import "regexp"

// WorkItem is one pending directory: either an injected root or a
// subdirectory discovered by an Accountant. It carries an absolute path so
// workers never depend on a process-wide working directory.
//
// Name dual-purposes as the display name the path roll-up joins: for roots
// it is the (cleaned) argument the user typed, e.g. "R" or ".";
// for discovered children it is the bare directory name. AbsPath, when
// set, is the actual filesystem path to open — used only for roots, since
// a root's display name and its on-disk path may differ (relative args,
// ".", symlinked mount points). Children derive their on-disk path from
// ParentPath, which is always absolute once accounting begins.
type WorkItem struct {
	ParentPath  string // absolute on-disk path of the parent directory
	Name        string // display name: root argument, or child basename
	ParentInode uint64 // synthetic 0 for roots
	Inode       uint64
	AbsPath     string // on-disk path override, set only for roots
}

// Path returns the absolute on-disk path this work item refers to.
func (w WorkItem) Path() string {
	if w.AbsPath != "" {
		return w.AbsPath
	}

	return w.ParentPath + "/" + w.Name
}

// DirResult is the direct (non-rolled-up) tally for one successfully
// accounted directory.
type DirResult struct {
	Name        string
	ParentInode uint64
	Inode       uint64
	FilesByUID  map[uint32]int64
	SizeByUID   map[uint32]int64
}

// ErrResult signals that a directory could not be accounted. It carries no
// tally and is consumed only for termination counting.
type ErrResult struct {
	Path string
	Err  error
}

// Options configures a traversal: root set, filters, limits, and
// concurrency knobs consumed by Run.
type Options struct {
	Roots []string

	Workers int // W, lower-bounded at 1

	Exclude *regexp.Regexp // end-of-path anchored; matches are dropped entirely
	Include *regexp.Regexp // end-of-path anchored; non-matches are skipped/uncredited

	ExcludeSubdirs bool // disable subtree roll-up
	PerUser        bool // split output rows by UID

	MaxDepth  int   // inclusive cap, default is effectively unlimited
	FileLimit int64 // minimum file count to emit a row
	SizeLimit int64 // minimum byte count to emit a row

	StatusInterval     float64 // seconds between progress ticks; <=0 disables
	StatusIsTTY        bool    // clear the terminal line before each progress line
	StatBatchThreshold int     // names count above which the batcher shards
	StatShards         int     // number of auxiliary stat shards
	ProgressTick       int     // entries between progress ticks within one directory
}

// DefaultOptions returns an Options populated with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Workers:            8,
		MaxDepth:           1 << 30,
		StatBatchThreshold: 1000,
		StatShards:         2,
		ProgressTick:       10000,
	}
}
