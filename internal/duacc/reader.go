package duacc

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

// readerBatch is the number of entries pulled from the OS per ReadDir call.
// Keeping this small (rather than calling ReadDir(-1)) is what lets a
// directory with millions of entries stream instead of being slurped into
// memory at once.
const readerBatch = 512

// dirEntry is the lazy (name, dtype) pair the Directory Reader yields.
// kind reflects the filesystem's d_type when the OS reports it;
// dirKindUnknown means the caller must stat to learn the kind.
type dirEntry struct {
	name string
	kind dirKind
}

type dirKind int

const (
	dirKindUnknown dirKind = iota
	dirKindDir
	dirKindOther
)

// readDirStream opens path and invokes fn for every entry other than "."
// and "..", in batches, never materializing the full listing. It returns
// the open error (a directory-level concern handled by the caller) or the
// first error encountered mid-iteration.
func readDirStream(path string, fn func(dirEntry) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		entries, readErr := f.ReadDir(readerBatch)
		for _, e := range entries {
			if name := e.Name(); name == "." || name == ".." {
				continue
			}

			if err := fn(toDirEntry(e)); err != nil {
				return err
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}

			return readErr
		}

		if len(entries) == 0 {
			return nil
		}
	}
}

func toDirEntry(e fs.DirEntry) dirEntry {
	switch {
	case e.IsDir():
		return dirEntry{name: e.Name(), kind: dirKindDir}
	case e.Type()&fs.ModeType == 0:
		return dirEntry{name: e.Name(), kind: dirKindOther}
	default:
		// Symlinks, sockets, devices, etc. are not directories; they still
		// need an lstat pass to be accounted for as regular-or-not, but we
		// already know they are not DIR.
		return dirEntry{name: e.Name(), kind: dirKindOther}
	}
}
