package duacc

import (
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// StatRecord is the subset of lstat(2) fields the Accountant needs.
type StatRecord struct {
	Name  string
	Mode  uint32
	Size  int64
	Inode uint64
	Nlink uint64
	UID   uint32
}

// IsDir reports whether the stat mode bits indicate a directory. The
// Accountant uses this to rescue entries whose d_type hint was unavailable.
func (r StatRecord) IsDir() bool {
	return r.Mode&unix.S_IFMT == unix.S_IFDIR
}

// statFailure is returned alongside the records for names that could not be
// stat'd; the Accountant treats these as non-fatal omissions.
type statFailure struct {
	Name string
	Err  error
}

// statBatch lstats every name in names, which live inside dir, and returns
// exactly one StatRecord per name that could be stat'd plus one statFailure
// per name that could not. At or below threshold names the caller's own
// goroutine does all the work; above it, the batch is split into shards
// auxiliary goroutines process concurrently, each collecting into its own
// slice, and the slices are concatenated once every shard has finished, so
// a single huge directory's stat pass is not serialized.
func statBatch(dir string, names []string, threshold, shards int) ([]StatRecord, []statFailure) {
	if shards < 1 {
		shards = 1
	}

	if len(names) <= threshold || shards == 1 {
		return statSequential(dir, names)
	}

	type partial struct {
		recs  []StatRecord
		fails []statFailure
	}

	chunks := chunkNames(names, shards)
	results := make([]partial, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)

		go func(i int, chunk []string) {
			defer wg.Done()

			recs, fails := statSequential(dir, chunk)
			results[i] = partial{recs: recs, fails: fails}
		}(i, chunk)
	}
	wg.Wait()

	var recs []StatRecord
	var fails []statFailure

	for _, r := range results {
		recs = append(recs, r.recs...)
		fails = append(fails, r.fails...)
	}

	return recs, fails
}

func statSequential(dir string, names []string) ([]StatRecord, []statFailure) {
	recs := make([]StatRecord, 0, len(names))

	var fails []statFailure

	for _, name := range names {
		var st unix.Stat_t

		full := filepath.Join(dir, name)
		if err := unix.Lstat(full, &st); err != nil {
			fails = append(fails, statFailure{Name: name, Err: err})

			continue
		}

		recs = append(recs, StatRecord{
			Name:  name,
			Mode:  st.Mode,
			Size:  st.Size,
			Inode: st.Ino,
			Nlink: uint64(st.Nlink), //nolint:unconvert // Nlink width varies by platform
			UID:   st.Uid,
		})
	}

	return recs, fails
}

func chunkNames(names []string, shards int) [][]string {
	if shards > len(names) {
		shards = len(names)
	}

	if shards < 1 {
		shards = 1
	}

	chunks := make([][]string, 0, shards)
	base := len(names) / shards
	rem := len(names) % shards

	idx := 0
	for i := 0; i < shards; i++ {
		n := base
		if i < rem {
			n++
		}

		chunks = append(chunks, names[idx:idx+n])
		idx += n
	}

	return chunks
}
