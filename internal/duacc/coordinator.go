package duacc

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// dirStateMsg reports that a worker finished one directory and submitted
// `submitted` children for it.
type dirStateMsg struct {
	workerID  int
	submitted int
}

// progressMsg is a periodic tick carrying the entry count and byte total
// accumulated so far within the directory currently being processed.
type progressMsg struct {
	path  string
	count int64
	size  int64
}

// coordinator implements termination detection for the traversal: it owns a
// (submitted[i], done[i]) pair per worker slot and detects quiescence —
// sum(submitted) == sum(done) — after every dirStateMsg. On quiescence it
// sends the total completed work count on doneCh and returns.
type coordinator struct {
	workers int
	state   chan any // dirStateMsg | progressMsg
	doneCh  chan int // total_work = sum(done) once quiescent

	statusInterval time.Duration
	stderr         *os.File
	isTTY          bool // clear the terminal line before each progress line; lines still end in a newline
}

func newCoordinator(workers int, statusInterval time.Duration, isTTY bool) *coordinator {
	return &coordinator{
		workers:        workers,
		state:          make(chan any, 1024),
		doneCh:         make(chan int, 1),
		statusInterval: statusInterval,
		stderr:         os.Stderr,
		isTTY:          isTTY,
	}
}

// run is the coordinator's single goroutine. seedRoots is the number of
// root directories R, injected directly rather than submitted as anyone's
// child; submitted[0] is seeded with R before any worker starts, so that
// each root's own dirStateMsg balances the seed exactly once. Every
// directory, root or child, contributes exactly one done and is counted
// as a child exactly once in some submitted total (roots are counted via
// the seed, descendants via their parent's dirStateMsg.submitted), so
// quiescence (sum(submitted) == sum(done)) fires precisely when all R
// roots and every directory they transitively discovered have reported.
func (c *coordinator) run(seedRoots int) {
	submitted := make([]int64, c.workers)
	done := make([]int64, c.workers)
	submitted[0] += int64(seedRoots)

	var (
		lastReport   time.Time
		cumCount     int64
		cumSize      int64
		lastCumCount int64
		lastPath     string
	)

	var tickCh <-chan time.Time

	if c.statusInterval > 0 {
		ticker := time.NewTicker(c.statusInterval)
		defer ticker.Stop()

		tickCh = ticker.C
	}

	for {
		select {
		case msg, ok := <-c.state:
			if !ok {
				return
			}

			switch m := msg.(type) {
			case dirStateMsg:
				submitted[m.workerID] += int64(m.submitted)
				done[m.workerID]++

				if sumInt64(submitted) == sumInt64(done) {
					total := sumInt64(done)
					c.doneCh <- int(total)

					return
				}
			case progressMsg:
				cumCount = m.count
				cumSize = m.size
				lastPath = m.path
			}
		case now := <-tickCh:
			if lastReport.IsZero() {
				lastReport = now
				lastCumCount = cumCount

				continue
			}

			elapsed := now.Sub(lastReport).Seconds()
			if elapsed <= 0 {
				continue
			}

			rate := float64(cumCount-lastCumCount) / elapsed

			prefix := ""
			if c.isTTY {
				prefix = "\r\033[2K"
			}

			fmt.Fprintf(c.stderr, "%s# %5.0f files/s %6d %4s %s\n",
				prefix, rate, cumCount, humanize.IBytes(uint64(cumSize)), lastPath)

			lastReport = now
			lastCumCount = cumCount
		}
	}
}

func sumInt64(vs []int64) int64 {
	var total int64
	for _, v := range vs {
		total += v
	}

	return total
}
