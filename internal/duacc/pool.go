package duacc

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gammazero/workerpool"
)

// pool is a fixed set of W goroutines pulling submitted tasks from
// gammazero/workerpool's internal queue. Each accountant invocation
// recursively Submits its own discovered children, which is exactly the
// re-entrant-submit usage the library supports.
type pool struct {
	wp      *workerpool.WorkerPool
	workers int
	stripes *hardLinkStripes
	slot    int64 // atomic round-robin counter assigning stripe/coordinator slots
}

func newPool(workers int) *pool {
	if workers < 1 {
		workers = 1
	}

	return &pool{
		wp:      workerpool.New(workers),
		workers: workers,
		stripes: newHardLinkStripes(workers),
	}
}

func (p *pool) nextSlot() int {
	n := atomic.AddInt64(&p.slot, 1) - 1

	return int(n) % p.workers
}

// submit enqueues item for accounting. coord receives the termination
// protocol messages; resultCh receives the DirResult/ErrResult; fatal
// records the first non-warning error encountered, if any.
func (p *pool) submit(item WorkItem, opts Options, coord *coordinator, resultCh chan<- any, fatal *firstError) {
	var process func(WorkItem)

	process = func(item WorkItem) {
		slot := p.nextSlot()
		hl := p.stripes.forStripe(slot)

		onEntry := func(count, size int64, path string) {
			select {
			case coord.state <- progressMsg{path: path, count: count, size: size}:
			default:
			}
		}

		result, children, err := accountDir(item, opts, hl, onEntry)
		if err != nil {
			warn, msg, fatalErr := classifyDispatchError(item.Path(), err)

			switch {
			case warn:
				fmt.Fprintln(os.Stderr, msg)
			case fatalErr != nil:
				fatal.set(fatalErr)
			}

			coord.state <- dirStateMsg{workerID: slot, submitted: 0}
			resultCh <- ErrResult{Path: item.Path(), Err: err}

			return
		}

		coord.state <- dirStateMsg{workerID: slot, submitted: len(children)}
		resultCh <- result

		for _, child := range children {
			child := child

			p.wp.Submit(func() { process(child) })
		}
	}

	p.wp.Submit(func() { process(item) })
}

func (p *pool) stopWait() {
	p.wp.StopWait()
}

// firstError captures the first fatal error reported by any worker.
type firstError struct {
	mu  sync.Mutex
	err error
}

func (f *firstError) set(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err == nil {
		f.err = err
	}
}

func (f *firstError) get() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.err
}
