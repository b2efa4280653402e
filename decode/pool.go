package decode

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/cktk/dwv/codec"
)

// DefaultWorkers is the worker-pool capacity when Config.Workers is unset.
const DefaultWorkers = 10

// completion is one finished task crossing from a worker slot to the
// collector.
type completion struct {
	index  int
	pixels PixelBuffer
	err    error
}

// workerPool runs up to capacity decode tasks concurrently. Tasks beyond
// capacity queue in submission order and start as slots free. All lifecycle
// events except decode-start are emitted from the collector goroutine, which
// serializes them and enforces the completion-counting invariants. The pool
// is scoped to one batch.
type workerPool struct {
	engines  map[codec.Algorithm]codec.Decoder
	events   *events
	capacity int
	log      *slog.Logger

	startOnce sync.Once
	abortOnce sync.Once
	started   atomic.Bool
	ended     atomic.Bool

	ctx     context.Context
	cancel  context.CancelFunc
	tasks   chan Task
	results chan completion

	total     int
	submitted int
}

func newWorkerPool(engines map[codec.Algorithm]codec.Decoder, ev *events, capacity int, log *slog.Logger) *workerPool {
	if capacity <= 0 {
		capacity = DefaultWorkers
	}
	return &workerPool{
		engines:  engines,
		events:   ev,
		capacity: capacity,
		log:      log,
	}
}

func (p *workerPool) decode(t Task) {
	if p.ended.Load() {
		return
	}
	p.startOnce.Do(func() { p.start(t.Total) })

	if p.submitted >= p.total {
		p.log.Warn("task beyond declared batch total dropped", "index", t.Index)
		return
	}
	p.submitted++
	p.tasks <- t // buffered to the batch total, never blocks
}

// start spins up the slot goroutines and the collector on the first
// submitted task.
func (p *workerPool) start(total int) {
	p.total = total
	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.tasks = make(chan Task, total)
	p.results = make(chan completion, total)

	slots := p.capacity
	if total < slots {
		slots = total
	}
	for i := 0; i < slots; i++ {
		go p.worker()
	}
	go p.collect()

	p.started.Store(true)
	p.log.Info("decode pool started", "slots", slots, "frames", total)
	p.events.start()
}

// worker is one pool slot: take a task, run it, hand the completion to the
// collector, repeat until the batch is cancelled.
func (p *workerPool) worker() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case t := <-p.tasks:
			pixels, err := runTask(p.ctx, p.engines, t)
			if p.ctx.Err() != nil {
				return
			}
			select {
			case p.results <- completion{index: t.Index, pixels: pixels, err: err}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// collect owns the batch counters. Delivered frames count toward all-decoded;
// delivered plus failed count toward decode-end. Abort preempts both and
// still terminates with decode-end.
func (p *workerPool) collect() {
	defer p.ended.Store(true)

	delivered, finished := 0, 0
	for {
		select {
		case <-p.ctx.Done():
			p.log.Info("decode pool aborted", "delivered", delivered, "of", p.total)
			p.events.abort()
			p.events.end()
			return
		case c := <-p.results:
			finished++
			if c.err != nil {
				p.log.Debug("frame decode failed", "index", c.index, "error", c.err)
				p.events.fail(c.index, c.err)
			} else {
				delivered++
				p.events.item(Frame{Index: c.index, Pixels: c.pixels})
				if delivered == p.total {
					p.events.all()
				}
			}
			if finished == p.total {
				p.cancel() // release the slots
				p.log.Info("decode pool finished", "delivered", delivered, "of", p.total)
				p.events.end()
				return
			}
		}
	}
}

// abort cancels all running and queued tasks. Exactly one abort event is
// emitted for the whole pool, followed by the end event; once the batch has
// ended, abort is a no-op.
func (p *workerPool) abort() {
	p.abortOnce.Do(func() {
		if !p.started.Load() {
			p.ended.Store(true)
			p.events.abort()
			p.events.end()
			return
		}
		p.cancel()
	})
}
