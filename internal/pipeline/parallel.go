package pipeline

import (
	"context"
	"io"
	"runtime"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"uniprotstream/core/frame"
	"uniprotstream/internal/log"
)

// Config controls the parallel driver's topology, mirroring spec.md §6's
// worker_count/channel_capacity options.
type Config struct {
	WorkerCount     int // number of decode workers (>=1). 0 means host CPU count.
	ChannelCapacity int // bound on the jobs/results channels. 0 means 4*WorkerCount.
}

func (c Config) normalized() Config {
	if c.WorkerCount < 1 {
		c.WorkerCount = runtime.NumCPU()
	}
	if c.ChannelCapacity < 1 {
		c.ChannelCapacity = 4 * c.WorkerCount
	}
	return c
}

// Parallel composes a producer goroutine (running the splitter), a pool
// of decode-worker goroutines, and a reassembler goroutine that
// serialises results back into document order, per spec.md §4.4.
type Parallel struct {
	cancel context.CancelFunc
	eg     *errgroup.Group
	out    <-chan ResultItem

	producerAlive *atomic.Bool
	fatal         *atomic.Bool

	cur    ResultItem
	done   bool
	closed bool
}

// NewParallel starts the pipeline immediately: a producer goroutine
// drives splitter, workerCount decode workers consume its output, and a
// reassembler goroutine restores document order. ctx governs
// cancellation of the whole pipeline (caller-supplied, since this is a
// library with no owning CLI context).
func NewParallel(ctx context.Context, splitter *frame.Splitter, decode Decoder, cfg Config) *Parallel {
	cfg = cfg.normalized()
	ctx, cancel := context.WithCancel(ctx)
	eg, egCtx := errgroup.WithContext(ctx)

	jobs := make(chan frame.Frame, cfg.ChannelCapacity)
	results := make(chan ResultItem, cfg.ChannelCapacity)
	out := make(chan ResultItem, cfg.ChannelCapacity)

	producerAlive := atomic.NewBool(true)
	fatal := atomic.NewBool(false)

	log.Logger.Debug().Int("workers", cfg.WorkerCount).Int("channel_capacity", cfg.ChannelCapacity).Msg("parallel driver starting")

	eg.Go(func() error {
		defer close(jobs)
		defer producerAlive.Store(false)
		for {
			seq := splitter.NextSeq()
			f, err := splitter.Next()
			if err == io.EOF {
				log.Logger.Debug().Uint64("frames", seq).Msg("producer reached end of stream")
				return nil
			}
			if err != nil {
				fatal.Store(true)
				log.Logger.Error().Err(err).Uint64("seq", seq).Msg("producer observed a terminal splitter error")
				// The terminal error is in-band data, not an errgroup
				// failure: returning err here would cancel egCtx and
				// make every worker abandon whatever is still buffered
				// in jobs, so frames already produced ahead of this
				// error would never reach the reassembler and it could
				// never advance far enough to emit the error itself.
				// Returning nil instead lets the deferred close(jobs)
				// drain the pool normally, so every prior frame (and
				// then this error, in its correct sequence position)
				// reaches the reassembler.
				select {
				case results <- ResultItem{Seq: seq, Err: err}:
				case <-egCtx.Done():
				}
				return nil
			}
			select {
			case jobs <- f:
			case <-egCtx.Done():
				return egCtx.Err()
			}
		}
	})

	for i := 0; i < cfg.WorkerCount; i++ {
		eg.Go(func() error {
			for {
				select {
				case f, ok := <-jobs:
					if !ok {
						return nil
					}
					entry, derr := decode(f.Data)
					item := ResultItem{Seq: f.Seq, Entry: entry, Err: derr}
					select {
					case results <- item:
					case <-egCtx.Done():
						return egCtx.Err()
					}
				case <-egCtx.Done():
					return egCtx.Err()
				}
			}
		})
	}

	go func() {
		_ = eg.Wait()
		close(results)
	}()

	reasm := newReassembler(results, out)
	go reasm.run()

	return &Parallel{
		cancel:        cancel,
		eg:            eg,
		out:           out,
		producerAlive: producerAlive,
		fatal:         fatal,
	}
}

// Next advances to the next item in document order. An item carrying an
// error (splitter-level or decode) is returned with true, Err set;
// every call after that, and every call once the stream is exhausted,
// returns false (the parallel driver halts on any error to honour the
// deterministic-error-position / discard-later-items rule; see
// reassembler.run).
func (p *Parallel) Next() bool {
	if p.done {
		return false
	}
	item, ok := <-p.out
	if !ok {
		p.done = true
		return false
	}
	p.cur = item
	if item.Err != nil {
		p.done = true
	}
	return true
}

// Entry returns the most recently yielded entry, or nil if the last
// Next call surfaced an error.
func (p *Parallel) Entry() any { return p.cur.Entry }

// Err returns the error surfaced by the most recent Next call, if any.
func (p *Parallel) Err() error { return p.cur.Err }

// ProducerAlive reports whether the producer goroutine is still running
// the splitter. Exposed for tests that assert on spec.md §3's pipeline
// state rather than on goroutine internals.
func (p *Parallel) ProducerAlive() bool { return p.producerAlive.Load() }

// FatalErrorLatched reports whether a splitter-level (terminal) error
// has been observed by the producer.
func (p *Parallel) FatalErrorLatched() bool { return p.fatal.Load() }

// Close cancels the pipeline and blocks until the producer, every
// worker, and the reassembler have exited, draining any buffered
// results so none of those goroutines is left blocked on a channel
// send. Safe to call more than once; idempotent.
func (p *Parallel) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.cancel()
	for range p.out {
	}
	err := p.eg.Wait()
	log.Logger.Debug().Err(err).Msg("parallel driver closed")
	return err
}
