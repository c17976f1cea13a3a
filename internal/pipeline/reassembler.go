package pipeline

// reassembler serialises out-of-order ResultItems from the worker pool
// back into document order. Its pending buffer is a plain map: the
// reassembler is the only goroutine that touches it, so no
// synchronisation is needed (spec.md §4.4's "ordering reassembler").
type reassembler struct {
	in      <-chan ResultItem
	out     chan<- ResultItem
	pending map[uint64]ResultItem
	next    uint64
}

func newReassembler(in <-chan ResultItem, out chan<- ResultItem) *reassembler {
	return &reassembler{in: in, out: out, pending: make(map[uint64]ResultItem)}
}

// run drains in until it closes, forwarding items to out strictly in
// sequence-number order. On the first error reaching the front of the
// order, run forwards that one error and then discards everything else
// still in flight — matching spec.md §4.4's deterministic-error-position
// rule ("items with higher sequence are discarded") — rather than
// resuming the parallel driver at the next entry; a caller that needs
// to keep going past a decode error uses the sequential driver instead.
func (r *reassembler) run() {
	defer close(r.out)
	for item := range r.in {
		r.pending[item.Seq] = item
		for {
			next, ok := r.pending[r.next]
			if !ok {
				break
			}
			delete(r.pending, r.next)
			r.next++
			r.out <- next
			if next.Err != nil {
				r.discardRemaining()
				return
			}
		}
	}
}

// discardRemaining drains in without forwarding anything, so producer
// and worker goroutines blocked on a channel send can still exit.
func (r *reassembler) discardRemaining() {
	for range r.in {
	}
}
