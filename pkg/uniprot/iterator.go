package uniprot

import "io"

// driver is the pull interface both the sequential and parallel
// pipeline drivers satisfy; Iterator hides which one is in play behind
// it.
type driver interface {
	Next() bool
	Entry() any
	Err() error
}

// closer is implemented by drivers that own background goroutines and
// need an explicit teardown (currently only *pipeline.Parallel).
type closer interface {
	Close() error
}

// Iterator is the Result Iterator (spec.md §2 component 6): a
// pull-style cursor over decoded entries in document order, backed by
// either driver. Calling Next advances the cursor; Entry/Err report
// the outcome of the most recent Next call. The zero value is not
// usable; build one with Parse or ParseSequential.
type Iterator struct {
	d driver
}

// Next advances to the next entry. It returns false once the stream
// is exhausted. A successfully decoded entry and a per-entry decode
// error both return true; callers distinguish the two via Err.
// A terminal (splitter-level) error is reported differently by the
// two drivers: the sequential driver returns false with Err set,
// while the parallel driver returns true with Err set. The parallel
// driver returns false on every call after any error, decode errors
// included; the sequential driver continues after a decode error.
func (it *Iterator) Next() bool { return it.d.Next() }

// Entry returns the entry decoded by the most recent Next call. Its
// concrete type is uniprotkb.Entry, uniref.Entry or uniparc.Entry
// depending on the Flavour the Iterator was built with.
func (it *Iterator) Entry() any { return it.d.Entry() }

// Err returns the error surfaced by the most recent Next call, if
// any.
func (it *Iterator) Err() error { return it.d.Err() }

// Close releases any background goroutines the iterator owns. It is a
// no-op for a sequential iterator, which owns none. Safe to call more
// than once.
func (it *Iterator) Close() error {
	if c, ok := it.d.(closer); ok {
		return c.Close()
	}
	return nil
}

var _ io.Closer = (*Iterator)(nil)
