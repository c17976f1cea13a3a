package pipeline

import (
	"io"

	"uniprotstream/core/frame"
)

// Sequential composes splitter + decoder directly: calling Next drives
// the splitter until one frame is produced, feeds that frame to the
// decoder, and returns the result on the calling goroutine. It owns no
// background goroutine.
type Sequential struct {
	splitter *frame.Splitter
	decode   Decoder

	cur  any
	err  error
	done bool
}

// NewSequential builds a Sequential driver reading frames from splitter
// (whose root element has already been verified) and decoding each
// entry frame with decode.
func NewSequential(splitter *frame.Splitter, decode Decoder) *Sequential {
	return &Sequential{splitter: splitter, decode: decode}
}

// Next advances to the next item. It returns false once the stream is
// exhausted or a splitter-level (terminal) error has occurred. It
// returns true for both a successfully decoded entry and a per-entry
// decode error — callers distinguish the two via Err.
func (s *Sequential) Next() bool {
	if s.done {
		return false
	}
	f, ferr := s.splitter.Next()
	if ferr == io.EOF {
		s.done = true
		s.cur, s.err = nil, nil
		return false
	}
	if ferr != nil {
		s.done = true
		s.cur, s.err = nil, ferr
		return false
	}
	entry, derr := s.decode(f.Data)
	s.cur, s.err = entry, derr
	return true
}

// Entry returns the most recently yielded entry, or nil if the last
// Next call surfaced an error.
func (s *Sequential) Entry() any { return s.cur }

// Err returns the error surfaced by the most recent Next call, if any.
func (s *Sequential) Err() error { return s.err }
