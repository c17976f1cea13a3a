package uniprot

import (
	"context"
	"io"

	"uniprotstream/core/frame"
	"uniprotstream/core/xmlerr"
	"uniprotstream/internal/pipeline"
)

// Parse is the stream parser (spec.md §6): it verifies r's root
// element against flavour, then returns an Iterator backed by the
// parallel driver — decode workers run on background goroutines until
// the Iterator is exhausted or closed. ctx governs cancellation of
// the whole pipeline; callers that don't need cancellation can pass
// context.Background().
func Parse(ctx context.Context, r io.Reader, flavour Flavour, opts ...Option) (*Iterator, error) {
	o := newOptions(opts)
	splitter, err := frame.NewSplitter(r, flavour.roots()...)
	if err != nil {
		return nil, err
	}
	par := pipeline.NewParallel(ctx, splitter, decoderFor(flavour, o), o.pipelineConfig())
	return &Iterator{d: par}, nil
}

// ParseSequential is the same stream parser as Parse, but decodes
// every entry on the calling goroutine with no background workers.
// Use it when determinism of scheduling matters more than throughput,
// or when the caller's environment has no goroutine budget to spare.
func ParseSequential(r io.Reader, flavour Flavour, opts ...Option) (*Iterator, error) {
	o := newOptions(opts)
	splitter, err := frame.NewSplitter(r, flavour.roots()...)
	if err != nil {
		return nil, err
	}
	seq := pipeline.NewSequential(splitter, decoderFor(flavour, o))
	return &Iterator{d: seq}, nil
}

// ParseOne is the single-entry parser (spec.md §6): it decodes exactly
// one entry from r, which must be positioned at the start of one
// complete <entry> document wrapped in its flavour's root element
// (used for single-record REST responses, where the caller already
// has one entry's worth of XML rather than a whole dump).
func ParseOne(r io.Reader, flavour Flavour, opts ...Option) (any, error) {
	it, err := ParseSequential(r, flavour, opts...)
	if err != nil {
		return nil, err
	}
	if !it.Next() {
		if it.Err() != nil {
			return nil, it.Err()
		}
		return nil, xmlerr.New(xmlerr.KindTruncatedEntry, "no entry found in input")
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return it.Entry(), nil
}
