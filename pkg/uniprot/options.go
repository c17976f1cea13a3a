// Package uniprot is the public API of this module: parse UniProtKB,
// UniRef and UniParc XML dumps into typed entry records via a
// streaming, bounded-memory iterator, either sequentially or with a
// pool of decode workers. There is no cmd/ package; this module is
// consumed as a library.
package uniprot

import (
	"uniprotstream/core/model"
	"uniprotstream/internal/pipeline"
)

// Options carries every recognised tunable (spec.md §6). A raw zero
// value has InternShortStrings false; callers that build Options by
// hand rather than through newOptions (every exported entry point
// does the latter) must set it explicitly if they want interning.
// Once constructed via Parse/ParseSequential/ParseOne or
// config.Load, worker_count defaults to host CPU count,
// channel_capacity to 4*worker_count, and intern_short_strings
// defaults on; expose_url_type always defaults off.
type Options struct {
	WorkerCount        int
	ChannelCapacity    int
	InternShortStrings bool
	ExposeURLType      bool
}

// Option mutates an Options value under construction, mirroring the
// teacher's cli.Options functional-option aggregate.
type Option func(*Options)

// WithWorkerCount sets the number of decode workers used by Parse. It
// has no effect on ParseSequential or ParseOne.
func WithWorkerCount(n int) Option {
	return func(o *Options) { o.WorkerCount = n }
}

// WithChannelCapacity sets the work/result channel bound used by
// Parse.
func WithChannelCapacity(n int) Option {
	return func(o *Options) { o.ChannelCapacity = n }
}

// WithInternShortStrings enables or disables the string intern pool.
func WithInternShortStrings(enabled bool) Option {
	return func(o *Options) { o.InternShortStrings = enabled }
}

// WithExposeURLType enables or disables structured URL parsing for
// link fields in online-information records.
func WithExposeURLType(enabled bool) Option {
	return func(o *Options) { o.ExposeURLType = enabled }
}

// newOptions builds an Options value with intern_short_strings on by
// default (spec.md §6), then applies opts in order.
func newOptions(opts []Option) Options {
	o := Options{InternShortStrings: true}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

func (o Options) decodeOptions() model.Options {
	return model.Options{
		InternShortStrings: o.InternShortStrings,
		ExposeURLType:      o.ExposeURLType,
	}
}

func (o Options) pipelineConfig() pipeline.Config {
	return pipeline.Config{
		WorkerCount:     o.WorkerCount,
		ChannelCapacity: o.ChannelCapacity,
	}
}
