package model

// Options carries the decode-time tunables from spec.md §6 that affect
// a single frame's decode (as opposed to pipeline-level tunables like
// worker_count, which never reach a decoder). It is a plain value, not
// global state, threaded explicitly into every Decode call.
type Options struct {
	// InternShortStrings routes enum-like attribute and short text
	// values through an intern.Pool instead of allocating a fresh
	// string per occurrence.
	InternShortStrings bool
	// ExposeURLType additionally parses the uri attribute of a
	// UniProtKB comment's <link> child into net/url.URL; the raw string
	// is kept either way. No other value is parsed as a URL.
	ExposeURLType bool
}
