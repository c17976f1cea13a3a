// Package xmlerr defines the error taxonomy shared by every stage of the
// UniProt decoding pipeline: frame splitting, entry decoding, and the
// drivers that sequence the two.
package xmlerr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies why a parse failed. Kinds are not Go error types: a
// single Error value carries one Kind plus a message and, for decode
// failures, the element path that led to the offending node.
type Kind int

const (
	// KindIO means the underlying reader returned an error.
	KindIO Kind = iota
	// KindRootMismatch means the document's root element was not one of
	// the names expected for the requested flavour.
	KindRootMismatch
	// KindMalformedXML means the byte stream violated XML syntax: an
	// unbalanced tag, an unterminated comment or CDATA section, or a
	// stray '<'.
	KindMalformedXML
	// KindTruncatedEntry means the stream ended before an entry's end
	// tag was seen.
	KindTruncatedEntry
	// KindDecode means the frame was well-formed XML but semantically
	// invalid: a missing mandatory child, an out-of-range integer, a
	// malformed date, or an unrecognised closed-set enum value.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindRootMismatch:
		return "root-mismatch"
	case KindMalformedXML:
		return "malformed-xml"
	case KindTruncatedEntry:
		return "truncated-entry"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced to callers of this module. It
// unwraps to the underlying cause via errors.Unwrap, so callers can still
// use errors.Is/errors.As against wrapped stdlib or I/O errors.
type Error struct {
	Kind    Kind
	Message string
	// Path holds the element names from the entry root down to the node
	// that failed, for KindDecode errors only. Empty for every other kind.
	Path []string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Path) > 0 {
		b.WriteString(" (at ")
		b.WriteString(strings.Join(e.Path, "/"))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no wrapped cause and no path.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error that carries cause as its underlying error.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: errors.WithStack(cause)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
