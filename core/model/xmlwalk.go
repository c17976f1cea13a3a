package model

import (
	"encoding/xml"
	"io"

	"uniprotstream/core/intern"
	"uniprotstream/core/xmlerr"
)

// Walker drives a pull-style token stream over one frame and tracks the
// element path (root to current node) so decode errors can report it.
// It is the shared scaffolding every flavour decoder's hand-written
// per-element branches sit on top of.
type Walker struct {
	dec  *xml.Decoder
	pool *intern.Pool
	opts Options
	path []string
}

// NewWalker builds a Walker over frame, interning attribute/text values
// through pool (which may be nil to disable interning) and carrying
// opts so decoders can branch on expose_url_type without needing it
// threaded through every helper signature.
func NewWalker(frame []byte, pool *intern.Pool, opts Options) *Walker {
	dec := xml.NewDecoder(byteReader(frame))
	dec.Strict = true
	return &Walker{dec: dec, pool: pool, opts: opts}
}

// Opts returns the decode options this walker was built with.
func (w *Walker) Opts() Options { return w.opts }

// Path returns the current element path, root-to-current, read-only.
func (w *Walker) Path() []string { return w.path }

// Intern returns s unchanged if the walker has no pool, else its interned
// copy.
func (w *Walker) Intern(s string) string {
	if w.pool == nil {
		return s
	}
	return w.pool.Intern(s)
}

// Token returns the next raw token, translating io.EOF into itself (the
// caller checks for io.EOF explicitly, same as encoding/xml's contract).
func (w *Walker) Token() (xml.Token, error) {
	return w.dec.Token()
}

// Errf builds a decode error at the walker's current path.
func (w *Walker) Errf(format string, args ...any) *xmlerr.Error {
	return DecodeErrorf(w.path, format, args...)
}

// Push appends name to the path; call on entering an element, paired with
// a deferred Pop.
func (w *Walker) Push(name string) { w.path = append(w.path, name) }

// Pop removes the last path element; call on leaving it.
func (w *Walker) Pop() {
	if len(w.path) > 0 {
		w.path = w.path[:len(w.path)-1]
	}
}

// Attr looks up an attribute by local name (namespace ignored: UniProt
// dumps never put schema-meaningful attributes in a non-default
// namespace).
func Attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// RequireAttr reads a mandatory attribute, failing with a decode error
// naming the missing attribute if absent.
func (w *Walker) RequireAttr(se xml.StartElement, name string) (string, error) {
	v, ok := Attr(se, name)
	if !ok {
		return "", w.Errf("missing required attribute %q", name)
	}
	return w.Intern(v), nil
}

// Text reads character data up to and including the matching end element
// for the element just opened (se must have been the most recently
// returned StartElement). Nested elements are not expected inside a pure
// text leaf; any child start element is treated as malformed-for-decode
// and reported with a decode error rather than silently discarded, since
// it signals the schema assumption (leaf text content) was wrong.
func (w *Walker) Text(se xml.StartElement) (string, error) {
	var text string
	for {
		tok, err := w.dec.Token()
		if err != nil {
			if err == io.EOF {
				return "", w.Errf("unexpected end of frame reading text of <%s>", se.Name.Local)
			}
			return "", xmlerr.Wrap(xmlerr.KindMalformedXML, err, "tokenizing <%s>", se.Name.Local)
		}
		switch t := tok.(type) {
		case xml.CharData:
			text += string(t)
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return text, nil
			}
			return "", w.Errf("unexpected end tag </%s> reading text of <%s>", t.Name.Local, se.Name.Local)
		case xml.StartElement:
			return "", w.Errf("unexpected child <%s> reading text of <%s>", t.Name.Local, se.Name.Local)
		}
	}
}

// Skip consumes everything up to and including the matching end element
// for the element just opened. Used for syntactically valid children the
// decoder doesn't model — forward compatibility is a first-class branch,
// not an exception (spec §9).
func (w *Walker) Skip(se xml.StartElement) error {
	depth := 1
	for depth > 0 {
		tok, err := w.dec.Token()
		if err != nil {
			if err == io.EOF {
				return w.Errf("unexpected end of frame skipping <%s>", se.Name.Local)
			}
			return xmlerr.Wrap(xmlerr.KindMalformedXML, err, "tokenizing <%s>", se.Name.Local)
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

func byteReader(b []byte) io.Reader { return &byteReaderImpl{b: b} }

type byteReaderImpl struct {
	b []byte
	i int
}

func (r *byteReaderImpl) Read(p []byte) (int, error) {
	if r.i >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.i:])
	r.i += n
	return n, nil
}
