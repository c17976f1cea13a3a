// Package frame implements the frame splitter (spec §4.1): a coarse,
// byte-oriented scanner that turns a raw UniProt XML stream into a
// sequence of self-contained <entry>...</entry> byte regions without
// building a tree. It is deliberately not a full XML parser — it tracks
// just enough structure (tag boundaries, quoted values, comments, CDATA)
// to find entry boundaries correctly and cheaply.
package frame

import (
	"bytes"
	"io"

	"uniprotstream/core/xmlerr"
)

// Frame is the raw XML of exactly one top-level <entry> element, carrying
// the namespace declarations it inherited from the document root so it
// tokenizes standalone. Seq is a dense, 0-based, document-order index.
type Frame struct {
	Seq  uint64
	Data []byte
}

// Splitter consumes a Source exactly once, forward only, emitting one
// Frame per direct-child <entry> element of the verified root.
type Splitter struct {
	scan     lowLevelScanner
	root     string
	preamble []byte
	seq      uint64
	finished bool
}

// NewSplitter reads the XML prolog and the root element's start tag,
// verifying its name is one of acceptedRoots (UniRef's family match is
// expressed by passing all three family members). It returns a
// root-mismatch error if the first element found isn't in that set.
func NewSplitter(r io.Reader, acceptedRoots ...string) (*Splitter, error) {
	accepted := make(map[string]struct{}, len(acceptedRoots))
	for _, n := range acceptedRoots {
		accepted[n] = struct{}{}
	}
	s := &Splitter{scan: lowLevelScanner{br: bufioReader(r)}}
	if err := s.readProlog(accepted); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Splitter) readProlog(accepted map[string]struct{}) error {
	for {
		if err := s.scan.scanUntilLT(nil); err != nil {
			return ioOrMalformed(err, "expected root element")
		}
		var tagBuf bytes.Buffer
		tagBuf.WriteByte('<')
		kind, name, err := s.scan.consumeTagBody(&tagBuf)
		if err != nil {
			return ioOrMalformed(err, "malformed construct before root element")
		}
		switch kind {
		case tagPI, tagComment, tagDoctypeOrOther:
			continue
		case tagEnd:
			return xmlerr.New(xmlerr.KindMalformedXML, "unexpected end tag %q before root element", name)
		case tagStart, tagEmpty:
			if _, ok := accepted[name]; !ok {
				return xmlerr.New(xmlerr.KindRootMismatch, "root element %q is not one of the expected root elements", name)
			}
			s.root = name
			s.preamble = namespacePreamble(tagBuf.Bytes())
			if kind == tagEmpty {
				s.finished = true
			}
			return nil
		}
		return xmlerr.New(xmlerr.KindMalformedXML, "unrecognised construct before root element")
	}
}

// NextSeq returns the sequence number the next successfully produced
// frame would carry. Callers that need to report a failure mid-stream
// at its correct position in document order (the parallel driver's
// producer, tagging a terminal error for the reassembler) read this
// before calling Next.
func (s *Splitter) NextSeq() uint64 { return s.seq }

// Next returns the next entry frame in document order, io.EOF once the
// root's end tag has been reached with no further frames to emit, or a
// *xmlerr.Error describing why the stream could not be parsed further.
func (s *Splitter) Next() (Frame, error) {
	if s.finished {
		return Frame{}, io.EOF
	}
	for {
		if err := s.scan.scanUntilLT(nil); err != nil {
			return Frame{}, ioOrMalformed(err, "unexpected end of stream inside root element")
		}
		var tagBuf bytes.Buffer
		tagBuf.WriteByte('<')
		kind, name, err := s.scan.consumeTagBody(&tagBuf)
		if err != nil {
			return Frame{}, ioOrMalformed(err, "malformed construct inside root element")
		}

		switch kind {
		case tagPI, tagComment, tagDoctypeOrOther:
			continue
		case tagEnd:
			if name != s.root {
				return Frame{}, xmlerr.New(xmlerr.KindMalformedXML, "unexpected end tag %q, expected </%s>", name, s.root)
			}
			s.finished = true
			if err := s.rejectTrailingContent(); err != nil {
				return Frame{}, err
			}
			return Frame{}, io.EOF
		case tagEmpty:
			if name != "entry" {
				continue // direct child with no content, e.g. <copyright/>
			}
			data := splicePreamble(tagBuf.Bytes(), s.preamble)
			f := Frame{Seq: s.seq, Data: append([]byte(nil), data...)}
			s.seq++
			return f, nil
		case tagStart:
			if name != "entry" {
				if err := s.discardElement(); err != nil {
					return Frame{}, err
				}
				continue
			}
			entryBuf := bytes.NewBuffer(append([]byte(nil), splicePreamble(tagBuf.Bytes(), s.preamble)...))
			if err := s.captureEntryBody(entryBuf); err != nil {
				return Frame{}, err
			}
			f := Frame{Seq: s.seq, Data: entryBuf.Bytes()}
			s.seq++
			return f, nil
		}
	}
}

// captureEntryBody copies an already-open <entry>'s content, plus its
// matching </entry>, into buf, tracking only nesting depth (not element
// names) for everything below the entry boundary, per spec §4.1/§9.
func (s *Splitter) captureEntryBody(buf *bytes.Buffer) error {
	depth := 1
	for depth > 0 {
		if err := s.scan.scanUntilLT(buf); err != nil {
			return ioOrTruncated(err, "unexpected end of stream inside entry")
		}
		kind, _, err := s.scan.consumeTagBody(buf)
		if err != nil {
			return ioOrTruncated(err, "malformed construct inside entry")
		}
		switch kind {
		case tagStart:
			depth++
		case tagEnd:
			depth--
		}
	}
	return nil
}

// discardElement consumes (without retaining) a direct child of the root
// that is not named "entry", e.g. <copyright>...</copyright>.
func (s *Splitter) discardElement() error {
	depth := 1
	for depth > 0 {
		if err := s.scan.scanUntilLT(nil); err != nil {
			return ioOrMalformed(err, "unexpected end of stream inside root child element")
		}
		kind, _, err := s.scan.consumeTagBody(nil)
		if err != nil {
			return ioOrMalformed(err, "malformed construct inside root child element")
		}
		switch kind {
		case tagStart:
			depth++
		case tagEnd:
			depth--
		}
	}
	return nil
}

// rejectTrailingContent enforces the open-question resolution: anything
// after the first root's end tag is malformed-xml, not a second document.
func (s *Splitter) rejectTrailingContent() error {
	for {
		b, err := s.scan.br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return xmlerr.Wrap(xmlerr.KindIO, err, "reading trailing content after root element")
		}
		if !isSpace(b) {
			return xmlerr.New(xmlerr.KindMalformedXML, "unexpected content after root element end tag")
		}
	}
}
