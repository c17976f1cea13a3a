package frame

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"uniprotstream/core/xmlerr"
)

// tagKind classifies one XML construct consumed by the scanner.
type tagKind int

const (
	tagStart tagKind = iota
	tagEnd
	tagEmpty
	tagPI
	tagComment
	tagDoctypeOrOther
)

// lowLevelScanner does the minimum XML tokenisation the frame splitter
// needs: enough to find tag boundaries, classify them, and copy raw bytes
// through untouched, without building a tree or resolving entities. Quoted
// attribute values and comment/CDATA bodies suppress tag detection so a
// literal '<' or '>' inside them is never mistaken for a tag boundary.
type lowLevelScanner struct {
	br *bufio.Reader
}

// scanUntilLT reads bytes, writing each one to buf (if non-nil), until it
// consumes a '<' byte (itself written to buf too). Returns the read error
// (often io.EOF) if the stream ends first.
func (s *lowLevelScanner) scanUntilLT(buf *bytes.Buffer) error {
	for {
		b, err := s.br.ReadByte()
		if err != nil {
			return err
		}
		if buf != nil {
			buf.WriteByte(b)
		}
		if b == '<' {
			return nil
		}
	}
}

// consumeTagBody classifies and fully consumes one tag/construct whose
// leading '<' has already been read (and, if capturing, already written to
// buf). All further bytes consumed — including the trailing delimiter
// ('>' , "?>", "-->" or "]]>") — are written to buf.
func (s *lowLevelScanner) consumeTagBody(buf *bytes.Buffer) (tagKind, string, error) {
	b, err := s.readByte(buf)
	if err != nil {
		return 0, "", err
	}
	switch b {
	case '?':
		if err := s.consumeUntilDelim(buf, "?>"); err != nil {
			return 0, "", err
		}
		return tagPI, "", nil
	case '!':
		return s.consumeBang(buf)
	case '/':
		name, err := s.readName(buf, 0)
		if err != nil {
			return 0, "", err
		}
		if _, err := s.skipAttrsAndClose(buf); err != nil {
			return 0, "", err
		}
		return tagEnd, name, nil
	default:
		name, err := s.readName(buf, b)
		if err != nil {
			return 0, "", err
		}
		empty, err := s.skipAttrsAndClose(buf)
		if err != nil {
			return 0, "", err
		}
		if empty {
			return tagEmpty, name, nil
		}
		return tagStart, name, nil
	}
}

func (s *lowLevelScanner) consumeBang(buf *bytes.Buffer) (tagKind, string, error) {
	b1, err := s.readByte(buf)
	if err != nil {
		return 0, "", err
	}
	switch b1 {
	case '-':
		b2, err := s.readByte(buf)
		if err != nil {
			return 0, "", err
		}
		if b2 != '-' {
			return 0, "", errMalformedComment
		}
		if err := s.consumeUntilDelim(buf, "-->"); err != nil {
			return 0, "", err
		}
		return tagComment, "", nil
	case '[':
		want := "CDATA["
		for i := 0; i < len(want); i++ {
			b, err := s.readByte(buf)
			if err != nil {
				return 0, "", err
			}
			if b != want[i] {
				return 0, "", errMalformedCDATA
			}
		}
		if err := s.consumeUntilDelim(buf, "]]>"); err != nil {
			return 0, "", err
		}
		return tagDoctypeOrOther, "", nil // treated like opaque markup for depth purposes
	default:
		// DOCTYPE or other markup declaration: consume to the matching
		// top-level '>', accounting for an internal subset in [ ].
		depth := 0
		for {
			b, err := s.readByte(buf)
			if err != nil {
				return 0, "", err
			}
			switch b {
			case '[':
				depth++
			case ']':
				depth--
			case '>':
				if depth <= 0 {
					return tagDoctypeOrOther, "", nil
				}
			}
		}
	}
}

func (s *lowLevelScanner) readName(buf *bytes.Buffer, first byte) (string, error) {
	var nb bytes.Buffer
	if first != 0 {
		nb.WriteByte(first)
	}
	for {
		b, err := s.br.ReadByte()
		if err != nil {
			return "", err
		}
		if isNameByte(b) {
			nb.WriteByte(b)
			if buf != nil {
				buf.WriteByte(b)
			}
			continue
		}
		_ = s.br.UnreadByte()
		break
	}
	return nb.String(), nil
}

// skipAttrsAndClose consumes from right after the element name through the
// attribute list to the tag's closing delimiter, reporting whether it was
// self-closing ("/>").
func (s *lowLevelScanner) skipAttrsAndClose(buf *bytes.Buffer) (selfClosing bool, err error) {
	for {
		b, err := s.readByte(buf)
		if err != nil {
			return false, err
		}
		switch b {
		case '"':
			if err := s.consumeUntilByte(buf, '"'); err != nil {
				return false, err
			}
		case '\'':
			if err := s.consumeUntilByte(buf, '\''); err != nil {
				return false, err
			}
		case '>':
			return false, nil
		case '/':
			nb, err := s.readByte(buf)
			if err != nil {
				return false, err
			}
			if nb == '>' {
				return true, nil
			}
			// Stray '/' not followed by '>': lenient, keep scanning.
		}
	}
}

func (s *lowLevelScanner) consumeUntilByte(buf *bytes.Buffer, delim byte) error {
	for {
		b, err := s.readByte(buf)
		if err != nil {
			return err
		}
		if b == delim {
			return nil
		}
	}
}

// consumeUntilDelim consumes bytes until the (short) delimiter has been
// read in full.
func (s *lowLevelScanner) consumeUntilDelim(buf *bytes.Buffer, delim string) error {
	matched := 0
	for {
		b, err := s.readByte(buf)
		if err != nil {
			return err
		}
		if b == delim[matched] {
			matched++
			if matched == len(delim) {
				return nil
			}
			continue
		}
		// Fall back to the longest prefix of delim that is still a suffix
		// of the bytes read so far, so "]]]>" still ends a CDATA section.
		seen := delim[:matched] + string(b)
		matched = 0
		for k := len(seen) - 1; k > 0; k-- {
			if seen[len(seen)-k:] == delim[:k] {
				matched = k
				break
			}
		}
	}
}

func (s *lowLevelScanner) readByte(buf *bytes.Buffer) (byte, error) {
	b, err := s.br.ReadByte()
	if err != nil {
		return 0, err
	}
	if buf != nil {
		buf.WriteByte(b)
	}
	return b, nil
}

var (
	errMalformedComment = errors.New("malformed comment")
	errMalformedCDATA   = errors.New("malformed CDATA section")
)

func isNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.' || b == ':':
		return true
	default:
		return false
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

// isSyntaxError reports whether err is one of the scanner's own sentinels
// for a malformed construct (bad comment or CDATA section) rather than an
// I/O failure or a clean EOF.
func isSyntaxError(err error) bool {
	return errors.Is(err, errMalformedComment) || errors.Is(err, errMalformedCDATA)
}

// ioOrMalformed classifies an error from the low-level scanner as
// malformed-xml (clean EOF at a point where more document structure was
// expected, or a syntax error the scanner detected directly) or io (a
// genuine read failure).
func ioOrMalformed(err error, msg string) *xmlerr.Error {
	if isSyntaxError(err) {
		return xmlerr.Wrap(xmlerr.KindMalformedXML, err, "%s", msg)
	}
	if errors.Is(err, io.EOF) {
		return xmlerr.New(xmlerr.KindMalformedXML, "%s: unexpected end of input", msg)
	}
	return xmlerr.Wrap(xmlerr.KindIO, err, "%s", msg)
}

// ioOrTruncated is ioOrMalformed's counterpart for errors encountered while
// an entry's content is still open. A syntax error is still malformed-xml
// here, not truncated-entry: the input has not run out, it is simply
// invalid.
func ioOrTruncated(err error, msg string) *xmlerr.Error {
	if isSyntaxError(err) {
		return xmlerr.Wrap(xmlerr.KindMalformedXML, err, "%s", msg)
	}
	if errors.Is(err, io.EOF) {
		return xmlerr.New(xmlerr.KindTruncatedEntry, "%s: unexpected end of input", msg)
	}
	return xmlerr.Wrap(xmlerr.KindIO, err, "%s", msg)
}
