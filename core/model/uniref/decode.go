package uniref

import (
	"encoding/xml"
	"io"

	"uniprotstream/core/intern"
	"uniprotstream/core/model"
	"uniprotstream/core/xmlerr"
)

// Decode parses one UniRef cluster frame, the same contract as
// uniprotkb.Decode: a pure function of the frame bytes.
func Decode(frame []byte, pool *intern.Pool, opts model.Options) (Entry, error) {
	w := model.NewWalker(frame, internPoolOrNil(pool, opts), opts)
	var e Entry

	tok, err := w.Token()
	if err != nil {
		return Entry{}, xmlerr.Wrap(xmlerr.KindIO, err, "reading entry frame")
	}
	root, ok := tok.(xml.StartElement)
	if !ok {
		return Entry{}, w.Errf("frame does not start with an element")
	}
	w.Push(root.Name.Local)
	defer w.Pop()

	if id, found := model.Attr(root, "id"); found {
		e.ID = w.Intern(id)
	}
	if upd, found := model.Attr(root, "updated"); found {
		date, derr := model.ParseDate(w.Path(), upd)
		if derr != nil {
			return Entry{}, derr
		}
		e.Updated = date
	}

	for {
		tok, err := w.Token()
		if err != nil {
			if err == io.EOF {
				return Entry{}, w.Errf("unexpected end of frame inside <%s>", root.Name.Local)
			}
			return Entry{}, xmlerr.Wrap(xmlerr.KindMalformedXML, err, "tokenizing <%s>", root.Name.Local)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == root.Name.Local {
				return e, nil
			}
			return Entry{}, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			if err := decodeEntryChild(w, &e, t); err != nil {
				return Entry{}, err
			}
		}
	}
}

func internPoolOrNil(pool *intern.Pool, opts model.Options) *intern.Pool {
	if !opts.InternShortStrings {
		return nil
	}
	return pool
}

func decodeEntryChild(w *model.Walker, e *Entry, se xml.StartElement) error {
	w.Push(se.Name.Local)
	defer w.Pop()

	switch se.Name.Local {
	case "name":
		text, err := w.Text(se)
		if err != nil {
			return err
		}
		e.Name = text
	case "property":
		return decodeClusterProperty(w, se, e)
	case "representativeMember":
		m, seq, err := decodeMember(w, se, true)
		if err != nil {
			return err
		}
		e.Representative = m
		e.Sequence = seq
	case "member":
		m, _, err := decodeMember(w, se, false)
		if err != nil {
			return err
		}
		e.Members = append(e.Members, m)
	default:
		return w.Skip(se)
	}
	return nil
}

func decodeClusterProperty(w *model.Walker, se xml.StartElement, e *Entry) error {
	kind, err := w.RequireAttr(se, "type")
	if err != nil {
		return err
	}
	value, _ := model.Attr(se, "value")
	switch kind {
	case "common taxon":
		e.CommonTaxon = value
	case "common taxon ID":
		n, derr := model.ParseInt(w.Path(), value, 32)
		if derr != nil {
			return derr
		}
		e.CommonTaxonID = n
	case "go annotation":
		e.GoAnnotations = append(e.GoAnnotations, w.Intern(value))
	default:
		// member count and other cluster-level properties are not
		// modelled explicitly; ignore.
	}
	return w.Skip(se)
}

// decodeMember parses one <representativeMember>/<member> element.
// Only the representative member's <sequence> child is kept — the spec
// models a single cluster-level sequence block, taken from the
// representative — so captureSequence is false for plain list members.
func decodeMember(w *model.Walker, se xml.StartElement, captureSequence bool) (Member, Sequence, error) {
	var m Member
	var seq Sequence
	for {
		tok, err := w.Token()
		if err != nil {
			return m, seq, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return m, seq, nil
			}
			return m, seq, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			switch t.Name.Local {
			case "dbReference":
				if err := decodeMemberDBReference(w, t, &m); err != nil {
					return m, seq, err
				}
			case "sequence":
				if !captureSequence {
					if err := w.Skip(t); err != nil {
						return m, seq, err
					}
					continue
				}
				s, err := decodeSequence(w, t)
				if err != nil {
					return m, seq, err
				}
				seq = s
			default:
				if err := w.Skip(t); err != nil {
					return m, seq, err
				}
			}
		}
	}
}

func decodeSequence(w *model.Walker, se xml.StartElement) (Sequence, error) {
	var s Sequence
	if v, ok := model.Attr(se, "length"); ok {
		n, err := model.ParseInt(w.Path(), v, 32)
		if err != nil {
			return s, err
		}
		s.Length = n
	}
	s.Checksum, _ = model.Attr(se, "checksum")
	text, err := w.Text(se)
	if err != nil {
		return s, err
	}
	s.Residues = compactResidues(text)
	return s, nil
}

func compactResidues(text string) string {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			out = append(out, text[i])
		}
	}
	return string(out)
}

func decodeMemberDBReference(w *model.Walker, se xml.StartElement, m *Member) error {
	w.Push(se.Name.Local)
	defer w.Pop()

	// id is required by the schema but not modelled on Member: this
	// dbReference's <property> children (below) carry the accessions
	// callers actually want. RequireAttr here is just presence validation.
	if _, err := w.RequireAttr(se, "id"); err != nil {
		return err
	}

	for {
		tok, err := w.Token()
		if err != nil {
			return tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return nil
			}
			return w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			if t.Name.Local != "property" {
				if err := w.Skip(t); err != nil {
					return err
				}
				continue
			}
			if err := decodeMemberProperty(w, t, m); err != nil {
				return err
			}
		}
	}
}

func decodeMemberProperty(w *model.Walker, se xml.StartElement, m *Member) error {
	kind, err := w.RequireAttr(se, "type")
	if err != nil {
		return err
	}
	value, _ := model.Attr(se, "value")
	switch kind {
	case "UniProtKB accession":
		m.UniProtKBAccession = w.Intern(value)
	case "UniParc ID":
		m.UniParcID = w.Intern(value)
	case "source organism":
		m.Organism = value
	case "NCBI taxonomy":
		n, derr := model.ParseInt(w.Path(), value, 32)
		if derr != nil {
			return derr
		}
		m.TaxonID = n
	case "length":
		n, derr := model.ParseInt(w.Path(), value, 32)
		if derr != nil {
			return derr
		}
		m.SequenceLength = n
	case "overlap":
		f, derr := model.ParseFloat(w.Path(), value)
		if derr != nil {
			return derr
		}
		m.OverlapPercent = f
	case "isSeed":
		b, derr := model.ParseBool(w.Path(), value)
		if derr != nil {
			return derr
		}
		m.IsSeed = b
	default:
		// UniProtKB ID, protein name and other presentational
		// properties are not modelled; ignore.
	}
	return w.Skip(se)
}

func tokenErr(w *model.Walker, err error, se xml.StartElement) error {
	if err == io.EOF {
		return w.Errf("unexpected end of frame inside <%s>", se.Name.Local)
	}
	return xmlerr.Wrap(xmlerr.KindMalformedXML, err, "tokenizing <%s>", se.Name.Local)
}
