package uniparc

import (
	"encoding/xml"
	"io"

	"uniprotstream/core/intern"
	"uniprotstream/core/model"
	"uniprotstream/core/xmlerr"
)

// Decode parses one UniParc entry frame, the same contract as
// uniprotkb.Decode and uniref.Decode: a pure function of the frame
// bytes.
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
	case "accession":
		text, err := w.Text(se)
		if err != nil {
			return err
		}
		if e.ID == "" {
			e.ID = w.Intern(text)
		}
	case "dbReference":
		d, err := decodeDBReference(w, se)
		if err != nil {
			return err
		}
		e.DBRefs = append(e.DBRefs, d)
	case "sequence":
		s, err := decodeSequence(w, se)
		if err != nil {
			return err
		}
		e.Sequence = s
	case "signatureSequenceMatch":
		m, err := decodeSignatureMatch(w, se)
		if err != nil {
			return err
		}
		e.Signatures = append(e.Signatures, m)
	default:
		return w.Skip(se)
	}
	return nil
}

func decodeDBReference(w *model.Walker, se xml.StartElement) (DBReference, error) {
	var d DBReference
	var err error
	if d.Database, err = w.RequireAttr(se, "type"); err != nil {
		return d, err
	}
	if d.ID, err = w.RequireAttr(se, "id"); err != nil {
		return d, err
	}
	if v, ok := model.Attr(se, "version"); ok {
		n, derr := model.ParseInt(w.Path(), v, 32)
		if derr != nil {
			return d, derr
		}
		d.Version = n
	}
	if v, ok := model.Attr(se, "active"); ok {
		d.Active = v == "Y"
	}
	if v, ok := model.Attr(se, "created"); ok {
		date, derr := model.ParseDate(w.Path(), v)
		if derr != nil {
			return d, derr
		}
		d.Created = date
	}
	if v, ok := model.Attr(se, "last"); ok {
		date, derr := model.ParseDate(w.Path(), v)
		if derr != nil {
			return d, derr
		}
		d.Last = date
	}
	return d, w.Skip(se)
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

func decodeSignatureMatch(w *model.Walker, se xml.StartElement) (SignatureMatch, error) {
	var m SignatureMatch
	m.Database, _ = model.Attr(se, "database")
	m.ID, _ = model.Attr(se, "id")

	for {
		tok, err := w.Token()
		if err != nil {
			return m, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return m, nil
			}
			return m, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			if t.Name.Local != "lcn" {
				if err := w.Skip(t); err != nil {
					return m, err
				}
				continue
			}
			loc, err := decodeSignatureLocation(w, t)
			if err != nil {
				return m, err
			}
			m.Locations = append(m.Locations, loc)
		}
	}
}

func decodeSignatureLocation(w *model.Walker, se xml.StartElement) (SignatureLocation, error) {
	var loc SignatureLocation
	if v, ok := model.Attr(se, "start"); ok {
		n, err := model.ParseInt(w.Path(), v, 32)
		if err != nil {
			return loc, err
		}
		loc.Start = n
	}
	if v, ok := model.Attr(se, "end"); ok {
		n, err := model.ParseInt(w.Path(), v, 32)
		if err != nil {
			return loc, err
		}
		loc.End = n
	}
	return loc, w.Skip(se)
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

func tokenErr(w *model.Walker, err error, se xml.StartElement) error {
	if err == io.EOF {
		return w.Errf("unexpected end of frame inside <%s>", se.Name.Local)
	}
	return xmlerr.Wrap(xmlerr.KindMalformedXML, err, "tokenizing <%s>", se.Name.Local)
}
