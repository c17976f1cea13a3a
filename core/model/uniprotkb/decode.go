package uniprotkb

import (
	"encoding/xml"
	"io"
	"net/url"

	"uniprotstream/core/intern"
	"uniprotstream/core/model"
	"uniprotstream/core/xmlerr"
)

// Decode parses one UniProtKB entry frame. It is a pure function: the
// same frame bytes always produce the same Entry (modulo interning),
// per spec.md §4.2's decoder contract.
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

	if ds, found := model.Attr(root, "dataset"); found {
		ds2, derr := model.Enum(w.Path(), datasetTable, ds)
		if derr != nil {
			return Entry{}, derr
		}
		e.Dataset = ds2
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
	case "accession":
		text, err := w.Text(se)
		if err != nil {
			return err
		}
		e.Accessions = append(e.Accessions, w.Intern(text))
	case "name":
		text, err := w.Text(se)
		if err != nil {
			return err
		}
		e.Name = text
	case "created":
		v, err := w.RequireAttr(se, "value")
		if err != nil {
			return err
		}
		date, derr := model.ParseDate(w.Path(), v)
		if derr != nil {
			return derr
		}
		e.Created = date
		return w.Skip(se)
	case "modified":
		v, err := w.RequireAttr(se, "value")
		if err != nil {
			return err
		}
		date, derr := model.ParseDate(w.Path(), v)
		if derr != nil {
			return derr
		}
		e.Modified = date
		return w.Skip(se)
	case "modified-version":
		v, err := w.RequireAttr(se, "value")
		if err != nil {
			return err
		}
		n, derr := model.ParseInt(w.Path(), v, 32)
		if derr != nil {
			return derr
		}
		e.ModifiedV = n
		return w.Skip(se)
	case "protein":
		pd, err := decodeProtein(w, se)
		if err != nil {
			return err
		}
		e.Protein = pd
	case "gene":
		g, err := decodeGene(w, se)
		if err != nil {
			return err
		}
		e.Genes = append(e.Genes, g)
	case "organism":
		o, err := decodeOrganism(w, se)
		if err != nil {
			return err
		}
		e.Organism = o
	case "reference":
		r, err := decodeReference(w, se)
		if err != nil {
			return err
		}
		e.References = append(e.References, r)
	case "comment":
		c, ok, err := decodeComment(w, se)
		if err != nil {
			return err
		}
		if ok {
			e.Comments = append(e.Comments, c)
		}
	case "dbReference":
		d, err := decodeDBReference(w, se)
		if err != nil {
			return err
		}
		e.DBRefs = append(e.DBRefs, d)
	case "keyword":
		id, _ := model.Attr(se, "id")
		text, err := w.Text(se)
		if err != nil {
			return err
		}
		e.Keywords = append(e.Keywords, Keyword{ID: w.Intern(id), Name: text})
	case "feature":
		f, err := decodeFeature(w, se)
		if err != nil {
			return err
		}
		e.Features = append(e.Features, f)
	case "sequence":
		s, err := decodeSequence(w, se)
		if err != nil {
			return err
		}
		e.Sequence = s
	default:
		return w.Skip(se)
	}
	return nil
}

func decodeProtein(w *model.Walker, se xml.StartElement) (ProteinDescription, error) {
	var pd ProteinDescription
	for {
		tok, err := w.Token()
		if err != nil {
			return pd, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return pd, nil
			}
			return pd, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			switch t.Name.Local {
			case "recommendedName":
				n, err := decodeName(w, t)
				if err != nil {
					return pd, err
				}
				pd.Recommended = n
			case "alternativeName":
				n, err := decodeName(w, t)
				if err != nil {
					return pd, err
				}
				pd.Alternative = append(pd.Alternative, n)
			default:
				if err := w.Skip(t); err != nil {
					return pd, err
				}
			}
		}
	}
}

func decodeName(w *model.Walker, se xml.StartElement) (Name, error) {
	w.Push(se.Name.Local)
	defer w.Pop()
	var n Name
	for {
		tok, err := w.Token()
		if err != nil {
			return n, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return n, nil
			}
			return n, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			switch t.Name.Local {
			case "fullName":
				text, err := w.Text(t)
				if err != nil {
					return n, err
				}
				n.Full = text
			case "shortName":
				text, err := w.Text(t)
				if err != nil {
					return n, err
				}
				n.Short = append(n.Short, text)
			default:
				if err := w.Skip(t); err != nil {
					return n, err
				}
			}
		}
	}
}

func decodeGene(w *model.Walker, se xml.StartElement) (Gene, error) {
	var g Gene
	for {
		tok, err := w.Token()
		if err != nil {
			return g, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return g, nil
			}
			return g, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			if t.Name.Local != "name" {
				if err := w.Skip(t); err != nil {
					return g, err
				}
				continue
			}
			kind, _ := model.Attr(t, "type")
			text, err := w.Text(t)
			if err != nil {
				return g, err
			}
			switch kind {
			case "primary":
				g.Name = text
			case "synonym":
				g.Synonyms = append(g.Synonyms, text)
			case "ordered locus":
				g.OrderedLocus = append(g.OrderedLocus, text)
			case "ORF":
				g.ORFNames = append(g.ORFNames, text)
			default:
				return g, w.Errf("unrecognised gene name type %q", kind)
			}
		}
	}
}

func decodeOrganism(w *model.Walker, se xml.StartElement) (Organism, error) {
	var o Organism
	for {
		tok, err := w.Token()
		if err != nil {
			return o, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return o, nil
			}
			return o, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			switch t.Name.Local {
			case "name":
				kind, _ := model.Attr(t, "type")
				text, err := w.Text(t)
				if err != nil {
					return o, err
				}
				switch kind {
				case "scientific":
					o.Scientific = text
				case "common":
					o.Common = text
				default:
					// abbreviation / synonym forms are not modelled; ignore
				}
			case "dbReference":
				id, _ := model.Attr(t, "id")
				n, derr := model.ParseInt(w.Path(), id, 32)
				if derr != nil {
					return o, derr
				}
				o.TaxonID = n
				if err := w.Skip(t); err != nil {
					return o, err
				}
			case "lineage":
				taxa, err := decodeLineage(w, t)
				if err != nil {
					return o, err
				}
				o.Lineage = taxa
			default:
				if err := w.Skip(t); err != nil {
					return o, err
				}
			}
		}
	}
}

func decodeLineage(w *model.Walker, se xml.StartElement) ([]string, error) {
	var taxa []string
	for {
		tok, err := w.Token()
		if err != nil {
			return taxa, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return taxa, nil
			}
			return taxa, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			if t.Name.Local != "taxon" {
				if err := w.Skip(t); err != nil {
					return taxa, err
				}
				continue
			}
			text, err := w.Text(t)
			if err != nil {
				return taxa, err
			}
			taxa = append(taxa, text)
		}
	}
}

var citationKindTable = map[string]CitationKind{
	"journal article":          CitationJournalArticle,
	"online journal article":   CitationOnlineJournalArticle,
	"book":                     CitationBook,
	"patent":                   CitationPatent,
	"submission":               CitationSubmission,
	"thesis":                   CitationThesis,
	"unpublished observations": CitationUnpublished,
}

func decodeReference(w *model.Walker, se xml.StartElement) (Reference, error) {
	var r Reference
	for {
		tok, err := w.Token()
		if err != nil {
			return r, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return r, nil
			}
			return r, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			if t.Name.Local != "citation" {
				if err := w.Skip(t); err != nil {
					return r, err
				}
				continue
			}
			if err := decodeCitation(w, t, &r); err != nil {
				return r, err
			}
		}
	}
}

func decodeCitation(w *model.Walker, se xml.StartElement, r *Reference) error {
	w.Push(se.Name.Local)
	defer w.Pop()

	kindRaw, err := w.RequireAttr(se, "type")
	if err != nil {
		return err
	}
	kind, derr := model.Enum(w.Path(), citationKindTable, kindRaw)
	if derr != nil {
		return derr
	}
	r.Kind = kind
	if name, ok := model.Attr(se, "name"); ok {
		// "name" means a journal/online-journal title, a book's name,
		// or a thesis institute depending on Kind; UniProt reuses the
		// one attribute across all three.
		r.Journal.Name = name
		r.Book.Name = name
		r.Thesis.Institute = name
	}
	if vol, ok := model.Attr(se, "volume"); ok {
		r.Journal.Volume = vol
	}
	if first, ok := model.Attr(se, "first"); ok {
		r.Journal.First = first
	}
	if last, ok := model.Attr(se, "last"); ok {
		r.Journal.Last = last
	}
	if db, ok := model.Attr(se, "db"); ok {
		r.Submission.DB = db
	}
	if number, ok := model.Attr(se, "number"); ok {
		r.Patent.Number = number
	}
	if date, ok := model.Attr(se, "date"); ok {
		if year, yerr := yearOf(w.Path(), date); yerr == nil {
			r.Journal.Year = year
			r.Book.Year = year
			r.Patent.Year = year
			r.Submission.Year = year
			r.Thesis.Year = year
		}
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
			switch t.Name.Local {
			case "title":
				text, err := w.Text(t)
				if err != nil {
					return err
				}
				r.Title = text
			case "authorList":
				authors, err := decodeAuthorList(w, t)
				if err != nil {
					return err
				}
				r.Authors = authors
			default:
				if err := w.Skip(t); err != nil {
					return err
				}
			}
		}
	}
}

func decodeAuthorList(w *model.Walker, se xml.StartElement) ([]string, error) {
	var authors []string
	for {
		tok, err := w.Token()
		if err != nil {
			return authors, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return authors, nil
			}
			return authors, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			if t.Name.Local != "person" && t.Name.Local != "consortium" {
				if err := w.Skip(t); err != nil {
					return authors, err
				}
				continue
			}
			name, _ := model.Attr(t, "name")
			authors = append(authors, name)
			if err := w.Skip(t); err != nil {
				return authors, err
			}
		}
	}
}

func yearOf(path []string, date string) (int64, error) {
	if len(date) < 4 {
		return 0, model.DecodeErrorf(path, "invalid citation date %q", date)
	}
	return model.ParseInt(path, date[:4], 32)
}

// decodeComment returns ok == false for a recognised-as-unknown comment
// topic: the element is skipped whole and contributes nothing, per the
// forward-compatibility rule (only a recognised-but-invalid topic is a
// decode error).
func decodeComment(w *model.Walker, se xml.StartElement) (Comment, bool, error) {
	var c Comment
	topicRaw, err := w.RequireAttr(se, "type")
	if err != nil {
		return c, false, err
	}
	kind, ok := commentTopicTable[topicRaw]
	if !ok {
		return Comment{}, false, w.Skip(se)
	}
	c.Kind = kind

	for {
		tok, err := w.Token()
		if err != nil {
			return c, false, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return c, true, nil
			}
			return c, false, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			switch t.Name.Local {
			case "text":
				text, err := w.Text(t)
				if err != nil {
					return c, false, err
				}
				c.Text = append(c.Text, text)
			case "subcellularLocation":
				locs, err := decodeSubcellularLocation(w, t)
				if err != nil {
					return c, false, err
				}
				c.Locations = append(c.Locations, locs...)
			case "link":
				link, err := decodeLink(w, t)
				if err != nil {
					return c, false, err
				}
				c.Links = append(c.Links, link)
			default:
				if err := w.Skip(t); err != nil {
					return c, false, err
				}
			}
		}
	}
}

func decodeSubcellularLocation(w *model.Walker, se xml.StartElement) ([]string, error) {
	var locs []string
	for {
		tok, err := w.Token()
		if err != nil {
			return locs, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return locs, nil
			}
			return locs, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			if t.Name.Local != "location" {
				if err := w.Skip(t); err != nil {
					return locs, err
				}
				continue
			}
			text, err := w.Text(t)
			if err != nil {
				return locs, err
			}
			locs = append(locs, text)
		}
	}
}

func decodeLink(w *model.Walker, se xml.StartElement) (Link, error) {
	var link Link
	link.Raw, _ = model.Attr(se, "uri")
	if w.Opts().ExposeURLType && link.Raw != "" {
		u, err := url.Parse(link.Raw)
		if err != nil {
			return link, w.Errf("invalid link uri %q: %v", link.Raw, err)
		}
		link.Parsed = u
	}
	return link, w.Skip(se)
}

func decodeDBReference(w *model.Walker, se xml.StartElement) (DBReference, error) {
	var d DBReference
	var err error
	if d.Type, err = w.RequireAttr(se, "type"); err != nil {
		return d, err
	}
	if d.ID, err = w.RequireAttr(se, "id"); err != nil {
		return d, err
	}
	for {
		tok, err := w.Token()
		if err != nil {
			return d, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return d, nil
			}
			return d, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			if t.Name.Local != "property" {
				if err := w.Skip(t); err != nil {
					return d, err
				}
				continue
			}
			ptype, _ := model.Attr(t, "type")
			pvalue, _ := model.Attr(t, "value")
			if d.Properties == nil {
				d.Properties = make(map[string]string)
			}
			d.Properties[w.Intern(ptype)] = pvalue
			if err := w.Skip(t); err != nil {
				return d, err
			}
		}
	}
}

func decodeFeature(w *model.Walker, se xml.StartElement) (Feature, error) {
	var f Feature
	var err error
	if f.Type, err = w.RequireAttr(se, "type"); err != nil {
		return f, err
	}
	f.Description, _ = model.Attr(se, "description")

	for {
		tok, err := w.Token()
		if err != nil {
			return f, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return f, nil
			}
			return f, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			if t.Name.Local != "location" {
				if err := w.Skip(t); err != nil {
					return f, err
				}
				continue
			}
			loc, err := decodeFeatureLocation(w, t)
			if err != nil {
				return f, err
			}
			f.Location = loc
		}
	}
}

func decodeFeatureLocation(w *model.Walker, se xml.StartElement) (FeatureLocation, error) {
	var loc FeatureLocation
	for {
		tok, err := w.Token()
		if err != nil {
			return loc, tokenErr(w, err, se)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return loc, nil
			}
			return loc, w.Errf("unexpected end tag </%s>", t.Name.Local)
		case xml.StartElement:
			switch t.Name.Local {
			case "position":
				n, err := featurePosition(w, t)
				if err != nil {
					return loc, err
				}
				loc.Kind = LocationPosition
				loc.Position = n
			case "begin":
				n, err := featurePosition(w, t)
				if err != nil {
					return loc, err
				}
				loc.Kind = LocationRange
				loc.Begin = n
			case "end":
				n, err := featurePosition(w, t)
				if err != nil {
					return loc, err
				}
				loc.Kind = LocationRange
				loc.End = n
			default:
				if err := w.Skip(t); err != nil {
					return loc, err
				}
			}
		}
	}
}

// featurePosition reads a <position>/<begin>/<end> element's "position"
// attribute, returning -1 for the schema's "unknown bound" marker
// (status="unknown") instead of a required integer.
func featurePosition(w *model.Walker, se xml.StartElement) (int64, error) {
	if status, ok := model.Attr(se, "status"); ok && status == "unknown" {
		return -1, w.Skip(se)
	}
	v, err := w.RequireAttr(se, "position")
	if err != nil {
		return 0, err
	}
	n, derr := model.ParseInt(w.Path(), v, 32)
	if derr != nil {
		return 0, derr
	}
	return n, w.Skip(se)
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
	if v, ok := model.Attr(se, "mass"); ok {
		n, err := model.ParseInt(w.Path(), v, 64)
		if err != nil {
			return s, err
		}
		s.Mass = n
	}
	s.Checksum, _ = model.Attr(se, "checksum")

	text, err := w.Text(se)
	if err != nil {
		return s, err
	}
	s.Residues = compactResidues(text)
	return s, nil
}

// compactResidues strips the whitespace the XSD allows inside the
// <sequence> element's text content (dumps wrap residues across lines).
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
