// Package uniprotkb holds the UniProtKB (Swiss-Prot/TrEMBL) domain model
// and its frame decoder.
package uniprotkb

import (
	"net/url"

	"uniprotstream/core/model"
)

// Dataset distinguishes the two UniProtKB sub-datasets.
type Dataset int

const (
	DatasetUnknown Dataset = iota
	DatasetSwissProt
	DatasetTrEMBL
)

var datasetTable = map[string]Dataset{
	"Swiss-Prot": DatasetSwissProt,
	"TrEMBL":     DatasetTrEMBL,
}

// Entry is one decoded UniProtKB record.
type Entry struct {
	Accessions []string
	Name       string
	Dataset    Dataset
	Created    model.Date
	Modified   model.Date
	ModifiedV  int64

	Protein ProteinDescription
	Genes   []Gene
	Organism Organism

	References []Reference
	Comments   []Comment
	DBRefs     []DBReference
	Keywords   []Keyword
	Features   []Feature

	Sequence Sequence
}

// ProteinDescription carries the recommended name and any alternative
// names, each of which may have a full and a short form.
type ProteinDescription struct {
	Recommended Name
	Alternative []Name
}

// Name is a full name with optional short forms, shared by recommended
// and alternative protein names.
type Name struct {
	Full  string
	Short []string
}

// Gene is one gene entry in a UniProtKB entry's gene list.
type Gene struct {
	Name         string
	Synonyms     []string
	OrderedLocus []string
	ORFNames     []string
}

// Organism carries the source organism's names and taxonomy.
type Organism struct {
	Scientific string
	Common     string
	TaxonID    int64
	Lineage    []string
}

// CitationKind discriminates the tagged union of reference citation
// shapes.
type CitationKind int

const (
	CitationUnknown CitationKind = iota
	CitationJournalArticle
	CitationOnlineJournalArticle
	CitationBook
	CitationPatent
	CitationSubmission
	CitationThesis
	CitationUnpublished
)

// Reference is one entry in an entry's bibliography, a tagged union
// keyed by Kind: only the kind-specific field(s) matching Kind are
// meaningful. The decoder copies shared citation attributes (name,
// date) into every kind-specific field, so the others are not empty.
type Reference struct {
	Kind    CitationKind
	Title   string
	Authors []string

	Journal    JournalArticle // valid when Kind == CitationJournalArticle or CitationOnlineJournalArticle
	Book       Book           // valid when Kind == CitationBook
	Patent     Patent         // valid when Kind == CitationPatent
	Submission Submission     // valid when Kind == CitationSubmission
	Thesis     Thesis         // valid when Kind == CitationThesis
}

type JournalArticle struct {
	Name   string
	Volume string
	First  string
	Last   string
	Year   int64
}

type Book struct {
	Name      string
	Publisher string
	City      string
	Year      int64
}

type Patent struct {
	Number string
	Year   int64
}

type Submission struct {
	DB   string
	Year int64
}

// Thesis carries the institute a thesis citation's name attribute
// names; UniProt has no separate "institute" attribute for this kind.
type Thesis struct {
	Institute string
	Year      int64
}

// CommentKind enumerates the UniProtKB comment topics this decoder
// models explicitly. Comment kinds it does not recognise are skipped
// rather than rejected (spec forward-compatibility rule) — only
// recognised-but-invalid content is a decode error.
type CommentKind int

const (
	CommentUnknown CommentKind = iota
	CommentFunction
	CommentCatalyticActivity
	CommentSubunit
	CommentSubcellularLocation
	CommentTissueSpecificity
	CommentDisease
	CommentSimilarity
	CommentCaution
	CommentPTM
	CommentInteraction
	CommentAlternativeProducts
	CommentFreeText // fallback bucket for simple <text>-only topics
)

var commentTopicTable = map[string]CommentKind{
	"function":               CommentFunction,
	"catalytic activity":     CommentCatalyticActivity,
	"subunit":                CommentSubunit,
	"subcellular location":   CommentSubcellularLocation,
	"tissue specificity":     CommentTissueSpecificity,
	"disease":                CommentDisease,
	"similarity":             CommentSimilarity,
	"caution":                CommentCaution,
	"PTM":                    CommentPTM,
	"interaction":            CommentInteraction,
	"alternative products":   CommentAlternativeProducts,
	"developmental stage":    CommentFreeText,
	"induction":              CommentFreeText,
	"domain":                 CommentFreeText,
	"miscellaneous":          CommentFreeText,
	"pathway":                CommentFreeText,
	"polymorphism":           CommentFreeText,
	"RNA editing":            CommentFreeText,
	"biotechnology":          CommentFreeText,
	"pharmaceutical":         CommentFreeText,
	"toxic dose":             CommentFreeText,
	"allergen":               CommentFreeText,
	"biophysicochemical properties": CommentFreeText,
	"mass spectrometry":      CommentFreeText,
	"online information":     CommentFreeText,
	"sequence caution":       CommentFreeText,
	"cofactor":               CommentFreeText,
}

// Comment is one <comment> element. Text holds its <text> children in
// document order, one item per child; Locations holds the <location>
// texts of any <subcellularLocation> children; Links holds any <link>
// children. The decoder collects all three under every recognised
// topic; in UniProt data, locations come with "subcellular location"
// comments and links with "online information" comments.
type Comment struct {
	Kind      CommentKind
	Text      []string
	Locations []string
	Links     []Link
}

// Link is a URL reference carried by a comment's <link> child. Parsed
// is populated only when decoding runs with Options.ExposeURLType; a
// caller that didn't ask for it still gets Raw.
type Link struct {
	Raw    string
	Parsed *url.URL
}

// DBReference is one cross-reference to an external database.
type DBReference struct {
	Type       string
	ID         string
	Properties map[string]string
}

// Keyword is one controlled-vocabulary keyword.
type Keyword struct {
	ID   string
	Name string
}

// FeatureLocationKind discriminates a feature's location shape.
type FeatureLocationKind int

const (
	LocationUnknown FeatureLocationKind = iota
	LocationPosition
	LocationRange
)

// FeatureLocation is a tagged union: Position is valid when Kind ==
// LocationPosition; Begin/End (either of which may be "unknown", an
// unbounded end, represented as -1) are valid when Kind == LocationRange.
type FeatureLocation struct {
	Kind     FeatureLocationKind
	Position int64
	Begin    int64
	End      int64
}

// Feature is one sequence annotation (<feature> element).
type Feature struct {
	Type        string
	Description string
	Location    FeatureLocation
}

// Sequence is an entry's protein sequence block.
type Sequence struct {
	Length   int64
	Mass     int64
	Checksum string
	Residues string
}
