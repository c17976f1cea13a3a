// Package uniref holds the UniRef clustered-sequence domain model and
// its frame decoder.
package uniref

import "uniprotstream/core/model"

// Entry is one decoded UniRef cluster (UniRef100/90/50 share one shape;
// the family member is selected at the frame-splitter level, not here).
type Entry struct {
	ID      string
	Name    string
	Updated model.Date

	CommonTaxon   string
	CommonTaxonID int64
	GoAnnotations []string

	Representative Member
	Members        []Member

	Sequence Sequence
}

// Member is one entry in a cluster's representative/member list.
type Member struct {
	UniProtKBAccession string
	UniParcID          string
	Organism           string
	TaxonID            int64
	SequenceLength     int64
	OverlapPercent     float64
	IsSeed             bool
}

// Sequence is a cluster's representative sequence block.
type Sequence struct {
	Length   int64
	Checksum string
	Residues string
}
