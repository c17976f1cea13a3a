// Package uniparc holds the UniParc archival cross-reference domain
// model and its frame decoder.
package uniparc

import "uniprotstream/core/model"

// Entry is one decoded UniParc record: an archival sequence identity
// plus the set of source-database records that share that sequence.
type Entry struct {
	ID         string
	DBRefs     []DBReference
	Sequence   Sequence
	Signatures []SignatureMatch
}

// DBReference is one source-database cross reference for a UniParc
// sequence (e.g. the Swiss-Prot or TrEMBL record that carries it).
type DBReference struct {
	Database string
	ID       string
	Version  int64
	Active   bool
	Created  model.Date
	Last     model.Date
}

// Sequence is the archived sequence itself.
type Sequence struct {
	Length   int64
	Checksum string
	Residues string
}

// SignatureMatch is one InterPro-style domain hit against the sequence.
type SignatureMatch struct {
	Database string
	ID       string
	Locations []SignatureLocation
}

// SignatureLocation is one matched span within the sequence.
type SignatureLocation struct {
	Start int64
	End   int64
}
