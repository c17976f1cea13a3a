package uniprot

import (
	"uniprotstream/core/intern"
	"uniprotstream/core/model"
	"uniprotstream/core/model/uniparc"
	"uniprotstream/core/model/uniprotkb"
	"uniprotstream/core/model/uniref"
	"uniprotstream/internal/pipeline"
)

// Flavour selects which UniProt dataset a reader is expected to
// contain, which in turn selects the root element(s) the frame
// splitter requires and the entry decoder applied to each frame.
type Flavour int

const (
	FlavourUniProtKB Flavour = iota
	FlavourUniRef
	FlavourUniParc
)

// roots returns the accepted root element name(s) for f, per
// spec.md §6's dataset-to-root mapping. UniRef accepts any of its
// three redundancy-level root names.
func (f Flavour) roots() []string {
	switch f {
	case FlavourUniProtKB:
		return []string{"uniprot"}
	case FlavourUniRef:
		return []string{"UniRef100", "UniRef90", "UniRef50"}
	case FlavourUniParc:
		return []string{"uniparc"}
	default:
		return nil
	}
}

// decoderFor builds the pipeline.Decoder closure for f: an intern
// pool (shared across every frame of one parse) plus the flavour's
// Decode function, bound to opts.
func decoderFor(f Flavour, o Options) pipeline.Decoder {
	pool := intern.NewPool()
	modelOpts := o.decodeOptions()
	switch f {
	case FlavourUniProtKB:
		return func(frameData []byte) (any, error) {
			return uniprotkb.Decode(frameData, pool, modelOpts)
		}
	case FlavourUniRef:
		return func(frameData []byte) (any, error) {
			return uniref.Decode(frameData, pool, modelOpts)
		}
	case FlavourUniParc:
		return func(frameData []byte) (any, error) {
			return uniparc.Decode(frameData, pool, modelOpts)
		}
	default:
		return func([]byte) (any, error) {
			return nil, model.DecodeErrorf(nil, "unknown flavour %d", int(f))
		}
	}
}
