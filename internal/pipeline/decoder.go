package pipeline

// Decoder is the minimal capability either driver needs: turn one
// frame's raw bytes into one decoded entry. Any flavour's Decode
// function (uniprotkb.Decode, uniref.Decode, uniparc.Decode) satisfies
// this once its pool/options arguments are bound by a closure; fakes in
// tests can satisfy it directly.
type Decoder func(frame []byte) (any, error)
