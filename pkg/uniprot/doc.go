// Package uniprot ties the frame splitter, the three flavour
// decoders, and the sequential/parallel drivers together behind three
// operations: Parse (parallel stream parser), ParseSequential
// (single-goroutine stream parser), and ParseOne (single-entry
// parser). There is no cmd/ package and no main function — this
// module is a library, consumed the way spec.md describes.
package uniprot
