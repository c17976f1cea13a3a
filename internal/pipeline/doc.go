// Package pipeline composes the frame splitter (core/frame) and a
// flavour's entry decoder into the two drivers the public API exposes:
// a Sequential iterator that does all the work on the calling
// goroutine, and a Parallel driver that runs a dedicated producer
// goroutine plus a pool of decode workers and reassembles their
// results back into original document order.
//
// The only contract either driver needs from a flavour is Decoder
// (decode one frame into one entry value). This keeps the pipeline
// swappable across UniProtKB, UniRef and UniParc, and testable with
// fakes.
package pipeline
