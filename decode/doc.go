// Package decode turns raw, possibly-compressed per-frame byte buffers into
// typed pixel arrays.
//
// The entry point is Decoder, a facade over two execution paths sharing one
// event contract: a synchronous decoder running each frame inline on the
// calling goroutine, and a bounded worker pool running frames concurrently.
// The path is chosen once per Decoder instance from the worker-script
// registry: algorithms with a registered script decode on the pool, all
// others decode synchronously.
//
// A Decoder is scoped to a single batch. Per-item events fire in completion
// order and carry the sequence index supplied at submission; callers
// reassemble frames by that index, never by delivery order.
package decode
