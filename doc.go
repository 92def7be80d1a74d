// Package transient erases values that are only valid within a bounded
// scope into uniformly-typed, dynamically-checked containers, and later
// recovers the original, precisely-typed, precisely-scoped value.
//
// This generalizes the usual "erase to any, recover by runtime type check"
// pattern to values that must not be treated as valid for the whole program
// run: a value borrowing from a request, a frame, or any other enclosing
// extent is widened to its canonical unbounded counterpart for storage, and
// the wrapper holding it refuses every access path that could observe the
// widened value after its true scope has ended.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	transient/           Root package with the erasure contract and type tags
//	├── scope/           Runtime region tokens with borrow instrumentation
//	├── transience/      Per-type variance policy for dynamic-interface views
//	├── erased/          The owning, shared-view and mutable-view wrappers
//	├── gen/             Declaration-time generator for erasure mappings
//	├── errors/          Structured error types for declaration and scope misuse
//	├── cmd/transientgen CLI front-end for the generator
//	└── testbed/         Cross-package scenario tests
//
// # Quick Start
//
// Declare an erasable type by embedding a marker, erase it within a scope,
// and restore it by exact type:
//
//	type Frame struct {
//	    transient.Co[Frame]
//	    Payload []byte
//	}
//
//	s := scope.Enter("request")
//	e := erased.Erase(Frame{Payload: buf}, s)
//
//	if f, ok := erased.Restore[Frame](&e); ok {
//	    use(f.Payload)
//	}
//	s.Close()
//
// # Language Gap
//
// The design this library renders comes from languages with compile-time
// checked region extents and variance. Go has no borrow checker, so the
// static proof of the safety property is given up: regions become explicit
// scope tokens threaded through every API, and safety is enforced by
// documented caller discipline backed by runtime instrumentation — liveness
// checks on every restore, shared/exclusive borrow counting on views, and
// scope closes that refuse while a view is outstanding. Code that would be
// rejected at compile time by a region system instead fails at runtime, as
// a panic for discipline bugs or an error for checkable misuse.
//
// One rule the runtime cannot check: a live owning wrapper must not be
// copied. Copies alias the same payload box, so restoring or dropping one
// copy silently invalidates the others. Treat erased.Erased the way
// bytes.Buffer is treated: move it by pointer after first use.
//
// # Thread Safety
//
// Wrappers are plain values with no internal synchronization; whatever
// sharing policy the wrapped payload permits is inherited unchanged. The
// scope package synchronizes only its own bookkeeping.
package transient
