// Package scope provides runtime region tokens for the transient library.
//
// A Scope stands in for a compile-time region: the extent for which a value
// or borrow is guaranteed valid. Go has no borrow checker, so the static
// proof a region system would give is replaced by explicit tokens threaded
// through the erasure API, with runtime instrumentation (liveness flags,
// shared/exclusive borrow counting) standing in for the checker.
//
// # Scope Tree
//
// Scopes form a tree rooted at Static, the unbounded region spanning the
// whole program run. A child scope is always closed before its parent:
//
//	request := scope.Enter("request")
//	frame := request.Enter("frame")
//	...
//	frame.Close()
//	request.Close()
//
// Outlives reports the ordering the variance policy consults: a scope
// outlives itself and every scope below it in the tree, and Static outlives
// everything.
//
// # Borrow Tracking
//
// Shared views of data bounded by a scope register shared borrows; mutable
// views register the exclusive borrow. The usual coexistence rules apply:
// any number of shared borrows, or exactly one exclusive borrow. Violations
// panic, the same way misusing a sync.RWMutex does — they are bugs in the
// calling code, not runtime conditions to handle. Closing a scope while
// borrows are outstanding fails with an outstanding_borrow error, which is
// what keeps a falsely-unbounded view from outliving its source.
//
// # Lifecycle Events
//
// Observers receive scope lifecycle notifications (entered, closed,
// borrowed, released) for debugging and tests:
//
//	scope.Subscribe(myObserver)
//	defer scope.Unsubscribe(myObserver)
package scope
