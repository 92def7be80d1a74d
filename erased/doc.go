// Package erased provides the safe wrappers at the center of the transient
// library: Erased for owned values, ErasedRef for shared views, and
// ErasedMut for exclusive views.
//
// Each wrapper holds a value that has been widened to its canonical
// unbounded counterpart and stored behind a uniform dynamic type, together
// with the runtime tag of that counterpart and the scopes bounding the
// value's true regions. Widening is representation-preserving and performs
// no check; the wrapper is what makes it safe, by refusing every access
// path that could observe the falsely-unbounded value after its true scope
// has ended.
//
// # Restoring
//
// Restore narrows the payload back to a concrete type after an exact tag
// match. A mismatch is not an error: it is an expected outcome reported as
// (zero, false), and the wrapper is left fully intact so the caller can try
// another target or keep holding the value. Only a successful restore
// consumes an owning wrapper.
//
// # Views
//
// ErasedRef and ErasedMut never own their payload. Constructing one
// registers a shared or exclusive borrow against each bounding scope, and
// the scope refuses to close until the view is released — that is what
// keeps the unbounded-looking payload from outliving its source. Views are
// probed repeatedly; restoring through one does not release it.
//
// # Direct Access
//
// Inner, InnerMut and IntoInner bypass restore entirely. They are gated on
// the true region being the unbounded region: direct access to the erased
// dynamic value is safe precisely because no shorter true region could have
// ended.
package erased
