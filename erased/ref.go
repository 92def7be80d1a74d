package erased

import (
	"fmt"

	"github.com/transientgo/transient"
	"github.com/transientgo/transient/errors"
	"github.com/transientgo/transient/scope"
	"github.com/transientgo/transient/transience"
)

// ErasedRef wraps a shared view of a value that has been widened to its
// canonical unbounded counterpart. The view never owns the payload; it
// holds a shared borrow against each bounding scope until released, which
// is what keeps the source alive for as long as the view can be read.
type ErasedRef struct {
	box      any // *T; never exposed while bounded
	tag      transient.Tag
	tr       transience.Transience
	src      []*scope.Scope
	adv      []*scope.Scope
	borrowed []*scope.Scope
	released bool
}

// EraseRef widens a shared view of the pointee and wraps it. One scope per
// declared region parameter, as with Erase; each unique non-static scope
// gains a shared borrow. Misuse panics, including a conflicting exclusive
// borrow already registered on a scope.
func EraseRef[T transient.Transient](ptr *T, regions ...*scope.Scope) *ErasedRef {
	tr := transient.TransienceOf[T]()
	tag := transient.TagFor[T]()
	checkRegions(tag, tr, regions)

	borrowed := uniqueScopes(regions)
	for _, r := range borrowed {
		r.Borrow()
	}

	return &ErasedRef{
		box:      ptr,
		tag:      tag,
		tr:       tr,
		src:      append([]*scope.Scope(nil), regions...),
		adv:      append([]*scope.Scope(nil), regions...),
		borrowed: borrowed,
	}
}

// RestoreRef narrows the view back to a typed pointer after an exact tag
// match. The view stays live and borrowed; releasing it remains the
// caller's responsibility. Restoring a released view panics.
func RestoreRef[T transient.Transient](r *ErasedRef) (*T, bool) {
	if r.released {
		panic("erased: restore through a released view")
	}
	if r.tag != transient.TagFor[T]() {
		return nil, false
	}
	return r.box.(*T), true
}

// IsRef reports whether the viewed type is Static(T), blind to regions.
// Probing is non-destructive and may be repeated.
func IsRef[T transient.Transient](r *ErasedRef) bool {
	return r.tag == transient.TagFor[T]()
}

// Tag returns the runtime tag of the viewed Static(T).
func (r *ErasedRef) Tag() transient.Tag {
	return r.tag
}

// Transience returns the view's current variance declaration.
func (r *ErasedRef) Transience() transience.Transience {
	return r.tr
}

// Regions returns the advertised region scopes.
func (r *ErasedRef) Regions() []*scope.Scope {
	return append([]*scope.Scope(nil), r.adv...)
}

// Transcend re-advertises the view's regions under the declared variance,
// exactly as for the owning wrapper.
func (r *ErasedRef) Transcend(targets ...*scope.Scope) error {
	if r.released {
		return errors.Unsupported(errors.PhaseTranscend, "view is released")
	}
	if err := r.tr.CanTranscend(r.adv, targets); err != nil {
		return err
	}
	r.adv = append([]*scope.Scope(nil), targets...)
	return nil
}

// Tighten replaces the view's transience with the all-invariant one.
func (r *ErasedRef) Tighten() {
	r.tr = r.tr.Tighten()
}

// Clone produces an additional shared view of the same payload with fresh
// borrows. Shared views coexist freely.
func (r *ErasedRef) Clone() *ErasedRef {
	if r.released {
		panic("erased: clone of a released view")
	}
	for _, s := range r.borrowed {
		s.Borrow()
	}
	clone := *r
	clone.adv = append([]*scope.Scope(nil), r.adv...)
	clone.src = append([]*scope.Scope(nil), r.src...)
	return &clone
}

// Release returns the view's borrows to their scopes. It is idempotent;
// every constructed view must eventually be released or its scopes can
// never close.
func (r *ErasedRef) Release() {
	if r.released {
		return
	}
	r.released = true
	for _, s := range r.borrowed {
		s.ReturnBorrow()
	}
}

// Inner returns the dynamic box for reading, only when every true region
// is the unbounded region.
func (r *ErasedRef) Inner() (any, bool) {
	if r.released || !allStatic(r.src) {
		return nil, false
	}
	return r.box, true
}

func (r *ErasedRef) String() string {
	if r.released {
		return "ErasedRef(released)"
	}
	return fmt.Sprintf("ErasedRef(%s, %s)", r.tag, r.tr)
}
