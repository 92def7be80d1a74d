package erased

import (
	"fmt"

	"github.com/transientgo/transient"
	"github.com/transientgo/transient/errors"
	"github.com/transientgo/transient/scope"
	"github.com/transientgo/transient/transience"
)

// ErasedMut wraps an exclusive view of a value that has been widened to
// its canonical unbounded counterpart. It holds the exclusive borrow on
// each bounding scope until released: no other view, shared or exclusive,
// may coexist with it.
type ErasedMut struct {
	box      any // *T; never exposed while bounded
	tag      transient.Tag
	tr       transience.Transience
	src      []*scope.Scope
	adv      []*scope.Scope
	borrowed []*scope.Scope
	released bool
}

// EraseMut widens an exclusive view of the pointee and wraps it. One scope
// per declared region parameter; each unique non-static scope gains the
// exclusive borrow, which panics if any borrow is already outstanding.
func EraseMut[T transient.Transient](ptr *T, regions ...*scope.Scope) *ErasedMut {
	tr := transient.TransienceOf[T]()
	tag := transient.TagFor[T]()
	checkRegions(tag, tr, regions)

	borrowed := uniqueScopes(regions)
	for _, r := range borrowed {
		r.BorrowExclusive()
	}

	return &ErasedMut{
		box:      ptr,
		tag:      tag,
		tr:       tr,
		src:      append([]*scope.Scope(nil), regions...),
		adv:      append([]*scope.Scope(nil), regions...),
		borrowed: borrowed,
	}
}

// RestoreMut narrows the view back to a typed pointer after an exact tag
// match, with full mutable access to the pointee. The view stays live and
// exclusively borrowed until released. Restoring a released view panics.
func RestoreMut[T transient.Transient](m *ErasedMut) (*T, bool) {
	if m.released {
		panic("erased: restore through a released view")
	}
	if m.tag != transient.TagFor[T]() {
		return nil, false
	}
	return m.box.(*T), true
}

// IsMut reports whether the viewed type is Static(T), blind to regions.
func IsMut[T transient.Transient](m *ErasedMut) bool {
	return m.tag == transient.TagFor[T]()
}

// Tag returns the runtime tag of the viewed Static(T).
func (m *ErasedMut) Tag() transient.Tag {
	return m.tag
}

// Transience returns the view's current variance declaration.
func (m *ErasedMut) Transience() transience.Transience {
	return m.tr
}

// Regions returns the advertised region scopes.
func (m *ErasedMut) Regions() []*scope.Scope {
	return append([]*scope.Scope(nil), m.adv...)
}

// Transcend re-advertises the view's regions under the declared variance.
func (m *ErasedMut) Transcend(targets ...*scope.Scope) error {
	if m.released {
		return errors.Unsupported(errors.PhaseTranscend, "view is released")
	}
	if err := m.tr.CanTranscend(m.adv, targets); err != nil {
		return err
	}
	m.adv = append([]*scope.Scope(nil), targets...)
	return nil
}

// Tighten replaces the view's transience with the all-invariant one.
func (m *ErasedMut) Tighten() {
	m.tr = m.tr.Tighten()
}

// Release returns the exclusive borrow to its scopes. It is idempotent.
func (m *ErasedMut) Release() {
	if m.released {
		return
	}
	m.released = true
	for _, s := range m.borrowed {
		s.ReturnExclusive()
	}
}

// Inner returns the dynamic box for reading, only when every true region
// is the unbounded region.
func (m *ErasedMut) Inner() (any, bool) {
	if m.released || !allStatic(m.src) {
		return nil, false
	}
	return m.box, true
}

// InnerMut returns the dynamic box for mutation, under the same gate as
// Inner.
func (m *ErasedMut) InnerMut() (any, bool) {
	if m.released || !allStatic(m.src) {
		return nil, false
	}
	return m.box, true
}

func (m *ErasedMut) String() string {
	if m.released {
		return "ErasedMut(released)"
	}
	return fmt.Sprintf("ErasedMut(%s, %s)", m.tag, m.tr)
}
