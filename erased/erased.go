package erased

import (
	"fmt"
	"reflect"

	"github.com/transientgo/transient"
	"github.com/transientgo/transient/errors"
	"github.com/transientgo/transient/scope"
	"github.com/transientgo/transient/transience"
)

// Erased wraps an owned value that has been widened to its canonical
// unbounded counterpart. Destroying the wrapper destroys the payload; a
// successful restore consumes it.
//
// A live Erased must not be copied: copies alias the payload box, and
// restoring or dropping one copy leaves the others claiming ownership of a
// payload that is gone. Move it by pointer, or hand it off and stop using
// the original, as with bytes.Buffer or sync types.
type Erased struct {
	box any // *T widened to the uniform dynamic type; never exposed while bounded
	tag transient.Tag
	tr  transience.Transience
	src []*scope.Scope // true regions, fixed at construction
	adv []*scope.Scope // advertised regions, loosened by Transcend
}

// Erase widens value and wraps it together with the runtime tag of
// Static(T). One scope must be supplied per declared region parameter, in
// declaration order; a type with no region parameter takes none. There is
// no failure mode — an arity mismatch or a dead scope is construction
// misuse and panics.
func Erase[T transient.Transient](value T, regions ...*scope.Scope) Erased {
	return EraseBoxed(&value, regions...)
}

// EraseBoxed is Erase for a value that is already behind a pointer; the
// pointee is owned by the wrapper from here on.
func EraseBoxed[T transient.Transient](ptr *T, regions ...*scope.Scope) Erased {
	tr := transient.TransienceOf[T]()
	checkRegions(transient.TagFor[T](), tr, regions)

	return Erased{
		box: ptr,
		tag: transient.TagFor[T](),
		tr:  tr,
		src: append([]*scope.Scope(nil), regions...),
		adv: append([]*scope.Scope(nil), regions...),
	}
}

// EraseAny wraps a value that is already behind the uniform dynamic type.
// Such a value carries an implicit unbounded region, so the wrapper is
// constructed at the static scope with no region parameters. Restore will
// recover the original value, not the dynamic box itself, and still
// requires the dynamic type to declare the erasure contract.
func EraseAny(value any) Erased {
	rt := reflect.TypeOf(value)
	if rt == nil {
		panic("erased: cannot erase an untyped nil")
	}

	box := reflect.New(rt)
	box.Elem().Set(reflect.ValueOf(value))

	return Erased{
		box: box.Interface(),
		tag: rt,
		tr:  transience.None(),
	}
}

// Restore narrows the wrapper back to T. On an exact tag match the wrapper
// is consumed and the original value returned; on a mismatch the wrapper is
// left intact and ok is false. Restoring through a wrapper whose true
// region has ended panics: that code path could not exist under a region
// checker.
func Restore[T transient.Transient](e *Erased) (T, bool) {
	ptr, ok := RestoreBoxed[T](e)
	if !ok {
		var zero T
		return zero, false
	}
	return *ptr, true
}

// RestoreBoxed is Restore without unwrapping the final indirection level;
// the returned pointer is the wrapper's own box.
func RestoreBoxed[T transient.Transient](e *Erased) (*T, bool) {
	if e.box == nil || e.tag != transient.TagFor[T]() {
		return nil, false
	}
	requireAlive(e.src, "restore")

	// the tag matched, so the narrowing assertion cannot fail
	ptr := e.box.(*T)
	*e = Erased{}
	return ptr, true
}

// Is reports whether the stored type is Static(T). The comparison is blind
// to regions: erasures of one type at different scopes all answer true.
func Is[T transient.Transient](e *Erased) bool {
	return e.box != nil && e.tag == transient.TagFor[T]()
}

// Tag returns the runtime tag of the stored Static(T), or nil for a spent
// wrapper.
func (e *Erased) Tag() transient.Tag {
	return e.tag
}

// Transience returns the wrapper's current variance declaration.
func (e *Erased) Transience() transience.Transience {
	return e.tr
}

// Regions returns the advertised region scopes.
func (e *Erased) Regions() []*scope.Scope {
	return append([]*scope.Scope(nil), e.adv...)
}

// Transcend re-advertises the wrapper's regions for a dynamic-interface
// consumer with different requirements. Legality is decided by the
// declared transience; the true regions and the restore tag are unchanged —
// variance lets a value be viewed loosely, never recovered loosely.
func (e *Erased) Transcend(targets ...*scope.Scope) error {
	if e.box == nil {
		return errors.Unsupported(errors.PhaseTranscend, "wrapper is spent")
	}
	if err := e.tr.CanTranscend(e.adv, targets); err != nil {
		return err
	}
	e.adv = append([]*scope.Scope(nil), targets...)
	return nil
}

// Tighten replaces the wrapper's transience with the all-invariant one.
// Forbidding further substitution is always sound, so no proof is required.
func (e *Erased) Tighten() {
	e.tr = e.tr.Tighten()
}

// Drop destroys the payload, invoking its scope.Dropper implementation if
// it has one. Dropping a spent wrapper is a no-op.
func (e *Erased) Drop() {
	if e.box == nil {
		return
	}
	// assert on the stored box: the pointer's method set covers Droppers
	// with either receiver kind
	box := e.box
	*e = Erased{}
	if d, ok := box.(scope.Dropper); ok {
		d.Drop()
	}
}

// Inner returns the wrapped dynamic box for reading. It is available only
// when every true region is the unbounded region; otherwise ok is false
// and the payload stays sealed.
func (e *Erased) Inner() (any, bool) {
	if e.box == nil || !allStatic(e.src) {
		return nil, false
	}
	return e.box, true
}

// InnerMut returns the wrapped dynamic box for mutation, under the same
// static-region gate as Inner.
func (e *Erased) InnerMut() (any, bool) {
	if e.box == nil || !allStatic(e.src) {
		return nil, false
	}
	return e.box, true
}

// IntoInner consumes the wrapper and moves the dynamic box out, under the
// same static-region gate as Inner.
func (e *Erased) IntoInner() (any, bool) {
	if e.box == nil || !allStatic(e.src) {
		return nil, false
	}
	box := e.box
	*e = Erased{}
	return box, true
}

func (e *Erased) String() string {
	if e.box == nil {
		return "Erased(spent)"
	}
	return fmt.Sprintf("Erased(%s, %s)", e.tag, e.tr)
}

func checkRegions(tag transient.Tag, tr transience.Transience, regions []*scope.Scope) {
	if len(regions) != tr.Arity() {
		panic(fmt.Sprintf(
			"erased: %s declares %d region parameter(s), got %d scope(s)",
			tag, tr.Arity(), len(regions),
		))
	}
	for _, r := range regions {
		if !r.Alive() {
			panic(fmt.Sprintf("erased: erasing %s at dead scope %q", tag, r.Name()))
		}
	}
}

func requireAlive(regions []*scope.Scope, op string) {
	for _, r := range regions {
		if !r.Alive() {
			panic(fmt.Sprintf("erased: %s after true region %q ended", op, r.Name()))
		}
	}
}

func allStatic(regions []*scope.Scope) bool {
	for _, r := range regions {
		if !r.IsStatic() {
			return false
		}
	}
	return true
}

// uniqueScopes collapses repeated scopes so a value whose region parameters
// share one scope registers a single borrow against it.
func uniqueScopes(regions []*scope.Scope) []*scope.Scope {
	var out []*scope.Scope
	for _, r := range regions {
		if r.IsStatic() {
			continue
		}
		seen := false
		for _, u := range out {
			if u == r {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, r)
		}
	}
	return out
}
