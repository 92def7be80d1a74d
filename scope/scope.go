package scope

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/transientgo/transient/errors"
)

// Scope is a runtime region token. The zero value is not usable; obtain
// scopes from Enter or (*Scope).Enter, or use the Static singleton.
type Scope struct {
	parent *Scope
	name   string
	depth  int

	mu        sync.Mutex
	closed    bool
	children  int
	shared    int
	exclusive bool
}

// Static is the unbounded region. It is always alive, outlives every other
// scope, and cannot be closed. Borrows against it are not tracked: a value
// valid for the whole program run needs no scope bookkeeping.
var Static = &Scope{name: "static"}

// Enter opens a new scope directly below Static.
func Enter(name string) *Scope {
	return Static.Enter(name)
}

// Enter opens a child scope. The child must be closed before its parent.
// Entering a child of a closed scope panics.
func (s *Scope) Enter(name string) *Scope {
	child := &Scope{
		parent: s,
		name:   name,
		depth:  s.depth + 1,
	}

	if !s.IsStatic() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			panic(fmt.Sprintf("scope: entering child of closed scope %q", s.name))
		}
		s.children++
		s.mu.Unlock()
	}

	Logger().Debug("scope entered",
		zap.String("scope", child.name),
		zap.String("parent", s.name),
		zap.Int("depth", child.depth))
	notify(Event{Type: EventEntered, Scope: child})

	return child
}

// Name returns the name the scope was entered with.
func (s *Scope) Name() string {
	return s.name
}

// Parent returns the enclosing scope, or nil for Static.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// IsStatic reports whether this is the unbounded region.
func (s *Scope) IsStatic() bool {
	return s == Static
}

// Alive reports whether the scope and every scope enclosing it are still
// open. Data bounded by a dead scope must never be read again.
func (s *Scope) Alive() bool {
	if s.IsStatic() {
		return true
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return false
	}
	return s.parent.Alive()
}

// Outlives reports whether every extent other covers is also covered by s.
// It is reflexive; Static outlives everything; otherwise s outlives other
// exactly when s is an ancestor of other in the scope tree.
func (s *Scope) Outlives(other *Scope) bool {
	if s == other || s.IsStatic() {
		return true
	}
	for o := other; o != nil; o = o.parent {
		if o == s {
			return true
		}
	}
	return false
}

// Close ends the scope. It fails if borrows are outstanding, if child
// scopes are still open, or if the scope is already closed. Static cannot
// be closed.
func (s *Scope) Close() error {
	if s.IsStatic() {
		return errors.Unsupported(errors.PhaseScope, "the static scope cannot be closed")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.ScopeClosed(s.name)
	}
	if s.shared > 0 || s.exclusive {
		shared, exclusive := s.shared, s.exclusive
		s.mu.Unlock()
		return errors.OutstandingBorrow(s.name, shared, exclusive)
	}
	if s.children > 0 {
		children := s.children
		s.mu.Unlock()
		return errors.New(errors.PhaseScope, errors.KindOutstandingBorrow).
			Detail("scope %q has %d open child scope(s)", s.name, children).
			Build()
	}
	s.closed = true
	s.mu.Unlock()

	if p := s.parent; p != nil && !p.IsStatic() {
		p.mu.Lock()
		p.children--
		p.mu.Unlock()
	}

	Logger().Debug("scope closed", zap.String("scope", s.name))
	notify(Event{Type: EventClosed, Scope: s})

	return nil
}

// Borrow registers a shared borrow against the scope. It coexists with
// other shared borrows but not with the exclusive borrow; a conflicting or
// dead-scope borrow panics.
func (s *Scope) Borrow() {
	if s.IsStatic() {
		return
	}
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		panic(fmt.Sprintf("scope: shared borrow of closed scope %q", s.name))
	case s.exclusive:
		s.mu.Unlock()
		panic(fmt.Sprintf("scope: shared borrow of %q while exclusively borrowed", s.name))
	}
	s.shared++
	s.mu.Unlock()

	notify(Event{Type: EventBorrowed, Scope: s})
}

// ReturnBorrow releases one shared borrow.
func (s *Scope) ReturnBorrow() {
	if s.IsStatic() {
		return
	}
	s.mu.Lock()
	if s.shared == 0 {
		s.mu.Unlock()
		panic(fmt.Sprintf("scope: unbalanced shared borrow return on %q", s.name))
	}
	s.shared--
	s.mu.Unlock()

	notify(Event{Type: EventReleased, Scope: s})
}

// BorrowExclusive registers the exclusive borrow. Any outstanding borrow,
// shared or exclusive, makes this a panic.
func (s *Scope) BorrowExclusive() {
	if s.IsStatic() {
		return
	}
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		panic(fmt.Sprintf("scope: exclusive borrow of closed scope %q", s.name))
	case s.exclusive:
		s.mu.Unlock()
		panic(fmt.Sprintf("scope: double exclusive borrow of %q", s.name))
	case s.shared > 0:
		s.mu.Unlock()
		panic(fmt.Sprintf("scope: exclusive borrow of %q while shared borrows are live", s.name))
	}
	s.exclusive = true
	s.mu.Unlock()

	notify(Event{Type: EventBorrowed, Scope: s})
}

// ReturnExclusive releases the exclusive borrow.
func (s *Scope) ReturnExclusive() {
	if s.IsStatic() {
		return
	}
	s.mu.Lock()
	if !s.exclusive {
		s.mu.Unlock()
		panic(fmt.Sprintf("scope: unbalanced exclusive borrow return on %q", s.name))
	}
	s.exclusive = false
	s.mu.Unlock()

	notify(Event{Type: EventReleased, Scope: s})
}

// Borrows reports the current instrumentation counters, mostly for tests
// and debugging.
func (s *Scope) Borrows() (shared int, exclusive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shared, s.exclusive
}

func (s *Scope) String() string {
	if s.IsStatic() {
		return "static"
	}
	return fmt.Sprintf("%s/%s", s.parent, s.name)
}

// Dropper is optionally implemented by payload values that need cleanup
// when their owning wrapper is dropped.
type Dropper interface {
	Drop()
}
