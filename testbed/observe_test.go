package testbed

import (
	"testing"

	"github.com/transientgo/transient"
	"github.com/transientgo/transient/erased"
	"github.com/transientgo/transient/scope"
)

type recorder struct {
	events []scope.Event
}

func (r *recorder) OnScopeEvent(e scope.Event) {
	r.events = append(r.events, e)
}

// handle owns an external resource that must be torn down with the wrapper.
type handle struct {
	transient.Static[handle]
	closed *bool
}

func (h handle) Drop() {
	*h.closed = true
}

var _ = transient.Validate[handle]()

func TestObserverSeesFullLifecycle(t *testing.T) {
	rec := &recorder{}
	scope.Subscribe(rec)
	defer scope.Unsubscribe(rec)

	owner := scope.Enter("observed")
	doc := document{lines: []string{"x"}}
	view := erased.EraseRef(&doc, owner)
	view.Release()
	if err := owner.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	want := []scope.EventType{
		scope.EventEntered,
		scope.EventBorrowed,
		scope.EventReleased,
		scope.EventClosed,
	}
	if len(rec.events) != len(want) {
		t.Fatalf("got %d events, want %d", len(rec.events), len(want))
	}
	for i, et := range want {
		if rec.events[i].Type != et {
			t.Errorf("event %d = %v, want %v", i, rec.events[i].Type, et)
		}
		if rec.events[i].Scope != owner {
			t.Errorf("event %d names scope %s", i, rec.events[i].Scope)
		}
	}
}

func TestDropTearsDownPayload(t *testing.T) {
	closed := false
	e := erased.Erase(handle{closed: &closed})

	e.Drop()
	if !closed {
		t.Fatal("drop did not reach the payload")
	}

	// dropped wrappers are spent
	if erased.Is[handle](&e) {
		t.Fatal("wrapper still live after drop")
	}
	e.Drop() // no-op
}

func TestCloseOrderIsInnermostFirst(t *testing.T) {
	outer := scope.Enter("outer")
	inner := outer.Enter("inner")

	if err := outer.Close(); err == nil {
		t.Fatal("outer closed over an open child")
	}
	if err := inner.Close(); err != nil {
		t.Fatalf("close inner: %v", err)
	}
	if err := outer.Close(); err != nil {
		t.Fatalf("close outer: %v", err)
	}
}
