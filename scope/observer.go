package scope

import "sync"

// EventType identifies a scope lifecycle event.
type EventType uint8

const (
	EventEntered EventType = iota
	EventClosed
	EventBorrowed
	EventReleased
)

// Event represents a scope lifecycle event.
type Event struct {
	Scope *Scope
	Type  EventType
}

// Observer receives notifications about scope lifecycle events.
type Observer interface {
	OnScopeEvent(Event)
}

var (
	obsMu     sync.RWMutex
	observers []Observer
)

// Subscribe adds an observer for lifecycle events.
func Subscribe(o Observer) {
	obsMu.Lock()
	defer obsMu.Unlock()
	observers = append(observers, o)
}

// Unsubscribe removes an observer.
func Unsubscribe(o Observer) {
	obsMu.Lock()
	defer obsMu.Unlock()
	for i, obs := range observers {
		if obs == o {
			observers = append(observers[:i], observers[i+1:]...)
			return
		}
	}
}

func notify(e Event) {
	obsMu.RLock()
	defer obsMu.RUnlock()
	for _, o := range observers {
		o.OnScopeEvent(e)
	}
}
