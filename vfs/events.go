package vfs

import "slices"

// EventType names the kind of mutation a ChangeEvent reports.
type EventType string

const (
	EventCreate EventType = "create"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
	EventRename EventType = "rename"
)

// ChangeEvent describes one applied mutation. NewPath is set only for renames and
// Content only for file creates and updates.
type ChangeEvent struct {
	Type    EventType `json:"type"`
	Path    string    `json:"path"`
	NewPath string    `json:"newPath,omitempty"`
	Content string    `json:"content,omitempty"`
}

// Listener receives change events synchronously.
type Listener func(ChangeEvent)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers listener and returns a function that removes it.
// Listeners run in subscription order. A listener removed while an event is being
// dispatched still receives that event, but none after it.
func (s *Store) Subscribe(listener Listener) (unsubscribe func()) {
	s.nextListenerID++
	id := s.nextListenerID
	s.listeners = append(s.listeners, subscription{id: id, fn: listener})

	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// emit queues ev and, unless a dispatch is already running, drains the queue.
// Events raised by listeners are delivered after the current event has reached every
// listener, so all listeners observe the same order.
func (s *Store) emit(ev ChangeEvent) {
	s.pending = append(s.pending, ev)
	if s.dispatching {
		return
	}

	s.dispatching = true
	defer func() {
		s.dispatching = false
		s.pending = nil
	}()

	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]
		for _, sub := range slices.Clone(s.listeners) {
			sub.fn(next)
		}
	}
}
