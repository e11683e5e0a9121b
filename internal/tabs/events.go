package tabs

import "sync"

type EventKind string

const (
	EventOpened           EventKind = "opened"
	EventActivated        EventKind = "activated"
	EventEdited           EventKind = "edited"
	EventApplied          EventKind = "applied"
	EventDropped          EventKind = "dropped"
	EventClosed           EventKind = "closed"
	EventSaved            EventKind = "saved"
	EventSaveFailed       EventKind = "save_failed"
	EventConfirmRequested EventKind = "confirm_requested"
	EventLoadError        EventKind = "load_error"
)

// Event is a notification that tab state changed. Subscribers use it to
// re-render; it carries identifiers, never content.
type Event struct {
	Kind  EventKind
	TabID string
	Path  string
}

type eventSubscriber struct {
	id int
	ch chan Event
}

// eventHub fans engine events out to subscribers. Broadcast never blocks;
// a subscriber that falls behind loses events rather than stalling the
// engine.
type eventHub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*eventSubscriber
}

func newEventHub() *eventHub {
	return &eventHub{subs: make(map[int]*eventSubscriber)}
}

func (h *eventHub) Add() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	ch := make(chan Event, 64)
	h.subs[id] = &eventSubscriber{id: id, ch: ch}
	cancel := func() {
		h.mu.Lock()
		sub, ok := h.subs[id]
		if ok {
			delete(h.subs, id)
		}
		h.mu.Unlock()
		if ok {
			close(sub.ch)
		}
	}
	return ch, cancel
}

func (h *eventHub) Broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		select {
		case sub.ch <- event:
		default:
		}
	}
}
