package daemon

import (
	"sync"

	"folio/internal/types"
)

type updateSubscriber struct {
	id int
	ch chan types.ContentUpdate
}

// updateHub fans content updates out to every connected stream. Sends
// never block; a subscriber that cannot keep up loses events rather
// than stalling the writer.
type updateHub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*updateSubscriber
}

func newUpdateHub() *updateHub {
	return &updateHub{
		subs: make(map[int]*updateSubscriber),
	}
}

func (h *updateHub) Add() (<-chan types.ContentUpdate, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	ch := make(chan types.ContentUpdate, 64)
	h.subs[id] = &updateSubscriber{id: id, ch: ch}
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

func (h *updateHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast returns how many subscribers accepted the update.
func (h *updateHub) Broadcast(update types.ContentUpdate) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	delivered := 0
	for _, sub := range h.subs {
		select {
		case sub.ch <- update:
			delivered++
		default:
		}
	}
	return delivered
}
