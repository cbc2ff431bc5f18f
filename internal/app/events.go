package app

import "sync"

// DashboardHub fans out change signals to dashboard subscribers. Writes to
// submissions mark the hub; subscribers recompute whatever view they serve.
type DashboardHub struct {
	mu          sync.Mutex
	subscribers map[chan struct{}]struct{}
}

func NewDashboardHub() *DashboardHub {
	return &DashboardHub{subscribers: make(map[chan struct{}]struct{})}
}

// Subscribe returns a signal channel and a cancel function. The caller must
// invoke cancel to avoid leaks.
func (h *DashboardHub) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Mark signals every subscriber that submission data changed. Signals
// coalesce: a subscriber that has not drained its pending signal does not
// accumulate more.
func (h *DashboardHub) Mark() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
