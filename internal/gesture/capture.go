package gesture

import "sync"

// Hub hands out pointer captures. While a capture is held, every pointer
// motion and release on the board goes to its owner, wherever the pointer
// is. At most one capture is live at a time.
type Hub struct {
	mu     sync.Mutex
	active *Capture
	seq    uint64

	// OnStale is called with the owner of a capture that was still held
	// when another one was acquired.
	OnStale func(owner string)
}

// Capture is a held pointer capture. Release is safe to call any number
// of times.
type Capture struct {
	hub   *Hub
	owner string
	id    uint64
}

// Acquire takes the pointer for owner. A capture that is still held is
// released first and reported through OnStale.
func (h *Hub) Acquire(owner string) *Capture {
	h.mu.Lock()
	stale := h.active
	h.seq++
	c := &Capture{hub: h, owner: owner, id: h.seq}
	h.active = c
	onStale := h.OnStale
	h.mu.Unlock()

	if stale != nil && onStale != nil {
		onStale(stale.owner)
	}
	return c
}

// Owner returns the owner of the live capture.
func (h *Hub) Owner() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return "", false
	}
	return h.active.owner, true
}

// Active reports whether any capture is held.
func (h *Hub) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active != nil
}

// ReleaseAll drops the live capture, if any. Used on teardown.
func (h *Hub) ReleaseAll() {
	h.mu.Lock()
	h.active = nil
	h.mu.Unlock()
}

// Held reports whether this capture is still the live one.
func (c *Capture) Held() bool {
	if c == nil {
		return false
	}
	c.hub.mu.Lock()
	defer c.hub.mu.Unlock()
	return c.hub.active == c
}

// Release gives the pointer back.
func (c *Capture) Release() {
	if c == nil {
		return
	}
	c.hub.mu.Lock()
	if c.hub.active == c {
		c.hub.active = nil
	}
	c.hub.mu.Unlock()
}
