package service

import "sync"

// Inflight tracks which network-triggering operations are currently
// submitting, per session and operation. A second invocation of the same
// operation while one is in flight is rejected rather than queued; the
// flag is set strictly between invocation and settlement on both success
// and failure paths.
type Inflight struct {
	mu     sync.Mutex
	active map[string]bool
}

// NewInflight creates an empty tracker.
func NewInflight() *Inflight {
	return &Inflight{active: make(map[string]bool)}
}

// Begin marks the key as submitting. It returns false, without marking,
// when the key is already in flight.
func (i *Inflight) Begin(key string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.active[key] {
		return false
	}
	i.active[key] = true
	return true
}

// End settles the key. Callers defer it immediately after a successful
// Begin so no outcome leaves the flag dangling.
func (i *Inflight) End(key string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.active, key)
}

// Active reports whether the key is currently submitting.
func (i *Inflight) Active(key string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.active[key]
}
