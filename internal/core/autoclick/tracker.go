package autoclick

import "sync"

// Tracker maintains the set of currently held key symbols. Press and
// release arrive on the input source's delivery goroutine while snapshots
// may be taken elsewhere, so every access goes through the mutex.
type Tracker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{held: make(map[string]struct{})}
}

// Press records a key going down and returns its normalized symbol so the
// caller can chain combo evaluation. Unresolvable events are dropped with
// no state change.
func (t *Tracker) Press(ev KeyEvent) (string, bool) {
	symbol, ok := NormalizeKey(ev)
	if !ok {
		return "", false
	}
	t.mu.Lock()
	t.held[symbol] = struct{}{}
	t.mu.Unlock()
	return symbol, true
}

// Release records a key going up. Releasing a key that was never pressed
// is a no-op.
func (t *Tracker) Release(ev KeyEvent) {
	symbol, ok := NormalizeKey(ev)
	if !ok {
		return
	}
	t.mu.Lock()
	delete(t.held, symbol)
	t.mu.Unlock()
}

// Held returns a snapshot copy of the currently held symbols.
func (t *Tracker) Held() map[string]struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	held := make(map[string]struct{}, len(t.held))
	for symbol := range t.held {
		held[symbol] = struct{}{}
	}
	return held
}
