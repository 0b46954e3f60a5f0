package input

import "sync"

// KeySet is the set of currently held keys.
// Press and Release may be called from any goroutine.
type KeySet struct {
	mu   sync.RWMutex
	held map[Key]struct{}
}

// NewKeySet returns an empty set.
func NewKeySet(keys ...Key) *KeySet {
	s := &KeySet{held: make(map[Key]struct{}, keyCount)}
	for _, k := range keys {
		s.Press(k)
	}
	return s
}

// Press marks k as held. Pressing a held key is a no-op.
func (s *KeySet) Press(k Key) {
	if k == KeyNone {
		return
	}
	s.mu.Lock()
	s.held[k] = struct{}{}
	s.mu.Unlock()
}

// Release marks k as no longer held.
func (s *KeySet) Release(k Key) {
	s.mu.Lock()
	delete(s.held, k)
	s.mu.Unlock()
}

// Has reports whether k is held.
func (s *KeySet) Has(k Key) bool {
	s.mu.RLock()
	_, ok := s.held[k]
	s.mu.RUnlock()
	return ok
}

// Len returns the number of held keys.
func (s *KeySet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.held)
}

// Clear releases every key.
func (s *KeySet) Clear() {
	s.mu.Lock()
	clear(s.held)
	s.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the held keys.
func (s *KeySet) Snapshot() Held {
	var h Held
	s.mu.RLock()
	for k := range s.held {
		if k > KeyNone && k < keyCount {
			h[k] = true
		}
	}
	s.mu.RUnlock()
	return h
}

// Held is an immutable snapshot of held keys, indexed by Key.
type Held [keyCount]bool

// Has reports whether k was held when the snapshot was taken.
func (h Held) Has(k Key) bool {
	return k > KeyNone && k < keyCount && h[k]
}
