package dot

import "sync"

// Attrs is an insertion-ordered attribute table. Iteration follows the
// order keys were first set, so DOT output stays stable across runs.
// Attrs is safe for concurrent use.
type Attrs struct {
	mu     sync.RWMutex
	keys   []string
	values map[string]string
}

// NewAttrs creates an empty attribute table.
func NewAttrs() *Attrs {
	return &Attrs{values: make(map[string]string)}
}

// Set stores a key. Re-setting an existing key keeps its original
// position in the iteration order.
func (a *Attrs) Set(key, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value for key and whether it is present.
func (a *Attrs) Get(key string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.values[key]
	return v, ok
}

// GetDefault returns the value for key, or def when absent.
func (a *Attrs) GetDefault(key, def string) string {
	if v, ok := a.Get(key); ok {
		return v
	}
	return def
}

// Del removes a key.
func (a *Attrs) Del(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.keys)
}

// Keys returns the keys in insertion order.
func (a *Attrs) Keys() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Each calls fn for every attribute in insertion order. Returning
// false stops the iteration.
func (a *Attrs) Each(fn func(key, value string) bool) {
	for _, k := range a.Keys() {
		v, ok := a.Get(k)
		if !ok {
			continue
		}
		if !fn(k, v) {
			return
		}
	}
}

// Clone returns an independent copy with the same order.
func (a *Attrs) Clone() *Attrs {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := NewAttrs()
	out.keys = make([]string, len(a.keys))
	copy(out.keys, a.keys)
	for k, v := range a.values {
		out.values[k] = v
	}
	return out
}
