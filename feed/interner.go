package feed

import "sync"

// Interner maps GTFS identifier strings (stop_id, route_id, trip_id,
// shape_id, …) to dense int32 handles. Handles back the roaring-bitmap
// "visited" sets the cross-file validators use to find unused stops,
// trips, shapes, and routes without carrying a string set per table.
//
// Handle 0 is reserved for the empty string, so a zero-value int32 field
// in a struct reads as "absent" without a separate boolean.
type Interner struct {
	mu     sync.RWMutex
	ids    map[string]int32
	values []string
}

// NewInterner returns an Interner with handle 0 pre-bound to "".
func NewInterner() *Interner {
	p := &Interner{ids: make(map[string]int32), values: []string{""}}
	p.ids[""] = 0
	return p
}

// Intern returns s's handle, assigning a new one if s hasn't been seen.
func (p *Interner) Intern(s string) int32 {
	if s == "" {
		return 0
	}
	p.mu.RLock()
	if id, ok := p.ids[s]; ok {
		p.mu.RUnlock()
		return id
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if id, ok := p.ids[s]; ok {
		return id
	}
	id := int32(len(p.values))
	p.values = append(p.values, s)
	p.ids[s] = id
	return id
}

// Lookup returns s's handle without assigning a new one.
func (p *Interner) Lookup(s string) (int32, bool) {
	if s == "" {
		return 0, true
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	id, ok := p.ids[s]
	return id, ok
}

// Resolve returns the string bound to handle id.
func (p *Interner) Resolve(id int32) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if int(id) >= len(p.values) {
		return ""
	}
	return p.values[id]
}

// Len returns the number of distinct non-empty strings interned.
func (p *Interner) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.values) - 1
}
