package notice

import (
	"sort"
	"sync"
)

// Container accumulates notices produced during a validation run and
// exposes them in the canonical deterministic order required by the
// report emitter: grouped by code, and within a code group sorted by
// context sort key with insertion order as the final tie-break.
type Container struct {
	mu    sync.Mutex
	seq   int64
	items []Notice
}

// NewContainer returns an empty, ready-to-use Container.
func NewContainer() *Container {
	return &Container{}
}

// Add pushes n into the container, stamping it with the next insertion
// sequence number. Safe for concurrent use by multiple validator jobs.
func (c *Container) Add(n Notice) {
	c.mu.Lock()
	n.insertionSeq = c.seq
	c.seq++
	c.items = append(c.items, n)
	c.mu.Unlock()
}

// AddAll pushes every notice in ns, preserving their relative order
// within the batch.
func (c *Container) AddAll(ns []Notice) {
	c.mu.Lock()
	for _, n := range ns {
		n.insertionSeq = c.seq
		c.seq++
		c.items = append(c.items, n)
	}
	c.mu.Unlock()
}

// Len reports how many notices are currently held.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Sorted returns a copy of the accumulated notices in canonical order:
// partitioned by code (codes sorted lexicographically), then within a
// code group by context sort key, with insertion order breaking ties.
func (c *Container) Sorted() []Notice {
	c.mu.Lock()
	out := make([]Notice, len(c.items))
	copy(out, c.items)
	c.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		ki, kj := out[i].Context.sortKey(), out[j].Context.sortKey()
		if ki != kj {
			return ki < kj
		}
		return out[i].insertionSeq < out[j].insertionSeq
	})
	return out
}

// CountByCode tallies how many notices of each code were accumulated,
// ignoring severity. Used by the report summary and by MaxNoticesPerCode
// truncation.
func (c *Container) CountByCode() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := make(map[string]int)
	for _, n := range c.items {
		counts[n.Code]++
	}
	return counts
}
