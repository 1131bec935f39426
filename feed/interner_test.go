package feed

import "testing"

func TestInternerEmptyStringIsHandleZero(t *testing.T) {
	p := NewInterner()
	if got := p.Intern(""); got != 0 {
		t.Errorf("expected handle 0, got %d", got)
	}
	if id, ok := p.Lookup(""); !ok || id != 0 {
		t.Errorf("expected (0, true), got (%d, %v)", id, ok)
	}
	if got := p.Resolve(0); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestInternerAssignsStableHandles(t *testing.T) {
	p := NewInterner()
	first := p.Intern("stop_1")
	second := p.Intern("stop_2")
	again := p.Intern("stop_1")

	if first == 0 || second == 0 {
		t.Fatal("non-empty strings must not get handle 0")
	}
	if first == second {
		t.Error("distinct strings must get distinct handles")
	}
	if again != first {
		t.Errorf("re-interning the same string should return the same handle, got %d and %d", first, again)
	}
}

func TestInternerLookupMissing(t *testing.T) {
	p := NewInterner()
	p.Intern("stop_1")
	if _, ok := p.Lookup("stop_2"); ok {
		t.Error("expected Lookup to report false for an unseen string")
	}
}

func TestInternerResolveRoundTrips(t *testing.T) {
	p := NewInterner()
	id := p.Intern("route_7")
	if got := p.Resolve(id); got != "route_7" {
		t.Errorf("expected route_7, got %q", got)
	}
}

func TestInternerResolveOutOfRange(t *testing.T) {
	p := NewInterner()
	if got := p.Resolve(99); got != "" {
		t.Errorf("expected empty string for an unassigned handle, got %q", got)
	}
}

func TestInternerLen(t *testing.T) {
	p := NewInterner()
	if got := p.Len(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	p.Intern("a")
	p.Intern("b")
	p.Intern("a")
	if got := p.Len(); got != 2 {
		t.Errorf("expected 2 distinct strings, got %d", got)
	}
}
