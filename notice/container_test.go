package notice

import "testing"

func TestContainerSortedGroupsByCode(t *testing.T) {
	c := NewContainer()
	c.Add(New("zzz_code", SeverityWarning))
	c.Add(New("aaa_code", SeverityError))
	c.Add(New("aaa_code", SeverityError))

	sorted := c.Sorted()
	if len(sorted) != 3 {
		t.Fatalf("expected 3 notices, got %d", len(sorted))
	}
	if sorted[0].Code != "aaa_code" || sorted[1].Code != "aaa_code" || sorted[2].Code != "zzz_code" {
		t.Errorf("expected codes sorted lexicographically, got %v", []string{sorted[0].Code, sorted[1].Code, sorted[2].Code})
	}
}

func TestContainerSortedBreaksTiesByInsertionOrder(t *testing.T) {
	c := NewContainer()
	c.Add(New("dup", SeverityError).With("stopId", "S1"))
	c.Add(New("dup", SeverityError).With("stopId", "S1"))

	sorted := c.Sorted()
	if len(sorted) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(sorted))
	}
	if sorted[0].insertionSeq >= sorted[1].insertionSeq {
		t.Errorf("expected insertion order to break the tie, got seq %d before %d", sorted[0].insertionSeq, sorted[1].insertionSeq)
	}
}

func TestContainerLenAndCountByCode(t *testing.T) {
	c := NewContainer()
	c.Add(New("a", SeverityError))
	c.AddAll([]Notice{New("a", SeverityError), New("b", SeverityWarning)})

	if c.Len() != 3 {
		t.Errorf("expected 3, got %d", c.Len())
	}
	counts := c.CountByCode()
	if counts["a"] != 2 || counts["b"] != 1 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}
