package notice

import (
	"encoding/json"
	"testing"
)

func TestContextSetAppendsAndOverwrites(t *testing.T) {
	var c Context
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 99)

	if len(c) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(c))
	}
	if v, _ := c.Get("a"); v != 99 {
		t.Errorf("expected overwritten value 99, got %v", v)
	}
	if names := c.Names(); names[0] != "a" || names[1] != "b" {
		t.Errorf("expected original insertion order preserved, got %v", names)
	}
}

func TestContextGetMissing(t *testing.T) {
	var c Context
	if _, ok := c.Get("missing"); ok {
		t.Error("expected ok=false for an unset field")
	}
}

func TestContextMarshalJSONPreservesOrder(t *testing.T) {
	var c Context
	c.Set("z", 1)
	c.Set("a", 2)
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"z":1,"a":2}`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, string(b))
	}
}

func TestNoticeWithFluentChaining(t *testing.T) {
	n := New("some_code", SeverityWarning).With("filename", "stops.txt").With("csvRowNumber", 4)
	if n.Code != "some_code" || n.Severity != SeverityWarning {
		t.Fatalf("unexpected notice %+v", n)
	}
	if v, ok := n.Context.Get("filename"); !ok || v != "stops.txt" {
		t.Errorf("expected filename=stops.txt, got %v, %v", v, ok)
	}
}

func TestNoticeWithLocationSetsConventionalFields(t *testing.T) {
	n := New("invalid_date", SeverityError).WithLocation("calendar.txt", 3, "start_date", "garbage")
	for _, field := range []string{"filename", "csvRowNumber", "fieldName", "fieldValue"} {
		if _, ok := n.Context.Get(field); !ok {
			t.Errorf("expected field %s to be set", field)
		}
	}
}
