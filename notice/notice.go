package notice

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Severity classifies how serious a notice is.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Field is one entry of a Notice's context, in declaration order.
type Field struct {
	Name  string
	Value any
}

// Context is an insertion-ordered map from field name to scalar value.
// Go maps don't preserve order, and notice context order is part of the
// canonical report shape, so context is a small ordered slice instead.
type Context []Field

// Set appends name/value, or overwrites the value in place if name was
// already set (keeping its original position).
func (c *Context) Set(name string, value any) {
	for i := range *c {
		if (*c)[i].Name == name {
			(*c)[i].Value = value
			return
		}
	}
	*c = append(*c, Field{Name: name, Value: value})
}

// Get returns the value for name and whether it was present.
func (c Context) Get(name string) (any, bool) {
	for _, f := range c {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Names returns the context's field names in declaration order.
func (c Context) Names() []string {
	out := make([]string, len(c))
	for i, f := range c {
		out[i] = f.Name
	}
	return out
}

// sortKey renders the context as its canonical sort string: fields in
// declared order, "name=value" pairs joined by "\x1f" so ties sort
// lexicographically within a code-group (spec.md §4.6).
func (c Context) sortKey() string {
	var buf bytes.Buffer
	for i, f := range c {
		if i > 0 {
			buf.WriteByte(0x1f)
		}
		fmt.Fprintf(&buf, "%s=%v", f.Name, f.Value)
	}
	return buf.String()
}

// MarshalJSON renders the context as a JSON object preserving field order,
// since encoding/json on a map would otherwise sort keys alphabetically.
func (c Context) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Notice is a single diagnostic record. It is immutable once constructed:
// validators build one via New and chain With* calls, then push it into a
// Container.
type Notice struct {
	Code     string
	Severity Severity
	Context  Context

	// insertionSeq preserves the order notices were pushed in, used as the
	// tie-break within a code-group when two notices have identical
	// context sort keys (spec.md §4.6).
	insertionSeq int64
}

// New creates a Notice with no context fields set.
func New(code string, severity Severity) Notice {
	return Notice{Code: code, Severity: severity}
}

// With sets a context field and returns the notice, for fluent construction.
func (n Notice) With(name string, value any) Notice {
	n.Context.Set(name, value)
	return n
}

// WithLocation sets the conventional location-style fields used by most
// file validators (spec.md §4.8).
func (n Notice) WithLocation(filename string, csvRowNumber int, fieldName, fieldValue string) Notice {
	return n.With("filename", filename).
		With("csvRowNumber", csvRowNumber).
		With("fieldName", fieldName).
		With("fieldValue", fieldValue)
}
