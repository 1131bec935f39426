package report

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON renders r as the canonical report.json bytes: two-space
// indented, with HTML-escaping disabled so URLs and comparison operators
// in notice context values survive byte-for-byte (spec.md §6's
// "bit-exact" requirement).
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rawReport(*r)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// rawReport exists so MarshalJSON can call json.Marshal on Report's
// fields without recursing back into this method.
type rawReport Report

func (r SystemErrorList) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]SystemError(r))
}

// SystemErrorList lets system_errors.json render as [] rather than null
// when no validator panicked.
type SystemErrorList []SystemError

// MarshalSystemErrors renders the system_errors.json artifact on its
// own, independent of report.json.
func (r *Report) MarshalSystemErrors() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.SystemErrors); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
