package redact

import (
	"encoding/json"
	"fmt"
)

// Entry is one record of a `ceph config dump`. Ceph adds fields to the dump
// between releases, so anything beyond the three fields the filter tests is
// carried through the report verbatim.
type Entry struct {
	Name    string
	Section string
	Value   string

	rest map[string]json.RawMessage
}

// FormatError reports a config dump entry without the shape the filter needs.
type FormatError struct {
	Field string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("config dump entry is missing string field %q", e.Field)
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, field := range []struct {
		name string
		dst  *string
	}{
		{"name", &e.Name},
		{"section", &e.Section},
		{"value", &e.Value},
	} {
		msg, ok := raw[field.name]
		if !ok {
			return &FormatError{Field: field.name}
		}
		if err := json.Unmarshal(msg, field.dst); err != nil {
			return &FormatError{Field: field.name}
		}
		delete(raw, field.name)
	}
	e.rest = raw
	return nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(e.rest)+3)
	for k, v := range e.rest {
		out[k] = v
	}
	for name, value := range map[string]string{
		"name":    e.Name,
		"section": e.Section,
		"value":   e.Value,
	} {
		msg, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		out[name] = msg
	}
	return json.Marshal(out)
}
