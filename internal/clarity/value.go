package clarity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Raw is an undecoded response value.
type Raw = json.RawMessage

// wrapper is the tagged {type, value} shape.
type wrapper struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// isNull reports whether raw is empty or the JSON null literal.
func isNull(raw Raw) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Unwrap resolves an optional. For a some (or any non-optional value) it
// returns the inner value and true; for none, null or empty input it
// returns nil and false.
func Unwrap(raw Raw) (Raw, bool) {
	if isNull(raw) {
		return nil, false
	}

	var w wrapper
	if err := json.Unmarshal(raw, &w); err != nil {
		// Not an object: bare primitive, already unwrapped.
		return raw, true
	}

	if isNone(w.Type) {
		return nil, false
	}
	if w.Value != nil {
		if isNull(w.Value) {
			return nil, false
		}
		return w.Value, true
	}

	// Object without a value field: a record of tagged fields.
	return raw, true
}

// isNone matches the optional-none type tag, including the parenthesized
// form "(optional none)" some endpoints produce.
func isNone(typ string) bool {
	return typ == "none" || strings.Contains(typ, "none")
}

// Field extracts a named field from a record value. The record may be a
// tagged tuple wrapper or a plain object; the returned field is itself
// raw and may be tagged. Returns nil when absent.
func Field(raw Raw, name string) Raw {
	inner, ok := Unwrap(raw)
	if !ok {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(inner, &fields); err != nil {
		return nil
	}
	return fields[name]
}

// AsUint decodes an unsigned integer from any of the supported shapes.
// Malformed or missing input decodes to 0.
func AsUint(raw Raw) uint64 {
	inner, ok := Unwrap(raw)
	if !ok {
		return 0
	}

	trimmed := bytes.TrimSpace(inner)
	if len(trimmed) == 0 {
		return 0
	}

	// Quoted decimal string, the common wire form for uints.
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0
		}
		return n
	}

	// Nested tagged wrapper, e.g. {"type":"uint","value":"42"}.
	if trimmed[0] == '{' {
		var w wrapper
		if err := json.Unmarshal(trimmed, &w); err != nil {
			return 0
		}
		if w.Value == nil {
			return 0
		}
		return AsUint(w.Value)
	}

	// Bare JSON number. Parse the literal directly so large amounts do
	// not round through float64.
	n, err := strconv.ParseUint(string(trimmed), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// AsString decodes a text or principal value. Non-string input decodes to
// the empty string.
func AsString(raw Raw) string {
	inner, ok := Unwrap(raw)
	if !ok {
		return ""
	}

	trimmed := bytes.TrimSpace(inner)
	if len(trimmed) == 0 {
		return ""
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return s
	}

	if trimmed[0] == '{' {
		var w wrapper
		if err := json.Unmarshal(trimmed, &w); err != nil {
			return ""
		}
		if w.Value == nil {
			return ""
		}
		return AsString(w.Value)
	}

	return ""
}

// AsBool decodes a boolean value, falling back to def for anything that
// is not recognizably true or false.
func AsBool(raw Raw, def bool) bool {
	inner, ok := Unwrap(raw)
	if !ok {
		return def
	}

	trimmed := bytes.TrimSpace(inner)
	switch {
	case bytes.Equal(trimmed, []byte("true")):
		return true
	case bytes.Equal(trimmed, []byte("false")):
		return false
	}

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var w wrapper
		if err := json.Unmarshal(trimmed, &w); err != nil {
			return def
		}
		if w.Value == nil {
			return def
		}
		return AsBool(w.Value, def)
	}

	return def
}
