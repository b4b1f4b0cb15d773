package evaluator

import (
	"bytes"
	"encoding/json"
)

// ValueToJSON marshals a Value to JSON bytes. Scalars map to their JSON
// counterparts; functions and environments encode as their ToString text.
// HTML characters are left unescaped so `<function f>` prints as written.
func ValueToJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(valueToRaw(v)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func valueToRaw(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return val.Value
	case Number:
		return val.Value
	case String:
		return val.Value
	}
	return ToString(v)
}

// ValueToJSONString is a convenience that returns a string.
func ValueToJSONString(v Value) string {
	b, err := ValueToJSON(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
