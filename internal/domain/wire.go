package domain

import (
	"encoding/json"
	"fmt"
)

// caseEnvelope is the wire shape shared by every tagged-variant value in
// this package: { "Case": "<Variant>", "Fields": [ <positional args> ] }.
type caseEnvelope struct {
	Case   string            `json:"Case"`
	Fields []json.RawMessage `json:"Fields"`
}

// encodeCase marshals tag and fields into the shared envelope shape.
func encodeCase(tag string, fields ...any) ([]byte, error) {
	raw := make([]json.RawMessage, len(fields))
	for i, f := range fields {
		b, err := json.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("domain: encode field %d of %s: %w", i, tag, err)
		}
		raw[i] = b
	}
	return json.Marshal(caseEnvelope{Case: tag, Fields: raw})
}

// decodeCase parses the shared envelope shape and returns its tag and
// raw positional fields for the caller to unmarshal individually.
func decodeCase(data []byte) (string, []json.RawMessage, error) {
	var env caseEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", nil, err
	}
	if env.Case == "" {
		return "", nil, fmt.Errorf("domain: missing Case in %s", data)
	}
	return env.Case, env.Fields, nil
}

// field unmarshals the i'th positional field into out, or returns a
// descriptive error if the field is missing.
func field(tag string, fields []json.RawMessage, i int, out any) error {
	if i >= len(fields) {
		return fmt.Errorf("domain: %s: expected field %d, got %d fields", tag, i, len(fields))
	}
	return json.Unmarshal(fields[i], out)
}
