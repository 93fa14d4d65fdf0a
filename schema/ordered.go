package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// orderedFields decodes a JSON object's keys in source order, since Go's
// map[string]T loses it and the wire format requires declared field order
// to be preserved. It walks the already-JSON5-normalized raw bytes
// aeolun/json5 hands back for one struct's "fields" sub-document with a
// plain encoding/json.Decoder token stream: JSON5-only syntax (comments,
// trailing commas) nested inside that one sub-object is not tolerated,
// only the surrounding document gets full JSON5 license.
type orderedFields struct {
	names  []string
	values map[string]json.RawMessage
}

func (of *orderedFields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object")
	}

	of.values = map[string]json.RawMessage{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected a string key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		of.names = append(of.names, key)
		of.values[key] = raw
	}
	_, err = dec.Token() // closing '}'
	return err
}
