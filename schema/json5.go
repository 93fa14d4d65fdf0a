package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aeolun/json5"
)

// CompileJSON5 parses a schema document as JSON5 (§2.1: comments, trailing
// commas, unquoted keys all tolerated at the document level) and compiles
// it. Shape violations named in §4.3 phase 1 are collected into the
// result's Errors rather than returned as a single parse failure; only a
// document that is not valid JSON5 at all is a hard, early error.
func CompileJSON5(data []byte, config *Config) (*CompileResult, error) {
	var raw map[string]json.RawMessage
	if err := json5.Unmarshal(data, &raw); err != nil {
		return &CompileResult{}, fmt.Errorf("schema: invalid JSON5 document: %w", err)
	}

	sch := Schema{}
	var shapeErrors []*Error
	for name, entryRaw := range raw {
		entry, errs := parseRawEntry(name, entryRaw)
		shapeErrors = append(shapeErrors, errs...)
		if entry != nil {
			sch[name] = *entry
		}
	}

	result, err := Compile(sch, config)
	result.Errors = append(shapeErrors, result.Errors...)
	if len(shapeErrors) > 0 {
		err = fmt.Errorf("schema: %d compile error(s), first: %s", len(result.Errors), result.Errors[0].Message)
	}
	return result, err
}

// parseRawEntry applies phase 1's syntactic validation to one schema
// entry, returning either a usable Entry or the structured errors that
// explain why it isn't one.
func parseRawEntry(name string, raw json.RawMessage) (*Entry, []*Error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, []*Error{{Message: fmt.Sprintf("Expecting object or string in %s", name)}}
	}
	if trimmed[0] == '"' {
		var alias string
		if err := json.Unmarshal(raw, &alias); err != nil {
			return nil, []*Error{{Message: fmt.Sprintf("Expecting object or string in %s", name)}}
		}
		e := Alias(alias)
		return &e, nil
	}
	if trimmed[0] != '{' {
		return nil, []*Error{{Message: fmt.Sprintf("Expecting object or string in %s", name)}}
	}

	var shape struct {
		Base   *json.RawMessage `json:"base"`
		Fields *json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, []*Error{{Message: fmt.Sprintf("Expecting object or string in %s", name)}}
	}
	if shape.Base == nil && shape.Fields == nil {
		return nil, []*Error{{Message: fmt.Sprintf("Expecting %s.fields or %s.base", name, name)}}
	}

	var errs []*Error
	base := ""
	if shape.Base != nil {
		if err := json.Unmarshal(*shape.Base, &base); err != nil {
			errs = append(errs, &Error{Message: fmt.Sprintf("Expecting string in %s.base", name)})
		}
	}

	var fields []FieldSpec
	if shape.Fields != nil {
		ftrim := bytes.TrimSpace(*shape.Fields)
		if len(ftrim) == 0 || ftrim[0] != '{' {
			errs = append(errs, &Error{Message: fmt.Sprintf("Expecting object in %s.fields", name)})
		} else {
			var of orderedFields
			if err := of.UnmarshalJSON(*shape.Fields); err != nil {
				errs = append(errs, &Error{Message: fmt.Sprintf("Expecting object in %s.fields", name)})
			} else {
				for _, key := range of.names {
					var typeExpr string
					if err := json.Unmarshal(of.values[key], &typeExpr); err != nil {
						errs = append(errs, &Error{Message: fmt.Sprintf("Expecting string in %s.fields.%s", name, key)})
						continue
					}
					fields = append(fields, Field(key, typeExpr))
				}
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	e := StructEntry(base, fields...)
	return &e, nil
}
