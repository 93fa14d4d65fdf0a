// Package binschema is the public entry point: compile a schema (either
// built programmatically via the schema package's types, or authored as
// JSON5), then encode/decode values against one of its compiled structs.
//
// This mirrors the teacher's top-level package surface — a thin façade
// over schema and codec that most callers never need to reach past.
package binschema

import (
	"fmt"

	"github.com/anthropics/binschema/codec"
	"github.com/anthropics/binschema/cursor"
	"github.com/anthropics/binschema/schema"
)

// Schema is a finite mapping from type name to schema entry (§3).
type Schema = schema.Schema

// Config is the shared Type Factory / Schema Compiler / Override Engine
// configuration surface (§6).
type Config = schema.Config

// CompileResult is the Schema Compiler's output.
type CompileResult = schema.CompileResult

// Compile resolves and constructs sch's struct codecs.
func Compile(sch Schema, config *Config) (*CompileResult, error) {
	return schema.Compile(sch, config)
}

// CompileJSON5 parses a JSON5-authored schema document and compiles it.
func CompileJSON5(data []byte, config *Config) (*CompileResult, error) {
	return schema.CompileJSON5(data, config)
}

// ToBuffer encodes value (object form) into its canonical wire bytes
// using c.
func ToBuffer(c codec.Codec, value interface{}) ([]byte, error) {
	internal, err := c.FromObject(value)
	if err != nil {
		return nil, err
	}
	w := cursor.NewWriter()
	if err := c.AppendBytes(w, internal); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// FromBuffer decodes data with c and converts the result back to object
// form. An empty or truncated buffer surfaces cursor.ErrIllegalOffset
// (wrapped with a "binschema: FromBuffer:" prefix).
func FromBuffer(c codec.Codec, data []byte) (interface{}, error) {
	r := cursor.NewReader(data)
	internal, err := c.FromBytes(r)
	if err != nil {
		return nil, fmt.Errorf("binschema: FromBuffer: %w", err)
	}
	return c.ToObject(internal, nil)
}
