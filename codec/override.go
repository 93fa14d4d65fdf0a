package codec

import (
	"fmt"
	"strings"

	"github.com/anthropics/binschema/cursor"
)

// FieldContext is what a field-level override sees. Only the members
// relevant to the stage being invoked are populated: Writer for
// appendByteBuffer, Reader for fromByteBuffer, Object/Result for the two
// object-shaped stages.
type FieldContext struct {
	// FieldName is the field the override is replacing.
	FieldName string

	// Fields is the sibling field codec lookup of the enclosing struct
	// (base fields included), by name.
	Fields map[string]Codec

	// Object is the current input (fromObject/appendByteBuffer) or the
	// already-decoded sibling values (toObject), as a name -> value map.
	Object map[string]interface{}

	// Result is the accumulating result map (fromObject/toObject/
	// fromByteBuffer); the override must assign into it itself.
	Result map[string]interface{}

	Writer *cursor.Writer
	Reader *cursor.Reader
	Config *Config
}

// FieldOverrideFunc replaces one struct field's behavior for one stage.
// It is responsible for the field's full effect for that stage: writing
// into ctx.Result, or into ctx.Writer.
type FieldOverrideFunc func(ctx *FieldContext) error

// ParseOverrideKey splits a dotted override configuration key into its
// structured form: either a type-level override ("Type.op", Field=="")
// or a field-level override ("Struct.field.op").
func ParseOverrideKey(key string) (typeName, field string, stage Stage, err error) {
	parts := strings.Split(key, ".")
	switch len(parts) {
	case 2:
		return parts[0], "", Stage(parts[1]), validateStage(Stage(parts[1]))
	case 3:
		return parts[0], parts[1], Stage(parts[2]), validateStage(Stage(parts[2]))
	default:
		return "", "", "", fmt.Errorf("invalid override key %q: expected \"Type.op\" or \"Struct.field.op\"", key)
	}
}

func validateStage(s Stage) error {
	switch s {
	case StageFromObject, StageToObject, StageFromBytes, StageAppendBytes:
		return nil
	default:
		return fmt.Errorf("invalid override stage %q", s)
	}
}

// overridingCodec wraps a base Codec, replacing exactly one stage with a
// type-level OverrideFunc while delegating the rest.
type overridingCodec struct {
	base  Codec
	stage Stage
	fn    OverrideFunc
}

// WithTypeOverride returns a Codec identical to base except that stage is
// replaced wholesale by fn.
func WithTypeOverride(base Codec, stage Stage, fn OverrideFunc) Codec {
	return &overridingCodec{base: base, stage: stage, fn: fn}
}

func (c *overridingCodec) Required() bool { return c.base.Required() }

func (c *overridingCodec) FromObject(value interface{}) (interface{}, error) {
	if c.stage == StageFromObject {
		return c.fn(OverrideArgs{Value: value})
	}
	return c.base.FromObject(value)
}

func (c *overridingCodec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if c.stage == StageToObject {
		return c.fn(OverrideArgs{Value: internal, Config: config})
	}
	return c.base.ToObject(internal, config)
}

func (c *overridingCodec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	if c.stage == StageAppendBytes {
		_, err := c.fn(OverrideArgs{Value: internal, Writer: w})
		return err
	}
	return c.base.AppendBytes(w, internal)
}

func (c *overridingCodec) FromBytes(r *cursor.Reader) (interface{}, error) {
	if c.stage == StageFromBytes {
		return c.fn(OverrideArgs{Reader: r})
	}
	return c.base.FromBytes(r)
}
