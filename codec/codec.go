// Package codec implements the Type Factory and Struct Builder: the
// polymorphic Codec interface and the catalog of built-in primitive and
// composite codecs that implement it.
package codec

import (
	"errors"
	"fmt"

	"github.com/anthropics/binschema/cursor"
)

// Codec is the universal abstraction every built-in, struct, or custom type
// implements. A compiled schema is, in the end, nothing but a graph of
// Codec values wired together by name.
type Codec interface {
	// FromObject canonicalizes a user-supplied value into the codec's
	// internal representation. It returns a *RequiredError if value is nil
	// and the codec is required.
	FromObject(value interface{}) (interface{}, error)

	// ToObject converts an internal value back into a plain, JSON-friendly
	// value. When internal is nil and config.Defaults is true, it produces
	// a representative default instead of erroring.
	ToObject(internal interface{}, config *Config) (interface{}, error)

	// AppendBytes writes the canonical byte encoding of internal to w.
	AppendBytes(w *cursor.Writer, internal interface{}) error

	// FromBytes reads one value from r, advancing it exactly by the bytes
	// consumed.
	FromBytes(r *cursor.Reader) (interface{}, error)

	// Required reports whether nil/absent is rejected by FromObject.
	// Optional-wrapped codecs always report false.
	Required() bool
}

// Stage names one of the four pipeline operations a codec exposes, used as
// the last component of an override key (see override.go).
type Stage string

const (
	StageFromObject     Stage = "fromObject"
	StageToObject       Stage = "toObject"
	StageFromBytes      Stage = "fromByteBuffer"
	StageAppendBytes    Stage = "appendByteBuffer"
)

// OverrideFunc is a type-level override: it replaces one stage of one
// codec's pipeline wholesale. fromObject/toObject receive Value,
// appendByteBuffer receives Value and Writer, fromByteBuffer receives
// Reader; see override.go for the calling convention.
type OverrideFunc func(args OverrideArgs) (interface{}, error)

// OverrideArgs bundles the arguments passed to a type-level OverrideFunc.
// Only the fields relevant to the stage being invoked are populated.
type OverrideArgs struct {
	Value  interface{}
	Writer *cursor.Writer
	Reader *cursor.Reader
	Config *Config
}

// CustomTypeFactory constructs a user-defined Codec from an opaque opts
// value. The Schema Compiler calls each registered factory once per
// compilation with opts set to nil; there is no way to declare options
// for a custom type in a schema or in Config.
type CustomTypeFactory func(opts interface{}) (Codec, error)

// Config is the Type Factory configuration: recognized options for a
// single compilation.
type Config struct {
	// Defaults, when true, makes ToObject(nil, cfg) produce a
	// representative specimen instead of nil. Never affects the wire
	// format.
	Defaults bool

	// Debug is carried through compilation but not read by the Schema
	// Compiler: Compile produces no extra output when it is set. The
	// doc-stub generator (see docgen.go) is run by calling
	// GenerateStructStub directly. Never affects the wire format.
	Debug bool

	// Override maps "<type>.<op>" or "<struct>.<field>.<op>" dotted keys
	// to replacement logic. See override.go.
	Override map[string]interface{}

	// CustomTypes maps schema type names to factories that produce a
	// Codec. Names here shadow built-in primitives.
	CustomTypes map[string]CustomTypeFactory
}

// DefaultsOnly returns a Config with only Defaults set, a common case for
// ad hoc ToObject(nil, ...) calls outside of a full compilation.
func DefaultsOnly(defaults bool) *Config {
	return &Config{Defaults: defaults}
}

// RequiredError is returned by FromObject when a required value is absent.
type RequiredError struct {
	Path string // "<structName>.<fieldName>" or a bare type name
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("Required %s", e.Path)
}

// OverflowError is returned when a numeric value falls outside a codec's
// representable range.
type OverflowError struct {
	TypeName string
	Value    interface{}
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("Overflow: %v does not fit in %s", e.Value, e.TypeName)
}

// FormatError is returned when a value is syntactically invalid for a
// codec (malformed numeric string, unparseable date, duplicate set member).
type FormatError struct {
	TypeName string
	Detail   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error in %s: %s", e.TypeName, e.Detail)
}

// LengthMismatchError is returned by fixed-width codecs when the input
// does not have exactly the expected length.
type LengthMismatchError struct {
	TypeName string
	Got      int
	Want     int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s length %d does not equal %d", e.TypeName, e.Got, e.Want)
}

// ErrNotACodec is returned by the set/map constructors, and wrapped (with
// the codec kind prepended to the message) by the vector/optional
// constructors, when passed an inner value that does not implement Codec.
var ErrNotACodec = errors.New("parameter should be a serializer")
