// Package schema implements the Schema Compiler: it resolves a declarative
// mapping of type names (string aliases or struct specs) into a registry of
// compiled codec.Struct codecs, per the five-phase pipeline of SPEC_FULL §4.3.
package schema

import (
	"fmt"
	"strings"

	"github.com/anthropics/binschema/codec"
)

// FieldSpec is one struct field's declaration: a name and a type
// expression string (§3's grammar).
type FieldSpec struct {
	Name string
	Type string
}

// Field constructs a FieldSpec, for building a Schema programmatically.
func Field(name, typeExpr string) FieldSpec {
	return FieldSpec{Name: name, Type: typeExpr}
}

// Entry is one schema.Schema value: either a bare alias (another type's
// name) or a struct spec with an optional base and ordered fields.
type Entry struct {
	isAlias bool
	alias   string

	hasBase bool
	base    string
	fields  []FieldSpec
}

// Alias constructs a schema entry that renames an existing type.
func Alias(target string) Entry {
	return Entry{isAlias: true, alias: target}
}

// StructEntry constructs a struct spec entry. base is the empty string for
// no base.
func StructEntry(base string, fields ...FieldSpec) Entry {
	return Entry{hasBase: base != "", base: base, fields: fields}
}

// Schema is a finite mapping from type name to schema entry (§3).
type Schema map[string]Entry

// Config is the Schema Compiler's configuration surface — the same
// Defaults/Debug/Override/CustomTypes surface the Type Factory consumes
// (§6 calls both out by name; they are one configuration type in this
// port since every option the compiler recognizes is itself a Type
// Factory or Override Engine concern).
type Config = codec.Config

// Error is one accumulated compile-time problem: a schema shape violation
// or an unresolved reference (§4.3, §7).
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// CompileResult is the Schema Compiler's output: whatever structs were
// successfully constructed, plus every accumulated error. Structs may be
// a partial/best-effort registry when Errors is non-empty.
type CompileResult struct {
	Structs map[string]*codec.Struct
	Errors  []*Error
}

// Compile resolves and constructs sch's struct codecs. Errors accumulate
// into the result rather than aborting the call (§4.5); the returned
// error is non-nil exactly when len(result.Errors) > 0, wrapping the
// first accumulated error for callers that only check `err`.
func Compile(sch Schema, config *Config) (*CompileResult, error) {
	c := &compiler{schema: sch, config: config}
	c.classify()
	c.construct()

	result := &CompileResult{Structs: c.structs, Errors: c.errors}
	if len(c.errors) > 0 {
		return result, fmt.Errorf("schema: %d compile error(s), first: %w", len(c.errors), c.errors[0])
	}
	return result, nil
}

type compiler struct {
	schema       Schema
	config       *Config
	primitives   map[string]codec.Codec
	customCodecs map[string]codec.Codec
	structs      map[string]*codec.Struct
	errors       []*Error
}

func (c *compiler) addError(format string, args ...interface{}) {
	c.errors = append(c.errors, &Error{Message: fmt.Sprintf(format, args...)})
}

// classify builds the Type Factory's primitive catalog (with type-level
// overrides already applied, per codec.NewTypeFactory), materializes every
// registered custom type once, and allocates a placeholder *codec.Struct
// for every struct-shaped entry so forward references have something to
// point at (DESIGN NOTES "Forward references and cycles").
func (c *compiler) classify() {
	c.primitives = codec.NewTypeFactory(c.config)
	c.customCodecs = map[string]codec.Codec{}
	if c.config != nil {
		for name, factory := range c.config.CustomTypes {
			cc, err := factory(nil)
			if err != nil {
				c.addError("custom type %q: %v", name, err)
				continue
			}
			c.customCodecs[name] = cc
		}
	}
	c.structs = map[string]*codec.Struct{}
	for name, entry := range c.schema {
		if entry.isAlias {
			continue
		}
		c.structs[name] = codec.NewStruct(name)
	}
}

// resolveLeaf resolves a single leaf type name to its codec, in priority
// order: custom type (shadows a same-named primitive, §6), primitive
// (including parametric fixed_bytesN/fixed_stringN), struct, then alias
// (resolved transitively, with cycle detection). A *codec.Struct already
// implements codec.Codec, so a struct or alias-to-struct reference used
// inside a field's type expression needs no special case here.
func (c *compiler) resolveLeaf(name string, visiting map[string]bool) (codec.Codec, error) {
	if cc, ok := c.customCodecs[name]; ok {
		return cc, nil
	}
	if p, ok := c.resolvePrimitive(name); ok {
		return p, nil
	}
	if s, ok := c.structs[name]; ok {
		return s, nil
	}
	if entry, ok := c.schema[name]; ok && entry.isAlias {
		if visiting[name] {
			return nil, fmt.Errorf("Missing %s", name)
		}
		visiting[name] = true
		return c.resolveLeaf(entry.alias, visiting)
	}
	return nil, fmt.Errorf("Missing %s", name)
}

func (c *compiler) buildExpr(e Expr) (codec.Codec, error) {
	switch t := e.(type) {
	case Leaf:
		return c.resolveLeaf(t.Name, map[string]bool{})
	case OptionalExpr:
		inner, err := c.buildExpr(t.Inner)
		if err != nil {
			return nil, err
		}
		return codec.NewOptional(inner)
	case VectorExpr:
		inner, err := c.buildExpr(t.Inner)
		if err != nil {
			return nil, err
		}
		return codec.NewVector(inner, false)
	case SetExpr:
		inner, err := c.buildExpr(t.Inner)
		if err != nil {
			return nil, err
		}
		return codec.NewSet(inner)
	default:
		return nil, fmt.Errorf("unrecognized type expression %T", e)
	}
}

// construct is phases 4 (base wiring, with cycle detection, then fields)
// and implicitly resolves bare top-level aliases that point nowhere.
func (c *compiler) construct() {
	reported := map[string]bool{}
	for name, entry := range c.schema {
		if entry.isAlias || !entry.hasBase {
			continue
		}
		if cyclePath, ok := c.findBaseCycle(name); ok {
			alreadyReported := false
			for _, n := range cyclePath {
				if reported[n] {
					alreadyReported = true
					break
				}
			}
			if !alreadyReported {
				for _, n := range cyclePath {
					reported[n] = true
				}
				c.addError("Circular base reference: %s", strings.Join(cyclePath, " -> "))
			}
			continue
		}

		if baseEntry, ok := c.schema[entry.base]; ok && baseEntry.isAlias {
			c.addError("Missing %s in %s.base", entry.base, name)
			continue
		}
		baseCodec, err := c.resolveLeaf(entry.base, map[string]bool{})
		if err != nil {
			c.addError("Missing %s in %s.base", entry.base, name)
			continue
		}
		baseStruct, ok := baseCodec.(*codec.Struct)
		if !ok {
			c.addError("Missing %s in %s.base", entry.base, name)
			continue
		}
		c.structs[name].SetBase(baseStruct)
	}

	for name, entry := range c.schema {
		if entry.isAlias {
			continue
		}
		s := c.structs[name]
		for _, f := range entry.fields {
			expr, err := ParseTypeExpr(f.Type)
			if err != nil {
				c.addError("Expecting string in %s.fields.%s: %v", name, f.Name, err)
				continue
			}
			fc, err := c.buildExpr(expr)
			if err != nil {
				c.addError("%v in %s.fields.%s", err, name, f.Name)
				continue
			}
			s.AddField(f.Name, fc)
		}
		c.applyFieldOverrides(name, s)
		s.Freeze()
	}

	for _, entry := range c.schema {
		if !entry.isAlias {
			continue
		}
		if _, err := c.resolveLeaf(entry.alias, map[string]bool{}); err != nil {
			c.addError("Unrecognized type %s", entry.alias)
		}
	}
}

// applyFieldOverrides is phase 5 for field-level overrides: config keys
// of the form "<structName>.<field>.<op>" (§4.4) are parsed once here and
// registered on the owning struct, rather than re-parsed per field access
// at runtime (DESIGN NOTES "Overrides"). Type-level overrides on built-in
// primitives are applied earlier, inside codec.NewTypeFactory, when the
// primitive catalog itself is built; type-level keys naming a struct, a
// custom type or a fixed_bytesN/fixed_stringN type are not applied.
func (c *compiler) applyFieldOverrides(structName string, s *codec.Struct) {
	if c.config == nil {
		return
	}
	for key, raw := range c.config.Override {
		typeName, field, stage, err := codec.ParseOverrideKey(key)
		if err != nil || field == "" || typeName != structName {
			continue
		}
		fn, ok := raw.(codec.FieldOverrideFunc)
		if !ok {
			continue
		}
		s.AddFieldOverride(field, stage, fn)
	}
}

// findBaseCycle walks the base chain starting at name, returning the
// cycle path ("A", "B", ..., "A") if one exists.
func (c *compiler) findBaseCycle(name string) ([]string, bool) {
	path := []string{name}
	visited := map[string]bool{name: true}
	cur := c.schema[name].base
	for cur != "" {
		path = append(path, cur)
		if visited[cur] {
			return path, true
		}
		visited[cur] = true
		nextEntry, ok := c.schema[cur]
		if !ok || nextEntry.isAlias || !nextEntry.hasBase {
			return nil, false
		}
		cur = nextEntry.base
	}
	return nil, false
}
