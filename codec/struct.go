package codec

import (
	"fmt"

	"github.com/anthropics/binschema/cursor"
)

// Field is one named, ordered member of a Struct.
type Field struct {
	Name  string
	Codec Codec
}

// Struct is the Struct Builder's product: an ordered named-field
// aggregate with optional single-base inheritance. Base fields precede
// derived fields on the wire and in object form.
type Struct struct {
	name      string
	base      *Struct
	fields    []Field
	frozen    bool
	overrides map[fieldOverrideKey]FieldOverrideFunc
}

type fieldOverrideKey struct {
	field string
	stage Stage
}

// NewStruct creates an empty, unfrozen struct codec under construction.
func NewStruct(name string) *Struct {
	return &Struct{name: name}
}

// Name returns the struct's schema type name.
func (s *Struct) Name() string { return s.name }

// SetBase sets the struct's single base. Must be called, if at all, before
// the struct is frozen and before any fields reference it for cycle
// detection (the Schema Compiler is responsible for rejecting cycles
// before calling this).
func (s *Struct) SetBase(base *Struct) {
	if s.frozen {
		panic(fmt.Sprintf("binschema: SetBase called on frozen struct %q", s.name))
	}
	s.base = base
}

// Base returns the struct's base, or nil if it has none.
func (s *Struct) Base() *Struct { return s.base }

// AddField appends a field in declaration order. Must be called before the
// struct is frozen.
func (s *Struct) AddField(name string, c Codec) {
	if s.frozen {
		panic(fmt.Sprintf("binschema: AddField called on frozen struct %q", s.name))
	}
	s.fields = append(s.fields, Field{Name: name, Codec: c})
}

// AddFieldOverride registers a field-level override for one stage of the
// named field. The name may be one of this struct's own fields or an
// inherited one: when the struct walks its fields, overrideFor consults
// this struct's overrides first and then its base's.
func (s *Struct) AddFieldOverride(field string, stage Stage, fn FieldOverrideFunc) {
	if s.overrides == nil {
		s.overrides = make(map[fieldOverrideKey]FieldOverrideFunc)
	}
	s.overrides[fieldOverrideKey{field: field, stage: stage}] = fn
}

// Freeze marks the struct as complete; further AddField/SetBase calls
// panic. Compiled schemas are immutable, so every struct is frozen once
// the Schema Compiler finishes constructing it.
func (s *Struct) Freeze() { s.frozen = true }

// OwnFields returns this struct's own declared fields, not including any
// inherited from a base.
func (s *Struct) OwnFields() []Field { return s.fields }

// AllFields returns every field in wire/object order: the base's AllFields
// (recursively) followed by this struct's own fields.
func (s *Struct) AllFields() []Field {
	if s.base == nil {
		return s.fields
	}
	baseFields := s.base.AllFields()
	out := make([]Field, 0, len(baseFields)+len(s.fields))
	out = append(out, baseFields...)
	out = append(out, s.fields...)
	return out
}

// fieldMap returns a name -> Codec lookup of every field (base included),
// the "Fields" a field override's FieldContext sees as siblings.
func (s *Struct) fieldMap() map[string]Codec {
	all := s.AllFields()
	m := make(map[string]Codec, len(all))
	for _, f := range all {
		m[f.Name] = f.Codec
	}
	return m
}

// overrideFor walks from the struct owning field up through bases to find
// a registered override for (field, stage); a derived struct's own
// override for an inherited field's name takes precedence over the
// base's, consistent with fields being looked up by name rather than by
// declaring struct.
func (s *Struct) overrideFor(field string, stage Stage) FieldOverrideFunc {
	for cur := s; cur != nil; cur = cur.base {
		if cur.overrides != nil {
			if fn, ok := cur.overrides[fieldOverrideKey{field: field, stage: stage}]; ok {
				return fn
			}
		}
	}
	return nil
}

func (s *Struct) Required() bool { return true }

func (s *Struct) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: s.name}
	}
	obj, ok := value.(map[string]interface{})
	if !ok {
		return nil, &FormatError{TypeName: s.name, Detail: fmt.Sprintf("expected an object, got %v", value)}
	}

	fields := s.fieldMap()
	result := make(map[string]interface{}, len(fields))
	for _, f := range s.AllFields() {
		if fn := s.overrideFor(f.Name, StageFromObject); fn != nil {
			ctx := &FieldContext{FieldName: f.Name, Fields: fields, Object: obj, Result: result}
			if err := fn(ctx); err != nil {
				return nil, err
			}
			continue
		}

		raw, present := obj[f.Name]
		if !present || raw == nil {
			if f.Codec.Required() {
				return nil, &RequiredError{Path: s.name + "." + f.Name}
			}
			result[f.Name] = nil
			continue
		}
		internal, err := f.Codec.FromObject(raw)
		if err != nil {
			return nil, err
		}
		result[f.Name] = internal
	}
	return result, nil
}

func (s *Struct) ToObject(internal interface{}, config *Config) (interface{}, error) {
	fields := s.fieldMap()
	if internal == nil {
		if config != nil && config.Defaults {
			result := make(map[string]interface{}, len(fields))
			for _, f := range s.AllFields() {
				v, err := f.Codec.ToObject(nil, config)
				if err != nil {
					return nil, err
				}
				result[f.Name] = v
			}
			return result, nil
		}
		return nil, &RequiredError{Path: s.name}
	}

	obj := internal.(map[string]interface{})
	result := make(map[string]interface{}, len(fields))
	for _, f := range s.AllFields() {
		if fn := s.overrideFor(f.Name, StageToObject); fn != nil {
			ctx := &FieldContext{FieldName: f.Name, Fields: fields, Object: obj, Result: result, Config: config}
			if err := fn(ctx); err != nil {
				return nil, err
			}
			continue
		}
		v, err := f.Codec.ToObject(obj[f.Name], config)
		if err != nil {
			return nil, err
		}
		result[f.Name] = v
	}
	return result, nil
}

func (s *Struct) AppendBytes(w *cursor.Writer, internal interface{}) error {
	obj, _ := internal.(map[string]interface{})
	fields := s.fieldMap()
	for _, f := range s.AllFields() {
		if fn := s.overrideFor(f.Name, StageAppendBytes); fn != nil {
			ctx := &FieldContext{FieldName: f.Name, Fields: fields, Object: obj, Writer: w}
			if err := fn(ctx); err != nil {
				return err
			}
			continue
		}
		if err := f.Codec.AppendBytes(w, obj[f.Name]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Struct) FromBytes(r *cursor.Reader) (interface{}, error) {
	fields := s.fieldMap()
	result := make(map[string]interface{}, len(fields))
	for _, f := range s.AllFields() {
		if fn := s.overrideFor(f.Name, StageFromBytes); fn != nil {
			ctx := &FieldContext{FieldName: f.Name, Fields: fields, Result: result, Reader: r}
			if err := fn(ctx); err != nil {
				return nil, err
			}
			continue
		}
		v, err := f.Codec.FromBytes(r)
		if err != nil {
			return nil, err
		}
		result[f.Name] = v
	}
	return result, nil
}
