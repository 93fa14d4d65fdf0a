package codec

// NewTypeFactory produces the fixed catalog of nullary built-in primitive
// codecs (everything except the parametric fixed_bytesN/fixed_stringN,
// optional/vector/set/map wrappers, which the Schema Compiler's grammar
// parser constructs on demand with their parameters). Type-level
// overrides targeting one of these primitives by name (an override key
// with no field component, e.g. "uint64.toObject") are applied here, once,
// so every reference to that primitive in the schema shares the override.
// Type-level keys naming anything outside this catalog (a struct, a
// custom type, fixed_bytesN/fixed_stringN) are not applied, here or by
// the Schema Compiler.
func NewTypeFactory(config *Config) map[string]Codec {
	catalog := map[string]Codec{
		"uint8":     NewUint8(),
		"uint16":    NewUint16(),
		"uint32":    NewUint32(),
		"uint64":    NewUint64(),
		"int8":      NewInt8(),
		"int16":     NewInt16(),
		"int32":     NewInt32(),
		"int64":     NewInt64(),
		"varuint32": NewVaruint32(),
		"varint32":  NewVarint32(),
		"bytes":     NewBytes(),
		"string":    NewString(),
		"time":      NewTime(),
	}

	if config == nil {
		return catalog
	}

	for key, raw := range config.Override {
		typeName, field, stage, err := ParseOverrideKey(key)
		if err != nil || field != "" {
			continue // field-level overrides are applied per-struct, not here
		}
		base, ok := catalog[typeName]
		if !ok {
			continue // targets a struct or a parametric/custom type: not applied
		}
		fn, ok := raw.(OverrideFunc)
		if !ok {
			continue
		}
		catalog[typeName] = WithTypeOverride(base, stage, fn)
	}

	return catalog
}
