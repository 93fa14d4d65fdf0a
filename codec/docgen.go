package codec

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateStructStub renders a best-effort Go struct declaration for each
// named struct, for documentation/introspection only (Config.Debug); its
// output has no bearing on the wire format. Adapted from the teacher's
// codegen.GenerateGo, which emitted a complete compilable encoder/decoder;
// this keeps only the "describe the field shapes in Go syntax" half,
// since encode/decode is no longer code-generated in this port.
func GenerateStructStub(structs map[string]*Struct) string {
	names := make([]string, 0, len(structs))
	for name := range structs {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf strings.Builder
	for _, name := range names {
		s := structs[name]
		if s.Base() != nil {
			fmt.Fprintf(&buf, "type %s struct { // base: %s\n", name, s.Base().Name())
		} else {
			fmt.Fprintf(&buf, "type %s struct {\n", name)
		}
		for _, f := range s.OwnFields() {
			fmt.Fprintf(&buf, "\t%s %s\n", capitalizeFirst(f.Name), goTypeHint(f.Codec))
		}
		buf.WriteString("}\n\n")
	}
	return buf.String()
}

// goTypeHint makes a best-effort guess at a human-readable Go type for a
// field's codec, purely for the documentation stub above. It does not
// need to be exact for every possible codec composition; unrecognized
// codecs fall back to "interface{}".
func goTypeHint(c Codec) string {
	switch c.(type) {
	case *smallUintCodec, *smallIntCodec, *varuint32Codec, *varint32Codec:
		return "float64"
	case *uint64Codec, *int64Codec:
		return "string" // decimal string, see DESIGN NOTES
	case *bytesCodec, *fixedBytesCodec:
		return "string" // hex string
	case *stringCodec, *fixedStringCodec:
		return "string"
	case *timeCodec:
		return "string" // ISO-8601
	case *optionalCodec:
		return "interface{} // optional"
	case *vectorCodec:
		return "[]interface{}"
	case *mapCodec:
		return "[][2]interface{}"
	case *Struct:
		return "map[string]interface{}"
	default:
		return "interface{}"
	}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
