package codec

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/anthropics/binschema/cursor"
)

// compareInternal orders two internal values of the same codec's
// canonical form, used by sorted vectors. It understands every internal
// representation the built-in primitives produce and falls back to a
// stable textual comparison for anything else (composite/custom types).
func compareInternal(a, b interface{}) int {
	switch x := a.(type) {
	case uint64:
		y := b.(uint64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	case int64:
		y := b.(int64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	case uint32:
		y := b.(uint32)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	case string:
		return strings.Compare(x, b.(string))
	case []byte:
		return bytes.Compare(x, b.([]byte))
	default:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

type vectorCodec struct {
	inner  Codec
	sorted bool
	isSet  bool
}

// NewVector returns a vector(inner, sorted) codec: a varuint32 count
// followed by elements on the wire. inner must implement Codec; otherwise
// the error reads "vector type should be a serializer" and wraps
// ErrNotACodec.
func NewVector(inner interface{}, sorted bool) (Codec, error) {
	c, ok := inner.(Codec)
	if !ok {
		return nil, fmt.Errorf("vector type should be a serializer (%w)", ErrNotACodec)
	}
	return &vectorCodec{inner: c, sorted: sorted}, nil
}

// NewSet returns a set(inner) codec: like vector, but FromObject rejects
// duplicate elements (compared by canonical internal form).
func NewSet(inner interface{}) (Codec, error) {
	c, ok := inner.(Codec)
	if !ok {
		return nil, ErrNotACodec
	}
	return &vectorCodec{inner: c, sorted: false, isSet: true}, nil
}

func (c *vectorCodec) typeName() string {
	if c.isSet {
		return "set"
	}
	return "vector"
}

func (c *vectorCodec) Required() bool { return true }

func (c *vectorCodec) toSlice(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func (c *vectorCodec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: c.typeName()}
	}
	items, ok := c.toSlice(value)
	if !ok {
		return nil, &FormatError{TypeName: c.typeName(), Detail: fmt.Sprintf("expected a sequence, got %v", value)}
	}

	result := make([]interface{}, len(items))
	for i, item := range items {
		internal, err := c.inner.FromObject(item)
		if err != nil {
			return nil, err
		}
		result[i] = internal
	}

	if c.isSet {
		for i := 0; i < len(result); i++ {
			for j := i + 1; j < len(result); j++ {
				if compareInternal(result[i], result[j]) == 0 {
					return nil, &FormatError{TypeName: "set", Detail: fmt.Sprintf("duplicate element %v", items[j])}
				}
			}
		}
	}

	if c.sorted {
		sort.SliceStable(result, func(i, j int) bool {
			return compareInternal(result[i], result[j]) < 0
		})
	}

	return result, nil
}

func (c *vectorCodec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return []interface{}{}, nil
		}
		return nil, &RequiredError{Path: c.typeName()}
	}
	items := internal.([]interface{})
	out := make([]interface{}, len(items))
	for i, item := range items {
		v, err := c.inner.ToObject(item, config)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (c *vectorCodec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	items := internal.([]interface{})
	w.WriteVaruint(uint64(len(items)))
	for _, item := range items {
		if err := c.inner.AppendBytes(w, item); err != nil {
			return err
		}
	}
	return nil
}

func (c *vectorCodec) FromBytes(r *cursor.Reader) (interface{}, error) {
	n, err := r.ReadVaruint()
	if err != nil {
		return nil, err
	}
	result := make([]interface{}, n)
	for i := uint64(0); i < n; i++ {
		v, err := c.inner.FromBytes(r)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}
