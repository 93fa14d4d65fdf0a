package codec

import (
	"fmt"

	"github.com/anthropics/binschema/cursor"
)

// mapPair is the internal representation of one key/value entry. map's
// canonical internal form is an ordered slice of mapPair, not a Go map,
// because Go map iteration order is unspecified and the wire format must
// be reproducible from a given FromObject call.
type mapPair struct {
	Key   interface{}
	Value interface{}
}

type mapCodec struct {
	key   Codec
	value Codec
}

// NewMap returns a map(keyCodec, valueCodec) codec: a varuint32 count of
// (key, value) pairs on the wire. FromObject accepts either a
// map[string]interface{} (order unspecified) or a [][2]interface{}/
// [][]interface{} pair sequence (order preserved); ToObject always
// produces the pair-sequence form.
func NewMap(keyCodec, valueCodec interface{}) (Codec, error) {
	k, ok := keyCodec.(Codec)
	if !ok {
		return nil, ErrNotACodec
	}
	v, ok := valueCodec.(Codec)
	if !ok {
		return nil, ErrNotACodec
	}
	return &mapCodec{key: k, value: v}, nil
}

func (c *mapCodec) Required() bool { return true }

func (c *mapCodec) pairsFrom(value interface{}) ([][2]interface{}, bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make([][2]interface{}, 0, len(v))
		for k, val := range v {
			out = append(out, [2]interface{}{k, val})
		}
		return out, true
	case [][2]interface{}:
		return v, true
	case []interface{}:
		out := make([][2]interface{}, len(v))
		for i, entry := range v {
			pair, ok := entry.([]interface{})
			if !ok || len(pair) != 2 {
				return nil, false
			}
			out[i] = [2]interface{}{pair[0], pair[1]}
		}
		return out, true
	default:
		return nil, false
	}
}

func (c *mapCodec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: "map"}
	}
	pairs, ok := c.pairsFrom(value)
	if !ok {
		return nil, &FormatError{TypeName: "map", Detail: fmt.Sprintf("expected a map or pair sequence, got %v", value)}
	}
	result := make([]mapPair, len(pairs))
	for i, p := range pairs {
		k, err := c.key.FromObject(p[0])
		if err != nil {
			return nil, err
		}
		v, err := c.value.FromObject(p[1])
		if err != nil {
			return nil, err
		}
		result[i] = mapPair{Key: k, Value: v}
	}
	return result, nil
}

func (c *mapCodec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return []interface{}{}, nil
		}
		return nil, &RequiredError{Path: "map"}
	}
	pairs := internal.([]mapPair)
	out := make([]interface{}, len(pairs))
	for i, p := range pairs {
		k, err := c.key.ToObject(p.Key, config)
		if err != nil {
			return nil, err
		}
		v, err := c.value.ToObject(p.Value, config)
		if err != nil {
			return nil, err
		}
		out[i] = []interface{}{k, v}
	}
	return out, nil
}

func (c *mapCodec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	pairs := internal.([]mapPair)
	w.WriteVaruint(uint64(len(pairs)))
	for _, p := range pairs {
		if err := c.key.AppendBytes(w, p.Key); err != nil {
			return err
		}
		if err := c.value.AppendBytes(w, p.Value); err != nil {
			return err
		}
	}
	return nil
}

func (c *mapCodec) FromBytes(r *cursor.Reader) (interface{}, error) {
	n, err := r.ReadVaruint()
	if err != nil {
		return nil, err
	}
	result := make([]mapPair, n)
	for i := uint64(0); i < n; i++ {
		k, err := c.key.FromBytes(r)
		if err != nil {
			return nil, err
		}
		v, err := c.value.FromBytes(r)
		if err != nil {
			return nil, err
		}
		result[i] = mapPair{Key: k, Value: v}
	}
	return result, nil
}
