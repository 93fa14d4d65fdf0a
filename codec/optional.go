package codec

import (
	"fmt"

	"github.com/anthropics/binschema/cursor"
)

type optionalCodec struct {
	inner Codec
}

// NewOptional wraps inner so that nil/absent input is accepted and encoded
// as a single flag byte (0), with the inner encoding following iff the
// flag is 1. inner must implement Codec; otherwise an error wrapping
// ErrNotACodec ("optional parameter should be a serializer") is returned
// to the caller rather than panicking.
func NewOptional(inner interface{}) (Codec, error) {
	c, ok := inner.(Codec)
	if !ok {
		return nil, fmt.Errorf("optional %w", ErrNotACodec)
	}
	return &optionalCodec{inner: c}, nil
}

// Required always reports false: that is the entire point of optional.
func (c *optionalCodec) Required() bool { return false }

func (c *optionalCodec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	inner, err := c.inner.FromObject(value)
	if err != nil {
		return nil, err
	}
	return inner, nil
}

func (c *optionalCodec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		return nil, nil
	}
	return c.inner.ToObject(internal, config)
}

func (c *optionalCodec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	if internal == nil {
		w.WriteByte(0)
		return nil
	}
	w.WriteByte(1)
	return c.inner.AppendBytes(w, internal)
}

func (c *optionalCodec) FromBytes(r *cursor.Reader) (interface{}, error) {
	flag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if flag == 0 {
		return nil, nil
	}
	return c.inner.FromBytes(r)
}
