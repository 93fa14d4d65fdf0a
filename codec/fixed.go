package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/anthropics/binschema/cursor"
)

type fixedBytesCodec struct {
	n int
}

// NewFixedBytes returns the fixed_bytesN primitive codec: exactly n bytes
// on the wire with no length prefix, a hex string of length 2n at the
// object boundary.
func NewFixedBytes(n int) Codec { return &fixedBytesCodec{n: n} }

func (c *fixedBytesCodec) name() string { return fmt.Sprintf("fixed_bytes%d", c.n) }

func (c *fixedBytesCodec) Required() bool { return true }

func (c *fixedBytesCodec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: c.name()}
	}
	s, ok := value.(string)
	if !ok {
		return nil, &FormatError{TypeName: c.name(), Detail: fmt.Sprintf("expected hex string, got %v", value)}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &FormatError{TypeName: c.name(), Detail: fmt.Sprintf("invalid hex string %q: %v", s, err)}
	}
	if len(b) != c.n {
		return nil, &LengthMismatchError{TypeName: c.name(), Got: len(b), Want: c.n}
	}
	return b, nil
}

func (c *fixedBytesCodec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return hex.EncodeToString(make([]byte, c.n)), nil
		}
		return nil, &RequiredError{Path: c.name()}
	}
	return hex.EncodeToString(internal.([]byte)), nil
}

func (c *fixedBytesCodec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	w.WriteFixed(internal.([]byte))
	return nil
}

func (c *fixedBytesCodec) FromBytes(r *cursor.Reader) (interface{}, error) {
	return r.ReadFixed(c.n)
}

type fixedStringCodec struct {
	maxLen int
}

// NewFixedString returns the fixed_stringN primitive codec: up to n UTF-8
// bytes, zero-padded to n on the wire.
func NewFixedString(n int) Codec { return &fixedStringCodec{maxLen: n} }

func (c *fixedStringCodec) name() string { return fmt.Sprintf("fixed_string%d", c.maxLen) }

func (c *fixedStringCodec) Required() bool { return true }

func (c *fixedStringCodec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: c.name()}
	}
	s, ok := value.(string)
	if !ok {
		return nil, &FormatError{TypeName: c.name(), Detail: fmt.Sprintf("expected string, got %v", value)}
	}
	if len(s) > c.maxLen {
		return nil, &FormatError{TypeName: c.name(), Detail: fmt.Sprintf("%q exceeds maxLen %d", s, c.maxLen)}
	}
	return s, nil
}

func (c *fixedStringCodec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return "", nil
		}
		return nil, &RequiredError{Path: c.name()}
	}
	return internal.(string), nil
}

func (c *fixedStringCodec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	s := internal.(string)
	padded := make([]byte, c.maxLen)
	copy(padded, s)
	w.WriteFixed(padded)
	return nil
}

func (c *fixedStringCodec) FromBytes(r *cursor.Reader) (interface{}, error) {
	b, err := r.ReadFixed(c.maxLen)
	if err != nil {
		return nil, err
	}
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return string(b[:n]), nil
}
