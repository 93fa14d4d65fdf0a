package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/anthropics/binschema/cursor"
)

type bytesCodec struct{}

// NewBytes returns the bytes primitive codec: a varuint32 length prefix
// followed by raw bytes on the wire, a lowercase hex string at the object
// boundary.
func NewBytes() Codec { return &bytesCodec{} }

func (c *bytesCodec) Required() bool { return true }

func (c *bytesCodec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: "bytes"}
	}
	s, ok := value.(string)
	if !ok {
		return nil, &FormatError{TypeName: "bytes", Detail: fmt.Sprintf("expected hex string, got %v", value)}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &FormatError{TypeName: "bytes", Detail: fmt.Sprintf("invalid hex string %q: %v", s, err)}
	}
	return b, nil
}

func (c *bytesCodec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return "", nil
		}
		return nil, &RequiredError{Path: "bytes"}
	}
	return hex.EncodeToString(internal.([]byte)), nil
}

func (c *bytesCodec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	w.WriteBytes(internal.([]byte))
	return nil
}

func (c *bytesCodec) FromBytes(r *cursor.Reader) (interface{}, error) {
	return r.ReadBytes()
}

type stringCodec struct{}

// NewString returns the string primitive codec: a varuint32 length prefix
// followed by UTF-8 bytes on the wire.
func NewString() Codec { return &stringCodec{} }

func (c *stringCodec) Required() bool { return true }

func (c *stringCodec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: "string"}
	}
	s, ok := value.(string)
	if !ok {
		return nil, &FormatError{TypeName: "string", Detail: fmt.Sprintf("expected string, got %v", value)}
	}
	return s, nil
}

func (c *stringCodec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return "", nil
		}
		return nil, &RequiredError{Path: "string"}
	}
	return internal.(string), nil
}

func (c *stringCodec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	w.WriteString(internal.(string))
	return nil
}

func (c *stringCodec) FromBytes(r *cursor.Reader) (interface{}, error) {
	return r.ReadString()
}
