package codec

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/anthropics/binschema/cursor"
)

// coerceToFloat accepts any Go numeric kind, or a numeric string, and
// returns it as a float64. Used by the <=32-bit integer codecs, whose
// object-boundary representation is a plain JSON-style number.
func coerceToFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toDecimalString accepts a decimal string or any native Go integer kind
// and returns its base-10 text form, for the 64-bit codecs whose
// object-boundary representation is always a string.
func toDecimalString(v interface{}) (string, bool) {
	switch n := v.(type) {
	case string:
		return n, true
	case int:
		return strconv.FormatInt(int64(n), 10), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	default:
		return "", false
	}
}

// ---- <=32-bit fixed-width integers ----

type smallUintCodec struct {
	bits int
	name string
}

// NewUint8 returns the uint8 primitive codec.
func NewUint8() Codec { return &smallUintCodec{bits: 8, name: "uint8"} }

// NewUint16 returns the uint16 primitive codec.
func NewUint16() Codec { return &smallUintCodec{bits: 16, name: "uint16"} }

// NewUint32 returns the uint32 primitive codec.
func NewUint32() Codec { return &smallUintCodec{bits: 32, name: "uint32"} }

func (c *smallUintCodec) Required() bool { return true }

func (c *smallUintCodec) max() uint64 { return (uint64(1) << uint(c.bits)) - 1 }

func (c *smallUintCodec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: c.name}
	}
	f, ok := coerceToFloat(value)
	if !ok {
		return nil, &FormatError{TypeName: c.name, Detail: fmt.Sprintf("non-numeric value %v", value)}
	}
	if f != float64(int64(f)) {
		return nil, &FormatError{TypeName: c.name, Detail: fmt.Sprintf("non-integer value %v", value)}
	}
	iv := int64(f)
	if iv < 0 {
		return nil, &FormatError{TypeName: c.name, Detail: fmt.Sprintf("negative value %v for unsigned type", value)}
	}
	if uint64(iv) > c.max() {
		return nil, &OverflowError{TypeName: c.name, Value: value}
	}
	return uint64(iv), nil
}

func (c *smallUintCodec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return float64(0), nil
		}
		return nil, &RequiredError{Path: c.name}
	}
	return float64(internal.(uint64)), nil
}

func (c *smallUintCodec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	v := internal.(uint64)
	switch c.bits {
	case 8:
		w.WriteByte(byte(v))
	case 16:
		w.WriteUint16(uint16(v))
	case 32:
		w.WriteUint32(uint32(v))
	}
	return nil
}

func (c *smallUintCodec) FromBytes(r *cursor.Reader) (interface{}, error) {
	switch c.bits {
	case 8:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return uint64(b), nil
	case 16:
		v, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		return uint64(v), nil
	case 32:
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		return uint64(v), nil
	}
	panic("unreachable bit width")
}

type smallIntCodec struct {
	bits int
	name string
}

// NewInt8 returns the int8 primitive codec.
func NewInt8() Codec { return &smallIntCodec{bits: 8, name: "int8"} }

// NewInt16 returns the int16 primitive codec.
func NewInt16() Codec { return &smallIntCodec{bits: 16, name: "int16"} }

// NewInt32 returns the int32 primitive codec.
func NewInt32() Codec { return &smallIntCodec{bits: 32, name: "int32"} }

func (c *smallIntCodec) Required() bool { return true }

func (c *smallIntCodec) bounds() (int64, int64) {
	max := int64(1)<<uint(c.bits-1) - 1
	min := -(int64(1) << uint(c.bits-1))
	return min, max
}

func (c *smallIntCodec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: c.name}
	}
	f, ok := coerceToFloat(value)
	if !ok {
		return nil, &FormatError{TypeName: c.name, Detail: fmt.Sprintf("non-numeric value %v", value)}
	}
	if f != float64(int64(f)) {
		return nil, &FormatError{TypeName: c.name, Detail: fmt.Sprintf("non-integer value %v", value)}
	}
	iv := int64(f)
	min, max := c.bounds()
	if iv < min || iv > max {
		return nil, &OverflowError{TypeName: c.name, Value: value}
	}
	return iv, nil
}

func (c *smallIntCodec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return float64(0), nil
		}
		return nil, &RequiredError{Path: c.name}
	}
	return float64(internal.(int64)), nil
}

func (c *smallIntCodec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	v := internal.(int64)
	switch c.bits {
	case 8:
		w.WriteByte(byte(int8(v)))
	case 16:
		w.WriteUint16(uint16(int16(v)))
	case 32:
		w.WriteUint32(uint32(int32(v)))
	}
	return nil
}

func (c *smallIntCodec) FromBytes(r *cursor.Reader) (interface{}, error) {
	switch c.bits {
	case 8:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return int64(int8(b)), nil
	case 16:
		v, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		return int64(int16(v)), nil
	case 32:
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		return int64(int32(v)), nil
	}
	panic("unreachable bit width")
}

// ---- 64-bit integers, decimal-string object form ----

var maxUint64Big = new(big.Int).SetUint64(^uint64(0))
var maxInt64Big = big.NewInt(1<<63 - 1)
var minInt64Big = new(big.Int).SetInt64(-1 << 63)

type uint64Codec struct{}

// NewUint64 returns the uint64 primitive codec. Its object-boundary
// representation is a base-10 string, to preserve exact round trips in
// JSON consumers without native 64-bit integers.
func NewUint64() Codec { return &uint64Codec{} }

func (c *uint64Codec) Required() bool { return true }

func (c *uint64Codec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: "uint64"}
	}
	s, ok := toDecimalString(value)
	if !ok {
		return nil, &FormatError{TypeName: "uint64", Detail: fmt.Sprintf("unsupported value %v", value)}
	}
	bi, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, &FormatError{TypeName: "uint64", Detail: fmt.Sprintf("non-numeric string %q", s)}
	}
	if bi.Sign() < 0 {
		return nil, &FormatError{TypeName: "uint64", Detail: fmt.Sprintf("negative value %q for unsigned type", s)}
	}
	if bi.Cmp(maxUint64Big) > 0 {
		return nil, &OverflowError{TypeName: "uint64", Value: s}
	}
	return bi.Uint64(), nil
}

func (c *uint64Codec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return "0", nil
		}
		return nil, &RequiredError{Path: "uint64"}
	}
	return strconv.FormatUint(internal.(uint64), 10), nil
}

func (c *uint64Codec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	w.WriteUint64(internal.(uint64))
	return nil
}

func (c *uint64Codec) FromBytes(r *cursor.Reader) (interface{}, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	return v, nil
}

type int64Codec struct{}

// NewInt64 returns the int64 primitive codec. Its object-boundary
// representation is a base-10 string, as with uint64.
func NewInt64() Codec { return &int64Codec{} }

func (c *int64Codec) Required() bool { return true }

func (c *int64Codec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: "int64"}
	}
	s, ok := toDecimalString(value)
	if !ok {
		return nil, &FormatError{TypeName: "int64", Detail: fmt.Sprintf("unsupported value %v", value)}
	}
	bi, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, &FormatError{TypeName: "int64", Detail: fmt.Sprintf("non-numeric string %q", s)}
	}
	if bi.Cmp(minInt64Big) < 0 || bi.Cmp(maxInt64Big) > 0 {
		return nil, &OverflowError{TypeName: "int64", Value: s}
	}
	return bi.Int64(), nil
}

func (c *int64Codec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return "0", nil
		}
		return nil, &RequiredError{Path: "int64"}
	}
	return strconv.FormatInt(internal.(int64), 10), nil
}

func (c *int64Codec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	w.WriteUint64(uint64(internal.(int64)))
	return nil
}

func (c *int64Codec) FromBytes(r *cursor.Reader) (interface{}, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	return int64(v), nil
}

// ---- variable-length 32-bit integers ----

type varuint32Codec struct{}

// NewVaruint32 returns the varuint32 primitive codec: LEB128-encoded on
// the wire, a plain JSON number at the object boundary, range [0, 2^32-1].
func NewVaruint32() Codec { return &varuint32Codec{} }

func (c *varuint32Codec) Required() bool { return true }

func (c *varuint32Codec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: "varuint32"}
	}
	f, ok := coerceToFloat(value)
	if !ok {
		return nil, &FormatError{TypeName: "varuint32", Detail: fmt.Sprintf("non-numeric value %v", value)}
	}
	if f != float64(int64(f)) {
		return nil, &FormatError{TypeName: "varuint32", Detail: fmt.Sprintf("non-integer value %v", value)}
	}
	iv := int64(f)
	if iv < 0 {
		return nil, &FormatError{TypeName: "varuint32", Detail: fmt.Sprintf("negative value %v for unsigned type", value)}
	}
	if uint64(iv) > 0xffffffff {
		return nil, &OverflowError{TypeName: "varuint32", Value: value}
	}
	return uint64(iv), nil
}

func (c *varuint32Codec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return float64(0), nil
		}
		return nil, &RequiredError{Path: "varuint32"}
	}
	return float64(internal.(uint64)), nil
}

func (c *varuint32Codec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	w.WriteVaruint(internal.(uint64))
	return nil
}

func (c *varuint32Codec) FromBytes(r *cursor.Reader) (interface{}, error) {
	v, err := r.ReadVaruint()
	if err != nil {
		return nil, err
	}
	if v > 0xffffffff {
		return nil, &OverflowError{TypeName: "varuint32", Value: v}
	}
	return v, nil
}

type varint32Codec struct{}

// NewVarint32 returns the varint32 primitive codec: zig-zag LEB128-encoded
// on the wire, range [-2^31, 2^31-1].
func NewVarint32() Codec { return &varint32Codec{} }

func (c *varint32Codec) Required() bool { return true }

func (c *varint32Codec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: "varint32"}
	}
	f, ok := coerceToFloat(value)
	if !ok {
		return nil, &FormatError{TypeName: "varint32", Detail: fmt.Sprintf("non-numeric value %v", value)}
	}
	if f != float64(int64(f)) {
		return nil, &FormatError{TypeName: "varint32", Detail: fmt.Sprintf("non-integer value %v", value)}
	}
	iv := int64(f)
	if iv < -(1<<31) || iv > (1<<31)-1 {
		return nil, &OverflowError{TypeName: "varint32", Value: value}
	}
	return iv, nil
}

func (c *varint32Codec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return float64(0), nil
		}
		return nil, &RequiredError{Path: "varint32"}
	}
	return float64(internal.(int64)), nil
}

func (c *varint32Codec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	w.WriteVarint(internal.(int64))
	return nil
}

func (c *varint32Codec) FromBytes(r *cursor.Reader) (interface{}, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	if v < -(1<<31) || v > (1<<31)-1 {
		return nil, &OverflowError{TypeName: "varint32", Value: v}
	}
	return v, nil
}
