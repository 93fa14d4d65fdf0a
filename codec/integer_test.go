package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthropics/binschema/cursor"
)

func roundTripBytes(t *testing.T, c Codec, internal interface{}) []byte {
	t.Helper()
	w := cursor.NewWriter()
	require.NoError(t, c.AppendBytes(w, internal))
	r := cursor.NewReader(w.Bytes())
	got, err := c.FromBytes(r)
	require.NoError(t, err)
	require.Equal(t, internal, got)
	require.Equal(t, len(w.Bytes()), r.Tell(), "FromBytes must consume exactly what AppendBytes wrote")
	return w.Bytes()
}

func TestUint8Overflow(t *testing.T) {
	c := NewUint8()

	_, err := c.FromObject(float64(256))
	var overflow *OverflowError
	require.ErrorAs(t, err, &overflow)

	_, err = c.FromObject(float64(-1))
	var format *FormatError
	require.ErrorAs(t, err, &format)

	internal, err := c.FromObject(float64(255))
	require.NoError(t, err)
	require.Equal(t, uint64(255), internal)
	roundTripBytes(t, c, internal)

	obj, err := c.ToObject(internal, nil)
	require.NoError(t, err)
	require.Equal(t, float64(255), obj)
}

func TestUint64DecimalStringRoundTrip(t *testing.T) {
	c := NewUint64()

	internal, err := c.FromObject("18446744073709551615")
	require.NoError(t, err)
	roundTripBytes(t, c, internal)
	obj, err := c.ToObject(internal, nil)
	require.NoError(t, err)
	require.Equal(t, "18446744073709551615", obj)

	_, err = c.FromObject("18446744073709551616")
	var overflow *OverflowError
	require.ErrorAs(t, err, &overflow)
}

func TestInt64DecimalStringRoundTrip(t *testing.T) {
	c := NewInt64()

	for _, s := range []string{"-9223372036854775808", "9223372036854775807"} {
		internal, err := c.FromObject(s)
		require.NoError(t, err)
		roundTripBytes(t, c, internal)
		obj, err := c.ToObject(internal, nil)
		require.NoError(t, err)
		require.Equal(t, s, obj)
	}

	for _, s := range []string{"-9223372036854775809", "9223372036854775808"} {
		_, err := c.FromObject(s)
		var overflow *OverflowError
		require.ErrorAs(t, err, &overflow, "expected overflow for %s", s)
	}
}

func TestRequiredRejectsNil(t *testing.T) {
	for _, c := range []Codec{NewUint8(), NewUint64(), NewString(), NewBytes(), NewTime()} {
		_, err := c.FromObject(nil)
		var required *RequiredError
		require.ErrorAs(t, err, &required)
	}
}

func TestVaruint32RoundTrip(t *testing.T) {
	c := NewVaruint32()
	internal, err := c.FromObject(float64(300))
	require.NoError(t, err)
	b := roundTripBytes(t, c, internal)
	require.Less(t, len(b), 4) // actually varint-encoded, not fixed width
}

func TestVarint32ZigZagRoundTrip(t *testing.T) {
	c := NewVarint32()
	internal, err := c.FromObject(float64(-12345))
	require.NoError(t, err)
	roundTripBytes(t, c, internal)
}
