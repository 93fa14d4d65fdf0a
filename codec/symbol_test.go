package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolRoundTrip(t *testing.T) {
	c := NewSymbolCodec()

	internal, err := c.FromObject("8.0000 SYS")
	require.NoError(t, err)

	bytes := roundTripBytes(t, c, internal)
	require.Len(t, bytes, 16) // 8-byte amount + 1 precision byte + 7-byte ticker

	obj, err := c.ToObject(internal, nil)
	require.NoError(t, err)
	require.Equal(t, "8.0000 SYS", obj)
}

func TestSymbolRejectsLowercaseTicker(t *testing.T) {
	c := NewSymbolCodec()
	_, err := c.FromObject("1.00 sys")
	var format *FormatError
	require.ErrorAs(t, err, &format)
}

func TestSymbolRejectsTickerTooLong(t *testing.T) {
	c := NewSymbolCodec()
	_, err := c.FromObject("1.00 TOOLONGTICKER")
	var format *FormatError
	require.ErrorAs(t, err, &format)
}

func TestSymbolCustomTypeFactoryIgnoresOpts(t *testing.T) {
	factory := NewSymbolCustomTypeFactory()
	c, err := factory(nil)
	require.NoError(t, err)
	internal, err := c.FromObject("0.50 EOS")
	require.NoError(t, err)
	obj, err := c.ToObject(internal, nil)
	require.NoError(t, err)
	require.Equal(t, "0.50 EOS", obj)
}
