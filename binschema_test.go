package binschema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthropics/binschema/schema"
)

func TestToBufferFromBufferRoundTrip(t *testing.T) {
	result, err := Compile(Schema{
		"Point": schema.StructEntry("", schema.Field("x", "uint16"), schema.Field("y", "uint16")),
	}, nil)
	require.NoError(t, err)
	point := result.Structs["Point"]

	buf, err := ToBuffer(point, map[string]interface{}{"x": float64(1), "y": float64(2)})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0, 2, 0}, buf)

	back, err := FromBuffer(point, buf)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"x": float64(1), "y": float64(2)}, back)
}

func TestFromBufferOnEmptyBytesReportsIllegalOffset(t *testing.T) {
	result, err := Compile(Schema{
		"Point": schema.StructEntry("", schema.Field("x", "uint16"), schema.Field("y", "uint16")),
	}, nil)
	require.NoError(t, err)
	point := result.Structs["Point"]

	_, err = FromBuffer(point, []byte{})
	require.Error(t, err)
	require.ErrorContains(t, err, "Illegal offset")
}

func TestCompileJSON5ThenToBuffer(t *testing.T) {
	result, err := CompileJSON5([]byte(`{
		Greeting: { fields: { text: "string" } },
	}`), nil)
	require.NoError(t, err)
	greeting := result.Structs["Greeting"]

	buf, err := ToBuffer(greeting, map[string]interface{}{"text": "hi"})
	require.NoError(t, err)

	back, err := FromBuffer(greeting, buf)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"text": "hi"}, back)
}
