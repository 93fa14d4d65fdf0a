package schema

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthropics/binschema/codec"
	"github.com/anthropics/binschema/cursor"
)

func TestCompileFixedBytes32StructHasNoErrors(t *testing.T) {
	sch := Schema{
		"Checksum": StructEntry("", Field("checksum", "fixed_bytes32")),
	}
	result, err := Compile(sch, nil)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Contains(t, result.Structs, "Checksum")
}

func TestCompileJSON5EmptyStructSpecErrors(t *testing.T) {
	result, err := CompileJSON5([]byte(`{ Struct: {} }`), nil)
	require.Error(t, err)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0].Message, "Expecting Struct.fields or Struct.base")
}

func TestCompileJSON5MissingBaseErrors(t *testing.T) {
	result, err := CompileJSON5([]byte(`{
		Person: { base: "Human", fields: { name: "string" } },
	}`), nil)
	require.Error(t, err)
	require.NotEmpty(t, result.Errors)
	found := false
	for _, e := range result.Errors {
		if e.Message == "Missing Human in Person.base" {
			found = true
		}
	}
	require.True(t, found, "expected a \"Missing Human\" error, got %v", result.Errors)
}

func TestCompileJSON5PreservesFieldOrderAndComments(t *testing.T) {
	result, err := CompileJSON5([]byte(`{
		// a simple two-field struct
		Widget: {
			fields: {
				name: "string",
				count: "uint8", // trailing comment tolerated at the document level
			},
		},
	}`), nil)
	require.NoError(t, err)
	widget := result.Structs["Widget"]
	require.NotNil(t, widget)

	names := make([]string, len(widget.OwnFields()))
	for i, f := range widget.OwnFields() {
		names[i] = f.Name
	}
	require.Equal(t, []string{"name", "count"}, names)
}

func TestCompilePersonStructRoundTrip(t *testing.T) {
	sch := Schema{
		"Person": StructEntry("", Field("friends", "string[]")),
	}
	result, err := Compile(sch, nil)
	require.NoError(t, err)
	person := result.Structs["Person"]

	obj := map[string]interface{}{"friends": []interface{}{"Dan", "Jane"}}
	internal, err := person.FromObject(obj)
	require.NoError(t, err)

	w := cursor.NewWriter()
	require.NoError(t, person.AppendBytes(w, internal))
	decoded, err := person.FromBytes(cursor.NewReader(w.Bytes()))
	require.NoError(t, err)
	back, err := person.ToObject(decoded, nil)
	require.NoError(t, err)
	require.Equal(t, obj, back)
}

func TestCompileForwardStructReferenceOrderIndependent(t *testing.T) {
	// Person's base, Human, is declared textually after Person; Go map
	// iteration order over sch is also unspecified. Neither should matter.
	sch := Schema{
		"Person": StructEntry("Human", Field("name", "string")),
		"Human":  StructEntry("", Field("age", "uint8")),
	}
	result, err := Compile(sch, nil)
	require.NoError(t, err)
	person := result.Structs["Person"]
	require.NotNil(t, person.Base())
	require.Equal(t, "Human", person.Base().Name())

	names := make([]string, len(person.AllFields()))
	for i, f := range person.AllFields() {
		names[i] = f.Name
	}
	require.Equal(t, []string{"age", "name"}, names)
}

func TestCompileCircularBaseReferenceErrors(t *testing.T) {
	sch := Schema{
		"A": StructEntry("B", Field("a", "uint8")),
		"B": StructEntry("A", Field("b", "uint8")),
	}
	_, err := Compile(sch, nil)
	require.Error(t, err)
}

func TestCompileAliasToStructIsAValidReference(t *testing.T) {
	sch := Schema{
		"Human": StructEntry("", Field("age", "uint8")),
		"Person": Alias("Human"),
		"Team":  StructEntry("", Field("captain", "Person")),
	}
	result, err := Compile(sch, nil)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Contains(t, result.Structs, "Team")
}

func TestCompileUnrecognizedAliasTargetErrors(t *testing.T) {
	sch := Schema{
		"Ghost": Alias("Phantom"),
	}
	_, err := Compile(sch, nil)
	require.Error(t, err)
}

func TestCompileCustomSymbolTypeRoundTrip(t *testing.T) {
	sch := Schema{
		"Wallet": StructEntry("", Field("balance", "symbol")),
	}
	config := &Config{
		CustomTypes: map[string]codec.CustomTypeFactory{
			"symbol": codec.NewSymbolCustomTypeFactory(),
		},
	}
	result, err := Compile(sch, config)
	require.NoError(t, err)
	wallet := result.Structs["Wallet"]

	obj := map[string]interface{}{"balance": "8.0000 SYS"}
	internal, err := wallet.FromObject(obj)
	require.NoError(t, err)

	w := cursor.NewWriter()
	require.NoError(t, wallet.AppendBytes(w, internal))
	decoded, err := wallet.FromBytes(cursor.NewReader(w.Bytes()))
	require.NoError(t, err)
	back, err := wallet.ToObject(decoded, nil)
	require.NoError(t, err)
	require.Equal(t, obj, back)
}

func TestCompileFieldOverrideFromConfigDispatchesOnSiblingType(t *testing.T) {
	sch := Schema{
		"Transfer": StructEntry("", Field("from", "string"), Field("to", "string")),
		"Message":  StructEntry("", Field("type", "string"), Field("data", "bytes")),
	}

	// Filled in once Compile returns; the override closures below run
	// lazily at FromObject/AppendBytes time, well after that assignment.
	var transfer *codec.Struct

	config := &Config{
		Override: map[string]interface{}{
			"Message.data.fromObject": codec.FieldOverrideFunc(func(ctx *codec.FieldContext) error {
				nested, ok := ctx.Object["data"].(map[string]interface{})
				if !ok {
					return fmt.Errorf("expected an object for data")
				}
				internal, err := transfer.FromObject(nested)
				if err != nil {
					return err
				}
				ctx.Result["data"] = internal
				return nil
			}),
			"Message.data.toObject": codec.FieldOverrideFunc(func(ctx *codec.FieldContext) error {
				obj, err := transfer.ToObject(ctx.Object["data"], ctx.Config)
				if err != nil {
					return err
				}
				ctx.Result["data"] = obj
				return nil
			}),
			"Message.data.appendByteBuffer": codec.FieldOverrideFunc(func(ctx *codec.FieldContext) error {
				inner := cursor.NewWriter()
				if err := transfer.AppendBytes(inner, ctx.Object["data"]); err != nil {
					return err
				}
				ctx.Writer.WriteVaruint(uint64(len(inner.Bytes())))
				ctx.Writer.WriteFixed(inner.Bytes())
				return nil
			}),
			"Message.data.fromByteBuffer": codec.FieldOverrideFunc(func(ctx *codec.FieldContext) error {
				n, err := ctx.Reader.ReadVaruint()
				if err != nil {
					return err
				}
				raw, err := ctx.Reader.ReadFixed(int(n))
				if err != nil {
					return err
				}
				internal, err := transfer.FromBytes(cursor.NewReader(raw))
				if err != nil {
					return err
				}
				ctx.Result["data"] = internal
				return nil
			}),
		},
	}

	result, err := Compile(sch, config)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	transfer = result.Structs["Transfer"]
	message := result.Structs["Message"]

	obj := map[string]interface{}{
		"type": "transfer",
		"data": map[string]interface{}{"from": "slim", "to": "luke"},
	}
	internal, err := message.FromObject(obj)
	require.NoError(t, err)

	w := cursor.NewWriter()
	require.NoError(t, message.AppendBytes(w, internal))
	decoded, err := message.FromBytes(cursor.NewReader(w.Bytes()))
	require.NoError(t, err)
	back, err := message.ToObject(decoded, nil)
	require.NoError(t, err)
	require.Equal(t, obj, back)
}
