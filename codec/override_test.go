package codec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthropics/binschema/cursor"
)

// TestMessageFieldOverrideDispatchesOnSiblingType exercises the
// length-prefixed polymorphic payload pattern: the "data" field's codec is
// replaced at every stage so its wire shape is chosen by the sibling "type"
// field rather than by a fixed declared type.
func TestMessageFieldOverrideDispatchesOnSiblingType(t *testing.T) {
	transfer := NewStruct("Transfer")
	transfer.AddField("from", NewString())
	transfer.AddField("to", NewString())
	transfer.Freeze()

	dispatch := map[string]*Struct{"transfer": transfer}

	message := NewStruct("Message")
	message.AddField("type", NewString())
	message.AddField("data", NewBytes()) // placeholder; every stage is overridden below
	message.Freeze()

	message.AddFieldOverride("data", StageFromObject, func(ctx *FieldContext) error {
		typeName, _ := ctx.Object["type"].(string)
		s, ok := dispatch[typeName]
		if !ok {
			return fmt.Errorf("unknown message type %q", typeName)
		}
		nested, ok := ctx.Object["data"].(map[string]interface{})
		if !ok {
			return &FormatError{TypeName: "Message.data", Detail: "expected an object"}
		}
		internal, err := s.FromObject(nested)
		if err != nil {
			return err
		}
		ctx.Result["data"] = internal
		return nil
	})

	message.AddFieldOverride("data", StageToObject, func(ctx *FieldContext) error {
		typeName, _ := ctx.Object["type"].(string)
		s, ok := dispatch[typeName]
		if !ok {
			return fmt.Errorf("unknown message type %q", typeName)
		}
		obj, err := s.ToObject(ctx.Object["data"], ctx.Config)
		if err != nil {
			return err
		}
		ctx.Result["data"] = obj
		return nil
	})

	message.AddFieldOverride("data", StageAppendBytes, func(ctx *FieldContext) error {
		typeName, _ := ctx.Object["type"].(string)
		s, ok := dispatch[typeName]
		if !ok {
			return fmt.Errorf("unknown message type %q", typeName)
		}
		inner := cursor.NewWriter()
		if err := s.AppendBytes(inner, ctx.Object["data"]); err != nil {
			return err
		}
		ctx.Writer.WriteVaruint(uint64(len(inner.Bytes())))
		ctx.Writer.WriteFixed(inner.Bytes())
		return nil
	})

	message.AddFieldOverride("data", StageFromBytes, func(ctx *FieldContext) error {
		typeName, _ := ctx.Result["type"].(string)
		s, ok := dispatch[typeName]
		if !ok {
			return fmt.Errorf("unknown message type %q", typeName)
		}
		n, err := ctx.Reader.ReadVaruint()
		if err != nil {
			return err
		}
		raw, err := ctx.Reader.ReadFixed(int(n))
		if err != nil {
			return err
		}
		internal, err := s.FromBytes(cursor.NewReader(raw))
		if err != nil {
			return err
		}
		ctx.Result["data"] = internal
		return nil
	})

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

func TestMessageFieldOverrideRejectsUnknownType(t *testing.T) {
	message := NewStruct("Message")
	message.AddField("type", NewString())
	message.AddField("data", NewBytes())
	message.Freeze()

	message.AddFieldOverride("data", StageFromObject, func(ctx *FieldContext) error {
		return fmt.Errorf("unknown message type %q", ctx.Object["type"])
	})

	_, err := message.FromObject(map[string]interface{}{
		"type": "mystery",
		"data": map[string]interface{}{},
	})
	require.ErrorContains(t, err, "unknown message type")
}
