package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedWidthRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteUint16(0xbeef)
	w.WriteUint32(0xdeadbeef)
	w.WriteUint64(0x0102030405060708)

	r := NewReader(w.Bytes())
	u16, err := r.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0xbeef), u16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), u32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), u64)
}

func TestVaruintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16384, 1 << 40, ^uint64(0)}
	for _, v := range values {
		w := NewWriter()
		w.WriteVaruint(v)
		r := NewReader(w.Bytes())
		got, err := r.ReadVaruint()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestVarintZigZagRoundTrip(t *testing.T) {
	values := []int64{0, -1, 1, 63, -64, 1000000, -1000000}
	for _, v := range values {
		w := NewWriter()
		w.WriteVarint(v)
		r := NewReader(w.Bytes())
		got, err := r.ReadVarint()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestLengthPrefixedBytesAndString(t *testing.T) {
	w := NewWriter()
	w.WriteBytes([]byte{0x00, 0xaa, 0xee, 0xff})
	w.WriteString("hello")

	r := NewReader(w.Bytes())
	b, err := r.ReadBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xaa, 0xee, 0xff}, b)

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestReadPastEndIsIllegalOffset(t *testing.T) {
	r := NewReader(nil)
	_, err := r.ReadByte()
	require.ErrorIs(t, err, ErrIllegalOffset)

	r2 := NewReader([]byte{0x01})
	_, err = r2.ReadUint32()
	require.ErrorIs(t, err, ErrIllegalOffset)
}

func TestSeekTellAndReadAt(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5})
	require.Equal(t, 0, r.Tell())
	r.Seek(3)
	require.Equal(t, 3, r.Tell())
	b, err := r.ReadAt(1, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{2, 3}, b)
	// ReadAt does not move the cursor.
	require.Equal(t, 3, r.Tell())
}
