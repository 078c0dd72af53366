package protocol

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Encode(t *testing.T) {
	m := NewMessage(CSetTimeout)
	m.WriteInt32(2000)

	b := m.Encode()
	require.Len(t, b, 12)
	assert.Equal(t, uint32(CSetTimeout), binary.LittleEndian.Uint32(b[0:4]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(b[4:8]))
	assert.Equal(t, uint32(2000), binary.LittleEndian.Uint32(b[8:12]))
}

func TestMessage_WriteValues(t *testing.T) {
	m := NewMessage(AnyMessage)
	m.WriteUint8(0xAB)
	m.WriteInt16(-2)
	m.WriteUint16(0xFFFF)
	m.WriteInt32(-1)
	m.WriteUint32(0xDEADBEEF)
	m.WriteFloat64(1.5)
	m.WriteBool(true)
	m.WriteBool(false)
	m.WriteZeros(3)

	payload := m.Payload()
	require.Len(t, payload, 1+2+2+4+4+8+4+4+3)

	r := NewReader(payload)
	assert.Equal(t, uint8(0xAB), r.ReadUint8())
	assert.Equal(t, uint16(0xFFFE), r.ReadUint16())
	assert.Equal(t, uint16(0xFFFF), r.ReadUint16())
	assert.Equal(t, int32(-1), r.ReadInt32())
	assert.Equal(t, uint32(0xDEADBEEF), r.ReadUint32())
	r.Skip(8)
	assert.True(t, r.ReadBool())
	assert.False(t, r.ReadBool())
	assert.NoError(t, r.Err())
}

func TestMessage_WriteInt32Vector(t *testing.T) {
	m := NewMessage(CSetCheckpointState)
	ok := m.WriteInt32Vector([]int32{1, 0, 1}, DefaultBufferSize)
	require.True(t, ok)
	assert.Equal(t, ErrCodeNone, m.ErrorCode)

	r := NewReader(m.Payload())
	assert.Equal(t, []int32{1, 0, 1}, r.ReadInt32Vector())
	assert.NoError(t, r.Err())
}

func TestMessage_WriteInt32Vector_TooLong(t *testing.T) {
	m := NewMessage(CSetCheckpointState)
	// Capacity leaves room for the length prefix but not the elements.
	ok := m.WriteInt32Vector([]int32{1, 2, 3, 4}, HeaderSize+8)
	require.True(t, ok)
	assert.Equal(t, ErrCodeResponseTooLong, m.ErrorCode)

	r := NewReader(m.Payload())
	assert.Empty(t, r.ReadInt32Vector())
}

func TestMessage_WriteInt32Vector_NoRoomForLength(t *testing.T) {
	m := NewMessage(CSetCheckpointState)
	ok := m.WriteInt32Vector([]int32{1}, HeaderSize+2)
	assert.False(t, ok)
	assert.Empty(t, m.Payload())
}

func TestMessage_WriteString(t *testing.T) {
	m := NewMessage(CExecuteCommand)
	m.WriteInt32(0)
	ok := m.WriteString("press up", DefaultBufferSize)
	require.True(t, ok)

	r := NewReader(m.Payload())
	r.Skip(4)
	assert.Equal(t, "press up", r.ReadString())
	assert.NoError(t, r.Err())
}

func TestReader_PairVector(t *testing.T) {
	m := NewMessage(AnyMessage)
	ok := m.WriteInt32PairVector([][2]int32{{100010, 1}, {102030, -64}}, DefaultBufferSize)
	require.True(t, ok)

	r := NewReader(m.Payload())
	assert.Equal(t, [][2]int32{{100010, 1}, {102030, -64}}, r.ReadInt32PairVector())
	assert.NoError(t, r.Err())
}

func TestReader_PastEnd(t *testing.T) {
	r := NewReader([]byte{1, 2})
	assert.Equal(t, uint32(0), r.ReadUint32())
	assert.Error(t, r.Err())

	// Sticky error: further reads keep returning zero values.
	assert.Equal(t, uint8(0), r.ReadUint8())
	assert.Error(t, r.Err())
}
