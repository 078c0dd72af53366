package protocol

import (
	"encoding/binary"
	"math"
)

// Message is a write buffer for a single client call. All integers are
// encoded little-endian, matching the server's packed struct layout.
type Message struct {
	Type      MessageType
	ErrorCode int32
	data      []byte
}

// NewMessage creates an empty message of the given type.
func NewMessage(t MessageType) *Message {
	return &Message{Type: t}
}

func (m *Message) WriteUint8(v uint8) {
	m.data = append(m.data, v)
}

func (m *Message) WriteInt16(v int16) {
	m.data = binary.LittleEndian.AppendUint16(m.data, uint16(v))
}

func (m *Message) WriteUint16(v uint16) {
	m.data = binary.LittleEndian.AppendUint16(m.data, v)
}

func (m *Message) WriteInt32(v int32) {
	m.data = binary.LittleEndian.AppendUint32(m.data, uint32(v))
}

func (m *Message) WriteUint32(v uint32) {
	m.data = binary.LittleEndian.AppendUint32(m.data, v)
}

func (m *Message) WriteFloat64(v float64) {
	m.data = binary.LittleEndian.AppendUint64(m.data, math.Float64bits(v))
}

func (m *Message) WriteBool(v bool) {
	if v {
		m.WriteInt32(1)
	} else {
		m.WriteInt32(0)
	}
}

// WriteBuffer appends a raw byte section as-is.
func (m *Message) WriteBuffer(b []byte) {
	m.data = append(m.data, b...)
}

// WriteZeros appends n zero bytes.
func (m *Message) WriteZeros(n int) {
	m.data = append(m.data, make([]byte, n)...)
}

// WriteInt32Vector appends a length-prefixed vector of int32 values.
// capacity is the total shared buffer size. When even the length prefix
// does not fit, nothing is written and false is returned. When the vector
// elements do not fit, a zero length is written and the message is marked
// with ErrCodeResponseTooLong.
func (m *Message) WriteInt32Vector(v []int32, capacity int) bool {
	if m.Len()+4 > capacity {
		return false
	}
	if m.Len()+4+4*len(v) > capacity {
		m.WriteInt32(0)
		m.ErrorCode = ErrCodeResponseTooLong
		return true
	}
	m.WriteInt32(int32(len(v)))
	for _, e := range v {
		m.WriteInt32(e)
	}
	return true
}

// WriteInt32PairVector appends a length-prefixed vector of int32 pairs.
// Overflow handling matches WriteInt32Vector.
func (m *Message) WriteInt32PairVector(v [][2]int32, capacity int) bool {
	if m.Len()+4 > capacity {
		return false
	}
	if m.Len()+4+8*len(v) > capacity {
		m.WriteInt32(0)
		m.ErrorCode = ErrCodeResponseTooLong
		return true
	}
	m.WriteInt32(int32(len(v)))
	for _, e := range v {
		m.WriteInt32(e[0])
		m.WriteInt32(e[1])
	}
	return true
}

// WriteString appends a string as a length-prefixed vector of bytes.
// Overflow handling matches WriteInt32Vector.
func (m *Message) WriteString(s string, capacity int) bool {
	if m.Len()+4 > capacity {
		return false
	}
	if m.Len()+4+len(s) > capacity {
		m.WriteInt32(0)
		m.ErrorCode = ErrCodeResponseTooLong
		return true
	}
	m.WriteInt32(int32(len(s)))
	m.data = append(m.data, s...)
	return true
}

// Len returns the total encoded length, including the header.
func (m *Message) Len() int {
	return HeaderSize + len(m.data)
}

// Payload returns the encoded payload without the header.
func (m *Message) Payload() []byte {
	return m.data
}

// Encode renders the message as [type][errorCode][payload].
func (m *Message) Encode() []byte {
	out := make([]byte, 0, m.Len())
	out = binary.LittleEndian.AppendUint32(out, uint32(m.Type))
	out = binary.LittleEndian.AppendUint32(out, uint32(m.ErrorCode))
	return append(out, m.data...)
}
