package protocol

import (
	"encoding/binary"
	"fmt"
)

// Reader decodes values sequentially from a snapshot of the shared buffer.
// The first decoding error is sticky: subsequent reads return zero values
// and Err reports the original failure.
type Reader struct {
	buf []byte
	off int
	err error
}

// NewReader creates a reader over a buffer snapshot.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Seek positions the reader at an absolute offset.
func (r *Reader) Seek(off int) {
	r.off = off
}

// Offset returns the current read position.
func (r *Reader) Offset() int {
	return r.off
}

// Err returns the first error encountered while reading.
func (r *Reader) Err() error {
	return r.err
}

// Skip advances the read position by n bytes.
func (r *Reader) Skip(n int) {
	r.off += n
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.buf) {
		r.err = fmt.Errorf("failed to read %d bytes at offset %d: buffer is %d bytes", n, r.off, len(r.buf))
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) ReadUint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) ReadUint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *Reader) ReadInt32() int32 {
	return int32(r.ReadUint32())
}

func (r *Reader) ReadUint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *Reader) ReadBool() bool {
	return r.ReadInt32() != 0
}

// ReadBytes returns a copy of the next n bytes.
func (r *Reader) ReadBytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return make([]byte, n)
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// ReadInt32Vector reads a length-prefixed vector of int32 values.
func (r *Reader) ReadInt32Vector() []int32 {
	if r.off+4 > len(r.buf) {
		return nil
	}
	n := int(r.ReadInt32())
	if n < 0 || r.off+4*n > len(r.buf) {
		r.err = fmt.Errorf("failed to read vector of %d elements at offset %d", n, r.off)
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = r.ReadInt32()
	}
	return out
}

// ReadInt32PairVector reads a length-prefixed vector of int32 pairs.
func (r *Reader) ReadInt32PairVector() [][2]int32 {
	if r.off+4 > len(r.buf) {
		return nil
	}
	n := int(r.ReadInt32())
	if n < 0 || r.off+8*n > len(r.buf) {
		r.err = fmt.Errorf("failed to read pair vector of %d elements at offset %d", n, r.off)
		return nil
	}
	out := make([][2]int32, n)
	for i := range out {
		out[i][0] = r.ReadInt32()
		out[i][1] = r.ReadInt32()
	}
	return out
}

// ReadString reads a length-prefixed vector of bytes as a string.
func (r *Reader) ReadString() string {
	if r.off+4 > len(r.buf) {
		return ""
	}
	n := int(r.ReadInt32())
	if n < 0 || r.off+n > len(r.buf) {
		r.err = fmt.Errorf("failed to read string of %d bytes at offset %d", n, r.off)
		return ""
	}
	b := r.take(n)
	return string(b)
}
