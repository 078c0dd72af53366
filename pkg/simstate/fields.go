package simstate

import (
	"encoding/binary"
	"math"
)

// Raw field access at fixed byte offsets. All fields are little-endian;
// booleans are 4-byte words.

func fieldInt32(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off:]))
}

func fieldUint32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

func fieldFloat32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func fieldBool(b []byte, off int) bool {
	return binary.LittleEndian.Uint32(b[off:]) != 0
}

func setFieldInt32(b []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(b[off:], uint32(v))
}

func setFieldFloat32(b []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
}

func fieldVec3(b []byte, off int) [3]float32 {
	return [3]float32{
		fieldFloat32(b, off),
		fieldFloat32(b, off+4),
		fieldFloat32(b, off+8),
	}
}

func setFieldVec3(b []byte, off int, v [3]float32) {
	setFieldFloat32(b, off, v[0])
	setFieldFloat32(b, off+4, v[1])
	setFieldFloat32(b, off+8, v[2])
}

func fieldMat3(b []byte, off int) [3][3]float32 {
	var m [3][3]float32
	for i := 0; i < 3; i++ {
		m[i] = fieldVec3(b, off+12*i)
	}
	return m
}

func setFieldMat3(b []byte, off int, m [3][3]float32) {
	for i := 0; i < 3; i++ {
		setFieldVec3(b, off+12*i, m[i])
	}
}

func fieldQuat(b []byte, off int) [4]float32 {
	return [4]float32{
		fieldFloat32(b, off),
		fieldFloat32(b, off+4),
		fieldFloat32(b, off+8),
		fieldFloat32(b, off+12),
	}
}

func setFieldQuat(b []byte, off int, q [4]float32) {
	setFieldFloat32(b, off, q[0])
	setFieldFloat32(b, off+4, q[1])
	setFieldFloat32(b, off+8, q[2])
	setFieldFloat32(b, off+12, q[3])
}
