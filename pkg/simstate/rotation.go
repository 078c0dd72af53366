package simstate

import "math"

// Quaternions are stored (w, x, y, z), matching the game's layout.

// Mat3ToQuat converts a rotation matrix to a quaternion.
func Mat3ToQuat(m [3][3]float32) [4]float32 {
	m00, m01, m02 := float64(m[0][0]), float64(m[0][1]), float64(m[0][2])
	m10, m11, m12 := float64(m[1][0]), float64(m[1][1]), float64(m[1][2])
	m20, m21, m22 := float64(m[2][0]), float64(m[2][1]), float64(m[2][2])

	trace := m00 + m11 + m22
	var w, x, y, z float64
	switch {
	case trace > 0:
		s := 2 * math.Sqrt(trace+1)
		w = s / 4
		x = (m21 - m12) / s
		y = (m02 - m20) / s
		z = (m10 - m01) / s
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		w = (m21 - m12) / s
		x = s / 4
		y = (m01 + m10) / s
		z = (m02 + m20) / s
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		w = (m02 - m20) / s
		x = (m01 + m10) / s
		y = s / 4
		z = (m12 + m21) / s
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		w = (m10 - m01) / s
		x = (m02 + m20) / s
		y = (m12 + m21) / s
		z = s / 4
	}

	return [4]float32{float32(w), float32(x), float32(y), float32(z)}
}

// QuatToMat3 converts a quaternion to a rotation matrix.
func QuatToMat3(q [4]float32) [3][3]float32 {
	w, x, y, z := float64(q[0]), float64(q[1]), float64(q[2]), float64(q[3])

	return [3][3]float32{
		{
			float32(1 - 2*(y*y+z*z)),
			float32(2 * (x*y - w*z)),
			float32(2 * (x*z + w*y)),
		},
		{
			float32(2 * (x*y + w*z)),
			float32(1 - 2*(x*x+z*z)),
			float32(2 * (y*z - w*x)),
		},
		{
			float32(2 * (x*z - w*y)),
			float32(2 * (y*z + w*x)),
			float32(1 - 2*(x*x+y*y)),
		},
	}
}

// QuatToYawPitchRoll converts a quaternion to yaw, pitch and roll angles
// in radians. Yaw rotates about the vertical (Y) axis, pitch about the
// lateral (X) axis and roll about the longitudinal (Z) axis.
func QuatToYawPitchRoll(q [4]float32) [3]float64 {
	w, x, y, z := float64(q[0]), float64(q[1]), float64(q[2]), float64(q[3])

	yaw := math.Atan2(2*(w*y+x*z), 1-2*(x*x+y*y))

	sinPitch := 2 * (w*x - y*z)
	if sinPitch > 1 {
		sinPitch = 1
	} else if sinPitch < -1 {
		sinPitch = -1
	}
	pitch := math.Asin(sinPitch)

	roll := math.Atan2(2*(w*z+x*y), 1-2*(x*x+z*z))

	return [3]float64{yaw, pitch, roll}
}
