package simstate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func yawMatrix(angle float64) [3][3]float32 {
	c := float32(math.Cos(angle))
	s := float32(math.Sin(angle))
	return [3][3]float32{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}
}

func TestMat3ToQuat_Identity(t *testing.T) {
	q := Mat3ToQuat([3][3]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	assert.InDelta(t, 1, q[0], 1e-6)
	assert.InDelta(t, 0, q[1], 1e-6)
	assert.InDelta(t, 0, q[2], 1e-6)
	assert.InDelta(t, 0, q[3], 1e-6)
}

func TestQuatMat3RoundTrip(t *testing.T) {
	angles := []float64{0, math.Pi / 6, math.Pi / 2, 2, -1.2}
	for _, angle := range angles {
		m := yawMatrix(angle)
		got := QuatToMat3(Mat3ToQuat(m))
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				assert.InDelta(t, m[i][j], got[i][j], 1e-5, "angle %v element %d,%d", angle, i, j)
			}
		}
	}
}

func TestQuatToYawPitchRoll_Yaw(t *testing.T) {
	q := Mat3ToQuat(yawMatrix(math.Pi / 3))
	ypr := QuatToYawPitchRoll(q)
	assert.InDelta(t, math.Pi/3, ypr[0], 1e-5)
	assert.InDelta(t, 0, ypr[1], 1e-5)
	assert.InDelta(t, 0, ypr[2], 1e-5)
}
