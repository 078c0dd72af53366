package eventbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuffer(duration int32) *EventBuffer {
	b := New(duration)
	b.ControlNames = [NumControls]string{
		RaceStartName,
		RaceFinishName,
		AccelerateName,
		BrakeName,
		SteerLeftName,
		SteerRightName,
		AnalogSteerName,
		AnalogAccelerateName,
		RespawnName,
		HornName,
	}
	return b
}

func TestAnalogCodec(t *testing.T) {
	values := []int32{0, 1, -1, 65536, -65536, 6553600, -6553600, 12345}
	for _, v := range values {
		assert.Equal(t, v, DataToAnalogValue(AnalogValueToData(v)), "value %d", v)
	}
}

func TestAnalogCodec_IgnoresNameIndex(t *testing.T) {
	e := NewAnalogEvent(0, 6, -65536)
	assert.Equal(t, 6, e.NameIndex())
	assert.Equal(t, int32(-65536), e.AnalogValue())
}

func TestEvent_RaceTime(t *testing.T) {
	e := NewBinaryEvent(0, 2, true)
	assert.Equal(t, uint32(TimeOffset), e.Time)
	assert.Equal(t, int32(0), e.RaceTime())

	countdown := NewBinaryEvent(-2610, 0, true)
	assert.Equal(t, int32(-2610), countdown.RaceTime())
}

func TestEventBuffer_AddAndFind(t *testing.T) {
	b := testBuffer(30000)
	require.NoError(t, b.AddBinary(0, AccelerateName, true))
	require.NoError(t, b.AddBinary(5000, AccelerateName, false))
	require.NoError(t, b.AddAnalog(5000, AnalogSteerName, -32768))

	accel := b.Find(Filter{Name: AccelerateName})
	require.Len(t, accel, 2)
	assert.True(t, accel[0].BinaryValue())
	assert.False(t, accel[1].BinaryValue())

	at5000 := b.Find(Filter{HasRaceTime: true, RaceTime: 5000})
	assert.Len(t, at5000, 2)

	steerAt5000 := b.Find(Filter{Name: AnalogSteerName, HasRaceTime: true, RaceTime: 5000})
	require.Len(t, steerAt5000, 1)
	assert.Equal(t, int32(-32768), steerAt5000[0].AnalogValue())
}

func TestEventBuffer_AddUnknownControl(t *testing.T) {
	b := New(0)
	assert.Error(t, b.AddBinary(0, AccelerateName, true))
}

func TestEventBuffer_Clear(t *testing.T) {
	b := testBuffer(30000)
	require.NoError(t, b.AddBinary(0, RaceStartName, true))
	require.NoError(t, b.AddBinary(100, AccelerateName, true))
	require.NoError(t, b.AddAnalog(200, AnalogSteerName, 1000))

	b.Clear()

	require.Len(t, b.Events, 1)
	assert.Equal(t, b.ControlID(RaceStartName), b.Events[0].NameIndex())
}

func TestEventBuffer_Sort(t *testing.T) {
	b := testBuffer(30000)
	require.NoError(t, b.AddBinary(100, AccelerateName, true))
	require.NoError(t, b.AddBinary(300, AccelerateName, false))
	require.NoError(t, b.AddBinary(200, BrakeName, true))

	b.Sort()

	times := []int32{}
	for _, e := range b.Events {
		times = append(times, e.RaceTime())
	}
	assert.Equal(t, []int32{300, 200, 100}, times)
}

func TestEventBuffer_Copy(t *testing.T) {
	b := testBuffer(30000)
	require.NoError(t, b.AddBinary(0, AccelerateName, true))

	c := b.Copy()
	c.Events[0] = NewBinaryEvent(999, 3, true)
	c.EventsDuration = 1

	assert.Equal(t, int32(30000), b.EventsDuration)
	assert.Equal(t, int32(0), b.Events[0].RaceTime())
}

func TestEventBuffer_ToScript(t *testing.T) {
	b := testBuffer(30000)
	require.NoError(t, b.AddBinary(-2610, RaceStartName, true))
	require.NoError(t, b.AddBinary(0, AccelerateName, true))
	require.NoError(t, b.AddAnalog(500, AnalogSteerName, -65536))
	require.NoError(t, b.AddBinary(1000, AccelerateName, false))

	script := b.ToScript()
	assert.Equal(t, "0 press up\n500 steer -65536\n1000 rel up\n", script)
}
