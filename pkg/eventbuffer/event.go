// Package eventbuffer models the input event buffer the game uses to drive
// a simulation. Events carry a raw timestamp offset from the race start and
// a packed data word holding the control index and the input value.
package eventbuffer

// Control names used by the game's input event buffer. The race start and
// finish controls are internal and always present in a valid buffer.
const (
	RaceStartName        = "_FakeIsRaceRunning"
	RaceFinishName       = "_FakeFinishLine"
	AccelerateName       = "Accelerate"
	BrakeName            = "Brake"
	SteerLeftName        = "SteerLeft"
	SteerRightName       = "SteerRight"
	AnalogSteerName      = "Steer (analog)"
	AnalogAccelerateName = "Accelerate (analog)"
	RespawnName          = "Respawn"
	HornName             = "Horn"
)

// NumControls is the size of the control name table.
const NumControls = 10

// TimeOffset is the difference between raw event time and race time.
// An event at race time 0 is stored with raw time 100010.
const TimeOffset = 100010

// AnalogRange is the value range reachable on physical hardware for analog
// controls. ExtendedAnalogRange is the full range the event encoding allows.
const (
	AnalogRange         = 65536
	ExtendedAnalogRange = 6553600
)

// Event is a single input event. Time is the raw buffer time (race time
// plus TimeOffset). Data packs the control name index into the top byte
// and the input value into the low 24 bits.
type Event struct {
	Time uint32
	Data int32
}

// NewBinaryEvent creates an event for a pressed/released binary control.
func NewBinaryEvent(raceTime int32, nameIndex int, pressed bool) Event {
	var value int32
	if pressed {
		value = 1
	}
	return Event{
		Time: uint32(raceTime + TimeOffset),
		Data: int32(nameIndex)<<24 | value&0x00FFFFFF,
	}
}

// NewAnalogEvent creates an event for an analog control. value is in the
// [-AnalogRange, AnalogRange] range (or the extended range).
func NewAnalogEvent(raceTime int32, nameIndex int, value int32) Event {
	return Event{
		Time: uint32(raceTime + TimeOffset),
		Data: int32(nameIndex)<<24 | AnalogValueToData(value)&0x00FFFFFF,
	}
}

// RaceTime returns the event time relative to the race start in ms.
func (e Event) RaceTime() int32 {
	return int32(e.Time) - TimeOffset
}

// NameIndex returns the control name table index stored in the event.
func (e Event) NameIndex() int {
	return int(uint32(e.Data) >> 24)
}

// BinaryValue reports whether the binary control is pressed.
func (e Event) BinaryValue() bool {
	return e.Data&0x00FFFFFF != 0
}

// AnalogValue returns the analog control value stored in the event.
func (e Event) AnalogValue() int32 {
	return DataToAnalogValue(e.Data)
}

// DataToAnalogValue converts an internal analog state value to the
// [-AnalogRange, AnalogRange] range. Values in the extended range convert
// as well. The low 24 bits are sign-extended and negated.
func DataToAnalogValue(data int32) int32 {
	v := data << 8 >> 8
	return -v
}

// AnalogValueToData converts a value in the [-AnalogRange, AnalogRange]
// range to an internal analog state value.
func AnalogValueToData(value int32) int32 {
	v := -value
	return v << 8 >> 8
}
