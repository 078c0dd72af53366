package simstate

import (
	"github.com/tastools/tminterface-go/pkg/eventbuffer"
)

// SimState is a full save state of the simulation, including checkpoint
// and input information.
//
// The raw sections are byte buffers the server monitors in game memory.
// They contain instance specific fields such as pointers; the server masks
// those out itself when a state is restored, so keeping the exact bytes is
// both safe and required for rewinds to work across captures.
type SimState struct {
	Version     int32
	ContextMode int32
	Flags       uint32

	Timers           []byte
	Dyna             []byte
	SceneMobil       []byte
	SimulationWheels []byte
	PlugSolid        []byte
	CmdBufferCore    []byte
	PlayerInfo       []byte
	InputState       []byte

	InputRunningEvent    eventbuffer.Event
	InputFinishEvent     eventbuffer.Event
	InputAccelerateEvent eventbuffer.Event
	InputBrakeEvent      eventbuffer.Event
	InputLeftEvent       eventbuffer.Event
	InputRightEvent      eventbuffer.Event
	InputSteerEvent      eventbuffer.Event
	InputGasEvent        eventbuffer.Event

	NumRespawns uint32

	CheckpointData CheckpointData
}

// New creates a zeroed state with all sections allocated at their wire
// sizes.
func New() *SimState {
	return &SimState{
		Timers:           make([]byte, TimersSize),
		Dyna:             make([]byte, DynaSize),
		SceneMobil:       make([]byte, SceneMobilSize),
		SimulationWheels: make([]byte, SimulationWheelsSize),
		PlugSolid:        make([]byte, PlugSolidSize),
		CmdBufferCore:    make([]byte, CmdBufferCoreSize),
		PlayerInfo:       make([]byte, PlayerInfoSize),
		InputState:       make([]byte, InputStateSize),
	}
}

// Time returns the race time tracked by the game's timer block.
func (s *SimState) Time() int32 {
	if s.Flags&HasTimers == 0 {
		return 0
	}
	return fieldInt32(s.Timers, 4)
}

// DynaView returns the typed view over the dynamics section.
func (s *SimState) DynaView() Dyna {
	return Dyna(s.Dyna)
}

// SceneMobilView returns the typed view over the scene vehicle section.
func (s *SimState) SceneMobilView() SceneVehicleCar {
	return SceneVehicleCar(s.SceneMobil)
}

// WheelsView returns the typed view over the simulation wheels section.
func (s *SimState) WheelsView() SimulationWheels {
	return SimulationWheels(s.SimulationWheels)
}

// PlayerInfoView returns the typed view over the player info section.
func (s *SimState) PlayerInfoView() PlayerInfo {
	return PlayerInfo(s.PlayerInfo)
}

// Position returns the current vehicle position.
func (s *SimState) Position() [3]float32 {
	if s.Flags&HasDyna == 0 {
		return [3]float32{}
	}
	return s.DynaView().CurrentState().Position()
}

// SetPosition overwrites the current vehicle position. Returns false when
// the state carries no dynamics section.
func (s *SimState) SetPosition(pos [3]float32) bool {
	if s.Flags&HasDyna == 0 {
		return false
	}
	s.DynaView().CurrentState().SetPosition(pos)
	return true
}

// Velocity returns the current linear speed.
func (s *SimState) Velocity() [3]float32 {
	if s.Flags&HasDyna == 0 {
		return [3]float32{}
	}
	return s.DynaView().CurrentState().LinearSpeed()
}

// SetVelocity overwrites the current linear speed. Returns false when the
// state carries no dynamics section.
func (s *SimState) SetVelocity(vel [3]float32) bool {
	if s.Flags&HasDyna == 0 {
		return false
	}
	s.DynaView().CurrentState().SetLinearSpeed(vel)
	return true
}

// RotationMatrix returns the current orientation matrix.
func (s *SimState) RotationMatrix() [3][3]float32 {
	if s.Flags&HasDyna == 0 {
		return [3][3]float32{}
	}
	return s.DynaView().CurrentState().Rotation()
}

// SetRotationMatrix overwrites the current orientation, updating the
// quaternion the game keeps alongside the matrix. Returns false when the
// state carries no dynamics section.
func (s *SimState) SetRotationMatrix(m [3][3]float32) bool {
	if s.Flags&HasDyna == 0 {
		return false
	}
	state := s.DynaView().CurrentState()
	state.SetRotation(m)
	state.SetQuat(Mat3ToQuat(m))
	return true
}

// YawPitchRoll returns the current orientation as yaw, pitch and roll
// angles in radians.
func (s *SimState) YawPitchRoll() [3]float64 {
	if s.Flags&HasDyna == 0 {
		return [3]float64{}
	}
	return QuatToYawPitchRoll(Mat3ToQuat(s.RotationMatrix()))
}

// DisplaySpeed returns the speed value shown in game. Only available in
// the run context.
func (s *SimState) DisplaySpeed() int32 {
	if s.Flags&HasPlayerInfo == 0 {
		return 0
	}
	return s.PlayerInfoView().DisplaySpeed()
}

// RaceTime returns the race time from the player info section.
func (s *SimState) RaceTime() int32 {
	if s.Flags&HasPlayerInfo == 0 {
		return 0
	}
	return s.PlayerInfoView().RaceTime()
}

// RewindTime is the time of the physics step that follows a rewind to
// this state.
func (s *SimState) RewindTime() int32 {
	return s.RaceTime() + 10
}

// Input accessors query the cached input events of the state regardless
// of context.

func (s *SimState) InputAccelerate() bool {
	return s.InputAccelerateEvent.BinaryValue()
}

func (s *SimState) InputBrake() bool {
	return s.InputBrakeEvent.BinaryValue()
}

func (s *SimState) InputLeft() bool {
	return s.InputLeftEvent.BinaryValue()
}

func (s *SimState) InputRight() bool {
	return s.InputRightEvent.BinaryValue()
}

func (s *SimState) InputSteer() int32 {
	return s.InputSteerEvent.AnalogValue()
}

func (s *SimState) InputGas() int32 {
	return s.InputGasEvent.AnalogValue()
}
