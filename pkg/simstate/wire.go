package simstate

import (
	"github.com/tastools/tminterface-go/pkg/eventbuffer"
	"github.com/tastools/tminterface-go/pkg/protocol"
)

// Write appends the wire encoding of a state to a message: header fields,
// raw sections in wire order, the eight cached input events, the respawn
// count and the checkpoint data. capacity bounds the checkpoint vectors.
func Write(msg *protocol.Message, s *SimState, capacity int) {
	msg.WriteInt32(s.Version)
	msg.WriteInt32(s.ContextMode)
	msg.WriteUint32(s.Flags)
	msg.WriteBuffer(s.Timers)
	msg.WriteBuffer(s.Dyna)
	msg.WriteBuffer(s.SceneMobil)
	msg.WriteBuffer(s.SimulationWheels)
	msg.WriteBuffer(s.PlugSolid)
	msg.WriteBuffer(s.CmdBufferCore)
	msg.WriteBuffer(s.PlayerInfo)
	msg.WriteBuffer(s.InputState)

	writeEvent(msg, s.InputRunningEvent)
	writeEvent(msg, s.InputFinishEvent)
	writeEvent(msg, s.InputAccelerateEvent)
	writeEvent(msg, s.InputBrakeEvent)
	writeEvent(msg, s.InputLeftEvent)
	writeEvent(msg, s.InputRightEvent)
	writeEvent(msg, s.InputSteerEvent)
	writeEvent(msg, s.InputGasEvent)
	msg.WriteUint32(s.NumRespawns)

	WriteCheckpointData(msg, s.CheckpointData, capacity)
}

// Read decodes a state from its wire encoding. withCheckpoints controls
// whether checkpoint data follows the respawn count; the server omits it
// when no player info is available.
func Read(r *protocol.Reader, withCheckpoints bool) *SimState {
	s := New()
	s.Version = r.ReadInt32()
	s.ContextMode = r.ReadInt32()
	s.Flags = r.ReadUint32()
	s.Timers = r.ReadBytes(TimersSize)
	s.Dyna = r.ReadBytes(DynaSize)
	s.SceneMobil = r.ReadBytes(SceneMobilSize)
	s.SimulationWheels = r.ReadBytes(SimulationWheelsSize)
	s.PlugSolid = r.ReadBytes(PlugSolidSize)
	s.CmdBufferCore = r.ReadBytes(CmdBufferCoreSize)
	s.PlayerInfo = r.ReadBytes(PlayerInfoSize)
	s.InputState = r.ReadBytes(InputStateSize)

	s.InputRunningEvent = readEvent(r)
	s.InputFinishEvent = readEvent(r)
	s.InputAccelerateEvent = readEvent(r)
	s.InputBrakeEvent = readEvent(r)
	s.InputLeftEvent = readEvent(r)
	s.InputRightEvent = readEvent(r)
	s.InputSteerEvent = readEvent(r)
	s.InputGasEvent = readEvent(r)
	s.NumRespawns = r.ReadUint32()

	if withCheckpoints {
		s.CheckpointData = ReadCheckpointData(r)
	}
	return s
}

// WriteCheckpointData appends the checkpoint state wire encoding: a
// reserved dword, the passed flags vector and the times vector.
func WriteCheckpointData(msg *protocol.Message, data CheckpointData, capacity int) {
	msg.WriteInt32(0)

	states := make([]int32, len(data.States))
	for i, passed := range data.States {
		if passed {
			states[i] = 1
		}
	}
	if !msg.WriteInt32Vector(states, capacity) {
		return
	}

	times := make([][2]int32, len(data.Times))
	for i, ct := range data.Times {
		times[i] = [2]int32{ct.Time, ct.StuntsScore}
	}
	msg.WriteInt32PairVector(times, capacity)
}

// ReadCheckpointData decodes the checkpoint state wire encoding.
func ReadCheckpointData(r *protocol.Reader) CheckpointData {
	r.Skip(4)

	raw := r.ReadInt32Vector()
	states := make([]bool, len(raw))
	for i, v := range raw {
		states[i] = v != 0
	}

	pairs := r.ReadInt32PairVector()
	times := make([]CheckpointTime, len(pairs))
	for i, p := range pairs {
		times[i] = CheckpointTime{Time: p[0], StuntsScore: p[1]}
	}
	return CheckpointData{States: states, Times: times}
}

func writeEvent(msg *protocol.Message, e eventbuffer.Event) {
	msg.WriteUint32(e.Time)
	msg.WriteInt32(e.Data)
}

func readEvent(r *protocol.Reader) eventbuffer.Event {
	return eventbuffer.Event{
		Time: r.ReadUint32(),
		Data: r.ReadInt32(),
	}
}
