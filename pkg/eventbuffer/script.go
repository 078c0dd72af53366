package eventbuffer

import (
	"github.com/tastools/tminterface-go/pkg/commands"
)

// controlInputTypes maps control names to script input types. The internal
// race start and finish controls have no script representation.
var controlInputTypes = map[string]commands.InputType{
	AccelerateName:       commands.InputTypeUp,
	BrakeName:            commands.InputTypeDown,
	SteerLeftName:        commands.InputTypeLeft,
	SteerRightName:       commands.InputTypeRight,
	AnalogSteerName:      commands.InputTypeSteer,
	AnalogAccelerateName: commands.InputTypeGas,
	RespawnName:          commands.InputTypeRespawn,
	HornName:             commands.InputTypeHorn,
}

// ToCommandList converts the buffer's events into a script command list.
// Events of controls without a script representation are skipped.
func (b *EventBuffer) ToCommandList() *commands.CommandList {
	list := &commands.CommandList{}
	for _, e := range b.Events {
		name := ""
		if idx := e.NameIndex(); idx < NumControls {
			name = b.ControlNames[idx]
		}
		inputType, ok := controlInputTypes[name]
		if !ok {
			continue
		}

		var state int32
		switch inputType {
		case commands.InputTypeSteer, commands.InputTypeGas:
			state = e.AnalogValue()
		default:
			if e.BinaryValue() {
				state = 1
			}
		}
		list.AddInput(commands.InputCommand{
			Timestamp: e.RaceTime(),
			Type:      inputType,
			State:     state,
		})
	}
	return list
}

// ToScript renders the buffer's events as script text in time order.
func (b *EventBuffer) ToScript() string {
	return b.ToCommandList().ToScript()
}
