// Package commands parses and generates TMInterface console scripts: lists
// of immediate and timed commands, including the input commands used to
// describe a run.
package commands

import "strings"

// InputType is an input action coupled with its state in a script.
type InputType int

const (
	InputTypeUp InputType = iota
	InputTypeDown
	InputTypeLeft
	InputTypeRight
	InputTypeRespawn
	InputTypeReset
	InputTypeHorn
	InputTypeSteer
	InputTypeGas
	InputTypeUnknown
)

// inputCommands are the script commands that describe inputs.
var inputCommands = []string{"press", "rel", "steer", "gas"}

// inputTypeNames are the script action names, indexed by InputType.
var inputTypeNames = []string{"up", "down", "left", "right", "enter", "delete", "horn", "steer", "gas"}

// InputTypeFromString converts a script action string into an InputType.
// Invalid actions convert to InputTypeUnknown.
func InputTypeFromString(s string) InputType {
	s = strings.ToLower(s)
	for i, name := range inputTypeNames {
		if name == s {
			return InputType(i)
		}
	}
	return InputTypeUnknown
}

func (t InputType) String() string {
	if int(t) < len(inputTypeNames) {
		return inputTypeNames[t]
	}
	return "unknown"
}
