package commands

import (
	"fmt"
	"strings"
)

// ScriptCommand renders a command back to a script line.
type ScriptCommand interface {
	ToScript() string
}

// TimedScriptCommand is a command executed at a specific timestamp.
type TimedScriptCommand interface {
	ScriptCommand
	Time() int32
}

// Command is an immediate command, executed whenever it is encountered.
type Command struct {
	Args []string
}

func (c Command) ToScript() string {
	return strings.Join(c.Args, " ")
}

// TimedCommand is any command bound to a timestamp. A ranged command
// produces two TimedCommands: the earliest with IsEnding false and the
// latest with IsEnding true.
type TimedCommand struct {
	Args      []string
	Timestamp int32
	IsEnding  bool
}

func (c TimedCommand) Time() int32 {
	return c.Timestamp
}

// ToInputCommand converts the command to an InputCommand. ok is false when
// the command does not describe a valid input.
func (c TimedCommand) ToInputCommand() (InputCommand, bool) {
	if len(c.Args) < 2 {
		return InputCommand{}, false
	}
	action := strings.ToLower(c.Args[0])
	valid := false
	for _, name := range inputCommands {
		if name == action {
			valid = true
			break
		}
	}
	if !valid {
		return InputCommand{}, false
	}

	var state int32
	inputType := InputTypeUnknown
	switch action {
	case "press", "rel":
		if action == "press" && !c.IsEnding {
			state = 1
		}
		inputType = InputTypeFromString(c.Args[1])
	case "steer", "gas":
		inputType = InputTypeFromString(action)
		if !c.IsEnding {
			parsed, err := parseInt32(c.Args[1])
			if err != nil {
				return InputCommand{}, false
			}
			state = parsed
		}
	default:
		return InputCommand{}, false
	}

	return InputCommand{Timestamp: c.Timestamp, Type: inputType, State: state}, true
}

func (c TimedCommand) ToScript() string {
	if input, ok := c.ToInputCommand(); ok {
		return input.ToScript()
	}
	return fmt.Sprintf("%d %s", c.Timestamp, Command{Args: c.Args}.ToScript())
}

// InputCommand is a timed command that injects an input into the game.
type InputCommand struct {
	Timestamp int32
	Type      InputType
	State     int32
}

func (c InputCommand) Time() int32 {
	return c.Timestamp
}

func (c InputCommand) ToScript() string {
	switch c.Type {
	case InputTypeSteer, InputTypeGas:
		return fmt.Sprintf("%d %s %d", c.Timestamp, c.Type, c.State)
	case InputTypeUnknown:
		return fmt.Sprintf("# %d [unknown] %d", c.Timestamp, c.State)
	default:
		action := "rel"
		if c.State != 0 {
			action = "press"
		}
		return fmt.Sprintf("%d %s %s", c.Timestamp, action, c.Type)
	}
}
