package commands

import (
	"sort"
	"strconv"
	"strings"
)

// CommandList is a parsed TMInterface script: immediate commands plus
// timed commands (including input commands).
//
// A quoted argument is kept as a single argument even when it contains
// spaces. Inline comments (#) and empty lines are skipped, and multiple
// commands on one line are separated by semicolons outside quotes.
type CommandList struct {
	Commands      []Command
	TimedCommands []TimedScriptCommand
}

// Parse parses script text into a command list. Lines that cannot be
// parsed into commands are skipped.
func Parse(content string) *CommandList {
	l := &CommandList{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.SplitN(line, "#", 2)[0])
		if line == "" {
			continue
		}
		for _, command := range splitInput(line) {
			l.parseCommand(command)
		}
	}
	return l
}

func (l *CommandList) parseCommand(command string) {
	args := splitCommandArgs(command)
	if len(args) == 0 {
		return
	}

	from, to := ParseTimeRange(args[0])
	if from == -1 {
		l.Commands = append(l.Commands, Command{Args: args})
		return
	}

	l.Add(TimedCommand{Args: args[1:], Timestamp: from, IsEnding: false})
	if to != -1 {
		l.Add(TimedCommand{Args: args[1:], Timestamp: to, IsEnding: true})
	}
}

// Add appends a timed command, converting it to an InputCommand when it
// describes an input.
func (l *CommandList) Add(cmd TimedCommand) {
	if input, ok := cmd.ToInputCommand(); ok {
		l.TimedCommands = append(l.TimedCommands, input)
		return
	}
	l.TimedCommands = append(l.TimedCommands, cmd)
}

// AddInput appends an input command.
func (l *CommandList) AddInput(cmd InputCommand) {
	l.TimedCommands = append(l.TimedCommands, cmd)
}

// SortedTimedCommands returns all timed commands in ascending timestamp
// order. The sort is stable.
func (l *CommandList) SortedTimedCommands() []TimedScriptCommand {
	out := make([]TimedScriptCommand, len(l.TimedCommands))
	copy(out, l.TimedCommands)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time() < out[j].Time()
	})
	return out
}

// ToScript renders all commands back into a script, one command per line.
// Immediate commands come first, timed commands follow in time order.
func (l *CommandList) ToScript() string {
	var sb strings.Builder
	for _, c := range l.Commands {
		sb.WriteString(c.ToScript())
		sb.WriteByte('\n')
	}
	for _, c := range l.SortedTimedCommands() {
		sb.WriteString(c.ToScript())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Clear removes all commands from the list.
func (l *CommandList) Clear() {
	l.Commands = nil
	l.TimedCommands = nil
}

// splitInput splits a line into commands on semicolons outside quotes.
func splitInput(line string) []string {
	inQuotes := false
	var out []string
	offset := 0
	for i, c := range line {
		if c == '"' {
			inQuotes = !inQuotes
		}
		if !inQuotes && c == ';' {
			out = append(out, line[offset:i])
			offset = i + 1
		}
	}
	if len(line)-offset > 0 {
		out = append(out, line[offset:])
	}
	return out
}

// splitCommandArgs splits a command into arguments, joining quoted
// sections into single arguments.
func splitCommandArgs(command string) []string {
	var args []string
	offset := 0
	i := 0
	for i < len(command) {
		switch command[i] {
		case ' ':
			if command[offset] != ' ' {
				args = append(args, command[offset:i])
			}
			offset = i + 1
		case '"':
			i++
			closing := strings.IndexByte(command[i:], '"')
			if closing != -1 {
				closing += i
				if closing-i > 0 {
					args = append(args, command[i:closing])
				}
				i = closing
				offset = i + 1
			}
		}
		i++
	}
	if len(command)-offset > 0 {
		args = append(args, command[offset:])
	}
	return args
}

// ParseTimeRange parses a time range or a single timestamp into a
// (from, to) pair. A single timestamp yields to == -1. When from > to the
// two are swapped.
func ParseTimeRange(s string) (from, to int32) {
	timestamps := strings.SplitN(s, "-", 2)
	switch len(timestamps) {
	case 1:
		return ParseTime(timestamps[0]), -1
	case 2:
		from = ParseTime(timestamps[0])
		to = ParseTime(timestamps[1])
		if from > to {
			from, to = to, from
		}
		return from, to
	}
	return -1, -1
}

// ParseTime parses a timestamp which is either a plain millisecond count
// ("947120") or a formatted time ("15:47.12"). Returns -1 when parsing
// fails.
func ParseTime(s string) int32 {
	if !strings.Contains(s, ".") {
		v, err := parseInt32(s)
		if err != nil {
			return -1
		}
		return v
	}

	tokens := strings.SplitN(s, ":", 3)
	switch len(tokens) {
	case 1:
		return parseSeconds(s)
	case 2:
		minutes, err := parseInt32(tokens[0])
		if err != nil {
			return -1
		}
		seconds := parseSeconds(tokens[1])
		if seconds == -1 {
			return -1
		}
		return minutes*60000 + seconds
	case 3:
		hours, err := parseInt32(tokens[0])
		if err != nil {
			return -1
		}
		minutes, err := parseInt32(tokens[1])
		if err != nil {
			return -1
		}
		seconds := parseSeconds(tokens[2])
		if seconds == -1 {
			return -1
		}
		return hours*3600000 + minutes*60000 + seconds
	}
	return -1
}

// parseSeconds parses "ss.hh" where hh are hundredths, padded or clipped
// to two digits.
func parseSeconds(s string) int32 {
	tokens := strings.SplitN(s, ".", 2)
	if len(tokens) < 2 || tokens[0] == "" || tokens[1] == "" {
		return -1
	}

	frac := tokens[1]
	if len(frac) > 2 {
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}

	seconds, err := parseInt32(tokens[0])
	if err != nil {
		return -1
	}
	hundredths, err := parseInt32(frac)
	if err != nil {
		return -1
	}
	return seconds*1000 + hundredths*10
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}
