package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int32
	}{
		{name: "plain milliseconds", in: "947120", want: 947120},
		{name: "seconds with hundredths", in: "15.47", want: 15470},
		{name: "minutes seconds", in: "15:47.12", want: 947120},
		{name: "hours minutes seconds", in: "1:02:03.5", want: 3723500},
		{name: "single fraction digit pads", in: "2.5", want: 2500},
		{name: "long fraction clips", in: "2.519", want: 2510},
		{name: "empty", in: "", want: -1},
		{name: "not a number", in: "abc", want: -1},
		{name: "missing seconds", in: "1:.5", want: -1},
		{name: "missing fraction", in: "2.", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTime(tt.in))
		})
	}
}

func TestParseTimeRange(t *testing.T) {
	from, to := ParseTimeRange("100")
	assert.Equal(t, int32(100), from)
	assert.Equal(t, int32(-1), to)

	from, to = ParseTimeRange("100-200")
	assert.Equal(t, int32(100), from)
	assert.Equal(t, int32(200), to)

	// Swapped bounds are normalized.
	from, to = ParseTimeRange("200-100")
	assert.Equal(t, int32(100), from)
	assert.Equal(t, int32(200), to)
}

func TestParse_ImmediateAndTimed(t *testing.T) {
	l := Parse("set countdown_speed 2\n1000 press up\n")

	require.Len(t, l.Commands, 1)
	assert.Equal(t, []string{"set", "countdown_speed", "2"}, l.Commands[0].Args)

	require.Len(t, l.TimedCommands, 1)
	input, ok := l.TimedCommands[0].(InputCommand)
	require.True(t, ok)
	assert.Equal(t, int32(1000), input.Timestamp)
	assert.Equal(t, InputTypeUp, input.Type)
	assert.Equal(t, int32(1), input.State)
}

func TestParse_RangedCommand(t *testing.T) {
	l := Parse("500-1500 press down")

	require.Len(t, l.TimedCommands, 2)
	press, ok := l.TimedCommands[0].(InputCommand)
	require.True(t, ok)
	assert.Equal(t, int32(500), press.Timestamp)
	assert.Equal(t, int32(1), press.State)

	rel, ok := l.TimedCommands[1].(InputCommand)
	require.True(t, ok)
	assert.Equal(t, int32(1500), rel.Timestamp)
	assert.Equal(t, int32(0), rel.State)
}

func TestParse_CommentsQuotesSemicolons(t *testing.T) {
	script := `# full line comment
load "my script.txt" # inline comment
press up; rel up
0 steer -65536`

	l := Parse(script)

	require.Len(t, l.Commands, 3)
	assert.Equal(t, []string{"load", "my script.txt"}, l.Commands[0].Args)
	assert.Equal(t, []string{"press", "up"}, l.Commands[1].Args)
	assert.Equal(t, []string{"rel", "up"}, l.Commands[2].Args)

	require.Len(t, l.TimedCommands, 1)
	input, ok := l.TimedCommands[0].(InputCommand)
	require.True(t, ok)
	assert.Equal(t, InputTypeSteer, input.Type)
	assert.Equal(t, int32(-65536), input.State)
}

func TestParse_QuotedSemicolonStaysInArgument(t *testing.T) {
	l := Parse(`echo "a;b"`)
	require.Len(t, l.Commands, 1)
	assert.Equal(t, []string{"echo", "a;b"}, l.Commands[0].Args)
}

func TestTimedCommand_ToInputCommand(t *testing.T) {
	tests := []struct {
		name   string
		cmd    TimedCommand
		want   InputCommand
		wantOK bool
	}{
		{
			name:   "press",
			cmd:    TimedCommand{Args: []string{"press", "up"}, Timestamp: 100},
			want:   InputCommand{Timestamp: 100, Type: InputTypeUp, State: 1},
			wantOK: true,
		},
		{
			name:   "press ending releases",
			cmd:    TimedCommand{Args: []string{"press", "left"}, Timestamp: 200, IsEnding: true},
			want:   InputCommand{Timestamp: 200, Type: InputTypeLeft, State: 0},
			wantOK: true,
		},
		{
			name:   "steer",
			cmd:    TimedCommand{Args: []string{"steer", "-3000"}, Timestamp: 300},
			want:   InputCommand{Timestamp: 300, Type: InputTypeSteer, State: -3000},
			wantOK: true,
		},
		{
			name:   "unknown action",
			cmd:    TimedCommand{Args: []string{"warp", "up"}, Timestamp: 100},
			wantOK: false,
		},
		{
			name:   "steer with bad value",
			cmd:    TimedCommand{Args: []string{"steer", "fast"}, Timestamp: 100},
			wantOK: false,
		},
		{
			name:   "press of unknown input keeps unknown type",
			cmd:    TimedCommand{Args: []string{"press", "fly"}, Timestamp: 100},
			want:   InputCommand{Timestamp: 100, Type: InputTypeUnknown, State: 1},
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cmd.ToInputCommand()
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCommandList_ToScript(t *testing.T) {
	script := "set controller bruteforce\n2000 press up\n1000 steer 4000\n"
	l := Parse(script)

	// Timed commands come out sorted by timestamp.
	assert.Equal(t, "set controller bruteforce\n1000 steer 4000\n2000 press up\n", l.ToScript())
}

func TestCommandList_ToScript_UnknownInputCommented(t *testing.T) {
	l := &CommandList{}
	l.AddInput(InputCommand{Timestamp: 100, Type: InputTypeUnknown, State: 1})
	assert.Equal(t, "# 100 [unknown] 1\n", l.ToScript())
}

func TestCommandList_Clear(t *testing.T) {
	l := Parse("press up\n100 press up\n")
	l.Clear()
	assert.Empty(t, l.Commands)
	assert.Empty(t, l.TimedCommands)
}

func TestInputTypeFromString(t *testing.T) {
	assert.Equal(t, InputTypeUp, InputTypeFromString("UP"))
	assert.Equal(t, InputTypeRespawn, InputTypeFromString("enter"))
	assert.Equal(t, InputTypeUnknown, InputTypeFromString("nope"))
	assert.Equal(t, "delete", InputTypeReset.String())
	assert.Equal(t, "unknown", InputTypeUnknown.String())
}
