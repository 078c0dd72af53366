package savestate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastools/tminterface-go/pkg/eventbuffer"
	"github.com/tastools/tminterface-go/pkg/protocol"
	"github.com/tastools/tminterface-go/pkg/simstate"
)

func testState(t *testing.T) *simstate.SimState {
	t.Helper()
	state := simstate.New()
	state.Version = 1
	state.ContextMode = protocol.ModeSimulation
	state.Flags = simstate.HasTimers | simstate.HasDyna | simstate.HasPlayerInfo
	for i := range state.Dyna {
		state.Dyna[i] = byte(i)
	}
	state.InputSteerEvent = eventbuffer.NewAnalogEvent(540, 6, -12345)
	state.NumRespawns = 2
	state.CheckpointData = simstate.CheckpointData{
		States: []bool{true, false},
		Times:  []simstate.CheckpointTime{{Time: 15480, StuntsScore: 0}, {Time: -1, StuntsScore: 40}},
	}
	return state
}

func TestEncodeDecode(t *testing.T) {
	state := testState(t)
	decoded, err := Decode(Encode(state))
	require.NoError(t, err)
	assert.Equal(t, state, decoded)
}

func TestSaveLoad(t *testing.T) {
	state := testState(t)
	path := filepath.Join(t.TempDir(), "race.state")

	require.NoError(t, Save(path, state))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestSaveLoad_Compressed(t *testing.T) {
	state := testState(t)
	path := filepath.Join(t.TempDir(), "race.state.zst")

	require.NoError(t, SaveCompressed(path, state))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Less(t, len(raw), len(Encode(state)))
}

func TestLoad_BadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.state")
	require.NoError(t, os.WriteFile(path, []byte("NOPE\x01\x00\x00\x00rest"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_BadVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.state")
	require.NoError(t, os.WriteFile(path, []byte("TMIS\x63\x00\x00\x00"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_TooShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.state")
	require.NoError(t, os.WriteFile(path, []byte("TM"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
