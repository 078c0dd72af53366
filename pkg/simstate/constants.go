// Package simstate provides typed views over the raw simulation state
// buffers monitored by the server. The raw sections keep their exact bytes
// so a state can be rewound or written to a save state file unchanged;
// accessors decode individual fields at their known offsets.
package simstate

// Sizes of the raw state sections, in wire order.
const (
	TimersSize           = 212
	DynaSize             = 1424
	SceneMobilSize       = 2168
	SimulationWheelsSize = 3056
	PlugSolidSize        = 68
	CmdBufferCoreSize    = 264
	PlayerInfoSize       = 952
	InputStateSize       = 120
)

// Flags reporting which sections of a state hold valid data.
const (
	HasTimers           uint32 = 1 << 0
	HasDyna             uint32 = 1 << 1
	HasSceneMobil       uint32 = 1 << 2
	HasSimulationWheels uint32 = 1 << 3
	HasPlugSolid        uint32 = 1 << 4
	HasCmdBufferCore    uint32 = 1 << 5
	HasPlayerInfo       uint32 = 1 << 6
	HasInputState       uint32 = 1 << 7
)

// NumCachedInputs is the number of entries in the internal input state
// section.
const NumCachedInputs = 10

// WheelSize is the size of a single wheel entry in the simulation wheels
// section; NumWheels entries make up the section.
const (
	WheelSize = 764
	NumWheels = 4
)
