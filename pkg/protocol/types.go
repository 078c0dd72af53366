package protocol

// MessageType identifies a message exchanged over the shared server buffer.
// S-prefixed types are calls originating from the server, C-prefixed types
// are calls originating from the client. Values are defined by the server
// and must not be reordered.
type MessageType int32

const (
	SResponse MessageType = iota + 1
	SOnRegistered
	SShutdown
	SOnRunStep
	SOnSimBegin
	SOnSimStep
	SOnSimEnd
	SOnCheckpointCountChanged
	SOnLapsCountChanged
	SOnCustomCommand
	SOnBruteforceEvaluate
	CRegister
	CDeregister
	CProcessedCall
	CSetInputStates
	CRespawn
	CGiveUp
	CHorn
	CSimRewindToState
	CSimGetState
	CSimGetEventBuffer
	CGetContextMode
	CSimSetEventBuffer
	CSimSetTimeLimit
	CGetCheckpointState
	CSetCheckpointState
	CSetGameSpeed
	CExecuteCommand
	CSetExecuteCommands
	CSetTimeout
	CRemoveStateValidation
	CPreventSimulationFinish
	CRegisterCustomCommand
	CLog
	AnyMessage
)

// SignalMask is OR-ed into the message type word when a message has been
// posted to the buffer and is waiting to be consumed by the other side.
const SignalMask = 0xFF00

// Error codes carried in the second word of a message.
const (
	ErrCodeNone                    int32 = 0
	ErrCodeResponseTooLong         int32 = 1
	ErrCodeClientAlreadyRegistered int32 = 2
	ErrCodeNoEventBuffer           int32 = 3
	ErrCodeNoPlayerInfo            int32 = 4
)

// DefaultBufferSize is the shared buffer size used by a server started
// without the /serversize command line parameter.
const DefaultBufferSize = 65536

// HeaderSize is the size of the [type][errorCode] prefix of every message.
const HeaderSize = 8

// Context modes reported by CGetContextMode.
const (
	ModeSimulation int32 = 0
	ModeRun        int32 = 1
)
