// Package client implements the connection to a TMInterface server.
// Communication happens over a shared memory buffer with a synchronous
// message exchange: the client writes a message, signals the server by
// setting the high byte of the message type, and polls for the response.
package client

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/tastools/tminterface-go/pkg/eventbuffer"
	"github.com/tastools/tminterface-go/pkg/log"
	"github.com/tastools/tminterface-go/pkg/protocol"
	"github.com/tastools/tminterface-go/pkg/simstate"
	"github.com/tastools/tminterface-go/pkg/transport"
)

// DefaultServerName is the mapping name of the first TMInterface instance.
// Additional instances use TMInterface1, TMInterface2 and so on.
const DefaultServerName = "TMInterface0"

const (
	defaultPollInterval    = 200 * time.Microsecond
	defaultResponseTimeout = 5 * time.Second
)

// unchangedAnalog is the sentinel for analog inputs that keep their state.
const unchangedAnalog = int32(1<<31 - 1)

// controlNameOrder is the order control ids are listed in the event
// buffer response.
var controlNameOrder = [eventbuffer.NumControls]string{
	eventbuffer.RaceStartName,
	eventbuffer.RaceFinishName,
	eventbuffer.AccelerateName,
	eventbuffer.BrakeName,
	eventbuffer.SteerLeftName,
	eventbuffer.SteerRightName,
	eventbuffer.AnalogSteerName,
	eventbuffer.AnalogAccelerateName,
	eventbuffer.RespawnName,
	eventbuffer.HornName,
}

// Severity of a console log line.
type Severity int32

const (
	SeverityLog Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// TMInterface is a connection to a single TMInterface server. A server
// serves one client at a time; connecting to multiple servers takes one
// TMInterface per server.
//
// Commands may be issued from hooks or before registration. The exchange
// protocol is synchronous, so a command issued from an unrelated goroutine
// while a server call is being delivered can clobber the pending call.
type TMInterface struct {
	serverName      string
	bufferSize      int
	pollInterval    time.Duration
	responseTimeout time.Duration

	buf transport.Buffer

	// mu serializes message exchanges on the shared buffer. It is not
	// held while a hook runs, so hooks can issue their own exchanges.
	mu sync.Mutex

	client     Client
	registered bool

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewTMInterfaceOptions contains options for creating a new TMInterface.
type NewTMInterfaceOptions struct {
	// ServerName is the mapping name of the server instance. Defaults
	// to DefaultServerName.
	ServerName string
	// BufferSize is the size of the shared buffer. Defaults to
	// protocol.DefaultBufferSize. A custom size requires launching the
	// server with a matching /serversize parameter.
	BufferSize int
	// PollInterval is the sleep between polls of the shared buffer.
	PollInterval time.Duration
	// ResponseTimeout bounds the wait for a server response.
	ResponseTimeout time.Duration
	// Buffer overrides the shared memory mapping. Used for testing
	// against an in-process server.
	Buffer transport.Buffer
}

func NewTMInterface(opts NewTMInterfaceOptions) *TMInterface {
	if opts.ServerName == "" {
		opts.ServerName = DefaultServerName
	}
	if opts.BufferSize == 0 {
		opts.BufferSize = protocol.DefaultBufferSize
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.ResponseTimeout == 0 {
		opts.ResponseTimeout = defaultResponseTimeout
	}
	return &TMInterface{
		serverName:      opts.ServerName,
		bufferSize:      opts.BufferSize,
		pollInterval:    opts.PollInterval,
		responseTimeout: opts.ResponseTimeout,
		buf:             opts.Buffer,
		done:            make(chan struct{}),
	}
}

// connect retries opening the server mapping until the response timeout
// passes. The mapping only exists once the server instance is running,
// so a client started first keeps retrying.
func (t *TMInterface) connect() (transport.Buffer, error) {
	deadline := time.Now().Add(t.responseTimeout)
	for {
		buf, err := transport.OpenSharedMemory(t.serverName, t.bufferSize)
		if err == nil {
			return buf, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("failed to open server buffer: %v", err)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// ServerName returns the mapping name of the server this interface
// connects to.
func (t *TMInterface) ServerName() string {
	return t.serverName
}

// Registered reports whether a client is currently registered.
func (t *TMInterface) Registered() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.registered
}

// Register connects to the server, registers the client and starts the
// dispatch loop delivering server calls to the client's hooks.
func (t *TMInterface) Register(client Client) error {
	t.mu.Lock()
	if t.client != nil {
		t.mu.Unlock()
		return fmt.Errorf("a client is already registered")
	}
	if t.buf == nil {
		buf, err := t.connect()
		if err != nil {
			t.mu.Unlock()
			return err
		}
		t.buf = buf
	}
	t.client = client

	err := t.writeMessage(protocol.NewMessage(protocol.CRegister))
	if err == nil {
		err = t.awaitResponse(true)
	}
	if err != nil {
		t.client = nil
		t.mu.Unlock()
		return fmt.Errorf("failed to register: %v", err)
	}
	t.registered = true
	t.mu.Unlock()

	log.Debug("Registered on %s", t.serverName)

	t.wg.Add(1)
	go t.dispatchLoop()
	return nil
}

// Close deregisters the client and stops the dispatch loop. Safe to call
// from hooks and from other goroutines.
func (t *TMInterface) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)

		t.mu.Lock()
		client := t.client
		wasRegistered := t.registered
		t.registered = false
		if wasRegistered {
			msg := protocol.NewMessage(protocol.CDeregister)
			msg.WriteInt32(0)
			err = t.writeMessage(msg)
		}
		t.mu.Unlock()

		if wasRegistered && client != nil {
			client.OnDeregistered(t)
		}
	})
	return err
}

// Wait blocks until the dispatch loop has stopped.
func (t *TMInterface) Wait() {
	t.wg.Wait()
}

// SetTimeout sets the window in milliseconds in which the client has to
// respond to server calls before the server deregisters it on its own.
// The server default is 2000ms; -1 makes the server wait forever.
func (t *TMInterface) SetTimeout(timeoutMS int32) error {
	msg := protocol.NewMessage(protocol.CSetTimeout)
	msg.WriteInt32(timeoutMS)
	return t.sendCommand(msg)
}

// SetGameSpeed sets the global game speed. 1 is the normal speed, factors
// below 1 slow the game down and factors above speed it up. The setting
// does not affect simulation contexts with debug mode disabled.
func (t *TMInterface) SetGameSpeed(speed float64) error {
	msg := protocol.NewMessage(protocol.CSetGameSpeed)
	msg.WriteFloat64(speed)
	return t.sendCommand(msg)
}

// SetInputState applies an input state at the next physics tick. To have
// an input take effect at 500ms, send it during the 490ms step.
//
// In a simulation context the server injects events into the event buffer
// so the next tick has the desired state. Unless the state preserves
// existing events, the buffer is cleared first.
func (t *TMInterface) SetInputState(state InputState) error {
	if err := t.maybeClearSimEvents(!state.PreserveSimEvents); err != nil {
		return err
	}
	msg := protocol.NewMessage(protocol.CSetInputStates)
	msg.WriteInt32(state.Left)
	msg.WriteInt32(state.Right)
	msg.WriteInt32(state.Accelerate)
	msg.WriteInt32(state.Brake)
	msg.WriteInt32(state.Steer)
	msg.WriteInt32(state.Gas)
	return t.sendCommand(msg)
}

// Respawn queues a deterministic respawn at the next race tick. The car
// respawns to the nearest respawnable checkpoint, or restarts the race
// when no checkpoint was passed. In a simulation context clearSimEvents
// controls whether other input events are cleared first.
func (t *TMInterface) Respawn(clearSimEvents bool) error {
	if err := t.maybeClearSimEvents(clearSimEvents); err != nil {
		return err
	}
	msg := protocol.NewMessage(protocol.CRespawn)
	msg.WriteInt32(0)
	return t.sendCommand(msg)
}

// GiveUp restarts the current race. Does nothing in a simulation context;
// use RewindToState there instead.
func (t *TMInterface) GiveUp() error {
	msg := protocol.NewMessage(protocol.CGiveUp)
	msg.WriteInt32(0)
	return t.sendCommand(msg)
}

// Horn queues a deterministic horn at the next race tick.
func (t *TMInterface) Horn(clearSimEvents bool) error {
	if err := t.maybeClearSimEvents(clearSimEvents); err != nil {
		return err
	}
	msg := protocol.NewMessage(protocol.CHorn)
	msg.WriteInt32(0)
	return t.sendCommand(msg)
}

// ExecuteCommand adds a console command to the server's command queue.
// Commands are processed asynchronously on upcoming game frames.
func (t *TMInterface) ExecuteCommand(command string) error {
	msg := protocol.NewMessage(protocol.CExecuteCommand)
	msg.WriteInt32(0)
	if !msg.WriteString(command, t.bufferSize) {
		return fmt.Errorf("command does not fit in the server buffer")
	}
	return t.sendCommand(msg)
}

// RemoveStateValidation makes the game validate the current replay
// without checking inputs against the states saved in it. Call this in
// OnSimulationBegin to allow input modification without the game stopping
// the simulation prematurely.
func (t *TMInterface) RemoveStateValidation() error {
	msg := protocol.NewMessage(protocol.CRemoveStateValidation)
	msg.WriteInt32(0)
	return t.sendCommand(msg)
}

// PreventSimulationFinish stops the game from ending the simulation after
// a finished race by setting the last checkpoint time to -1. Call this in
// OnCheckpointCountChanged when the race finishes.
func (t *TMInterface) PreventSimulationFinish() error {
	msg := protocol.NewMessage(protocol.CPreventSimulationFinish)
	msg.WriteInt32(0)
	return t.sendCommand(msg)
}

// RewindToState restores a simulation state captured with
// GetSimulationState. The next physics step after the hook returns runs
// from the restored state, so a state saved at race time 0 resumes with
// the next step at time 10. Input state meant for the restored tick must
// be applied in the same physics step as the rewind.
func (t *TMInterface) RewindToState(state *simstate.SimState) error {
	msg := protocol.NewMessage(protocol.CSimRewindToState)
	simstate.Write(msg, state, t.bufferSize)
	return t.sendCommand(msg)
}

// SetCheckpointState replaces the checkpoint state of the race.
func (t *TMInterface) SetCheckpointState(data simstate.CheckpointData) error {
	msg := protocol.NewMessage(protocol.CSetCheckpointState)
	simstate.WriteCheckpointData(msg, data, t.bufferSize)
	return t.sendCommand(msg)
}

// SetEventBuffer replaces the event buffer used for the simulation. The
// EventsDuration and ControlNames fields are ignored by the server. For
// dynamic input injection prefer SetInputState.
func (t *TMInterface) SetEventBuffer(buf *eventbuffer.EventBuffer) error {
	msg := protocol.NewMessage(protocol.CSimSetEventBuffer)
	for i := 0; i < eventbuffer.NumControls; i++ {
		msg.WriteInt32(-1)
	}
	msg.WriteInt32(buf.EventsDuration)

	pairs := make([][2]int32, len(buf.Events))
	for i, e := range buf.Events {
		pairs[i] = [2]int32{int32(e.Time), e.Data}
	}
	if !msg.WriteInt32PairVector(pairs, t.bufferSize) {
		return fmt.Errorf("event buffer does not fit in the server buffer")
	}
	return t.sendCommand(msg)
}

// GetContextMode returns the mode the server instance is currently in,
// protocol.ModeSimulation when the player validates a replay and
// protocol.ModeRun during a normal race.
func (t *TMInterface) GetContextMode() (int32, error) {
	r, err := t.queryCommand(protocol.NewMessage(protocol.CGetContextMode))
	if err != nil {
		return 0, err
	}
	r.Skip(4)
	mode := r.ReadInt32()
	return mode, r.Err()
}

// GetCheckpointState returns the current checkpoint state of the race,
// or nil when no player info is available yet.
func (t *TMInterface) GetCheckpointState() (*simstate.CheckpointData, error) {
	r, err := t.queryCommand(protocol.NewMessage(protocol.CGetCheckpointState))
	if err != nil {
		return nil, err
	}
	errorCode := r.ReadInt32()
	if errorCode&protocol.ErrCodeNoPlayerInfo != 0 {
		return nil, nil
	}
	data := simstate.ReadCheckpointData(r)
	return &data, r.Err()
}

// GetSimulationState captures the current simulation state. Valid in
// OnRunStep and OnSimulationStep hooks.
func (t *TMInterface) GetSimulationState() (*simstate.SimState, error) {
	r, err := t.queryCommand(protocol.NewMessage(protocol.CSimGetState))
	if err != nil {
		return nil, err
	}
	errorCode := r.ReadInt32()
	state := simstate.Read(r, errorCode&protocol.ErrCodeNoPlayerInfo == 0)
	return state, r.Err()
}

// GetEventBuffer returns the event buffer holding the inputs of the
// current simulation. Outside a simulation context the returned buffer
// is empty.
func (t *TMInterface) GetEventBuffer() (*eventbuffer.EventBuffer, error) {
	r, err := t.queryCommand(protocol.NewMessage(protocol.CSimGetEventBuffer))
	if err != nil {
		return nil, err
	}
	errorCode := r.ReadInt32()
	if errorCode == protocol.ErrCodeNoEventBuffer {
		return eventbuffer.New(0), nil
	}

	var names [eventbuffer.NumControls]string
	for _, name := range controlNameOrder {
		id := r.ReadInt32()
		if id >= 0 && int(id) < eventbuffer.NumControls {
			names[id] = name
		}
	}

	buf := eventbuffer.New(int32(r.ReadUint32()))
	buf.ControlNames = names
	for _, pair := range r.ReadInt32PairVector() {
		buf.Events = append(buf.Events, eventbuffer.Event{
			Time: uint32(pair[0]),
			Data: pair[1],
		})
	}
	return buf, r.Err()
}

// ClearEventBuffer removes all events from the simulation event buffer
// except the race running event, which has to stay for the game to start
// the race.
func (t *TMInterface) ClearEventBuffer() error {
	buf, err := t.GetEventBuffer()
	if err != nil {
		return err
	}
	buf.Clear()
	return t.SetEventBuffer(buf)
}

// SetSimulationTimeLimit makes the game stop the simulation at the given
// race time instead of the finish time of the validated replay. Pass -1
// to restore the original limit. Only applies to simulation contexts.
func (t *TMInterface) SetSimulationTimeLimit(raceTime int32) error {
	msg := protocol.NewMessage(protocol.CSimSetTimeLimit)
	msg.WriteInt32(raceTime)
	return t.sendCommand(msg)
}

// RegisterCustomCommand registers a console command. Executing the
// command calls the client's OnCustomCommand hook with the parsed time
// range and arguments. The command name cannot contain spaces.
func (t *TMInterface) RegisterCustomCommand(command string) error {
	msg := protocol.NewMessage(protocol.CRegisterCustomCommand)
	msg.WriteInt32(0)
	if !msg.WriteString(command, t.bufferSize) {
		return fmt.Errorf("command does not fit in the server buffer")
	}
	return t.sendCommand(msg)
}

// Log prints a message in the server's console. The severity selects the
// highlight color of the line.
func (t *TMInterface) Log(message string, severity Severity) error {
	msg := protocol.NewMessage(protocol.CLog)
	msg.WriteInt32(int32(severity))
	if !msg.WriteString(message, t.bufferSize) {
		return fmt.Errorf("message does not fit in the server buffer")
	}
	return t.sendCommand(msg)
}

// maybeClearSimEvents clears the simulation event buffer when clear is
// set and the server is in a simulation context.
func (t *TMInterface) maybeClearSimEvents(clear bool) error {
	if !clear {
		return nil
	}
	mode, err := t.GetContextMode()
	if err != nil {
		return err
	}
	if mode != protocol.ModeSimulation {
		return nil
	}
	return t.ClearEventBuffer()
}

// sendCommand performs an exchange for a command with no response
// payload.
func (t *TMInterface) sendCommand(msg *protocol.Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.writeMessage(msg); err != nil {
		return err
	}
	return t.awaitResponse(true)
}

// queryCommand performs an exchange and returns a reader over a snapshot
// of the response, positioned at the error code.
func (t *TMInterface) queryCommand(msg *protocol.Message) (*protocol.Reader, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.writeMessage(msg); err != nil {
		return nil, err
	}
	if err := t.awaitResponse(false); err != nil {
		return nil, err
	}
	raw := make([]byte, t.bufferSize)
	if err := t.buf.ReadAt(raw, 0); err != nil {
		return nil, err
	}
	if err := t.clearBuffer(); err != nil {
		return nil, err
	}
	r := protocol.NewReader(raw)
	r.Seek(4)
	return r, nil
}

// writeMessage writes the encoded message at the start of the buffer and
// signals the server by setting the high byte of the type dword.
// Callers must hold mu.
func (t *TMInterface) writeMessage(msg *protocol.Message) error {
	if t.buf == nil {
		return fmt.Errorf("not connected to a server")
	}
	if msg.Len() > t.bufferSize {
		return fmt.Errorf("message of %d bytes does not fit in the %d byte buffer", msg.Len(), t.bufferSize)
	}
	if err := t.buf.WriteAt(msg.Encode(), 0); err != nil {
		return fmt.Errorf("failed to write message: %v", err)
	}
	if err := t.buf.WriteAt([]byte{0xFF}, 1); err != nil {
		return fmt.Errorf("failed to signal message: %v", err)
	}
	return nil
}

// awaitResponse polls the buffer until the server posts its response.
// Callers must hold mu.
func (t *TMInterface) awaitResponse(clear bool) error {
	deadline := time.Now().Add(t.responseTimeout)
	head := make([]byte, 4)
	for {
		if err := t.buf.ReadAt(head, 0); err != nil {
			return err
		}
		if int32(binary.LittleEndian.Uint32(head)) == int32(protocol.SResponse)|protocol.SignalMask {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for server response")
		}
		time.Sleep(t.pollInterval)
	}
	if clear {
		return t.clearBuffer()
	}
	return nil
}

// clearBuffer zeroes the whole shared buffer. Callers must hold mu.
func (t *TMInterface) clearBuffer() error {
	return t.buf.WriteAt(make([]byte, t.bufferSize), 0)
}

