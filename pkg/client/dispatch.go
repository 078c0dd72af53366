package client

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/tastools/tminterface-go/pkg/bruteforce"
	"github.com/tastools/tminterface-go/pkg/log"
	"github.com/tastools/tminterface-go/pkg/protocol"
)

// dispatchLoop polls the shared buffer for server calls and delivers them
// to the client's hooks until the interface is closed.
func (t *TMInterface) dispatchLoop() {
	defer t.wg.Done()
	for {
		select {
		case <-t.done:
			return
		default:
		}

		handled, err := t.processServerMessage()
		if err != nil {
			t.client.OnError(t, err)
		}
		if !handled {
			time.Sleep(t.pollInterval)
		}
	}
}

// processServerMessage checks the buffer for a pending server call and
// dispatches it. The payload is snapshotted before the hook runs, so the
// hook is free to issue its own exchanges over the same buffer.
func (t *TMInterface) processServerMessage() (bool, error) {
	t.mu.Lock()
	if t.buf == nil {
		t.mu.Unlock()
		return false, nil
	}
	head := make([]byte, 4)
	if err := t.buf.ReadAt(head, 0); err != nil {
		t.mu.Unlock()
		return false, fmt.Errorf("failed to read message type: %v", err)
	}
	raw := int32(binary.LittleEndian.Uint32(head))
	if raw&protocol.SignalMask == 0 {
		t.mu.Unlock()
		return false, nil
	}
	msgType := protocol.MessageType(raw & 0xFF)
	if msgType == protocol.SResponse || msgType >= protocol.CRegister {
		// command responses are consumed by the issuing exchange and
		// client messages sit in the buffer until the server takes them
		t.mu.Unlock()
		return false, nil
	}
	payload := make([]byte, t.bufferSize-protocol.HeaderSize)
	if err := t.buf.ReadAt(payload, protocol.HeaderSize); err != nil {
		t.mu.Unlock()
		return false, fmt.Errorf("failed to read message payload: %v", err)
	}
	t.mu.Unlock()

	t.dispatch(msgType, protocol.NewReader(payload))
	return true, nil
}

func (t *TMInterface) dispatch(msgType protocol.MessageType, r *protocol.Reader) {
	switch msgType {
	case protocol.SShutdown:
		log.Debug("Server %s is shutting down", t.serverName)
		t.Close()
		t.client.OnShutdown(t)
	case protocol.SOnRegistered:
		t.client.OnRegistered(t)
		t.respondToCall(msgType)
	case protocol.SOnRunStep:
		raceTime := r.ReadInt32()
		t.client.OnRunStep(t, raceTime)
		t.respondToCall(msgType)
	case protocol.SOnSimBegin:
		t.client.OnSimulationBegin(t)
		t.respondToCall(msgType)
	case protocol.SOnSimStep:
		raceTime := r.ReadInt32()
		t.client.OnSimulationStep(t, raceTime)
		t.respondToCall(msgType)
	case protocol.SOnSimEnd:
		result := r.ReadInt32()
		t.client.OnSimulationEnd(t, result)
		t.respondToCall(msgType)
	case protocol.SOnCheckpointCountChanged:
		current := r.ReadInt32()
		target := r.ReadInt32()
		t.client.OnCheckpointCountChanged(t, current, target)
		t.respondToCall(msgType)
	case protocol.SOnLapsCountChanged:
		current := r.ReadInt32()
		t.client.OnLapsCountChanged(t, current)
		t.respondToCall(msgType)
	case protocol.SOnCustomCommand:
		timeFrom := r.ReadInt32()
		timeTo := r.ReadInt32()
		nArgs := int(r.ReadInt32())
		command := r.ReadString()
		args := make([]string, 0, nArgs)
		for i := 0; i < nArgs; i++ {
			args = append(args, r.ReadString())
		}
		t.client.OnCustomCommand(t, timeFrom, timeTo, command, args)
		t.respondToCall(msgType)
	case protocol.SOnBruteforceEvaluate:
		t.handleBruteforceEvaluate(msgType, r)
	default:
		log.Warn("Ignoring unknown server message type %d", msgType)
	}
}

// handleBruteforceEvaluate decodes the evaluation info and responds with
// the client's decision in the processed call itself.
func (t *TMInterface) handleBruteforceEvaluate(msgType protocol.MessageType, r *protocol.Reader) {
	info := bruteforce.NewEvaluationInfo()
	info.Phase = bruteforce.Phase(r.ReadInt32())
	info.Target = bruteforce.Target(r.ReadInt32())
	info.Time = r.ReadInt32()
	info.ModifiedInputsNum = r.ReadInt32()
	info.InputsMinTime = r.ReadInt32()
	info.InputsMaxTime = r.ReadInt32()
	info.MaxSteerDiff = r.ReadInt32()
	info.MaxTimeDiff = r.ReadInt32()
	info.OverrideStopTime = r.ReadInt32()
	info.SearchForever = r.ReadBool()
	info.InputsExtendSteer = r.ReadBool()

	resp := t.client.OnBruteforceEvaluate(t, info)
	if resp == nil {
		def := bruteforce.NewEvaluationResponse()
		resp = &def
	}

	msg := protocol.NewMessage(protocol.CProcessedCall)
	msg.WriteInt32(int32(msgType))
	msg.WriteInt32(int32(resp.Decision))
	msg.WriteInt32(resp.RewindTime)
	t.sendProcessedCall(msg)
}

func (t *TMInterface) respondToCall(msgType protocol.MessageType) {
	msg := protocol.NewMessage(protocol.CProcessedCall)
	msg.WriteInt32(int32(msgType))
	t.sendProcessedCall(msg)
}

// sendProcessedCall acknowledges a server call. The server does not
// respond to processed calls, so there is nothing to wait for.
func (t *TMInterface) sendProcessedCall(msg *protocol.Message) {
	t.mu.Lock()
	err := t.writeMessage(msg)
	t.mu.Unlock()
	if err != nil {
		t.client.OnError(t, fmt.Errorf("failed to acknowledge server call: %v", err))
	}
}
