package client

import (
	"github.com/tastools/tminterface-go/pkg/bruteforce"
)

// Client receives calls from the server while it is registered on a
// TMInterface instance. Hooks run on the dispatch goroutine and may call
// back into the interface to query or modify game state. The server waits
// for the hook to return before continuing the game loop, so long running
// work belongs on another goroutine.
type Client interface {
	// OnRegistered is called after the server confirms the registration.
	OnRegistered(iface *TMInterface)
	// OnDeregistered is called after the client is deregistered.
	OnDeregistered(iface *TMInterface)
	// OnShutdown is called when the server is shutting down.
	OnShutdown(iface *TMInterface)
	// OnRunStep is called on each physics step in a normal race.
	OnRunStep(iface *TMInterface, raceTime int32)
	// OnSimulationBegin is called when the game starts validating a replay.
	OnSimulationBegin(iface *TMInterface)
	// OnSimulationStep is called on each physics step of a simulation.
	OnSimulationStep(iface *TMInterface, raceTime int32)
	// OnSimulationEnd is called when the simulation finishes with the
	// final race result.
	OnSimulationEnd(iface *TMInterface, result int32)
	// OnCheckpointCountChanged is called when the car passes a checkpoint.
	// current == target means the race is finished.
	OnCheckpointCountChanged(iface *TMInterface, current, target int32)
	// OnLapsCountChanged is called when the car finishes a lap.
	OnLapsCountChanged(iface *TMInterface, current int32)
	// OnCustomCommand is called when a command registered with
	// RegisterCustomCommand is executed in the console. timeFrom and
	// timeTo carry the optional time range, -1 when absent.
	OnCustomCommand(iface *TMInterface, timeFrom, timeTo int32, command string, args []string)
	// OnBruteforceEvaluate is called on each bruteforce iteration.
	// Returning nil accepts the default decision.
	OnBruteforceEvaluate(iface *TMInterface, info bruteforce.EvaluationInfo) *bruteforce.EvaluationResponse
	// OnError is called when the dispatch loop hits a communication error.
	OnError(iface *TMInterface, err error)
}

// NoopClient implements Client with empty hooks. Embed it to implement
// only the hooks a client cares about.
type NoopClient struct{}

var _ Client = NoopClient{}

func (NoopClient) OnRegistered(iface *TMInterface)   {}
func (NoopClient) OnDeregistered(iface *TMInterface) {}
func (NoopClient) OnShutdown(iface *TMInterface)     {}

func (NoopClient) OnRunStep(iface *TMInterface, raceTime int32) {}

func (NoopClient) OnSimulationBegin(iface *TMInterface)               {}
func (NoopClient) OnSimulationStep(iface *TMInterface, raceTime int32) {}
func (NoopClient) OnSimulationEnd(iface *TMInterface, result int32)   {}

func (NoopClient) OnCheckpointCountChanged(iface *TMInterface, current, target int32) {}
func (NoopClient) OnLapsCountChanged(iface *TMInterface, current int32)               {}

func (NoopClient) OnCustomCommand(iface *TMInterface, timeFrom, timeTo int32, command string, args []string) {
}

func (NoopClient) OnBruteforceEvaluate(iface *TMInterface, info bruteforce.EvaluationInfo) *bruteforce.EvaluationResponse {
	return nil
}

func (NoopClient) OnError(iface *TMInterface, err error) {}
