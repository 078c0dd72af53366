package client

import (
	"github.com/tastools/tminterface-go/pkg/log"
	"github.com/tastools/tminterface-go/pkg/queue"
)

// Hook events published by a Collector.
type (
	RunStepEvent struct {
		Time int32
	}
	SimulationBeginEvent struct{}
	SimulationStepEvent  struct {
		Time int32
	}
	SimulationEndEvent struct {
		Result int32
	}
	CheckpointEvent struct {
		Current int32
		Target  int32
	}
	LapEvent struct {
		Current int32
	}
	CustomCommandEvent struct {
		TimeFrom int32
		TimeTo   int32
		Command  string
		Args     []string
	}
)

// Collector is a Client that publishes hook events to a queue instead of
// handling them inline. Hooks stay fast while another goroutine drains
// the queue at its own pace. Events are dropped when the queue is full.
type Collector struct {
	NoopClient
	eventQueue queue.Queue
}

// NewCollectorOptions contains options for creating a new Collector.
type NewCollectorOptions struct {
	EventQueue queue.Queue
}

func NewCollector(opts NewCollectorOptions) *Collector {
	return &Collector{
		eventQueue: opts.EventQueue,
	}
}

func (c *Collector) OnRunStep(iface *TMInterface, raceTime int32) {
	c.publish(RunStepEvent{Time: raceTime})
}

func (c *Collector) OnSimulationBegin(iface *TMInterface) {
	c.publish(SimulationBeginEvent{})
}

func (c *Collector) OnSimulationStep(iface *TMInterface, raceTime int32) {
	c.publish(SimulationStepEvent{Time: raceTime})
}

func (c *Collector) OnSimulationEnd(iface *TMInterface, result int32) {
	c.publish(SimulationEndEvent{Result: result})
}

func (c *Collector) OnCheckpointCountChanged(iface *TMInterface, current, target int32) {
	c.publish(CheckpointEvent{Current: current, Target: target})
}

func (c *Collector) OnLapsCountChanged(iface *TMInterface, current int32) {
	c.publish(LapEvent{Current: current})
}

func (c *Collector) OnCustomCommand(iface *TMInterface, timeFrom, timeTo int32, command string, args []string) {
	c.publish(CustomCommandEvent{
		TimeFrom: timeFrom,
		TimeTo:   timeTo,
		Command:  command,
		Args:     args,
	})
}

func (c *Collector) OnError(iface *TMInterface, err error) {
	log.Error("Client error: %v", err)
}

func (c *Collector) publish(event interface{}) {
	if err := c.eventQueue.Enqueue(event); err != nil {
		log.Warn("Failed to enqueue %T: %v", event, err)
	}
}
