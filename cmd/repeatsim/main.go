package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tastools/tminterface-go/pkg/client"
	"github.com/tastools/tminterface-go/pkg/log"
	"github.com/tastools/tminterface-go/pkg/simstate"
	"github.com/tastools/tminterface-go/pkg/version"
)

// mainClient saves the simulation state at a fixed race time and rewinds
// to it after every finish, repeating the same segment forever.
type mainClient struct {
	client.NoopClient
	saveTime int32
	state    *simstate.SimState
	finished bool
	simTime  int32
}

func (c *mainClient) OnRegistered(iface *client.TMInterface) {
	log.Info("Registered to %s", iface.ServerName())
}

func (c *mainClient) OnSimulationBegin(iface *client.TMInterface) {
	if err := iface.RemoveStateValidation(); err != nil {
		log.Error("Failed to remove state validation: %v", err)
	}
	c.finished = false
}

func (c *mainClient) OnSimulationStep(iface *client.TMInterface, raceTime int32) {
	c.simTime = raceTime
	if raceTime == c.saveTime {
		state, err := iface.GetSimulationState()
		if err != nil {
			log.Error("Failed to get simulation state: %v", err)
			return
		}
		c.state = state
	}

	if c.finished {
		c.finished = false
		if c.state == nil {
			return
		}
		if err := iface.RewindToState(c.state); err != nil {
			log.Error("Failed to rewind: %v", err)
		}
	}
}

func (c *mainClient) OnCheckpointCountChanged(iface *client.TMInterface, current, target int32) {
	log.Info("Reached checkpoint %d/%d", current, target)
	if current != target {
		return
	}
	log.Info("Finished the race at %d", c.simTime-c.saveTime-10)
	c.finished = true
	if err := iface.PreventSimulationFinish(); err != nil {
		log.Error("Failed to prevent simulation finish: %v", err)
	}
}

func (c *mainClient) OnSimulationEnd(iface *client.TMInterface, result int32) {
	log.Info("Simulation finished with result %d", result)
}

func (c *mainClient) OnError(iface *client.TMInterface, err error) {
	log.Error("Client error: %v", err)
}

func main() {
	serverName := flag.String("server", client.DefaultServerName, "TMInterface server name to connect to")
	saveTime := flag.Int("save-time", 2600, "Race time in ms at which the state is saved")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)

	log.Info("Starting repeatsim version %s", version.Get())

	if err := client.Run(context.Background(), &mainClient{saveTime: int32(*saveTime)}, client.NewTMInterfaceOptions{
		ServerName: *serverName,
	}); err != nil {
		panic(fmt.Sprintf("Failed to run client: %v", err))
	}
}
