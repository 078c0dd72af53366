package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tastools/tminterface-go/pkg/client"
	"github.com/tastools/tminterface-go/pkg/log"
	"github.com/tastools/tminterface-go/pkg/version"
)

// mainClient prints live state values on every run step.
type mainClient struct {
	client.NoopClient
}

func (c *mainClient) OnRegistered(iface *client.TMInterface) {
	log.Info("Registered to %s", iface.ServerName())
}

func (c *mainClient) OnRunStep(iface *client.TMInterface, raceTime int32) {
	if raceTime < 0 {
		return
	}
	state, err := iface.GetSimulationState()
	if err != nil {
		log.Error("Failed to get simulation state: %v", err)
		return
	}
	log.Info("Time: %d Display Speed: %d Position: %v Velocity: %v Yaw/Pitch/Roll: %v",
		raceTime, state.DisplaySpeed(), state.Position(), state.Velocity(), state.YawPitchRoll())
}

func (c *mainClient) OnError(iface *client.TMInterface, err error) {
	log.Error("Client error: %v", err)
}

func main() {
	serverName := flag.String("server", client.DefaultServerName, "TMInterface server name to connect to")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)

	log.Info("Starting printvalues version %s", version.Get())

	if err := client.Run(context.Background(), &mainClient{}, client.NewTMInterfaceOptions{
		ServerName: *serverName,
	}); err != nil {
		panic(fmt.Sprintf("Failed to run client: %v", err))
	}
}
