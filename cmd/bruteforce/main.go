package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tastools/tminterface-go/pkg/bruteforce"
	"github.com/tastools/tminterface-go/pkg/client"
	"github.com/tastools/tminterface-go/pkg/log"
	"github.com/tastools/tminterface-go/pkg/version"
)

// mainClient drives the server's bruteforce controller to optimize the
// finish X position while never getting slower than the best known time.
type mainClient struct {
	client.NoopClient
	currentTime      int32
	doAccept         bool
	forceAccept      bool
	lowestTime       int32
	phase            bruteforce.Phase
	currentEndingPos [3]float32
	targetEndingPos  [3]float32
}

func (c *mainClient) OnRegistered(iface *client.TMInterface) {
	log.Info("Registered to %s", iface.ServerName())
	if err := iface.ExecuteCommand("set controller bruteforce"); err != nil {
		log.Error("Failed to set controller: %v", err)
	}
	if err := iface.ExecuteCommand("set bf_search_forever true"); err != nil {
		log.Error("Failed to enable endless search: %v", err)
	}
}

func (c *mainClient) OnSimulationBegin(iface *client.TMInterface) {
	buf, err := iface.GetEventBuffer()
	if err != nil {
		log.Error("Failed to get event buffer: %v", err)
		return
	}
	c.lowestTime = buf.EventsDuration
}

func (c *mainClient) OnBruteforceEvaluate(iface *client.TMInterface, info bruteforce.EvaluationInfo) *bruteforce.EvaluationResponse {
	c.currentTime = info.Time
	c.phase = info.Phase

	resp := bruteforce.NewEvaluationResponse()
	resp.Decision = bruteforce.DecisionDoNothing

	if (c.doAccept && c.currentEndingPos[0] < c.targetEndingPos[0]) || c.forceAccept {
		log.Info("Accepting solution: x %f -> %f", c.targetEndingPos[0], c.currentEndingPos[0])
		resp.Decision = bruteforce.DecisionAccept
	} else if c.currentTime > c.lowestTime {
		resp.Decision = bruteforce.DecisionReject
		c.currentEndingPos = c.targetEndingPos
	}

	c.doAccept = false
	c.forceAccept = false

	return &resp
}

func (c *mainClient) OnCheckpointCountChanged(iface *client.TMInterface, current, target int32) {
	if current != target {
		return
	}
	state, err := iface.GetSimulationState()
	if err != nil {
		log.Error("Failed to get simulation state: %v", err)
		return
	}

	switch c.phase {
	case bruteforce.PhaseInitial:
		c.lowestTime = c.currentTime
		c.targetEndingPos = state.Position()
	case bruteforce.PhaseSearch:
		c.currentEndingPos = state.Position()
		if c.currentTime <= c.lowestTime {
			c.doAccept = true
		}
		if c.currentTime < c.lowestTime {
			c.forceAccept = true
		}
	}
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

	log.Info("Starting bruteforce version %s", version.Get())

	if err := client.Run(context.Background(), &mainClient{}, client.NewTMInterfaceOptions{
		ServerName: *serverName,
	}); err != nil {
		panic(fmt.Sprintf("Failed to run client: %v", err))
	}
}
