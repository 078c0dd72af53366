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

// mainClient registers an echo console command that prints its argument
// back with an optional severity.
//
// Usage in the console:
//
//	echo "Something like this"
//	echo "An error message" error
type mainClient struct {
	client.NoopClient
}

func (c *mainClient) OnRegistered(iface *client.TMInterface) {
	log.Info("Registered to %s", iface.ServerName())
	if err := iface.RegisterCustomCommand("echo"); err != nil {
		log.Error("Failed to register command: %v", err)
	}
}

func (c *mainClient) OnCustomCommand(iface *client.TMInterface, timeFrom, timeTo int32, command string, args []string) {
	if command != "echo" {
		return
	}
	if len(args) == 0 {
		if err := iface.Log("echo takes at least one argument", client.SeverityError); err != nil {
			log.Error("Failed to log to console: %v", err)
		}
		return
	}
	severity := client.SeverityLog
	if len(args) > 1 {
		severity = parseSeverity(args[1])
	}
	if err := iface.Log(args[0], severity); err != nil {
		log.Error("Failed to log to console: %v", err)
	}
}

func (c *mainClient) OnError(iface *client.TMInterface, err error) {
	log.Error("Client error: %v", err)
}

func parseSeverity(s string) client.Severity {
	switch s {
	case "success":
		return client.SeveritySuccess
	case "warning":
		return client.SeverityWarning
	case "error":
		return client.SeverityError
	default:
		return client.SeverityLog
	}
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

	log.Info("Starting customcommand version %s", version.Get())

	if err := client.Run(context.Background(), &mainClient{}, client.NewTMInterfaceOptions{
		ServerName: *serverName,
	}); err != nil {
		panic(fmt.Sprintf("Failed to run client: %v", err))
	}
}
