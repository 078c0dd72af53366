package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tastools/tminterface-go/pkg/commands"
	"github.com/tastools/tminterface-go/pkg/log"
	"github.com/tastools/tminterface-go/pkg/version"
)

// tmscript parses an input script and writes it back normalized: comments
// stripped, timed commands in stable time order, times in milliseconds.
func main() {
	inPath := flag.String("in", "", "Input script file")
	outPath := flag.String("out", "", "Output file, stdout when empty")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stderr, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)

	log.Info("Starting tmscript version %s", version.Get())

	if *inPath == "" {
		panic("the -in flag must be set")
	}

	content, err := os.ReadFile(*inPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to read script: %v", err))
	}

	list := commands.Parse(string(content))
	log.Info("Parsed %d immediate and %d timed commands",
		len(list.Commands), len(list.TimedCommands))

	script := list.ToScript()
	if *outPath == "" {
		fmt.Print(script)
		return
	}
	if err := os.WriteFile(*outPath, []byte(script), 0644); err != nil {
		panic(fmt.Sprintf("Failed to write script: %v", err))
	}
	log.Info("Wrote %s", *outPath)
}
