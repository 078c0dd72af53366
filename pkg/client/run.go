package client

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tastools/tminterface-go/pkg/log"
)

// Run connects a client to a server and blocks until the context is
// canceled, an interrupt arrives or the server shuts down. The client is
// deregistered on the way out.
func Run(ctx context.Context, c Client, opts NewTMInterfaceOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	iface := NewTMInterface(opts)
	if err := iface.Register(c); err != nil {
		return fmt.Errorf("failed to connect to %s: %v", iface.ServerName(), err)
	}
	log.Info("Connected to %s", iface.ServerName())

	stopped := make(chan struct{})
	go func() {
		iface.Wait()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		if err := iface.Close(); err != nil {
			return fmt.Errorf("failed to close connection: %v", err)
		}
		iface.Wait()
	case <-stopped:
	}
	return nil
}
