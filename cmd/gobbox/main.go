package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/gobbox/pkg/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		report.WriteError(os.Stderr, err)
		os.Exit(1)
	}
}
