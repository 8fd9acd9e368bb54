// Command fieldcheck validates form field descriptors from files,
// or serves the same checks over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Populated at build-time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp(os.Stdout, os.Stderr).Run(ctx, os.Args)
	stop()
	os.Exit(exitCode(os.Stderr, err))
}
