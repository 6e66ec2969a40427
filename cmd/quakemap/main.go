// Command quakemap builds a map of recent earthquakes from the USGS feed and
// either serves it over HTTP or writes it as a static page.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newApp()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "quakemap:", err)
		os.Exit(1)
	}
}
