package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alex-pricope/roomvote/cmd"
	"github.com/alex-pricope/roomvote/config"
	"github.com/alex-pricope/roomvote/logging"
)

func main() {
	logging.BootstrapLogger(config.DefaultLogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		// cobra has already printed err
		logging.Log.Debugf("exiting after error: %v", err)
		stop()
		os.Exit(1)
	}
}
