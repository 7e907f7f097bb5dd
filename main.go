package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardnew/helix/cli"
	"github.com/ardnew/helix/cli/cmd"
	"github.com/ardnew/helix/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		// Script failures were already reported with source context.
		if !errors.Is(err, cmd.ErrScriptFailed) {
			log.Error("run failed", slog.Any("error", err))
		}

		os.Exit(1)
	}
}
