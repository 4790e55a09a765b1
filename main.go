package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/futurist-future/image-converter/cmd"
	"github.com/futurist-future/image-converter/internal/logging"
)

func main() {
	// cancel in-flight builds on ctrl-c; a second ctrl-c kills the process
	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		cnc()
	}()
	slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
	ctx = logging.AppendCtx(ctx, slog.String("app", "imgconv"))

	err := cmd.Execute(ctx)
	cnc()
	if err != nil {
		os.Exit(1)
	}
}
