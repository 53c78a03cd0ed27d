package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"yjqy-scraper/cmd/yjqy/commands"
	"yjqy-scraper/internal/components/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry.InitSlog(false)
	commands.ExecuteContext(ctx)
}
