package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ticketdesk/internal/admin"
	"ticketdesk/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := admin.NewRootCmd(admin.NewApp(config.New())).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
