package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kakeibo/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	app := &commands.App{}
	err := commands.NewRootCommand(app).ExecuteContext(ctx)
	app.Close()
	stop()

	if err != nil {
		if !commands.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
