package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jimdowning-cyclops/versioning-go/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, "versioning", os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
