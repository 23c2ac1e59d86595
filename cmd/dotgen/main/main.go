package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/arthur-debert/dotgen/cmd/dotgen"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := dotgen.NewRootCmd().ExecuteContext(ctx)
	code := dotgen.HandleError(err, os.Stderr)

	stop()
	os.Exit(code)
}
