// Command wherec compiles filter expressions to SQL and in-memory predicates.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/wherec/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "wherec: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
