// repomonc - relay repomon messages between the console and a remote peer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"repomonc/cmd"
	"repomonc/internal/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "repomonc: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps structured error kinds to process exit codes.
func exitCode(err error) int {
	switch {
	case errors.IsResolve(err):
		return 2
	case errors.IsConnect(err):
		return 3
	default:
		return 1
	}
}
