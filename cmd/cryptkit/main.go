// Command cryptkit exposes the random, hashing and encryption packages on
// the command line.
//
// Usage:
//
//	cryptkit <command> [flags]
//
// Secrets come from --pepper/--salt, CRYPTKIT_PEPPER/CRYPTKIT_SALT, or a
// TOML file given with --config.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errMismatch) {
			fmt.Fprintln(os.Stderr, "cryptkit:", err)
		}
		stop()
		os.Exit(1)
	}
}
