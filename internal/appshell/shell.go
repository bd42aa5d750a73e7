// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs an app entry point under a signal-aware context and exits
// the process with its return code. SIGINT/SIGTERM cancel the context;
// a cancellation the app did not already map to an error exits 130.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}

	stop()
	os.Exit(code)
}
