// Package appshell owns the process-level plumbing for the deblend
// entrypoint: signal-aware context, default help argv, and exit-code
// normalization on interrupt.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs the app body under a context cancelled by SIGINT/SIGTERM
// and exits with the returned code. Ctrl-C during a long catalog
// stream maps to 130 even when the body returned 0.
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
