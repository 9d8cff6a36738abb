// Package runner wires configuration, logging, ingestion, and snapshot
// emission into one testable entry point, independent of how the process
// was invoked.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"payments-engine/internal/config"
	"payments-engine/internal/engine"
	"payments-engine/internal/ingest"
	"payments-engine/internal/pkg/logging"
)

// Options configures a single run. Stdout defaults to the process's own
// standard output when nil; tests set it to capture the snapshot. Stderr is
// not read by Run: diagnostics always go to the process's standard error.
type Options struct {
	InputPath string
	LogLevel  string
	Stdout    io.Writer
	Stderr    io.Writer
}

// FatalError is a process-level fault: a missing argument or an I/O failure
// that leaves the run unable to produce a snapshot. Record-level faults
// never reach here; the engine recovers from those internally.
type FatalError struct {
	Cause error
	Code  int
}

func (e *FatalError) Error() string { return e.Cause.Error() }
func (e *FatalError) Unwrap() error { return e.Cause }

func newFatal(cause error) *FatalError {
	return &FatalError{Cause: cause, Code: 1}
}

// Run opens opts.InputPath, ingests it to completion, and writes the final
// account snapshot to opts.Stdout. It returns a *FatalError for any
// process-level failure.
func Run(ctx context.Context, opts Options) error {
	cfg := config.Load()
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	logging.Init(cfg)

	if opts.InputPath == "" {
		return newFatal(fmt.Errorf("missing input file argument"))
	}

	f, err := os.Open(opts.InputPath)
	if err != nil {
		return newFatal(fmt.Errorf("opening input: %w", err))
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New()
	source := ingest.NewCSVSource(f)
	if err := eng.IngestAll(ctx, source); err != nil {
		return newFatal(fmt.Errorf("reading input: %w", err))
	}

	logging.Info("ingestion complete", eng.Stats().Fields())

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	if err := ingest.WriteSnapshot(stdout, eng.Snapshot()); err != nil {
		return newFatal(fmt.Errorf("writing snapshot: %w", err))
	}

	return nil
}
