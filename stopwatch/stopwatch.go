/*
Package stopwatch is used to time things.
Create a stopwatch with Start,
then on success record the timing with Finish.

It's recommended you do not record errors,
since they can have vastly different timings.
*/
package stopwatch

import (
	"log/slog"
	"time"
)

type Stopwatch struct {
	start     time.Time
	operation string
	logger    *slog.Logger
}

// Start logs "<operation>_started" at debug and starts the clock.
func Start(logger *slog.Logger, operation string) *Stopwatch {
	sw := &Stopwatch{
		start:     time.Now(),
		operation: operation,
		logger:    logger,
	}
	sw.logger.Debug(operation + "_started")
	return sw
}

type FinishOpts struct {
	Logger *slog.Logger
	// Args are added to the finish record, like slog.Logger.Info args.
	Args []any
}

func (sw *Stopwatch) FinishWith(opts FinishOpts) {
	logger := sw.logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	logger = logger.With("elapsed", sw.Elapsed().Seconds())
	logger.Info(sw.operation+"_finished", opts.Args...)
}

// Finish logs "<operation>_finished" at info with the elapsed seconds and args.
func (sw *Stopwatch) Finish(args ...any) {
	sw.FinishWith(FinishOpts{Args: args})
}

func (sw *Stopwatch) Elapsed() time.Duration {
	return time.Since(sw.start)
}
