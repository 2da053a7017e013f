package utils

import (
	"time"

	estate "github.com/iov-one/estate"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ estate.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx estate.Context, store estate.KVStore, tx estate.Tx, next estate.Checker) (*estate.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, 0, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx estate.Context, store estate.KVStore, tx estate.Tx, next estate.Deliverer) (*estate.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var (
		resLog string
		events int
	)
	if err == nil {
		resLog = res.Log
		events = len(res.Events)
	}
	logDuration(ctx, tx, start, resLog, events, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx estate.Context, tx estate.Tx, start time.Time, msg string, events int, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := estate.GetLogger(ctx).With(
		"path", estate.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	if err != nil {
		logger = logger.With("err", err)
	} else if events > 0 {
		logger = logger.With("events", events)
	}

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.

	switch {
	case err != nil:
		logger.Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
