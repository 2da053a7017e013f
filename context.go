/*
Package estate defines all common interfaces to tie together the various
subpackages of the engine, as well as implementations of some of the simpler
components.

We pass context through context.Context between app, middleware, and
handlers. To do so, estate defines some common keys to store info, such as
block time and chain id. Each extension, such as sigs, may add its own keys
to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. block time, chain id)
*/
package estate

import (
	"context"
	"regexp"
	"time"

	"github.com/iov-one/estate/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

type contextKey int // local to the estate module

const (
	contextKeyHeight contextKey = iota
	contextKeyTime
	contextKeyChainID
	contextKeyLogger
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight sets the block height for the context.
// It panics if the height is already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height
// If none was set, returns (0, false)
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithBlockTime sets the block time for the context. Block time is the
// only clock an operation may observe. It panics if already set.
func WithBlockTime(ctx Context, t time.Time) Context {
	if _, ok := ctx.Value(contextKeyTime).(time.Time); ok {
		panic("Block time already set")
	}
	return context.WithValue(ctx, contextKeyTime, t)
}

// BlockTime returns current block wall clock time as declared in the
// context. An error is returned if a block time is not present in the
// context or if the zero time value is found.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(contextKeyTime).(time.Time)
	if !ok {
		return t, errors.ErrHuman.New("block time not present in the context")
	}
	if t.IsZero() {
		// This is a special case when a zero time value was attached
		// to the context. Even though it is present it is not a valid
		// value.
		return t, errors.ErrHuman.New("zero value block time in the context")
	}
	return t, nil
}

// WithChainID sets the chain id for the Context.
// It panics if the chain id is already set or malformed.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set")
	}
	if !IsValidChainID(chainID) {
		panic("Invalid chain ID")
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id
// panics if chain id not already set (should never happen)
func GetChainID(ctx Context) string {
	if x := ctx.Value(contextKeyChainID); x == nil {
		panic("Chain ID not set")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithLogger sets the logger for this context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
