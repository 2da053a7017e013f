/*
Package errors implements custom error interfaces for the engine.

The idea is to reuse as many errors from this package as possible and define
custom package errors when absolutely necessary.

Five top level categories are declared here: ErrInput, ErrNotFound,
ErrUnauthorized, ErrState and ErrOverflow. An extension that needs a
distinguishable error registers it as a child of one of them:

	ErrNothingToClaim = errors.ErrState.Register(100, "nothing to claim")

The child error matches itself and every ancestor when tested with Is, so a
client can test for the exact condition or only for its category.

There is also support for stacktraces. Please ensure you create the custom
error using ErrXyz.New("...") or errors.Wrap(err, "...") at the point of
creation to ensure we attach a stacktrace. If you wrap multiple times, we only
record the first wrap with the stacktrace.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
for the error

	%s is just the error message
	%+v is the full stack trace
*/
package errors
