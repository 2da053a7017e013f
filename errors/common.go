package errors

// Top level categories. Every error returned by the engine is one of these or
// a more specific error registered as their child.
var (
	// ErrInput stands for general input problems indication. Rejected
	// configuration and malformed messages are input errors.
	ErrInput = Register(2, "invalid input")

	// ErrNotFound is used when a requested operation cannot be completed
	// due to missing data.
	ErrNotFound = Register(3, "not found")

	// ErrUnauthorized is used whenever a request without sufficient
	// authorization is handled. This includes a caller lacking a required
	// role or balance.
	ErrUnauthorized = Register(4, "unauthorized")

	// ErrState is returned when an operation is attempted outside of the
	// state it is valid in.
	ErrState = Register(5, "invalid state")

	// ErrOverflow s returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(6, "an operation cannot be completed due to value overflow")
)

var (
	// ErrEmpty is returned when a value fails a not empty assertion
	ErrEmpty = ErrInput.Register(10, "value is empty")

	// ErrAmount stands for invalid amount of whatever
	ErrAmount = ErrInput.Register(11, "invalid amount")

	// ErrMsg is returned whenever a message is invalid and cannot be
	// handled.
	ErrMsg = ErrInput.Register(12, "invalid message")

	// ErrModel is returned whenever a model is invalid and cannot
	// be used (ie. persisted).
	ErrModel = ErrInput.Register(13, "invalid model")

	// ErrType is returned whenever the type is not what was expected
	ErrType = ErrInput.Register(14, "invalid type")

	// ErrDuplicate is returned when there is a record already that has the same
	// unique key
	ErrDuplicate = ErrState.Register(15, "duplicate")

	// ErrInsufficientAmount is returned when an amount of currency is
	// insufficient, e.g. funds
	ErrInsufficientAmount = ErrState.Register(16, "insufficient amount")

	// ErrDatabase is returned when the underlying store fails.
	ErrDatabase = Register(17, "database")

	// ErrHuman is returned when application reaches a code path which should not
	// ever be reached if the code was written as expected by the framework
	ErrHuman = Register(18, "coding error")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info
	ErrPanic = Register(111222, "panic")
)
